package models

import "time"

// Listing is a published barter/offer post anchored to a location.
// Listings are immutable once created.
type Listing struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	OwnerID     string    `gorm:"index;size:36;not null" json:"userId"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Category    string    `gorm:"size:64;index;not null" json:"category"`
	Offer       string    `gorm:"size:255" json:"offer"`
	Lat         float64   `json:"lat"`
	Lng         float64   `json:"lng"`
	CreatedAt   time.Time `gorm:"index" json:"createdAt"`
}
