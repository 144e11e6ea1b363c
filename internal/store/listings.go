package store

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/Checkmartyr/Hyperlocal-Community-Barter/internal/models"

	"github.com/google/uuid"
)

// ListingFields carries the caller-supplied fields of a new listing.
// Lat and Lng are deliberately untyped: clients send numbers, numeric
// strings, or nothing at all, and anything non-numeric coerces to 0.0
// rather than failing.
type ListingFields struct {
	Title       string
	Description string
	Category    string
	Offer       string
	Lat         any
	Lng         any
}

// ListingStore is an append-only collection of listings in creation order.
type ListingStore struct {
	mu          sync.RWMutex
	listings    []models.Listing
	lastCreated time.Time
}

func NewListingStore() *ListingStore {
	return &ListingStore{}
}

// Seed loads previously persisted listings; call once at startup, in
// created-at order.
func (s *ListingStore) Seed(listings []models.Listing) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listings = append(s.listings, listings...)
	if n := len(s.listings); n > 0 {
		s.lastCreated = s.listings[n-1].CreatedAt
	}
}

// Create validates, coerces and appends a new listing. Title and category
// must be non-empty (ErrMissingFields); coordinates never fail.
func (s *ListingStore) Create(ownerID string, f ListingFields) (*models.Listing, error) {
	title := strings.TrimSpace(f.Title)
	category := strings.TrimSpace(f.Category)
	if title == "" || category == "" {
		return nil, ErrMissingFields
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	createdAt := time.Now()
	// keep creation timestamps strictly increasing even on clock ties
	if !createdAt.After(s.lastCreated) {
		createdAt = s.lastCreated.Add(time.Nanosecond)
	}
	s.lastCreated = createdAt

	l := models.Listing{
		ID:          uuid.NewString(),
		OwnerID:     ownerID,
		Title:       title,
		Description: f.Description,
		Category:    category,
		Offer:       f.Offer,
		Lat:         coerceCoord(f.Lat),
		Lng:         coerceCoord(f.Lng),
		CreatedAt:   createdAt,
	}
	s.listings = append(s.listings, l)

	out := l
	return &out, nil
}

// Snapshot returns a copy of all listings in creation order. The copy is
// a consistent point-in-time view; callers may filter it freely.
func (s *ListingStore) Snapshot() []models.Listing {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Listing, len(s.listings))
	copy(out, s.listings)
	return out
}

// Count returns the number of stored listings.
func (s *ListingStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.listings)
}

// coerceCoord turns an arbitrary JSON value into a coordinate, defaulting
// to 0.0 for anything absent or non-numeric.
func coerceCoord(v any) float64 {
	var f float64
	switch n := v.(type) {
	case nil:
		return 0
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0
		}
		f = parsed
	default:
		return 0
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}
