package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Checkmartyr/Hyperlocal-Community-Barter/internal/core"
	"github.com/Checkmartyr/Hyperlocal-Community-Barter/internal/metrics"
	"github.com/Checkmartyr/Hyperlocal-Community-Barter/internal/middleware"
	"github.com/Checkmartyr/Hyperlocal-Community-Barter/internal/query"
	"github.com/Checkmartyr/Hyperlocal-Community-Barter/internal/store"
	"github.com/Checkmartyr/Hyperlocal-Community-Barter/internal/util"

	"github.com/gin-gonic/gin"
)

// ListingHandler serves publishing and discovery of listings.
type ListingHandler struct {
	Core *core.Core
}

func NewListingHandler(c *core.Core) *ListingHandler {
	return &ListingHandler{Core: c}
}

// createListingReq accepts lat/lng as any JSON value; the store coerces
// non-numeric values to 0.0 instead of rejecting the listing.
type createListingReq struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Offer       string `json:"offer"`
	Lat         any    `json:"lat"`
	Lng         any    `json:"lng"`
}

// Create publishes a listing under the identity bound to the session.
func (h *ListingHandler) Create(c *gin.Context) {
	var req createListingReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}

	token, _ := c.Get(middleware.CtxSessionToken)
	tokenStr, _ := token.(string)

	listing, err := h.Core.CreateListing(tokenStr, store.ListingFields{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Offer:       req.Offer,
		Lat:         req.Lat,
		Lng:         req.Lng,
	})
	if err != nil {
		switch {
		case errors.Is(err, store.ErrUnauthorized):
			util.Error(c, http.StatusUnauthorized, util.CodeAuth, "unauthorized")
		case errors.Is(err, store.ErrMissingFields):
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "missing fields")
		default:
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "create listing failed")
		}
		return
	}

	metrics.IncListingCreated()
	util.Success(c, util.Response{
		"status": "ok",
		"post":   listing,
	})
}

// List answers discovery queries. Query parameters: category (exact),
// q (case-insensitive substring over title/description), and lat+lng+radius
// for the geodesic filter. The geo filter only engages when all three of
// its parameters parse as floats; partial coordinates silently skip it.
func (h *ListingHandler) List(c *gin.Context) {
	filters := query.Filters{
		Category: c.Query("category"),
		Text:     c.Query("q"),
		Geo:      parseGeo(c.Query("lat"), c.Query("lng"), c.Query("radius")),
	}

	results := h.Core.Discover(filters)

	metrics.IncDiscover(filters.Geo != nil)
	util.Success(c, util.Response{"posts": results})
}

// parseGeo builds a GeoFilter iff all three parameters are present and
// numeric; anything less disables geo filtering entirely rather than
// matching a zero radius.
func parseGeo(latStr, lngStr, radiusStr string) *query.GeoFilter {
	if latStr == "" || lngStr == "" || radiusStr == "" {
		return nil
	}
	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return nil
	}
	lng, err := strconv.ParseFloat(lngStr, 64)
	if err != nil {
		return nil
	}
	radius, err := strconv.ParseFloat(radiusStr, 64)
	if err != nil {
		return nil
	}
	return &query.GeoFilter{Lat: lat, Lng: lng, RadiusKm: radius}
}
