// Package core wires the credential store, session registry, listing
// store and query engine into the service's callable surface. Everything
// here is in-memory and CPU-bound; durability is delegated to a Notifier
// that is informed of successful writes fire-and-forget.
package core

import (
	"time"

	"github.com/Checkmartyr/Hyperlocal-Community-Barter/internal/models"
	"github.com/Checkmartyr/Hyperlocal-Community-Barter/internal/query"
	"github.com/Checkmartyr/Hyperlocal-Community-Barter/internal/store"
)

// Notifier receives successful mutations so a persistence layer can
// durably record them. Implementations must not block; the core never
// waits on durability before returning a write's result.
type Notifier interface {
	IdentityCreated(models.Identity)
	ListingCreated(models.Listing)
}

// NopNotifier discards all notifications. Used in tests and when the
// service runs without persistence.
type NopNotifier struct{}

func (NopNotifier) IdentityCreated(models.Identity) {}
func (NopNotifier) ListingCreated(models.Listing)   {}

// Options configures a Core instance.
type Options struct {
	SessionTTL time.Duration
	BcryptCost int
	Notifier   Notifier
}

// Core owns the three collections and exposes the service operations.
// Each instance is fully self-contained, so tests can build as many as
// they need.
type Core struct {
	credentials *store.CredentialStore
	sessions    *store.SessionRegistry
	listings    *store.ListingStore
	notifier    Notifier
}

func New(opts Options) *Core {
	n := opts.Notifier
	if n == nil {
		n = NopNotifier{}
	}
	return &Core{
		credentials: store.NewCredentialStore(opts.BcryptCost),
		sessions:    store.NewSessionRegistry(opts.SessionTTL),
		listings:    store.NewListingStore(),
		notifier:    n,
	}
}

// Seed loads persisted state into the in-memory stores; call once at
// startup before serving.
func (c *Core) Seed(identities []models.Identity, listings []models.Listing) {
	c.credentials.Seed(identities)
	c.listings.Seed(listings)
}

// Register creates a new identity and notifies the persistence layer.
func (c *Core) Register(email, password string) (*models.Identity, error) {
	id, err := c.credentials.Register(email, password)
	if err != nil {
		return nil, err
	}
	c.notifier.IdentityCreated(*id)
	return id, nil
}

// Authenticate verifies credentials and issues a session token.
func (c *Core) Authenticate(email, password string) (string, error) {
	id, err := c.credentials.Authenticate(email, password)
	if err != nil {
		return "", err
	}
	return c.sessions.Issue(id)
}

// CreateListing publishes a listing under the identity bound to the
// token. Fails with ErrUnauthorized before any field validation runs.
func (c *Core) CreateListing(token string, fields store.ListingFields) (*models.Listing, error) {
	ownerID, err := c.sessions.Resolve(token)
	if err != nil {
		return nil, err
	}
	l, err := c.listings.Create(ownerID, fields)
	if err != nil {
		return nil, err
	}
	c.notifier.ListingCreated(*l)
	return l, nil
}

// Discover filters a snapshot of the listings. Never fails on
// well-formed input; with zero filters it returns every listing in
// creation order.
func (c *Core) Discover(f query.Filters) []models.Listing {
	return query.Discover(c.listings.Snapshot(), f)
}

// Logout revokes the session bound to the token.
func (c *Core) Logout(token string) error {
	return c.sessions.Revoke(token)
}

// Whoami resolves the token to its identity.
func (c *Core) Whoami(token string) (*models.Identity, error) {
	identityID, err := c.sessions.Resolve(token)
	if err != nil {
		return nil, err
	}
	id, ok := c.credentials.GetByID(identityID)
	if !ok {
		return nil, store.ErrUnauthorized
	}
	return id, nil
}

// IdentityCount reports the number of registered identities.
func (c *Core) IdentityCount() int { return c.credentials.Count() }

// ListingCount reports the number of stored listings.
func (c *Core) ListingCount() int { return c.listings.Count() }
