// Package tailored builds the responses whose shape depends on the caller's
// package tier: the dashboard, the content feed and the plan itself.
// Everything tier-specific comes from the plans catalog; nothing here branches
// on a tier name.
package tailored

import (
	"errors"

	"github.com/user/tierapi-go/apperror"
	"github.com/user/tierapi-go/plans"
	"github.com/user/tierapi-go/users"
)

// PlanStore persists tier changes.
type PlanStore interface {
	UpdateTier(id string, tier plans.Tier) (users.User, error)
}

// Composer shapes tier-scoped payloads for authenticated users.
type Composer struct {
	catalog *plans.Catalog
	store   PlanStore
}

// NewComposer creates a Composer.
func NewComposer(catalog *plans.Catalog, store PlanStore) *Composer {
	return &Composer{catalog: catalog, store: store}
}

// DashboardFor returns the dashboard for u's tier.
func (c *Composer) DashboardFor(u users.User) (*Dashboard, error) {
	entry, err := c.entry(u.Tier)
	if err != nil {
		return nil, err
	}
	return &Dashboard{
		User:     u.Public(),
		Tier:     entry.Tier,
		Features: entry.Features,
	}, nil
}

// ContentFor returns the content feed for u's tier.
func (c *Composer) ContentFor(u users.User) (*ContentResponse, error) {
	entry, err := c.entry(u.Tier)
	if err != nil {
		return nil, err
	}
	return &ContentResponse{Tier: entry.Tier, Content: entry.Content}, nil
}

// GetPlan reports u's current tier.
func (c *Composer) GetPlan(u users.User) PlanResponse {
	return PlanResponse{PackageTier: u.Tier}
}

// SetPlan moves u to the tier named by raw. An unknown tier leaves the stored
// record untouched.
func (c *Composer) SetPlan(u users.User, raw string) (PlanResponse, error) {
	tier, err := c.catalog.Resolve(raw)
	if err != nil {
		return PlanResponse{}, apperror.NewValidationError(err.Error(), err)
	}

	updated, err := c.store.UpdateTier(u.ID, tier)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			return PlanResponse{}, apperror.NewNotFoundError("user not found", err)
		}
		return PlanResponse{}, apperror.NewInternalError("failed to update plan", err)
	}
	return PlanResponse{PackageTier: updated.Tier}, nil
}

// entry looks tier up in the catalog. A stored tier the catalog does not
// know means the catalog changed under a live record; that is a server fault.
func (c *Composer) entry(tier plans.Tier) (plans.Entry, error) {
	entry, ok := c.catalog.Lookup(tier)
	if !ok {
		return plans.Entry{}, apperror.NewInternalError("unknown package tier "+tier.String(), plans.ErrInvalidTier)
	}
	return entry, nil
}
