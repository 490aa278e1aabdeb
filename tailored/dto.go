package tailored

import (
	"github.com/user/tierapi-go/plans"
	"github.com/user/tierapi-go/users"
)

// Dashboard is the body of GET /dashboard/me.
type Dashboard struct {
	User     users.PublicUser `json:"user"`
	Tier     plans.Tier       `json:"tier" example:"pro" swaggertype:"string"`
	Features []plans.Feature  `json:"features"`
}

// ContentResponse is the body of GET /api/content. The catalog content fields
// are inlined next to the tier.
type ContentResponse struct {
	Tier plans.Tier `json:"tier" example:"pro" swaggertype:"string"`
	plans.Content
}

// PlanResponse is the body of both GET and PUT /account/plan.
type PlanResponse struct {
	PackageTier plans.Tier `json:"package_tier" example:"pro" swaggertype:"string"`
}

// PlanUpdateRequest is the body of PUT /account/plan.
type PlanUpdateRequest struct {
	PackageTier string `json:"package_tier" example:"enterprise"`
}
