package tailored

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/user/tierapi-go/apperror"
	"github.com/user/tierapi-go/auth"
	"github.com/user/tierapi-go/users"
)

// Handlers exposes the Composer over HTTP. All routes expect auth.Guard to
// have run first.
type Handlers struct {
	composer *Composer
}

// NewHandlers creates a new Handlers instance
func NewHandlers(composer *Composer) *Handlers {
	return &Handlers{composer: composer}
}

// RegisterRoutes mounts the tier-scoped routes on r.
func (h *Handlers) RegisterRoutes(r chi.Router) {
	r.Get("/dashboard/me", h.HandleDashboard())
	r.Get("/api/content", h.HandleContent())
	r.Get("/account/plan", h.HandleGetPlan())
	r.Put("/account/plan", h.HandleSetPlan())
}

// HandleDashboard godoc
// @Summary Tier Dashboard
// @Description Returns the caller's profile and the features of their package tier.
// @Tags Tailored
// @Produce json
// @Success 200 {object} tailored.Dashboard
// @Failure 401 {object} apperror.ErrorResponse "Unauthorized"
// @Router /dashboard/me [get]
// @Security BearerAuth
func (h *Handlers) HandleDashboard() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, ok := currentUser(w, r)
		if !ok {
			return
		}
		resp, err := h.composer.DashboardFor(u)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}
		auth.WriteJSON(w, http.StatusOK, resp)
	}
}

// HandleContent godoc
// @Summary Tier Content
// @Description Returns the content feed for the caller's package tier.
// @Tags Tailored
// @Produce json
// @Success 200 {object} tailored.ContentResponse
// @Failure 401 {object} apperror.ErrorResponse "Unauthorized"
// @Router /api/content [get]
// @Security BearerAuth
func (h *Handlers) HandleContent() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, ok := currentUser(w, r)
		if !ok {
			return
		}
		resp, err := h.composer.ContentFor(u)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}
		auth.WriteJSON(w, http.StatusOK, resp)
	}
}

// HandleGetPlan godoc
// @Summary Current Plan
// @Tags Account
// @Produce json
// @Success 200 {object} tailored.PlanResponse
// @Failure 401 {object} apperror.ErrorResponse "Unauthorized"
// @Router /account/plan [get]
// @Security BearerAuth
func (h *Handlers) HandleGetPlan() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, ok := currentUser(w, r)
		if !ok {
			return
		}
		auth.WriteJSON(w, http.StatusOK, h.composer.GetPlan(u))
	}
}

// HandleSetPlan godoc
// @Summary Change Plan
// @Description Moves the caller to another package tier.
// @Tags Account
// @Accept json
// @Produce json
// @Param planBody body tailored.PlanUpdateRequest true "New package tier"
// @Success 200 {object} tailored.PlanResponse
// @Failure 400 {object} apperror.ErrorResponse "Bad Request - Unknown plan"
// @Failure 401 {object} apperror.ErrorResponse "Unauthorized"
// @Failure 404 {object} apperror.ErrorResponse "User no longer exists"
// @Router /account/plan [put]
// @Security BearerAuth
func (h *Handlers) HandleSetPlan() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, ok := currentUser(w, r)
		if !ok {
			return
		}
		var req PlanUpdateRequest
		if err := auth.DecodeJSON(w, r, &req); err != nil {
			auth.WriteError(w, r, err)
			return
		}
		resp, err := h.composer.SetPlan(u, req.PackageTier)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}
		auth.WriteJSON(w, http.StatusOK, resp)
	}
}

// currentUser writes a 401 and reports false when the guard did not run.
func currentUser(w http.ResponseWriter, r *http.Request) (users.User, bool) {
	u, ok := auth.UserFromContext(r.Context())
	if !ok {
		auth.WriteError(w, r, apperror.NewAuthError("not authenticated", auth.ErrUnauthenticated))
	}
	return u, ok
}
