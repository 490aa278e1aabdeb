// Package auth, as part of the authentication module.
// This file, `handlers.go`, is responsible for handling HTTP requests related to authentication.
// It acts as the "Controller" layer: it decodes the request, calls the Service
// and writes the response. Business rules live in `service.go`.
package auth

import (
	"encoding/json"
	"errors"
	"log"
	"mime"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/user/tierapi-go/apperror"
)

// maxBodyBytes caps request bodies read by the handlers.
const maxBodyBytes = 1 << 20

// Handlers wraps the Service to provide HTTP handlers.
type Handlers struct {
	service *Service
}

// NewHandlers creates a new Handlers instance
func NewHandlers(service *Service) *Handlers {
	return &Handlers{service: service}
}

// The `godoc` comments (like `@Summary`, `@Tags`, etc.) are annotations read by
// `swaggo/swag` when regenerating the OpenAPI document in `docs/`.

// HandleSignup godoc
// @Summary User Signup
// @Description Creates a new user and returns an access token for it.
// @Tags Auth
// @Accept json
// @Produce json
// @Param signupBody body auth.SignupRequest true "User signup details"
// @Success 201 {object} auth.TokenResponse "User created, token provided"
// @Failure 400 {object} apperror.ErrorResponse "Bad Request - Invalid input or plan"
// @Failure 409 {object} apperror.ErrorResponse "Conflict - User already exists (username or email)"
// @Failure 500 {object} apperror.ErrorResponse "Internal Server Error"
// @Router /auth/signup [post]
func (h *Handlers) HandleSignup() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SignupRequest
		if err := DecodeJSON(w, r, &req); err != nil {
			WriteError(w, r, err)
			return
		}

		resp, err := h.service.Signup(r.Context(), req)
		if err != nil {
			WriteError(w, r, err)
			return
		}
		WriteJSON(w, http.StatusCreated, resp)
	}
}

// HandleLogin godoc
// @Summary User Login
// @Description Logs in with a username or email and returns an access token.
// @Description Accepts a JSON body or an OAuth2-style form (username, password).
// @Tags Auth
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param loginBody body auth.LoginRequest true "User login credentials"
// @Success 200 {object} auth.TokenResponse "Login successful, token provided"
// @Failure 400 {object} apperror.ErrorResponse "Bad Request - Invalid input or missing fields"
// @Failure 401 {object} apperror.ErrorResponse "Unauthorized - Invalid credentials"
// @Failure 500 {object} apperror.ErrorResponse "Internal Server Error"
// @Router /auth/login [post]
func (h *Handlers) HandleLogin() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, err := decodeLogin(w, r)
		if err != nil {
			WriteError(w, r, err)
			return
		}

		login := strings.TrimSpace(req.identity())
		details := map[string]string{}
		if login == "" {
			details["login"] = "required"
		}
		if req.Password == "" {
			details["password"] = "required"
		}
		if len(details) > 0 {
			WriteError(w, r, apperror.NewValidationError("invalid input", ErrInvalidInput).WithDetails(details))
			return
		}

		resp, err := h.service.Login(login, req.Password)
		if err != nil {
			WriteError(w, r, err)
			return
		}
		WriteJSON(w, http.StatusOK, resp)
	}
}

// decodeLogin reads a LoginRequest from either a JSON or a form-encoded body.
func decodeLogin(w http.ResponseWriter, r *http.Request) (LoginRequest, error) {
	var req LoginRequest
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "application/x-www-form-urlencoded":
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		if err := r.ParseForm(); err != nil {
			return req, apperror.NewBadRequestError("invalid form body", err)
		}
		req.Username = r.PostForm.Get("username")
		req.Email = r.PostForm.Get("email")
		req.Password = r.PostForm.Get("password")
		return req, nil
	default:
		err := DecodeJSON(w, r, &req)
		return req, err
	}
}

// DecodeJSON decodes a size-limited JSON body into dst. Failures are
// BadRequest *apperror.AppError values ready for WriteError.
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return apperror.NewBadRequestError("request body too large", err)
		}
		return apperror.NewBadRequestError("invalid request body", err)
	}
	return nil
}

// WriteJSON serializes `data` to JSON and writes it to the `http.ResponseWriter` with the given `status`.
// The body is marshalled before any header is sent, so a value that cannot be
// encoded turns into a 500 instead of a truncated response.
func WriteJSON(w http.ResponseWriter, status int, data any) {
	var body []byte
	if data != nil {
		b, err := json.Marshal(data)
		if err != nil {
			log.Printf("failed to encode response: %v", err)
			status = http.StatusInternalServerError
			b, _ = json.Marshal(apperror.ErrorResponse{Error: "internal server error"})
		}
		body = append(b, '\n')
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		if _, err := w.Write(body); err != nil {
			log.Printf("failed to write response: %v", err)
		}
	}
}

// WriteError uses the apperror system to write standardized error responses.
// Anything that is not an *apperror.AppError becomes a 500 whose cause is
// logged and never sent to the client.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	appErr, ok := apperror.FromError(err)
	if !ok {
		appErr = apperror.NewInternalError("internal server error", err)
	}

	if appErr.StatusCode() >= http.StatusInternalServerError {
		log.Printf("[%s] %s %s: %v", middleware.GetReqID(r.Context()), r.Method, r.URL.Path, appErr)
	}
	if appErr.Type == apperror.AuthError {
		w.Header().Set("WWW-Authenticate", "Bearer")
	}
	WriteJSON(w, appErr.StatusCode(), appErr.ToResponse())
}
