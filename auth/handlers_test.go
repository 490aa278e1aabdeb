package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/tierapi-go/apperror"
)

func doRequest(t *testing.T, h http.Handler, contentType, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) apperror.ErrorResponse {
	t.Helper()
	var body apperror.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestHandleSignup(t *testing.T) {
	env := newTestEnv(t)
	h := NewHandlers(env.service).HandleSignup()

	rec := doRequest(t, h, "application/json",
		`{"email":"alice@example.com","username":"alice","password":"wonderland","package_tier":"pro"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp TokenResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "bearer", resp.TokenType)

	t.Run("duplicate", func(t *testing.T) {
		rec := doRequest(t, h, "application/json",
			`{"email":"alice@example.com","username":"alice","password":"wonderland"}`)
		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Equal(t, "user already exists", decodeError(t, rec).Error)
	})

	t.Run("invalid input lists fields", func(t *testing.T) {
		rec := doRequest(t, h, "application/json", `{"email":"nope","username":"x"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		body := decodeError(t, rec)
		assert.Equal(t, "email", body.Details["email"])
		assert.Equal(t, "identifier", body.Details["username"])
		assert.Equal(t, "required", body.Details["password"])
	})

	t.Run("invalid tier", func(t *testing.T) {
		rec := doRequest(t, h, "application/json",
			`{"email":"bob@example.com","username":"bob","password":"builder1","package_tier":"gold"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "invalid plan; allowed: free, pro, enterprise", decodeError(t, rec).Error)
	})

	t.Run("malformed body", func(t *testing.T) {
		rec := doRequest(t, h, "application/json", `{"email":`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "invalid request body", decodeError(t, rec).Error)
	})
}

func TestHandleLogin(t *testing.T) {
	env := newTestEnv(t)
	signupAlice(t, env)
	h := NewHandlers(env.service).HandleLogin()

	form := url.Values{"username": {"alice@example.com"}, "password": {"wonderland"}}.Encode()

	tests := []struct {
		name        string
		contentType string
		body        string
		status      int
	}{
		{name: "json login", contentType: "application/json", body: `{"login":"alice","password":"wonderland"}`, status: http.StatusOK},
		{name: "json email alias", contentType: "application/json", body: `{"email":"alice@example.com","password":"wonderland"}`, status: http.StatusOK},
		{name: "json without content type", body: `{"username":"alice","password":"wonderland"}`, status: http.StatusOK},
		{name: "form", contentType: "application/x-www-form-urlencoded; charset=utf-8", body: form, status: http.StatusOK},
		{name: "wrong password", contentType: "application/json", body: `{"login":"alice","password":"nope-nope"}`, status: http.StatusUnauthorized},
		{name: "unknown user", contentType: "application/json", body: `{"login":"nobody","password":"wonderland"}`, status: http.StatusUnauthorized},
		{name: "missing fields", contentType: "application/json", body: `{}`, status: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, h, tt.contentType, tt.body)
			require.Equal(t, tt.status, rec.Code, rec.Body.String())

			if tt.status == http.StatusOK {
				var resp TokenResponse
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
				claims, err := env.tokens.Verify(resp.AccessToken)
				require.NoError(t, err)
				assert.Equal(t, "alice", claims.Subject)
			}
			if tt.status == http.StatusUnauthorized {
				assert.Equal(t, "invalid credentials", decodeError(t, rec).Error)
				assert.Equal(t, "Bearer", rec.Header().Get("WWW-Authenticate"))
			}
		})
	}
}

func TestWriteError_HidesInternalCause(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	WriteError(rec, req, assert.AnError)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeError(t, rec)
	assert.Equal(t, "internal server error", body.Error)
	assert.NotContains(t, rec.Body.String(), assert.AnError.Error())
}

func TestWriteJSON_UnencodableBody(t *testing.T) {
	rec := httptest.NewRecorder()

	WriteJSON(rec, http.StatusOK, map[any]any{1: "one"})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"error":"internal server error"}`, rec.Body.String())
}

func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()

	WriteJSON(rec, http.StatusCreated, map[string]string{"status": "ok"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}
