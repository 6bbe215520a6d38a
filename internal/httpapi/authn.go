package httpapi

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/dvonne2/vitalvida-command-center-elite/internal/auth"
)

const (
	authHeader = "Authorization"
	bearer     = "Bearer "
)

var publicPaths = []string{
	"/",
	"/healthz",
	"/readyz",
	"/metrics",
	"/v1/info",
	"/v1/auth/login",
}

// withAuth validates the bearer token and pins it to the live session. A
// token whose subject no longer matches the active session (logout, or a
// different operator signed in) is rejected even if its signature and
// expiry are still good.
func (a *API) withAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}

		if isPublicPath(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		token, err := extractBearerToken(r.Header.Get(authHeader))
		if err != nil {
			writeError(w, r, http.StatusUnauthorized, err.Error())
			return
		}

		claims, err := auth.ParseAndValidate(token)
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrInvalidToken):
				writeError(w, r, http.StatusUnauthorized, "invalid token")
			default:
				writeError(w, r, http.StatusInternalServerError, "authentication error")
			}
			return
		}

		user := a.sessions.Current()
		if user == nil || !strings.EqualFold(user.Email, claims.Subject) {
			writeError(w, r, http.StatusUnauthorized, "session expired")
			return
		}

		ctx := auth.ContextWithUser(r.Context(), user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireAccess gates a handler on the permission matrix. It writes the
// 403 response itself and reports whether the caller may proceed.
func (a *API) requireAccess(w http.ResponseWriter, r *http.Request, panel auth.Panel, action auth.Action) (*auth.User, bool) {
	user, _ := auth.UserFromContext(r.Context())
	if auth.CanAccess(user, panel, action) {
		return user, true
	}
	role := ""
	if user != nil {
		role = string(user.Role)
	}
	payload := map[string]any{
		"error":    "Access Restricted",
		"role":     role,
		"required": fmt.Sprintf("%s:%s", panel, action),
	}
	if rid := RequestIDFromContext(r.Context()); rid != "" {
		payload["request_id"] = rid
	}
	writeJSON(w, http.StatusForbidden, payload)
	return user, false
}

func extractBearerToken(header string) (string, error) {
	header = strings.TrimSpace(header)
	if header == "" {
		return "", errors.New("missing bearer token")
	}
	if !strings.HasPrefix(strings.ToLower(header), strings.ToLower(bearer)) {
		return "", errors.New("invalid authorization scheme")
	}
	token := strings.TrimSpace(header[len(bearer):])
	if token == "" {
		return "", errors.New("missing bearer token")
	}
	return token, nil
}

func isPublicPath(path string) bool {
	for _, p := range publicPaths {
		if path == p {
			return true
		}
	}
	return false
}
