package httpapi

import (
	"net/http"
	"testing"
)

func TestExtractBearerToken(t *testing.T) {
	cases := []struct {
		header  string
		token   string
		wantErr bool
	}{
		{"Bearer abc123", "abc123", false},
		{"bearer abc123", "abc123", false},
		{"  Bearer   abc123  ", "abc123", false},
		{"", "", true},
		{"Basic abc123", "", true},
		{"Bearer ", "", true},
	}
	for _, tc := range cases {
		token, err := extractBearerToken(tc.header)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("header %q: expected error", tc.header)
			}
			continue
		}
		if err != nil {
			t.Fatalf("header %q: unexpected error: %v", tc.header, err)
		}
		if token != tc.token {
			t.Fatalf("header %q: got token %q", tc.header, token)
		}
	}
}

func TestPublicPathMatching(t *testing.T) {
	for _, path := range []string{"/", "/healthz", "/readyz", "/metrics", "/v1/info", "/v1/auth/login"} {
		if !isPublicPath(path) {
			t.Fatalf("%s should be public", path)
		}
	}
	for _, path := range []string{"/v1/auth/session", "/v1/panels/dangote", "/v1/audit/logs", "/v1/alerts"} {
		if isPublicPath(path) {
			t.Fatalf("%s should require auth", path)
		}
	}
}

func TestGarbageTokenRejected(t *testing.T) {
	api := newTestAPI(t)

	resp := api.get("/v1/auth/session", nil, map[string]string{
		"Authorization": "Bearer not-a-jwt",
	})
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
}

func TestStaleTokenRejectedAfterNewLogin(t *testing.T) {
	api := newTestAPI(t)

	_, ceoHeader := api.login(ceoEmail, ceoPassword)

	// The terminal owns a single session. A later login replaces it and
	// the earlier operator's token stops resolving.
	_, fcHeader := api.login(fcEmail, fcPassword)

	resp := api.get("/v1/auth/session", nil, ceoHeader)
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 for replaced session, got %d", resp.StatusCode)
	}

	resp = api.get("/v1/auth/session", nil, fcHeader)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 for live session, got %d", resp.StatusCode)
	}
}
