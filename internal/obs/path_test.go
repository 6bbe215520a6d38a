package obs

import "testing"

func TestCanonicalPath(t *testing.T) {
	cases := map[string]string{
		"":                              "/",
		"/metrics":                      "/metrics",
		"/v1/panels/dangote":            "/v1/panels/:panel",
		"/v1/panels/audit/actions":      "/v1/panels/:panel/actions",
		"/v1/panels/a/b/c":              "/v1/panels/a/b/c",
		"/v1/alerts/alert-001/resolve":  "/v1/alerts/:id/resolve",
		"/v1/alerts":                    "/v1/alerts",
		"/v1/audit/logs?limit=10":       "/v1/audit/logs",
		"/v1/auth/login":                "/v1/auth/login",
	}
	for input, expected := range cases {
		if got := CanonicalPath(input); got != expected {
			t.Fatalf("CanonicalPath(%q)=%q, want %q", input, got, expected)
		}
	}
}
