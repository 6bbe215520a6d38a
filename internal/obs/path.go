package obs

import "strings"

// CanonicalPath collapses resource identifiers inside known routes so metric
// label cardinality stays bounded.
func CanonicalPath(path string) string {
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	if path == "" {
		return "/"
	}
	switch {
	case strings.HasPrefix(path, "/v1/panels/"):
		rest := strings.TrimPrefix(path, "/v1/panels/")
		if strings.HasSuffix(rest, "/actions") {
			return "/v1/panels/:panel/actions"
		}
		if rest != "" && !strings.Contains(rest, "/") {
			return "/v1/panels/:panel"
		}
	case strings.HasPrefix(path, "/v1/alerts/"):
		rest := strings.TrimPrefix(path, "/v1/alerts/")
		if strings.HasSuffix(rest, "/resolve") && strings.Count(rest, "/") == 1 {
			return "/v1/alerts/:id/resolve"
		}
	}
	return path
}
