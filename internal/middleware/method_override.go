package middleware

import (
	"net/http"
	"strings"
)

// MethodOverrideParam is the query or form field HTML forms use to tunnel PUT and DELETE
const MethodOverrideParam = "_method"

var overridableMethods = map[string]bool{
	http.MethodPut:    true,
	http.MethodDelete: true,
	http.MethodPatch:  true,
}

// MethodOverride rewrites POST requests carrying _method=PUT|DELETE|PATCH.
// It wraps the router rather than running as gin middleware, since gin
// matches the route before any middleware sees the request.
func MethodOverride(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			if method := overrideMethod(r); method != "" {
				r.Method = method
			}
		}
		next.ServeHTTP(w, r)
	})
}

func overrideMethod(r *http.Request) string {
	raw := r.URL.Query().Get(MethodOverrideParam)
	if raw == "" && isFormBody(r) {
		// ParseForm keeps the parsed body in r.PostForm, so handlers can still read it
		if err := r.ParseForm(); err == nil {
			raw = r.PostForm.Get(MethodOverrideParam)
		}
	}

	method := strings.ToUpper(strings.TrimSpace(raw))
	if overridableMethods[method] {
		return method
	}
	return ""
}

func isFormBody(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded")
}
