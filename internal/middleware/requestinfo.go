package middleware

import (
	"context"
	"net/http"

	"github.com/mkdugri-blog/Linux-boot/internal/nav"
)

// BasePath stores the request path and the configured base path on the context.
func BasePath(basePath string) func(http.Handler) http.Handler {
	base := nav.NormalizeBase(basePath)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			info := &RequestInfo{
				Path:     r.URL.Path,
				Method:   r.Method,
				BasePath: base,
			}
			ctx := context.WithValue(r.Context(), ctxKeyRequestInfo, info)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
