package middleware

import (
	"encoding/json"
	"net/http"
)

// HTMX marks requests coming from htmx so handlers/middlewares can adapt responses
func HTMX(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		is := r.Header.Get("HX-Request") == "true"
		ctx := WithHTMX(r.Context(), is)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// PushURL asks htmx to push u onto the browser history.
func PushURL(w http.ResponseWriter, u string) {
	w.Header().Set("HX-Push-Url", u)
}

// Trigger sets HX-Trigger so the client dispatches event with detail.
func Trigger(w http.ResponseWriter, event string, detail any) error {
	b, err := json.Marshal(map[string]any{event: detail})
	if err != nil {
		return err
	}
	w.Header().Set("HX-Trigger", string(b))
	return nil
}
