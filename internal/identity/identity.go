package identity

import (
	"context"
	"net/http"
	"strings"
)

// Reporter is the user submitting a field research report. Full account
// management lives outside this service; only the display name flows into
// webhook messages.
type Reporter struct {
	Name string `json:"name"`
}

type ctxKey string

const reporterContextKey ctxKey = "freefield.identity.reporter"

func WithReporter(ctx context.Context, r Reporter) context.Context {
	return context.WithValue(ctx, reporterContextKey, r)
}

func FromContext(ctx context.Context) (Reporter, bool) {
	v := ctx.Value(reporterContextKey)
	r, ok := v.(Reporter)
	return r, ok
}

// Middleware attaches the reporter from the X-Reporter header, as set by
// the authenticating frontend proxy. Anonymous requests carry no reporter.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := strings.TrimSpace(r.Header.Get("X-Reporter"))
		if name != "" {
			r = r.WithContext(WithReporter(r.Context(), Reporter{Name: name}))
		}
		next.ServeHTTP(w, r)
	})
}
