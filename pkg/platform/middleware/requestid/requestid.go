// Package requestid assigns every request an id, honoring an inbound
// X-Request-ID header, and echoes it on the response.
package requestid

import (
	"net/http"

	"github.com/google/uuid"

	"clubswim/pkg/requestcontext"
)

// Header is the request/response header carrying the id.
const Header = "X-Request-ID"

const maxInboundLen = 128

// Middleware stores the request id in the context.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(Header)
		if id == "" || len(id) > maxInboundLen {
			id = uuid.NewString()
		}
		w.Header().Set(Header, id)
		ctx := requestcontext.WithRequestID(r.Context(), id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
