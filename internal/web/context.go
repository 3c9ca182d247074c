package web

import (
	"context"
	"net"
	"net/http"

	"github.com/JonMunkholm/census/internal/core"
)

// WithRequestMetadata adds the client address to ctx for load logging.
// RemoteAddr has already been rewritten by the trusted real-IP middleware.
func WithRequestMetadata(ctx context.Context, r *http.Request) context.Context {
	ip := r.RemoteAddr
	if host, _, err := net.SplitHostPort(ip); err == nil {
		ip = host
	}
	return core.ContextWithClientIP(ctx, ip)
}
