package api

import "context"

type forwardKey struct{}

// WithClientIP records the end user's address on ctx. Requests made with
// such a context carry it in X-Forwarded-For, so per-client limits on the
// API apply to the browser rather than to the dashboard host.
func WithClientIP(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, forwardKey{}, ip)
}

func clientIPFrom(ctx context.Context) string {
	ip, _ := ctx.Value(forwardKey{}).(string)
	return ip
}
