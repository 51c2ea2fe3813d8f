package identity

import "context"

type clientIPKey struct{}

// WithClientIP records the remote address of a request, authenticated or not.
func WithClientIP(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, clientIPKey{}, ip)
}

// ClientIP returns the address recorded by WithClientIP, falling back to the
// identity's RemoteIP.
func ClientIP(ctx context.Context) string {
	if ip, ok := ctx.Value(clientIPKey{}).(string); ok && ip != "" {
		return ip
	}
	if id, ok := Get(ctx); ok && id.RemoteIP != nil {
		return id.RemoteIP.String()
	}
	return ""
}
