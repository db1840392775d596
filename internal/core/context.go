package core

import "context"

type contextKey string

const ctxKeyClient contextKey = "client"

// Client describes who issued a request, for step change logs.
type Client struct {
	IP        string
	UserAgent string
}

// ContextWithClient attaches c to ctx.
func ContextWithClient(ctx context.Context, c Client) context.Context {
	return context.WithValue(ctx, ctxKeyClient, c)
}

// ClientFromContext returns the client attached by ContextWithClient, or
// the zero Client.
func ClientFromContext(ctx context.Context) Client {
	if c, ok := ctx.Value(ctxKeyClient).(Client); ok {
		return c
	}
	return Client{}
}
