package lookup

import "context"

type DispatcherOption func(c *DispatcherConfig)

// WithClients registers clients at construction time.
func WithClients(clients ...Client) DispatcherOption {
	return func(c *DispatcherConfig) {
		for _, clt := range clients {
			c.clients[clt.Kind()] = clt
		}
	}
}

// WithParallel runs independent lookups concurrently. The report still
// preserves request order.
func WithParallel() DispatcherOption {
	return func(c *DispatcherConfig) {
		c.parallel = true
	}
}

// WithStartHook runs before every client call.
func WithStartHook(fn func(context.Context, Request)) DispatcherOption {
	return func(c *DispatcherConfig) {
		c.startHook = fn
	}
}

// WithEndHook runs after every client call with the normalized result.
func WithEndHook(fn func(context.Context, Request, *Result)) DispatcherOption {
	return func(c *DispatcherConfig) {
		c.endHook = fn
	}
}
