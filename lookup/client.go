package lookup

import "context"

// Client wraps one external data source. Implementations never return a Go
// error for provider failures; every failure is converted into a Result
// with Succeeded=false and a categorized Reason.
type Client interface {
	Kind() Kind
	Lookup(ctx context.Context, location string) *Result
}
