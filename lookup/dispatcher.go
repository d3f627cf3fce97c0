package lookup

import (
	"context"
	"fmt"
	"sync"
)

// Dispatcher routes requests to the client registered for each kind and
// aggregates the outcomes into a Report. Calls are independent: one failed
// lookup never aborts the others. No retries, no backoff, no caching.
type Dispatcher struct {
	DispatcherConfig
}

// DispatcherConfig represents dispatcher configuration
type DispatcherConfig struct {
	clients   map[Kind]Client
	parallel  bool
	startHook func(context.Context, Request)
	endHook   func(context.Context, Request, *Result)
}

// NewDispatcher builds a kind to client table. Later registrations of the
// same kind replace earlier ones.
func NewDispatcher(opts ...DispatcherOption) *Dispatcher {
	ret := new(Dispatcher)
	ret.clients = make(map[Kind]Client)
	for _, opt := range opts {
		opt(&ret.DispatcherConfig)
	}
	return ret
}

// Register adds or replaces the client for its kind.
func (d *Dispatcher) Register(clients ...Client) {
	for _, clt := range clients {
		d.clients[clt.Kind()] = clt
	}
}

// Client returns the registered client for a kind.
func (d *Dispatcher) Client(kind Kind) (Client, bool) {
	clt, ok := d.clients[kind]
	return clt, ok
}

// Dispatch invokes the matching client for each request and returns a
// Report preserving request order. Sequential unless WithParallel was set;
// parallel calls are safe because clients share no mutable state.
func (d *Dispatcher) Dispatch(ctx context.Context, reqs []Request) *Report {
	results := make([]Result, len(reqs))
	if d.parallel {
		var wg sync.WaitGroup
		for idx, req := range reqs {
			wg.Add(1)
			go func(idx int, req Request) {
				defer wg.Done()
				results[idx] = d.lookup(ctx, req)
			}(idx, req)
		}
		wg.Wait()
	} else {
		for idx, req := range reqs {
			results[idx] = d.lookup(ctx, req)
		}
	}
	return NewReport(results)
}

func (d *Dispatcher) lookup(ctx context.Context, req Request) Result {
	if fn := d.startHook; fn != nil {
		fn(ctx, req)
	}
	var res *Result
	if clt, ok := d.clients[req.Kind]; ok {
		res = clt.Lookup(ctx, req.Location)
	} else {
		res = Failure(req.Kind, req.Location, InvalidInput, fmt.Sprintf("no client registered for %s", req.Kind))
	}
	if fn := d.endHook; fn != nil {
		fn(ctx, req, res)
	}
	return *res
}
