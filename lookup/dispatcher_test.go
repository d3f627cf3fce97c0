package lookup

import (
	"context"
	"reflect"
	"testing"
	"time"
)

type stubClient struct {
	kind   Kind
	reason Reason
	delay  time.Duration
	calls  int
}

func (c *stubClient) Kind() Kind {
	return c.kind
}

func (c *stubClient) Lookup(ctx context.Context, location string) *Result {
	c.calls++
	if c.delay > 0 {
		time.Sleep(c.delay)
	}
	if c.reason != "" {
		return Failure(c.kind, location, c.reason, "stubbed failure")
	}
	return Success(c.kind, location, "stubbed "+string(c.kind)+" for "+location, map[string]any{"location": location})
}

func TestDispatchPreservesRequestOrder(t *testing.T) {
	ctx := context.Background()
	d := NewDispatcher(WithClients(&stubClient{kind: Weather}, &stubClient{kind: Time}))
	report := d.Dispatch(ctx, []Request{
		NewRequest(Weather, "Paris"),
		NewRequest(Time, "Paris"),
	})
	if len(report.Results) != 2 {
		t.Fatalf("Expect 2 results, but got %d", len(report.Results))
	}
	if report.Results[0].Kind != Weather || report.Results[1].Kind != Time {
		t.Errorf("Expect request order weather,time, but got %s,%s", report.Results[0].Kind, report.Results[1].Kind)
	}
	for _, res := range report.Results {
		if !res.Succeeded {
			t.Errorf("Expect %s lookup to succeed, but got reason %s", res.Kind, res.Reason)
		}
	}
}

func TestDispatchIsolatesFailures(t *testing.T) {
	ctx := context.Background()
	d := NewDispatcher(WithClients(
		&stubClient{kind: Weather, reason: NotFound},
		&stubClient{kind: Time},
	))
	report := d.Dispatch(ctx, []Request{
		NewRequest(Weather, "Nowhere"),
		NewRequest(Time, "Paris"),
	})
	if len(report.Results) != 2 {
		t.Fatalf("Expect 2 results, but got %d", len(report.Results))
	}
	first := report.Results[0]
	if first.Succeeded || first.Reason != NotFound {
		t.Errorf("Expect first result to fail with not_found, but got succeeded=%v reason=%s", first.Succeeded, first.Reason)
	}
	if !report.Results[1].Succeeded {
		t.Error("Expect second result to succeed despite first failure")
	}
	if len(report.Failed()) != 1 || len(report.Succeeded()) != 1 {
		t.Errorf("Expect 1 failed and 1 succeeded, but got %d and %d", len(report.Failed()), len(report.Succeeded()))
	}
}

func TestDispatchParallelPreservesOrder(t *testing.T) {
	ctx := context.Background()
	// the slowest client answers the first request, so completion order
	// is the reverse of request order
	d := NewDispatcher(
		WithParallel(),
		WithClients(
			&stubClient{kind: Weather, delay: 30 * time.Millisecond},
			&stubClient{kind: Time, delay: 10 * time.Millisecond},
			&stubClient{kind: Directions},
		),
	)
	report := d.Dispatch(ctx, []Request{
		NewRequest(Weather, "Paris"),
		NewRequest(Time, "Paris"),
		NewRequest(Directions, "Paris -> Lyon"),
	})
	kinds := []Kind{report.Results[0].Kind, report.Results[1].Kind, report.Results[2].Kind}
	if !reflect.DeepEqual(kinds, []Kind{Weather, Time, Directions}) {
		t.Errorf("Expect request order to survive parallel dispatch, but got %v", kinds)
	}
}

func TestDispatchUnregisteredKind(t *testing.T) {
	ctx := context.Background()
	d := NewDispatcher(WithClients(&stubClient{kind: Time}))
	report := d.Dispatch(ctx, []Request{
		NewRequest(Weather, "Paris"),
		NewRequest(Time, "Paris"),
	})
	first := report.Results[0]
	if first.Succeeded || first.Reason != InvalidInput {
		t.Errorf("Expect invalid_input for unregistered kind, but got succeeded=%v reason=%s", first.Succeeded, first.Reason)
	}
	if !report.Results[1].Succeeded {
		t.Error("Expect registered kind to succeed")
	}
}

func TestDispatchIdempotent(t *testing.T) {
	ctx := context.Background()
	clt := &stubClient{kind: Weather}
	d := NewDispatcher(WithClients(clt))
	reqs := []Request{NewRequest(Weather, "Paris")}
	first := d.Dispatch(ctx, reqs)
	second := d.Dispatch(ctx, reqs)
	if !reflect.DeepEqual(first.Results, second.Results) {
		t.Errorf("Expect identical results on repeated dispatch, but got %+v and %+v", first.Results, second.Results)
	}
	if clt.calls != 2 {
		t.Errorf("Expect every call to be fresh, but got %d client calls", clt.calls)
	}
}

func TestDispatchHooks(t *testing.T) {
	ctx := context.Background()
	var started, ended int
	d := NewDispatcher(
		WithClients(&stubClient{kind: Weather}, &stubClient{kind: Time}),
		WithStartHook(func(ctx context.Context, req Request) {
			started++
		}),
		WithEndHook(func(ctx context.Context, req Request, res *Result) {
			ended++
			if res == nil {
				t.Error("Expect end hook to receive a result")
			}
		}),
	)
	d.Dispatch(ctx, []Request{
		NewRequest(Weather, "Paris"),
		NewRequest(Time, "Paris"),
	})
	if started != 2 || ended != 2 {
		t.Errorf("Expect 2 start and 2 end hook calls, but got %d and %d", started, ended)
	}
}
