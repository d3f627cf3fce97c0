package cityreport

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/citydesk/citydesk/components"
	"github.com/citydesk/citydesk/lookup"
	"github.com/citydesk/citydesk/tools"
)

type stubClient struct {
	kind   lookup.Kind
	reason lookup.Reason
}

func (c stubClient) Kind() lookup.Kind {
	return c.kind
}

func (c stubClient) Lookup(ctx context.Context, location string) *lookup.Result {
	if c.reason != "" {
		return lookup.Failure(c.kind, location, c.reason, "stubbed failure")
	}
	return lookup.Success(c.kind, location, "stubbed "+string(c.kind)+" for "+location, nil)
}

func TestCityReport(t *testing.T) {
	ctx := context.Background()
	dispatcher := lookup.NewDispatcher(lookup.WithClients(
		stubClient{kind: lookup.Weather},
		stubClient{kind: lookup.Time, reason: lookup.Timeout},
	))
	tool := New(dispatcher)
	output := new(Output)
	err := tool.Run(ctx, NewInput(
		LookupSpec{Kind: "weather", Location: "Paris"},
		LookupSpec{Kind: "time", Location: "Paris"},
	), output)
	if err != nil {
		t.Fatalf("Error running CityReportTool: %v", err)
	}
	if len(output.Results) != 2 {
		t.Fatalf("Expect 2 results, but got %d", len(output.Results))
	}
	if !output.Results[0].Succeeded {
		t.Error("Expect weather lookup to succeed")
	}
	if output.Results[1].Succeeded || output.Results[1].Reason != lookup.Timeout {
		t.Errorf("Expect time lookup to time out, but got %+v", output.Results[1])
	}
	expect := "stubbed weather for Paris\ncould not retrieve time: timed out"
	if output.Report != expect {
		t.Errorf("Expect report %q, but got %q", expect, output.Report)
	}
}

func TestCityReportUnknownKind(t *testing.T) {
	ctx := context.Background()
	dispatcher := lookup.NewDispatcher(lookup.WithClients(stubClient{kind: lookup.Weather}))
	tool := New(dispatcher)
	output := new(Output)
	err := tool.Run(ctx, NewInput(
		LookupSpec{Kind: "traffic", Location: "Paris"},
		LookupSpec{Kind: "weather", Location: "Paris"},
	), output)
	if err != nil {
		t.Fatalf("Error running CityReportTool: %v", err)
	}
	if len(output.Results) != 2 {
		t.Fatalf("Expect 2 results, but got %d", len(output.Results))
	}
	first := output.Results[0]
	if first.Succeeded || first.Reason != lookup.InvalidInput {
		t.Errorf("Expect invalid_input for unknown kind, but got %+v", first)
	}
	if !output.Results[1].Succeeded {
		t.Error("Expect weather lookup to succeed despite unknown kind in batch")
	}
}

func TestCityReportThroughRegistry(t *testing.T) {
	ctx := context.Background()
	dispatcher := lookup.NewDispatcher(lookup.WithClients(stubClient{kind: lookup.Weather}))
	registry := tools.NewRegistry()
	if err := tools.Register(registry, New(dispatcher)); err != nil {
		t.Fatalf("Error registering CityReportTool: %v", err)
	}
	// an unknown kind must not fail argument validation; it degrades to an
	// in-place invalid_input result
	callback := registry.Execute(ctx, components.ToolCall{
		ID:        "call-1",
		Name:      "CityReportTool",
		Arguments: `{"lookups":[{"kind":"traffic","location":"Paris"},{"kind":"weather","location":"Paris"}]}`,
	})
	if callback.IsError {
		t.Fatalf("Expect no error callback for unknown kind in batch, but got %s", callback.Content)
	}
	output := new(Output)
	if err := json.Unmarshal([]byte(callback.Content), output); err != nil {
		t.Fatalf("Error decoding callback content: %v", err)
	}
	if len(output.Results) != 2 {
		t.Fatalf("Expect 2 results, but got %d", len(output.Results))
	}
	if output.Results[0].Succeeded || output.Results[0].Reason != lookup.InvalidInput {
		t.Errorf("Expect invalid_input in place, but got %+v", output.Results[0])
	}
	if !output.Results[1].Succeeded {
		t.Error("Expect weather lookup to succeed despite unknown kind in batch")
	}
}
