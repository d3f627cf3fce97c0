package agents

import (
	"testing"

	"github.com/citydesk/citydesk/lookup"
	"github.com/citydesk/citydesk/schema"
)

func TestPlanRequests(t *testing.T) {
	plan := Plan{
		Lookups: []PlannedLookup{
			{Kind: "weather", Location: "Paris"},
			{Kind: "directions", Location: "Paris -> Lyon"},
		},
	}
	reqs, err := plan.Requests()
	if err != nil {
		t.Fatalf("Error converting plan: %v", err)
	}
	if len(reqs) != 2 {
		t.Fatalf("Expect 2 requests, but got %d", len(reqs))
	}
	if reqs[0] != lookup.NewRequest(lookup.Weather, "Paris") {
		t.Errorf("Expect weather request, but got %+v", reqs[0])
	}
	if reqs[1] != lookup.NewRequest(lookup.Directions, "Paris -> Lyon") {
		t.Errorf("Expect directions request, but got %+v", reqs[1])
	}
	plan.Lookups = append(plan.Lookups, PlannedLookup{Kind: "traffic", Location: "Paris"})
	if _, err := plan.Requests(); err == nil {
		t.Error("Expect unknown kind to fail")
	}
}

func TestPlanValidation(t *testing.T) {
	if err := schema.Validate(&Plan{}); err == nil {
		t.Error("Expect empty plan to fail validation")
	}
	if err := schema.Validate(&Plan{Lookups: []PlannedLookup{{Kind: "traffic", Location: "Paris"}}}); err == nil {
		t.Error("Expect unknown kind to fail validation")
	}
	if err := schema.Validate(&Plan{Lookups: []PlannedLookup{{Kind: "weather", Location: "Paris"}}}); err != nil {
		t.Errorf("Expect valid plan, but got %v", err)
	}
}
