package query

import (
	"reflect"
	"testing"

	"github.com/citydesk/citydesk/lookup"
)

func TestParseSingleStatements(t *testing.T) {
	cases := []struct {
		input  string
		expect lookup.Request
	}{
		{"weather in Paris", lookup.NewRequest(lookup.Weather, "Paris")},
		{"weather New York", lookup.NewRequest(lookup.Weather, "New York")},
		{"/weather Tokyo", lookup.NewRequest(lookup.Weather, "Tokyo")},
		{"Weather in London", lookup.NewRequest(lookup.Weather, "London")},
		{"time in Sydney", lookup.NewRequest(lookup.Time, "Sydney")},
		{"/time Moscow", lookup.NewRequest(lookup.Time, "Moscow")},
		{"directions from Paris to Lyon", lookup.NewRequest(lookup.Directions, "Paris -> Lyon")},
		{"/directions Paris -> Lyon", lookup.NewRequest(lookup.Directions, "Paris -> Lyon")},
	}
	for _, c := range cases {
		reqs, err := Parse(c.input)
		if err != nil {
			t.Errorf("Expect %q to parse, but got %v", c.input, err)
			continue
		}
		if len(reqs) != 1 {
			t.Errorf("Expect 1 request for %q, but got %d", c.input, len(reqs))
			continue
		}
		if reqs[0] != c.expect {
			t.Errorf("Expect %+v for %q, but got %+v", c.expect, c.input, reqs[0])
		}
	}
}

func TestParseMultipleStatements(t *testing.T) {
	reqs, err := Parse("weather in Paris; time in Paris\ndirections from Paris to Lyon")
	if err != nil {
		t.Fatalf("Error parsing query: %v", err)
	}
	expect := []lookup.Request{
		lookup.NewRequest(lookup.Weather, "Paris"),
		lookup.NewRequest(lookup.Time, "Paris"),
		lookup.NewRequest(lookup.Directions, "Paris -> Lyon"),
	}
	if !reflect.DeepEqual(reqs, expect) {
		t.Errorf("Expect %+v, but got %+v", expect, reqs)
	}
}

func TestParseErrors(t *testing.T) {
	for _, input := range []string{
		"",
		"   \n ; ",
		"traffic in Paris",
		"weather",
		"weather in ",
		"directions from Paris",
		"weather in Paris; sing a song",
	} {
		if _, err := Parse(input); err == nil {
			t.Errorf("Expect %q to fail", input)
		}
	}
}
