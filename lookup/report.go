package lookup

import (
	"strings"

	"github.com/rs/xid"
)

// Report is the ordered outcome of one dispatch: one Result per request,
// in request order, not completion order.
type Report struct {
	ID      string   `json:"id"`
	Results []Result `json:"results"`
}

// NewReport returns a Report with a fresh ID.
func NewReport(results []Result) *Report {
	return &Report{
		ID:      xid.New().String(),
		Results: results,
	}
}

// Render concatenates each rendered text (or failure note) into one
// human-readable string, one line per lookup.
func (r Report) Render() string {
	lines := make([]string, 0, len(r.Results))
	for _, res := range r.Results {
		if res.Succeeded {
			lines = append(lines, res.Rendered)
		} else {
			lines = append(lines, res.Note())
		}
	}
	return strings.Join(lines, "\n")
}

// Succeeded returns the successful results in request order.
func (r Report) Succeeded() []Result {
	list := make([]Result, 0, len(r.Results))
	for _, res := range r.Results {
		if res.Succeeded {
			list = append(list, res)
		}
	}
	return list
}

// Failed returns the failed results in request order.
func (r Report) Failed() []Result {
	list := make([]Result, 0, len(r.Results))
	for _, res := range r.Results {
		if !res.Succeeded {
			list = append(list, res)
		}
	}
	return list
}
