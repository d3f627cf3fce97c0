package lookup

import (
	"fmt"
)

// Request asks one source for one location. Immutable, constructed per call.
// For Directions the location carries "<origin> -> <destination>".
type Request struct {
	Kind     Kind   `json:"kind"`
	Location string `json:"location"`
}

// NewRequest returns a new Request.
func NewRequest(kind Kind, location string) Request {
	return Request{
		Kind:     kind,
		Location: location,
	}
}

// Result is the normalized outcome of one external API call, success or
// categorized failure. Never mutated after construction.
type Result struct {
	Kind      Kind           `json:"kind"`
	Location  string         `json:"location"`
	Fields    map[string]any `json:"fields,omitempty"`
	Rendered  string         `json:"rendered,omitempty"`
	Succeeded bool           `json:"succeeded"`
	Reason    Reason         `json:"reason,omitempty"`
	Detail    string         `json:"detail,omitempty"`
}

// Success returns a successful Result.
func Success(kind Kind, location string, rendered string, fields map[string]any) *Result {
	return &Result{
		Kind:      kind,
		Location:  location,
		Fields:    fields,
		Rendered:  rendered,
		Succeeded: true,
	}
}

// Failure returns a failed Result with a categorized reason.
func Failure(kind Kind, location string, reason Reason, detail string) *Result {
	return &Result{
		Kind:     kind,
		Location: location,
		Reason:   reason,
		Detail:   detail,
	}
}

// Note renders the short human-readable failure note, e.g.
// "could not retrieve directions: rate limited".
func (r Result) Note() string {
	return fmt.Sprintf("could not retrieve %s: %s", r.Kind, r.Reason.Human())
}
