// Package query implements a fixed, deterministic command grammar that
// turns a textual query into lookup requests without any natural-language
// understanding. It is the explicit alternative to routing through a
// hosted agent runtime.
//
// Grammar, one statement per line or separated by ';':
//
//	weather in <city>     | weather <city>     | /weather <city>
//	time in <city>        | time <city>        | /time <city>
//	directions from <origin> to <destination>  | /directions <origin> -> <destination>
package query

import (
	"errors"
	"fmt"
	"strings"

	"github.com/citydesk/citydesk/lookup"
)

// Parse turns a query into lookup requests, preserving statement order.
func Parse(input string) ([]lookup.Request, error) {
	statements := split(input)
	if len(statements) == 0 {
		return nil, errors.New("empty query")
	}
	reqs := make([]lookup.Request, 0, len(statements))
	for _, statement := range statements {
		req, err := parseStatement(statement)
		if err != nil {
			return nil, err
		}
		reqs = append(reqs, req)
	}
	return reqs, nil
}

func split(input string) []string {
	fields := strings.FieldsFunc(input, func(r rune) bool {
		return r == ';' || r == '\n'
	})
	statements := make([]string, 0, len(fields))
	for _, field := range fields {
		if trimmed := strings.TrimSpace(field); trimmed != "" {
			statements = append(statements, trimmed)
		}
	}
	return statements
}

func parseStatement(statement string) (lookup.Request, error) {
	head, rest, _ := strings.Cut(strings.TrimPrefix(statement, "/"), " ")
	rest = strings.TrimSpace(rest)
	kind, err := lookup.ParseKind(head)
	if err != nil {
		return lookup.Request{}, fmt.Errorf("unrecognized statement %q", statement)
	}
	switch kind {
	case lookup.Weather, lookup.Time:
		if strings.EqualFold(rest, "in") {
			rest = ""
		}
		location := strings.TrimSpace(cutPrefixFold(rest, "in "))
		if location == "" {
			return lookup.Request{}, fmt.Errorf("statement %q is missing a city", statement)
		}
		return lookup.NewRequest(kind, location), nil
	case lookup.Directions:
		route, err := parseRoute(rest)
		if err != nil {
			return lookup.Request{}, fmt.Errorf("statement %q: %w", statement, err)
		}
		return lookup.NewRequest(lookup.Directions, route), nil
	}
	return lookup.Request{}, fmt.Errorf("unrecognized statement %q", statement)
}

// parseRoute normalizes "from <origin> to <destination>" and
// "<origin> -> <destination>" into the combined route form.
func parseRoute(rest string) (string, error) {
	rest = strings.TrimSpace(cutPrefixFold(rest, "from "))
	origin, destination, err := lookup.SplitRoute(rest)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s -> %s", origin, destination), nil
}

// cutPrefixFold strips a case-insensitive prefix, keeping the rest as is.
func cutPrefixFold(s, prefix string) string {
	if len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix) {
		return s[len(prefix):]
	}
	return s
}
