package lookup

import (
	"fmt"
	"strings"
)

// SplitRoute parses a combined directions location of the form
// "<origin> -> <destination>", also accepting " to " as separator.
func SplitRoute(location string) (origin string, destination string, err error) {
	var parts []string
	if strings.Contains(location, "->") {
		parts = strings.SplitN(location, "->", 2)
	} else if idx := strings.Index(strings.ToLower(location), " to "); idx >= 0 {
		parts = []string{location[:idx], location[idx+4:]}
	} else {
		return "", "", fmt.Errorf("route %q needs an origin and a destination", location)
	}
	origin = strings.TrimSpace(parts[0])
	destination = strings.TrimSpace(parts[1])
	if origin == "" || destination == "" {
		return "", "", fmt.Errorf("route %q needs an origin and a destination", location)
	}
	return origin, destination, nil
}
