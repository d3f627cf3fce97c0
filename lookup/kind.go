package lookup

import (
	"fmt"
	"strings"
)

// Kind identifies an external data source.
type Kind string

const (
	Weather    Kind = "weather"
	Time       Kind = "time"
	Directions Kind = "directions"
)

// Kinds lists every supported kind in canonical order.
func Kinds() []Kind {
	return []Kind{Weather, Time, Directions}
}

func (k Kind) String() string {
	return string(k)
}

// ParseKind resolves a kind name case-insensitively.
func ParseKind(name string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "weather":
		return Weather, nil
	case "time":
		return Time, nil
	case "directions":
		return Directions, nil
	}
	return "", fmt.Errorf("unknown lookup kind %q", name)
}
