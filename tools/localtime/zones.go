package localtime

import "strings"

// cityZones maps well-known city names to IANA time zone identifiers.
// Inputs that already contain a '/' are treated as zone names directly.
var cityZones = map[string]string{
	"new york":      "America/New_York",
	"new york city": "America/New_York",
	"london":        "Europe/London",
	"tokyo":         "Asia/Tokyo",
	"paris":         "Europe/Paris",
	"sydney":        "Australia/Sydney",
	"los angeles":   "America/Los_Angeles",
	"chicago":       "America/Chicago",
	"mumbai":        "Asia/Kolkata",
	"beijing":       "Asia/Shanghai",
	"moscow":        "Europe/Moscow",
	"berlin":        "Europe/Berlin",
	"madrid":        "Europe/Madrid",
	"rome":          "Europe/Rome",
	"singapore":     "Asia/Singapore",
	"hong kong":     "Asia/Hong_Kong",
	"dubai":         "Asia/Dubai",
	"toronto":       "America/Toronto",
	"sao paulo":     "America/Sao_Paulo",
	"seoul":         "Asia/Seoul",
}

// resolveZone turns a city name or IANA identifier into a zone name.
func resolveZone(location string) (string, bool) {
	if strings.Contains(location, "/") {
		return location, true
	}
	zone, ok := cityZones[strings.ToLower(strings.TrimSpace(location))]
	return zone, ok
}
