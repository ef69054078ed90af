package client

import "strings"

// Location is a cleaned up address for display.
type Location struct {
	Display  string
	District string
}

// NormalizeLocation trims the comma separated parts of raw, drops empty ones
// and case-insensitive repeats, and takes the first part as the district.
func NormalizeLocation(raw string) Location {
	var unique []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" || containsFold(unique, part) {
			continue
		}
		unique = append(unique, part)
	}
	if len(unique) == 0 {
		return Location{}
	}
	return Location{
		Display:  strings.Join(unique, ", "),
		District: unique[0],
	}
}

func containsFold(list []string, s string) bool {
	for _, v := range list {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}
