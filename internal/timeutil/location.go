package timeutil

import (
	"fmt"
	"time"
)

// LoadLocation resolves a timezone name ("Local", "UTC" or an IANA identifier
// such as "America/Bogota"). An empty name is rejected rather than silently
// treated as UTC, since the zone decides which day a worklog lands on.
func LoadLocation(name string) (*time.Location, error) {
	if name == "" {
		return nil, fmt.Errorf("timezone cannot be empty (use an IANA name, e.g., America/Bogota, or Local)")
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", name, err)
	}
	return loc, nil
}

// IsValidTimezone checks if a timezone identifier can be loaded
func IsValidTimezone(name string) bool {
	_, err := LoadLocation(name)
	return err == nil
}
