package calendar

import (
	"errors"
	"fmt"
	"strings"
	"time"

	// Embedded zone database so the fixed export zone resolves on hosts
	// without /usr/share/zoneinfo.
	_ "time/tzdata"
)

var ErrNotIANAZone = errors.New("timezone must be an IANA zone name")

// LoadLocation resolves an IANA zone name. "Local" and the empty name are
// rejected, as a host zone has no portable identifier to export.
func LoadLocation(name string) (*time.Location, error) {
	if name == "" || strings.EqualFold(name, "Local") {
		return nil, fmt.Errorf("%w: %q", ErrNotIANAZone, name)
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", name, err)
	}
	return loc, nil
}

// IsIANAZone reports whether LoadLocation accepts name.
func IsIANAZone(name string) bool {
	_, err := LoadLocation(name)
	return err == nil
}
