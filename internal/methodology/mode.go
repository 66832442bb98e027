package methodology

import (
	"fmt"
	"strings"
)

// Mode selects which scoring factors are evaluated
type Mode string

const (
	// ModeDiscovery scores project type, country and scale only
	ModeDiscovery Mode = "discovery"
	// ModePrecise additionally scores technology fit and requirement satisfaction
	ModePrecise Mode = "precise"
)

// ParseMode validates a mode string. An empty value selects discovery.
func ParseMode(value string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(value))) {
	case "", ModeDiscovery:
		return ModeDiscovery, nil
	case ModePrecise:
		return ModePrecise, nil
	default:
		return "", fmt.Errorf("%w %q: must be %q or %q", ErrInvalidMode, value, ModeDiscovery, ModePrecise)
	}
}
