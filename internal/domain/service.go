package domain

import (
	"fmt"
	"regexp"
)

// ServiceType identifier of an entertainment service.
// The built-in identifiers below are only the defaults: the authoritative set
// is whatever the persisted ServiceRules table contains
type ServiceType string

const (
	ServiceDJ          ServiceType = "dj"
	ServicePhotography ServiceType = "photography"
	ServiceKaraoke     ServiceType = "karaoke"
)

var serviceIdentifierPattern = regexp.MustCompile(`^[a-z][a-z0-9_-]*$`)

// ValidateServiceIdentifier checks the form of a service identifier.
// Whether the service actually exists is decided against the rule table,
// so new services added through configuration pass without code changes
func ValidateServiceIdentifier(s ServiceType) error {
	if !serviceIdentifierPattern.MatchString(string(s)) {
		return fmt.Errorf("invalid service identifier %q", s)
	}
	return nil
}

// ServiceRule duration bounds and setup complexity for a single service
type ServiceRule struct {
	MinDurationMinutes     int
	MaxDurationMinutes     int
	DefaultDurationMinutes int
	SetupWeight            int // Relative equipment/coordination overhead
}

// ServiceRules per-service rule table keyed by service identifier.
// Injected into the duration resolver and the selection engine so that new
// services can be added through configuration without touching resolver logic.
type ServiceRules map[ServiceType]ServiceRule

// Known returns true if a rule exists for the given service
func (r ServiceRules) Known(s ServiceType) bool {
	_, ok := r[s]
	return ok
}

// Clone returns a shallow copy of the rule table
func (r ServiceRules) Clone() ServiceRules {
	out := make(ServiceRules, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// DefaultServiceRules returns the built-in rule table.
// Services run concurrently at a single event, so combined durations are
// resolved as the maximum of the requested defaults, never the sum.
func DefaultServiceRules() ServiceRules {
	return ServiceRules{
		ServiceDJ: {
			MinDurationMinutes:     240,
			MaxDurationMinutes:     360,
			DefaultDurationMinutes: 300,
			SetupWeight:            3,
		},
		ServicePhotography: {
			MinDurationMinutes:     180,
			MaxDurationMinutes:     480,
			DefaultDurationMinutes: 240,
			SetupWeight:            1,
		},
		ServiceKaraoke: {
			MinDurationMinutes:     120,
			MaxDurationMinutes:     300,
			DefaultDurationMinutes: 180,
			SetupWeight:            2,
		},
	}
}
