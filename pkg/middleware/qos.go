package middleware

import (
	"fmt"
	"strings"
)

// Reliability policies
const (
	ReliabilityReliable   = "reliable"
	ReliabilityBestEffort = "best_effort"
)

// Durability policies
const (
	DurabilityVolatile       = "volatile"
	DurabilityTransientLocal = "transient_local"
)

// History policies
const (
	HistoryKeepLast = "keep_last"
	HistoryKeepAll  = "keep_all"
)

// QosProfile holds publisher delivery guarantees.
type QosProfile struct {
	Reliability string `json:"reliability" msgpack:"reliability"`
	Durability  string `json:"durability" msgpack:"durability"`
	History     string `json:"history" msgpack:"history"`
	Depth       int    `json:"depth" msgpack:"depth"`
}

// DefaultQosProfile matches the ROS2 default publisher profile.
func DefaultQosProfile() QosProfile {
	return QosProfile{
		Reliability: ReliabilityReliable,
		Durability:  DurabilityVolatile,
		History:     HistoryKeepLast,
		Depth:       10,
	}
}

// ParseQosProfile normalizes the given policy names and validates the result.
// Empty fields take their default value.
func ParseQosProfile(reliability, durability, history string, depth int) (QosProfile, error) {
	def := DefaultQosProfile()
	p := QosProfile{
		Reliability: normalize(reliability, def.Reliability),
		Durability:  normalize(durability, def.Durability),
		History:     normalize(history, def.History),
		Depth:       depth,
	}
	if p.Depth == 0 && p.History == HistoryKeepLast {
		p.Depth = def.Depth
	}
	return p, p.Validate()
}

// Validate reports the first invalid policy.
func (p QosProfile) Validate() error {
	switch p.Reliability {
	case ReliabilityReliable, ReliabilityBestEffort:
	default:
		return fmt.Errorf("invalid qos reliability '%s'", p.Reliability)
	}
	switch p.Durability {
	case DurabilityVolatile, DurabilityTransientLocal:
	default:
		return fmt.Errorf("invalid qos durability '%s'", p.Durability)
	}
	switch p.History {
	case HistoryKeepLast:
		if p.Depth <= 0 {
			return fmt.Errorf("invalid qos depth %d for keep_last history", p.Depth)
		}
	case HistoryKeepAll:
		if p.Depth < 0 {
			return fmt.Errorf("invalid qos depth %d", p.Depth)
		}
	default:
		return fmt.Errorf("invalid qos history '%s'", p.History)
	}
	return nil
}

func (p QosProfile) String() string {
	return fmt.Sprintf("%s/%s/%s(%d)", p.Reliability, p.Durability, p.History, p.Depth)
}

func normalize(s, def string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "-", "_")
	if s == "" {
		return def
	}
	return s
}
