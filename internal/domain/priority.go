package domain

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Priority ranks a favorite. Stored as its numeric rank.
type Priority int

const (
	PriorityLow    Priority = 1
	PriorityMedium Priority = 2
	PriorityHigh   Priority = 3
)

// DefaultPriority applies when a favorite is created or updated without a
// recognizable priority.
const DefaultPriority = PriorityMedium

var priorityLabels = map[string]Priority{
	"low":    PriorityLow,
	"medium": PriorityMedium,
	"high":   PriorityHigh,
}

// IsValid checks if p is one of the three ranks
func (p Priority) IsValid() bool {
	return p >= PriorityLow && p <= PriorityHigh
}

// Label returns the display label for the rank
func (p Priority) Label() string {
	switch p {
	case PriorityLow:
		return "Low"
	case PriorityHigh:
		return "High"
	default:
		return "Medium"
	}
}

func (p Priority) String() string {
	return p.Label()
}

// NormalizePriority maps a label ("low", "High", ...), a numeric string or a
// raw level onto a Priority. Anything it does not recognize becomes
// DefaultPriority.
func NormalizePriority(v any) Priority {
	switch val := v.(type) {
	case Priority:
		if val.IsValid() {
			return val
		}
	case int:
		return NormalizePriority(Priority(val))
	case int64:
		return NormalizePriority(Priority(val))
	case float64:
		if val == float64(int(val)) {
			return NormalizePriority(Priority(int(val)))
		}
	case json.Number:
		if n, err := val.Int64(); err == nil {
			return NormalizePriority(Priority(n))
		}
	case string:
		s := strings.ToLower(strings.TrimSpace(val))
		if p, ok := priorityLabels[s]; ok {
			return p
		}
		if n, err := strconv.Atoi(s); err == nil {
			return NormalizePriority(Priority(n))
		}
	case *string:
		if val != nil {
			return NormalizePriority(*val)
		}
	}
	return DefaultPriority
}

// UnmarshalJSON accepts either a label or a number.
func (p *Priority) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*p = DefaultPriority
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	*p = NormalizePriority(raw)
	return nil
}
