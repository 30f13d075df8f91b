package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/dom/hero-archive/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizePriority(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  domain.Priority
	}{
		{name: "low label", input: "Low", want: domain.PriorityLow},
		{name: "medium label", input: "medium", want: domain.PriorityMedium},
		{name: "high label padded", input: "  HIGH ", want: domain.PriorityHigh},
		{name: "unknown label", input: "Urgent", want: domain.PriorityMedium},
		{name: "empty label", input: "", want: domain.PriorityMedium},
		{name: "numeric string", input: "3", want: domain.PriorityHigh},
		{name: "int", input: 1, want: domain.PriorityLow},
		{name: "float", input: float64(3), want: domain.PriorityHigh},
		{name: "fractional float", input: 2.5, want: domain.PriorityMedium},
		{name: "out of range", input: 7, want: domain.PriorityMedium},
		{name: "zero", input: 0, want: domain.PriorityMedium},
		{name: "json number", input: json.Number("1"), want: domain.PriorityLow},
		{name: "priority", input: domain.PriorityHigh, want: domain.PriorityHigh},
		{name: "nil", input: nil, want: domain.PriorityMedium},
		{name: "bool", input: true, want: domain.PriorityMedium},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.NormalizePriority(tt.input))
		})
	}
}

func TestPriority_UnmarshalJSON(t *testing.T) {
	var body struct {
		Priority *domain.Priority `json:"priority"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{"priority":"High"}`), &body))
	assert.Equal(t, domain.PriorityHigh, *body.Priority)

	require.NoError(t, json.Unmarshal([]byte(`{"priority":1}`), &body))
	assert.Equal(t, domain.PriorityLow, *body.Priority)

	require.NoError(t, json.Unmarshal([]byte(`{"priority":"Urgent"}`), &body))
	assert.Equal(t, domain.PriorityMedium, *body.Priority)

	body.Priority = nil
	require.NoError(t, json.Unmarshal([]byte(`{}`), &body))
	assert.Nil(t, body.Priority)
}

func TestPriority_Label(t *testing.T) {
	assert.Equal(t, "Low", domain.PriorityLow.Label())
	assert.Equal(t, "Medium", domain.PriorityMedium.Label())
	assert.Equal(t, "High", domain.PriorityHigh.Label())
	assert.False(t, domain.Priority(4).IsValid())
}
