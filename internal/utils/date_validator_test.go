package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDateValidator_ValidateAndConvert(t *testing.T) {
	dv := NewDateValidator()

	tests := []struct {
		name     string
		input    string
		valid    bool
		standard string
	}{
		{
			name:     "ISO date",
			input:    "2026-06-15",
			valid:    true,
			standard: "2026-06-15",
		},
		{
			name:     "US date",
			input:    "06/15/2026",
			valid:    true,
			standard: "2026-06-15",
		},
		{
			name:     "dash date",
			input:    "06-15-2026",
			valid:    true,
			standard: "2026-06-15",
		},
		{
			name:     "long month",
			input:    "June 15, 2026",
			valid:    true,
			standard: "2026-06-15",
		},
		{
			name:     "surrounding whitespace",
			input:    "  2026-06-15  ",
			valid:    true,
			standard: "2026-06-15",
		},
		{
			name:  "empty",
			input: "",
			valid: false,
		},
		{
			name:  "not a date",
			input: "sometime last spring",
			valid: false,
		},
		{
			name:  "month out of range",
			input: "2026-13-01",
			valid: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := dv.ValidateAndConvert(tt.input)
			assert.Equal(t, tt.valid, result.IsValid)
			if tt.valid {
				assert.Equal(t, tt.standard, result.StandardFormat)
			}
		})
	}
}
