package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringList_RoundTrip(t *testing.T) {
	tests := []struct {
		name string
		list StringList
	}{
		{
			name: "ordered tags",
			list: StringList{"Financial loss", "Time loss"},
		},
		{
			name: "empty list",
			list: StringList{},
		},
		{
			name: "single element",
			list: StringList{"Emotional distress"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value, err := tt.list.Value()
			require.NoError(t, err)

			var scanned StringList
			require.NoError(t, scanned.Scan(value))
			assert.Equal(t, tt.list, scanned, "order and contents should survive")
		})
	}
}

func TestStringList_ScanNil(t *testing.T) {
	var scanned StringList
	require.NoError(t, scanned.Scan(nil))
	assert.Equal(t, StringList{}, scanned)
}

func TestStringList_ScanBytes(t *testing.T) {
	var scanned StringList
	require.NoError(t, scanned.Scan([]byte(`["a","b"]`)))
	assert.Equal(t, StringList{"a", "b"}, scanned)
}

func TestAnalysis_Apply(t *testing.T) {
	classification := "Landlord-tenant dispute"
	jurisdiction := "California"

	analysis := &Analysis{
		CaseClassification: &classification,
		RelevantLaws:       []string{"Cal. Civ. Code 1950.5"},
		Jurisdiction:       &jurisdiction,
		Recommendations:    []string{"Send a demand letter"},
		Deadlines:          []string{"Statute of limitations: 4 years"},
	}

	c := &Case{IssueDescription: "Deposit withheld past the statutory window"}
	analysis.Apply(c)

	assert.Equal(t, &classification, c.CaseClassification)
	assert.Equal(t, StringList{"Cal. Civ. Code 1950.5"}, c.RelevantLaws)
	assert.Equal(t, &jurisdiction, c.Jurisdiction)
	assert.Equal(t, StringList{"Send a demand letter"}, c.Recommendations)
	assert.Nil(t, c.StrengthIndicators, "unknown fields stay nil")
	assert.Equal(t, "Deposit withheld past the statutory window", c.IssueDescription,
		"intake fields are untouched")
}
