package formatter

import (
	"bytes"
	"testing"

	"github.com/penwyp/timet/internal/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlainFormatter(t *testing.T) {
	tests := []struct {
		name     string
		report   model.Report
		expected string
	}{
		{
			name:     "projects and total",
			report:   sampleReport(),
			expected: "Alpha 4.5t\nBeta 2.0t\nTotalt - 6.5t\n",
		},
		{
			name: "fagdag marker comes first",
			report: func() model.Report {
				r := sampleReport()
				r.Fagdag = true
				return r
			}(),
			expected: "En stk fagdag\nAlpha 4.5t\nBeta 2.0t\nTotalt - 6.5t\n",
		},
		{
			name:     "no entries still prints the total",
			report:   model.Report{Year: 2024, Month: 1},
			expected: "Totalt - 0.0t\n",
		},
		{
			name: "hours are printed with one decimal",
			report: model.Report{
				Projects: []model.ProjectSummary{{Name: "Kunde AS", Hours: 37.25}},
				Total:    37.25,
			},
			expected: "Kunde AS 37.2t\nTotalt - 37.2t\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, NewPlainFormatter().Format(&buf, tt.report))
			assert.Equal(t, tt.expected, buf.String())
		})
	}
}
