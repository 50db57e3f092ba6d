package formatter

import (
	"github.com/penwyp/timet/internal/core/model"
)

func sampleReport() model.Report {
	return model.Report{
		Year:  2024,
		Month: 3,
		Projects: []model.ProjectSummary{
			{Name: "Alpha", Hours: 4.5},
			{Name: "Beta", Hours: 2.0},
		},
		Total: 6.5,
	}
}
