package aggregator

import (
	"math"
	"sort"

	"github.com/penwyp/timet/internal/core/model"
	"github.com/penwyp/timet/internal/core/period"
)

// TieThreshold is the hour difference below which two projects are ordered by name.
const TieThreshold = 0.1

// Aggregate groups entries by project id and returns one summary per project,
// ordered by Less.
//
// The display name of a project is the name on the first entry seen for its id;
// later entries with a different name for the same id do not rename it.
func Aggregate(entries []model.TimeEntry) []model.ProjectSummary {
	index := make(map[string]int)
	summaries := make([]model.ProjectSummary, 0)

	for _, entry := range entries {
		i, ok := index[entry.ProjectID]
		if !ok {
			i = len(summaries)
			index[entry.ProjectID] = i
			summaries = append(summaries, model.ProjectSummary{Name: entry.ProjectName})
		}
		summaries[i].Hours += entry.Hours
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		return Less(summaries[i], summaries[j])
	})

	return summaries
}

// Less orders by hours descending, except that totals closer than TieThreshold
// are ordered by name ascending. The relation is not transitive near the
// threshold; callers rely on this exact pairwise rule.
func Less(a, b model.ProjectSummary) bool {
	if math.Abs(a.Hours-b.Hours) < TieThreshold {
		return a.Name < b.Name
	}
	return a.Hours > b.Hours
}

// Total sums the hours of every summary.
func Total(summaries []model.ProjectSummary) float64 {
	var total float64
	for _, s := range summaries {
		total += s.Hours
	}
	return total
}

// Summarize aggregates entries into a report for p.
func Summarize(entries []model.TimeEntry, p period.Period, fagdag bool) model.Report {
	projects := Aggregate(entries)
	return model.Report{
		Year:     p.Year,
		Month:    p.Month,
		Fagdag:   fagdag,
		Projects: projects,
		Total:    Total(projects),
	}
}
