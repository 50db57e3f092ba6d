package client

import (
	"errors"
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/penwyp/timet/internal/core/model"
)

// rawResponse mirrors the endpoint's JSON. Pointers tell absent fields from zero values.
type rawResponse struct {
	Entries *[]rawTimeEntry `json:"entries"`
}

type rawTimeEntry struct {
	DayOfYear   *int     `json:"dayOfYear"`
	Year        *int     `json:"year"`
	Month       *int     `json:"month"`
	ISOWeekYear *int     `json:"isoWeekYear"`
	ISOWeek     *int     `json:"isoWeek"`
	Week        *int     `json:"week"`
	Hours       *float64 `json:"hours"`
	ProjectName *string  `json:"projectName"`
	ProjectID   *string  `json:"projectId"`
}

func decodeEntries(body []byte) ([]model.TimeEntry, error) {
	var raw rawResponse
	if err := sonic.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	if raw.Entries == nil {
		return nil, errors.New(`failed to parse response: missing field "entries"`)
	}

	out := make([]model.TimeEntry, 0, len(*raw.Entries))
	for i, r := range *raw.Entries {
		entry, err := r.toModel()
		if err != nil {
			return nil, fmt.Errorf("failed to parse response: entries[%d]: %w", i, err)
		}
		out = append(out, entry)
	}
	return out, nil
}

func (r rawTimeEntry) toModel() (model.TimeEntry, error) {
	required := []struct {
		name    string
		present bool
	}{
		{"dayOfYear", r.DayOfYear != nil},
		{"year", r.Year != nil},
		{"month", r.Month != nil},
		{"week", r.Week != nil},
		{"hours", r.Hours != nil},
		{"projectName", r.ProjectName != nil},
		{"projectId", r.ProjectID != nil},
	}
	for _, field := range required {
		if !field.present {
			return model.TimeEntry{}, fmt.Errorf("missing field %q", field.name)
		}
	}

	return model.TimeEntry{
		DayOfYear:   *r.DayOfYear,
		Year:        *r.Year,
		Month:       *r.Month,
		ISOWeekYear: r.ISOWeekYear,
		ISOWeek:     r.ISOWeek,
		Week:        *r.Week,
		Hours:       *r.Hours,
		ProjectName: *r.ProjectName,
		ProjectID:   *r.ProjectID,
	}, nil
}
