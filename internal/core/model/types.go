package model

// TimeEntry is one unit of logged time as reported by the time-tracking endpoint.
type TimeEntry struct {
	DayOfYear   int     `json:"dayOfYear"`
	Year        int     `json:"year"`
	Month       int     `json:"month"`
	ISOWeekYear *int    `json:"isoWeekYear,omitempty"` // nil when the server omits it
	ISOWeek     *int    `json:"isoWeek,omitempty"`
	Week        int     `json:"week"`
	Hours       float64 `json:"hours"`
	ProjectName string  `json:"projectName"`
	ProjectID   string  `json:"projectId"`
}

// ProjectSummary holds the total hours logged on one project.
type ProjectSummary struct {
	Name  string  `json:"name"`
	Hours float64 `json:"hours"`
}

// Report is everything a formatter needs to print one month.
type Report struct {
	Year     int              `json:"year"`
	Month    int              `json:"month"`
	Fagdag   bool             `json:"fagdag"`
	Projects []ProjectSummary `json:"projects"`
	Total    float64          `json:"total"`
}
