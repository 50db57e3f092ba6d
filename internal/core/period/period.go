package period

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidDate is returned when a month or year cannot form a calendar date.
var ErrInvalidDate = errors.New("invalid date")

const (
	minYear = 1
	maxYear = 9999
)

// Period identifies one calendar month.
type Period struct {
	Year  int
	Month int
}

// Resolve fills in missing month and year from now (in UTC) and validates the result.
func Resolve(month, year *int, now time.Time) (Period, error) {
	today := now.UTC()

	p := Period{Year: today.Year(), Month: int(today.Month())}
	if month != nil {
		p.Month = *month
	}
	if year != nil {
		p.Year = *year
	}

	if err := p.Validate(); err != nil {
		return Period{}, err
	}
	return p, nil
}

// Validate checks that the period is a real calendar month.
func (p Period) Validate() error {
	if p.Month < 1 || p.Month > 12 {
		return fmt.Errorf("%w: month %d is not in 1-12", ErrInvalidDate, p.Month)
	}
	if p.Year < minYear || p.Year > maxYear {
		return fmt.Errorf("%w: year %d is not in %d-%d", ErrInvalidDate, p.Year, minYear, maxYear)
	}
	return nil
}

func (p Period) String() string {
	return fmt.Sprintf("%04d-%02d", p.Year, p.Month)
}
