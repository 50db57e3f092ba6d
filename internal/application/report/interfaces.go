package report

import (
	"context"

	"github.com/penwyp/timet/internal/core/model"
)

// EntrySource fetches the raw time entries for one month
type EntrySource interface {
	FetchEntries(ctx context.Context, year, month int) ([]model.TimeEntry, error)
}
