package analytics

import (
	"time"

	"github.com/gnomegl/gitvouch/internal/models"
)

// GitHub's contributionsCollection takes millisecond-precision timestamps.
const isoMillis = "2006-01-02T15:04:05.000Z"

// YearRanges splits the span from an account's creation to now into one
// range per calendar year, ascending. The first range starts at the creation
// instant and the last ends at now; interior years cover Jan 1 00:00:00.000Z
// through Dec 31 23:59:59.000Z.
func YearRanges(createdAt, now time.Time) []models.YearRange {
	createdAt = createdAt.UTC()
	now = now.UTC()
	if now.Before(createdAt) {
		return nil
	}

	firstYear := createdAt.Year()
	lastYear := now.Year()

	ranges := make([]models.YearRange, 0, lastYear-firstYear+1)
	for year := firstYear; year <= lastYear; year++ {
		from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
		if year == firstYear {
			from = createdAt
		}
		to := time.Date(year, time.December, 31, 23, 59, 59, 0, time.UTC)
		if year == lastYear {
			to = now
		}
		ranges = append(ranges, models.YearRange{
			Year: year,
			From: from.Format(isoMillis),
			To:   to.Format(isoMillis),
		})
	}
	return ranges
}
