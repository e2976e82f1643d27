package periodic

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidOffset indicates an offset string that is neither "today"
// nor an integer.
var ErrInvalidOffset = errors.New("invalid offset")

// ParseOffset parses a period offset: "today" and "0" mean the current
// period, "+N"/"N" future periods, "-N" past ones.
func ParseOffset(offset string) (int, error) {
	offset = strings.TrimSpace(offset)
	if strings.EqualFold(offset, "today") {
		return 0, nil
	}

	n, err := strconv.Atoi(offset)
	if err != nil {
		return 0, fmt.Errorf("%w: %q, expected 'today', '0', '+N', '-N', or 'N'", ErrInvalidOffset, offset)
	}
	return n, nil
}

// applyOffset shifts a base date by the given number of periods. Month
// and year arithmetic clamps the day to the target month's length, so
// Jan 31 +1 month is Feb 28 (or 29), not Mar 3.
func applyOffset(period Period, base time.Time, offset int) time.Time {
	switch period {
	case Daily:
		return base.AddDate(0, 0, offset)
	case Weekly:
		return base.AddDate(0, 0, offset*7)
	case Monthly:
		return addMonthsClamped(base, offset)
	case Quarterly:
		return addMonthsClamped(base, offset*3)
	case Yearly:
		return addMonthsClamped(base, offset*12)
	default:
		return base
	}
}

func addMonthsClamped(t time.Time, months int) time.Time {
	month := int(t.Month()) + months
	year := t.Year()
	for month > 12 {
		month -= 12
		year++
	}
	for month < 1 {
		month += 12
		year--
	}

	day := t.Day()
	if last := daysInMonth(year, time.Month(month)); day > last {
		day = last
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, t.Location())
}

// daysInMonth exploits the zeroth day of the next month normalizing to
// the last day of this one.
func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// noteName formats the filename (without extension) for a period's date.
func noteName(period Period, t time.Time) string {
	switch period {
	case Daily:
		return t.Format("2006-01-02")
	case Weekly:
		year, week := t.ISOWeek()
		return fmt.Sprintf("%d-W%02d", year, week)
	case Monthly:
		return t.Format("2006-01")
	case Quarterly:
		quarter := (int(t.Month())-1)/3 + 1
		return fmt.Sprintf("%d-Q%d", t.Year(), quarter)
	case Yearly:
		return strconv.Itoa(t.Year())
	default:
		return t.Format("2006-01-02")
	}
}
