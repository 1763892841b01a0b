package rename

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/cdoebler/rename-invoice-pdfs/internal/common"
)

// CanonicalDate is a validated calendar date. Year is kept in four-digit
// form; YYMMDD renders the two-digit-year filename prefix.
type CanonicalDate struct {
	Year  int
	Month time.Month
	Day   int
}

// YYMMDD renders the canonical six-digit form used in filenames.
func (d CanonicalDate) YYMMDD() string {
	return fmt.Sprintf("%02d%02d%02d", d.Year%100, int(d.Month), d.Day)
}

// yearWindow bounds how far from "now" a four-digit year may land. It also
// resolves two-digit years: 75 becomes 1975 in 2025, not 2075.
const yearWindow = 50

// Accepted single-date forms. Each pattern is anchored; anything with
// surrounding prose, multiple dates, or an unknown separator fails.
var (
	reCompact  = regexp.MustCompile(`^(\d{2})(\d{2})(\d{2})$`)                      // YYMMDD
	reISO      = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})$`)                    // YYYY-MM-DD
	reDayFirst = regexp.MustCompile(`^(\d{1,2})([./-])(\d{1,2})([./-])(\d{4})$`)    // DD/MM/YYYY
)

// NormalizeDate parses a single unambiguous date out of raw. The function is
// total: malformed input yields common.ErrNormalization, never a panic. now
// anchors the century window for year validation.
func NormalizeDate(raw string, now time.Time) (CanonicalDate, error) {
	s := strings.TrimSpace(raw)

	var year, month, day int
	switch {
	case reCompact.MatchString(s):
		m := reCompact.FindStringSubmatch(s)
		yy, _ := strconv.Atoi(m[1])
		month, _ = strconv.Atoi(m[2])
		day, _ = strconv.Atoi(m[3])
		year = resolveTwoDigitYear(yy, now)
	case reISO.MatchString(s):
		m := reISO.FindStringSubmatch(s)
		year, _ = strconv.Atoi(m[1])
		month, _ = strconv.Atoi(m[2])
		day, _ = strconv.Atoi(m[3])
	case reDayFirst.MatchString(s):
		m := reDayFirst.FindStringSubmatch(s)
		if m[2] != m[4] {
			// mixed separators read like two half-dates, not one
			return CanonicalDate{}, fmt.Errorf("%w: inconsistent separators in %q", common.ErrNormalization, s)
		}
		day, _ = strconv.Atoi(m[1])
		month, _ = strconv.Atoi(m[3])
		year, _ = strconv.Atoi(m[5])
	default:
		return CanonicalDate{}, fmt.Errorf("%w: unrecognized date %q", common.ErrNormalization, truncate(raw, 64))
	}

	if diff := year - now.Year(); diff < -yearWindow || diff > yearWindow {
		return CanonicalDate{}, fmt.Errorf("%w: year %d outside ±%d years of %d", common.ErrNormalization, year, yearWindow, now.Year())
	}
	if month < 1 || month > 12 {
		return CanonicalDate{}, fmt.Errorf("%w: month %d out of range in %q", common.ErrNormalization, month, s)
	}
	if day < 1 || day > daysInMonth(year, time.Month(month)) {
		return CanonicalDate{}, fmt.Errorf("%w: day %d impossible for %04d-%02d", common.ErrNormalization, day, year, month)
	}

	return CanonicalDate{Year: year, Month: time.Month(month), Day: day}, nil
}

// resolveTwoDigitYear picks the century that lands yy closest to now,
// preferring the past on an exact tie (invoices are dated, not scheduled).
func resolveTwoDigitYear(yy int, now time.Time) int {
	century := now.Year() - now.Year()%100
	year := century - 100 + yy
	for _, cand := range []int{century + yy, century + 100 + yy} {
		if abs(cand-now.Year()) < abs(year-now.Year()) {
			year = cand
		}
	}
	return year
}

func daysInMonth(year int, month time.Month) int {
	// day 0 of the next month is the last day of this one
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "…"
}
