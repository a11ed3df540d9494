package timespec

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// Nominal lengths for calendar designators.
const (
	msPerSecond = int64(1000)
	msPerMinute = 60 * msPerSecond
	msPerHour   = 60 * msPerMinute
	msPerDay    = 24 * msPerHour
	msPerWeek   = 7 * msPerDay
	msPerMonth  = 30 * msPerDay
	msPerYear   = 365 * msPerDay
)

type designator struct {
	unit byte
	ms   int64
}

// designators in the order ISO-8601 requires them
var (
	dateDesignators = []designator{{'Y', msPerYear}, {'M', msPerMonth}, {'W', msPerWeek}, {'D', msPerDay}}
	timeDesignators = []designator{{'H', msPerHour}, {'M', msPerMinute}, {'S', msPerSecond}}
)

// ParseDuration parses an ISO-8601 duration such as PT5M or P1DT12H and
// returns its length in milliseconds. Years are 365 days and months 30 days.
func ParseDuration(s string) (int64, error) {
	raw := s
	s = strings.TrimSpace(s)
	if len(s) < 2 || (s[0] != 'P' && s[0] != 'p') {
		return 0, parseErrorf(raw, "duration must start with 'P' and have at least one component")
	}
	s = strings.ToUpper(s[1:])

	datePart, timePart, hasTime := strings.Cut(s, "T")
	if hasTime && timePart == "" {
		return 0, parseErrorf(raw, "'T' must be followed by a time component")
	}

	total := 0.0
	components := 0

	n, ms, err := parseComponents(raw, datePart, dateDesignators)
	if err != nil {
		return 0, err
	}
	total += ms
	components += n

	if hasTime {
		n, ms, err := parseComponents(raw, timePart, timeDesignators)
		if err != nil {
			return 0, err
		}
		total += ms
		components += n
	}

	if components == 0 {
		return 0, parseErrorf(raw, "duration has no components")
	}
	// float64(math.MaxInt64) is 2^63, one past the largest int64
	if total >= math.MaxInt64 {
		return 0, parseErrorf(raw, "duration overflows")
	}
	return int64(math.Round(total)), nil
}

// parseComponents reads "<number><unit>" pairs, enforcing designator order.
func parseComponents(raw, part string, allowed []designator) (int, float64, error) {
	total := 0.0
	count := 0
	next := 0 // index into allowed of the earliest designator still permitted

	for part != "" {
		i := 0
		for i < len(part) && (isDigit(part[i]) || part[i] == '.' || part[i] == ',') {
			i++
		}
		if i == 0 {
			return 0, 0, parseErrorf(raw, "expected number before %q", part[0])
		}
		if i == len(part) {
			return 0, 0, parseErrorf(raw, "number %q has no unit designator", part)
		}

		// ISO-8601 permits ',' as the decimal sign
		num, err := strconv.ParseFloat(strings.Replace(part[:i], ",", ".", 1), 64)
		if err != nil {
			return 0, 0, parseErrorf(raw, "invalid number %q", part[:i])
		}

		unit := part[i]
		idx := -1
		for j := next; j < len(allowed); j++ {
			if allowed[j].unit == unit {
				idx = j
				break
			}
		}
		if idx < 0 {
			return 0, 0, parseErrorf(raw, "unexpected designator %q", unit)
		}

		total += num * float64(allowed[idx].ms)
		count++
		next = idx + 1
		part = part[i+1:]
	}
	return count, total, nil
}

// Millis converts a millisecond count into a time.Duration
func Millis(ms int64) time.Duration {
	return time.Duration(ms) * time.Millisecond
}

// FormatDuration renders milliseconds as an ISO-8601 duration using days,
// hours, minutes and seconds.
func FormatDuration(ms int64) string {
	if ms == 0 {
		return "PT0S"
	}
	var sb strings.Builder
	if ms < 0 {
		sb.WriteByte('-')
		ms = -ms
	}
	sb.WriteByte('P')
	if d := ms / msPerDay; d > 0 {
		sb.WriteString(strconv.FormatInt(d, 10) + "D")
		ms %= msPerDay
	}
	if ms == 0 {
		return sb.String()
	}
	sb.WriteByte('T')
	if h := ms / msPerHour; h > 0 {
		sb.WriteString(strconv.FormatInt(h, 10) + "H")
		ms %= msPerHour
	}
	if m := ms / msPerMinute; m > 0 {
		sb.WriteString(strconv.FormatInt(m, 10) + "M")
		ms %= msPerMinute
	}
	if ms > 0 {
		sb.WriteString(strconv.FormatFloat(float64(ms)/1000, 'f', -1, 64) + "S")
	}
	return sb.String()
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}
