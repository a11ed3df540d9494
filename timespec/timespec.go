// Package timespec parses time dimension specifications: either an ISO-8601
// interval with a step duration ("1995-01-01/2016-12-31/PT5M") or a
// comma-separated list of ISO-8601 instants. All values are epoch
// milliseconds in UTC.
package timespec

import (
	"strings"
)

// Spec is the result of Parse: exactly one of Range or List.
type Spec interface {
	// Len returns the number of steps the spec describes.
	Len() int
	// Instants returns up to limit step instants in order (limit <= 0 means no limit).
	Instants(limit int) []int64
	String() string
	isSpec()
}

// Range is a continuous interval sampled every Duration milliseconds.
type Range struct {
	Start    int64
	End      int64
	Duration int64
}

func (Range) isSpec() {}

// Len implements Spec
func (r Range) Len() int {
	if r.Duration <= 0 || r.End < r.Start {
		return 0
	}
	return int((r.End-r.Start)/r.Duration) + 1
}

// Instants implements Spec
func (r Range) Instants(limit int) []int64 {
	n := r.Len()
	if limit > 0 && n > limit {
		n = limit
	}
	out := make([]int64, n)
	for i := range out {
		out[i] = r.Start + int64(i)*r.Duration
	}
	return out
}

func (r Range) String() string {
	return FormatInstant(r.Start) + "/" + FormatInstant(r.End) + "/" + FormatDuration(r.Duration)
}

// List is an ordered sequence of discrete instants. Duplicates are kept.
type List []int64

func (List) isSpec() {}

// Len implements Spec
func (l List) Len() int {
	return len(l)
}

// Instants implements Spec
func (l List) Instants(limit int) []int64 {
	n := len(l)
	if limit > 0 && n > limit {
		n = limit
	}
	out := make([]int64, n)
	copy(out, l[:n])
	return out
}

func (l List) String() string {
	parts := make([]string, len(l))
	for i, ms := range l {
		parts[i] = FormatInstant(ms)
	}
	return strings.Join(parts, ",")
}

// Parse parses a time dimension specification.
//
// "<start>/<end>/<duration>" yields a Range; anything else is read as a
// comma-separated list of instants and yields a List. Malformed content is
// reported as a *ParseError.
func Parse(spec string) (Spec, error) {
	s := strings.TrimSpace(spec)
	if s == "" {
		return nil, parseErrorf(spec, "empty time spec")
	}

	if strings.Contains(s, "/") {
		r, err := parseRange(s)
		if err != nil {
			return nil, err
		}
		return r, nil
	}
	l, err := parseList(s)
	if err != nil {
		return nil, err
	}
	return l, nil
}

func parseRange(s string) (Range, error) {
	parts := strings.Split(s, "/")
	if len(parts) != 3 {
		return Range{}, parseErrorf(s, "interval must have the form <start>/<end>/<duration>")
	}

	start, err := ParseInstant(parts[0])
	if err != nil {
		return Range{}, err
	}
	end, err := ParseInstant(parts[1])
	if err != nil {
		return Range{}, err
	}
	duration, err := ParseDuration(parts[2])
	if err != nil {
		return Range{}, err
	}

	if end < start {
		return Range{}, parseErrorf(s, "interval ends before it starts")
	}
	if duration <= 0 {
		return Range{}, parseErrorf(s, "step duration must be positive")
	}
	return Range{Start: start, End: end, Duration: duration}, nil
}

func parseList(s string) (List, error) {
	segments := strings.Split(s, ",")
	out := make(List, 0, len(segments))
	for _, seg := range segments {
		ms, err := ParseInstant(seg)
		if err != nil {
			return nil, err
		}
		out = append(out, ms)
	}
	return out, nil
}
