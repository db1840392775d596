package rowrange

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// DefaultMaxMaskLength bounds masks built without a known row count.
const DefaultMaxMaskLength = 2000000

// tokenPattern matches "N" or "N-M" where both numbers start at 1.
var tokenPattern = regexp.MustCompile(`^([1-9][0-9]*)(?:-([1-9][0-9]*))?$`)

// Interval is a closed, 0-based range of row positions.
type Interval struct {
	Start int
	End   int
}

// Parse converts spec into a deletion mask for a table of rowCount rows.
// An empty or whitespace-only spec yields an all-false mask.
func Parse(spec string, rowCount int) (Mask, error) {
	intervals, err := ParseIntervals(spec)
	if err != nil {
		return nil, err
	}
	return NewMask(intervals, rowCount), nil
}

// ParseIntervals applies the range grammar and returns one interval per
// token, in token order. Empty tokens between commas are skipped.
func ParseIntervals(spec string) ([]Interval, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return nil, nil
	}

	var intervals []Interval
	for _, token := range strings.Split(spec, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}

		iv, err := parseToken(token)
		if err != nil {
			return nil, err
		}
		intervals = append(intervals, iv)
	}
	return intervals, nil
}

func parseToken(token string) (Interval, error) {
	m := tokenPattern.FindStringSubmatch(token)
	if m == nil {
		return Interval{}, &ParseError{Kind: InvalidRangeFormat, Value: token}
	}

	first, last := m[1], m[1]
	if m[2] != "" {
		last = m[2]
	}
	if compareDecimal(first, last) > 0 {
		return Interval{}, &ParseError{Kind: BackwardsRange, Value: token}
	}

	return Interval{
		Start: atoiSaturating(first) - 1,
		End:   atoiSaturating(last) - 1,
	}, nil
}

// compareDecimal compares two digit strings without leading zeros,
// so numbers too large for int still order correctly.
func compareDecimal(a, b string) int {
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}
	return strings.Compare(a, b)
}

// atoiSaturating parses a digit string already matched by tokenPattern.
// Values beyond int range become math.MaxInt, which is past any table.
func atoiSaturating(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return math.MaxInt
	}
	return n
}

// Extent returns the mask length needed to hold every interval, capped at
// limit. Intervals starting at or past limit are ignored. A limit <= 0
// means DefaultMaxMaskLength.
func Extent(intervals []Interval, limit int) int {
	if limit <= 0 {
		limit = DefaultMaxMaskLength
	}

	n := 0
	for _, iv := range intervals {
		if iv.Start >= limit {
			continue
		}
		end := iv.End
		if end >= limit {
			end = limit - 1
		}
		if end+1 > n {
			n = end + 1
		}
	}
	return n
}
