package rowrange

import (
	"strconv"
	"strings"
)

// Mask marks rows for deletion, one entry per row position.
type Mask []bool

// NewMask returns a mask of length rowCount with every row covered by an
// interval set. Interval parts outside [0, rowCount-1] are ignored, and
// overlapping intervals simply mark the same rows again.
func NewMask(intervals []Interval, rowCount int) Mask {
	if rowCount < 0 {
		rowCount = 0
	}
	mask := make(Mask, rowCount)

	for _, iv := range intervals {
		start, end := iv.Start, iv.End
		if start < 0 {
			start = 0
		}
		if end > rowCount-1 {
			end = rowCount - 1
		}
		for i := start; i <= end; i++ {
			mask[i] = true
		}
	}
	return mask
}

// Count returns the number of rows marked for deletion.
func (m Mask) Count() int {
	n := 0
	for _, drop := range m {
		if drop {
			n++
		}
	}
	return n
}

// Or returns a mask marking rows marked in either m or other.
// The result is as long as the longer input.
func (m Mask) Or(other Mask) Mask {
	long, short := m, other
	if len(other) > len(m) {
		long, short = other, m
	}

	out := make(Mask, len(long))
	copy(out, long)
	for i, drop := range short {
		if drop {
			out[i] = true
		}
	}
	return out
}

// Compose returns the mask equivalent to deleting first and then deleting
// second from what remains. Positions in second refer to the rows that
// survived first; the result refers to the original rows.
//
//	Compose("2", "1-3")  == "1-4"
//	Compose("1-3", "2")  == "1-3, 5"
//
// Trailing false entries are trimmed.
func Compose(first, second Mask) Mask {
	out := make(Mask, 0, len(first)+len(second))

	i1, i2 := 0, 0
	for i1 < len(first) || i2 < len(second) {
		if i1 < len(first) && first[i1] {
			out = append(out, true)
			i1++
			continue
		}
		out = append(out, i2 < len(second) && second[i2])
		i1++
		i2++
	}

	return out.trimmed()
}

func (m Mask) trimmed() Mask {
	n := len(m)
	for n > 0 && !m[n-1] {
		n--
	}
	return m[:n]
}

// String formats the mask as canonical 1-based spec text, e.g. "1-2, 5".
// A mask with nothing marked formats as "".
func (m Mask) String() string {
	var spans []string

	start := -1
	for i, drop := range m {
		switch {
		case drop && start < 0:
			start = i
		case !drop && start >= 0:
			spans = append(spans, formatSpan(start, i-1))
			start = -1
		}
	}
	if start >= 0 {
		spans = append(spans, formatSpan(start, len(m)-1))
	}

	return strings.Join(spans, ", ")
}

func formatSpan(start, end int) string {
	if start == end {
		return strconv.Itoa(start + 1)
	}
	return strconv.Itoa(start+1) + "-" + strconv.Itoa(end+1)
}
