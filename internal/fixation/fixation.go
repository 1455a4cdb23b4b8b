// Package fixation maps a word length and a fixation point to the number of
// leading characters to emphasize.
package fixation

import "fmt"

const (
	// MinPoint is the most aggressive fixation point.
	MinPoint = 1
	// MaxPoint is the lightest fixation point.
	MaxPoint = 5
	// DefaultPoint is used when no fixation point is configured.
	DefaultPoint = 3
)

// boundaries lists, per fixation point, the word lengths at which one more
// trailing character is left de-emphasized. Data from text-vide's
// getFixationLength tables.
var boundaries = [MaxPoint][]int{
	{0, 4, 12, 17, 24, 29, 35, 42, 48},
	{1, 2, 7, 10, 13, 14, 19, 22, 25, 28, 31, 34, 37, 40, 43, 46, 49},
	{1, 2, 5, 7, 9, 11, 13, 15, 17, 19, 21, 23, 25, 27, 29, 31, 33, 35, 37, 39, 41, 43, 45, 47, 49},
	{0, 2, 4, 5, 6, 8, 9, 11, 14, 15, 17, 18, 20, 0, 21, 23, 24, 26, 27, 29, 30, 32, 33, 35, 36, 38, 39, 41, 42, 44, 45, 47, 48},
	{0, 2, 3, 5, 6, 7, 8, 10, 11, 12, 14, 15, 17, 19, 20, 21, 23, 24, 25, 26, 28, 29, 30, 32, 33, 34, 35, 37, 38, 39, 41, 42, 43, 44, 46, 47, 48},
}

// Table holds the precomputed tail lengths for one fixation point.
type Table struct {
	point int
	// tails[n] is the number of de-emphasized characters in a word of length n.
	tails []int
	// steps and span describe the bucket density used past the end of tails.
	steps int
	span  int
}

var tables [MaxPoint]*Table

func init() {
	for i := range boundaries {
		tables[i] = newTable(i+MinPoint, boundaries[i])
	}
}

func newTable(point int, b []int) *Table {
	last := b[len(b)-1]
	tails := make([]int, last+1)
	bucket := 0
	for n := 0; n <= last; n++ {
		tails[n] = bucket
		if n >= b[bucket] {
			bucket++
		}
	}
	return &Table{point: point, tails: tails, steps: len(b), span: last}
}

// Validate reports whether point is inside [MinPoint, MaxPoint].
func Validate(point int) error {
	if point < MinPoint || point > MaxPoint {
		return fmt.Errorf("fixation point should be in range [%d, %d], but got %d", MinPoint, MaxPoint, point)
	}
	return nil
}

// For returns the table for a fixation point.
func For(point int) (*Table, error) {
	if err := Validate(point); err != nil {
		return nil, err
	}
	return tables[point-MinPoint], nil
}

// Point returns the fixation point the table was built for.
func (t *Table) Point() int {
	return t.point
}

// Tail returns how many trailing characters of a word of the given length
// stay de-emphasized.
func (t *Table) Tail(length int) int {
	if length < len(t.tails) {
		return t.tails[length]
	}
	tail := length * t.steps / t.span
	return max(tail, t.tails[len(t.tails)-1]+1)
}

// HeadLength returns how many leading characters of a word of the given
// length are emphasized. Single characters are emphasized whole.
func (t *Table) HeadLength(length int) int {
	switch {
	case length <= 0:
		return 0
	case length == 1:
		return 1
	}
	return length - t.Tail(length)
}

// HeadLength is a convenience wrapper around For(point).HeadLength(length).
func HeadLength(point, length int) (int, error) {
	t, err := For(point)
	if err != nil {
		return 0, err
	}
	return t.HeadLength(length), nil
}

// Row holds the head lengths of one word length at several fixation points.
type Row struct {
	Length int   `json:"length"`
	Heads  []int `json:"heads"`
}

// Rows tabulates head lengths for word lengths 1..maxLength at each of the
// given fixation points, in the order given.
func Rows(points []int, maxLength int) ([]Row, error) {
	ts := make([]*Table, len(points))
	for i, p := range points {
		t, err := For(p)
		if err != nil {
			return nil, err
		}
		ts[i] = t
	}

	rows := make([]Row, 0, maxLength)
	for n := 1; n <= maxLength; n++ {
		heads := make([]int, len(ts))
		for i, t := range ts {
			heads[i] = t.HeadLength(n)
		}
		rows = append(rows, Row{Length: n, Heads: heads})
	}
	return rows, nil
}

// AllPoints returns every valid fixation point in ascending order.
func AllPoints() []int {
	points := make([]int, 0, MaxPoint-MinPoint+1)
	for p := MinPoint; p <= MaxPoint; p++ {
		points = append(points, p)
	}
	return points
}
