package fixation_test

import (
	"testing"

	"github.com/bioread/bio-read/internal/fixation"
)

func TestHeadLength_KnownValues(t *testing.T) {
	tests := []struct {
		name   string
		length int
		want   [fixation.MaxPoint]int
	}{
		{"empty", 0, [5]int{0, 0, 0, 0, 0}},
		{"single", 1, [5]int{1, 1, 1, 1, 1}},
		{"two", 2, [5]int{1, 1, 1, 1, 1}},
		{"four", 4, [5]int{3, 2, 2, 2, 1}},
		{"hello", 5, [5]int{3, 3, 3, 2, 2}},
		{"twelve", 12, [5]int{10, 8, 6, 4, 3}},
		{"pneumonoultramicroscopicsilicovolcanoconiosis", 45, [5]int{37, 30, 23, 15, 11}},
		{"past table", 50, [5]int{41, 33, 25, 16, 12}},
		{"long", 100, [5]int{82, 66, 49, 32, 23}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for point := fixation.MinPoint; point <= fixation.MaxPoint; point++ {
				got, err := fixation.HeadLength(point, tt.length)
				if err != nil {
					t.Fatalf("HeadLength(%d, %d) error: %v", point, tt.length, err)
				}
				if got != tt.want[point-1] {
					t.Errorf("HeadLength(%d, %d) = %d, want %d", point, tt.length, got, tt.want[point-1])
				}
			}
		})
	}
}

func TestHeadLength_Bounds(t *testing.T) {
	for point := fixation.MinPoint; point <= fixation.MaxPoint; point++ {
		table, err := fixation.For(point)
		if err != nil {
			t.Fatal(err)
		}
		for n := 1; n <= 3000; n++ {
			h := table.HeadLength(n)
			if h < 1 || h > n {
				t.Fatalf("point %d: HeadLength(%d) = %d, want within [1, %d]", point, n, h, n)
			}
		}
	}
}

func TestHeadLength_NonDecreasingInLength(t *testing.T) {
	for point := fixation.MinPoint; point <= fixation.MaxPoint; point++ {
		table, _ := fixation.For(point)
		prev := table.HeadLength(2)
		for n := 3; n <= 3000; n++ {
			h := table.HeadLength(n)
			if h < prev {
				t.Fatalf("point %d: HeadLength(%d) = %d < HeadLength(%d) = %d", point, n, h, n-1, prev)
			}
			prev = h
		}
	}
}

func TestHeadLength_NonIncreasingInPoint(t *testing.T) {
	for n := 2; n <= 3000; n++ {
		prev := n
		for point := fixation.MinPoint; point <= fixation.MaxPoint; point++ {
			h, _ := fixation.HeadLength(point, n)
			if h > prev {
				t.Fatalf("length %d: point %d head %d exceeds point %d head %d", n, point, h, point-1, prev)
			}
			prev = h
		}
	}
}

func TestFor_InvalidPoint(t *testing.T) {
	for _, point := range []int{-1, 0, 6, 100} {
		if _, err := fixation.For(point); err == nil {
			t.Errorf("For(%d) expected error", point)
		}
	}
}

func TestTable_Point(t *testing.T) {
	table, err := fixation.For(fixation.DefaultPoint)
	if err != nil {
		t.Fatal(err)
	}
	if table.Point() != fixation.DefaultPoint {
		t.Errorf("Point() = %d, want %d", table.Point(), fixation.DefaultPoint)
	}
}

func TestRows(t *testing.T) {
	rows, err := fixation.Rows(fixation.AllPoints(), 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 5 {
		t.Fatalf("expected 5 rows, got %d", len(rows))
	}
	last := rows[4]
	if last.Length != 5 {
		t.Errorf("Length = %d, want 5", last.Length)
	}
	want := []int{3, 3, 3, 2, 2}
	for i, h := range last.Heads {
		if h != want[i] {
			t.Errorf("Heads[%d] = %d, want %d", i, h, want[i])
		}
	}

	if _, err := fixation.Rows([]int{3, 9}, 5); err == nil {
		t.Error("expected error for invalid point")
	}
}
