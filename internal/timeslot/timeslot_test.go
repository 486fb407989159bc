package timeslot

import "testing"

func TestParseValid(t *testing.T) {
	cases := map[string]int{
		"0:00":  0,
		"00:00": 0,
		"9:05":  545,
		"17:00": 1020,
		"23:59": 1439,
	}
	for in, want := range cases {
		got, err := Parse(in)
		if err != nil {
			t.Fatalf("Parse(%q) returned error: %v", in, err)
		}
		if got != want {
			t.Fatalf("Parse(%q) = %d, want %d", in, got, want)
		}
	}
}

func TestParseInvalid(t *testing.T) {
	for _, in := range []string{"", "24:00", "12:60", "1200", "12:5", "12:005", "ab:cd", "-1:30", "12:30:00"} {
		if _, err := Parse(in); err == nil {
			t.Fatalf("Parse(%q) accepted invalid input", in)
		}
	}
}

func TestFormatRoundTrip(t *testing.T) {
	for _, s := range []string{"00:00", "07:30", "17:00", "23:30"} {
		m, err := Parse(s)
		if err != nil {
			t.Fatalf("Parse(%q): %v", s, err)
		}
		back, err := Parse(Format(m))
		if err != nil {
			t.Fatalf("Parse(Format(%d)): %v", m, err)
		}
		if back != m {
			t.Fatalf("round trip for %q: got %d, want %d", s, back, m)
		}
	}
}

func TestFormatWrapsPastMidnight(t *testing.T) {
	if got := Format(1500); got != "01:00" {
		t.Fatalf("Format(1500) = %q, want 01:00", got)
	}
	if got := Format(1440); got != "00:00" {
		t.Fatalf("Format(1440) = %q, want 00:00", got)
	}
}

func TestAdd(t *testing.T) {
	got, err := Add("22:30", 120)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if got != "00:30" {
		t.Fatalf("Add(22:30, 120) = %q, want 00:30", got)
	}
}

func TestOverlaps(t *testing.T) {
	// Back-to-back intervals do not overlap.
	if Overlaps(0, 120, 120, 120) {
		t.Fatal("back-to-back intervals reported as overlapping")
	}
	if !Overlaps(0, 120, 119, 120) {
		t.Fatal("one-minute overlap not detected")
	}
	// Containment in both directions.
	if !Overlaps(60, 240, 120, 30) {
		t.Fatal("contained interval not detected")
	}
	if !Overlaps(120, 30, 60, 240) {
		t.Fatal("containing interval not detected")
	}
	if Overlaps(0, 60, 90, 60) {
		t.Fatal("disjoint intervals reported as overlapping")
	}
}

func TestGrid(t *testing.T) {
	points := Grid(1020, 1380, 30) // 17:00..23:00
	if len(points) != 13 {
		t.Fatalf("grid length = %d, want 13", len(points))
	}
	if points[0] != 1020 || points[len(points)-1] != 1380 {
		t.Fatalf("grid bounds = %d..%d, want 1020..1380", points[0], points[len(points)-1])
	}
	if Grid(1020, 900, 30) != nil {
		t.Fatal("close before open should yield empty grid")
	}
}
