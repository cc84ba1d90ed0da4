package dates

import (
	"testing"
	"time"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestMonthBounds(t *testing.T) {
	tests := []struct {
		name      string
		in        time.Time
		wantStart time.Time
		wantEnd   time.Time
	}{
		{name: "mid month", in: day(2025, time.March, 15), wantStart: day(2025, time.March, 1), wantEnd: day(2025, time.April, 1)},
		{name: "december rolls year", in: day(2025, time.December, 31), wantStart: day(2025, time.December, 1), wantEnd: day(2026, time.January, 1)},
		{name: "first of month", in: day(2025, time.June, 1), wantStart: day(2025, time.June, 1), wantEnd: day(2025, time.July, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := MonthBounds(tt.in)
			if !start.Equal(tt.wantStart) || !end.Equal(tt.wantEnd) {
				t.Errorf("MonthBounds(%v) = (%v, %v), want (%v, %v)", tt.in, start, end, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func TestAddMonths(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		n    int
		want time.Time
	}{
		{name: "simple forward", in: day(2025, time.March, 15), n: 2, want: day(2025, time.May, 15)},
		{name: "simple backward", in: day(2025, time.March, 15), n: -2, want: day(2025, time.January, 15)},
		{name: "backward across year", in: day(2025, time.February, 1), n: -3, want: day(2024, time.November, 1)},
		{name: "forward across year", in: day(2025, time.November, 30), n: 3, want: day(2026, time.February, 28)},
		{name: "clamp jan 31 to feb", in: day(2025, time.January, 31), n: 1, want: day(2025, time.February, 28)},
		{name: "clamp to feb 29 in leap year", in: day(2024, time.January, 31), n: 1, want: day(2024, time.February, 29)},
		{name: "century is not leap", in: day(2100, time.January, 31), n: 1, want: day(2100, time.February, 28)},
		{name: "quadricentennial is leap", in: day(2000, time.January, 31), n: 1, want: day(2000, time.February, 29)},
		{name: "clamp to 30 day month", in: day(2025, time.March, 31), n: 1, want: day(2025, time.April, 30)},
		{name: "24 months back", in: day(2025, time.August, 1), n: -24, want: day(2023, time.August, 1)},
		{name: "zero months", in: day(2025, time.August, 14), n: 0, want: day(2025, time.August, 14)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AddMonths(tt.in, tt.n); !got.Equal(tt.want) {
				t.Errorf("AddMonths(%v, %d) = %v, want %v", tt.in, tt.n, got, tt.want)
			}
		})
	}
}

func TestLabel(t *testing.T) {
	if got := Label(day(2025, time.March, 1)); got != "Mar 2025" {
		t.Errorf("Label = %q, want %q", got, "Mar 2025")
	}
}
