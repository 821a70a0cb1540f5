package streak

import (
	"testing"
	"time"
)

var today = time.Date(2025, 6, 10, 15, 0, 0, 0, time.UTC)

func daysAgo(n int) time.Time { return today.AddDate(0, 0, -n) }

func TestRecord(t *testing.T) {
	cases := []struct {
		name string
		in   State
		want State
	}{
		{"first activity", State{}, State{Current: 1, Max: 1, Last: "2025-06-10"}},
		{"same day", State{Current: 4, Max: 6, Last: "2025-06-10"}, State{Current: 4, Max: 6, Last: "2025-06-10"}},
		{"yesterday extends", State{Current: 4, Max: 4, Last: "2025-06-09"}, State{Current: 5, Max: 5, Last: "2025-06-10"}},
		{"gap resets to one", State{Current: 4, Max: 9, Last: "2025-06-07"}, State{Current: 1, Max: 9, Last: "2025-06-10"}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := Record(c.in, today); got != c.want {
				t.Fatalf("Record = %+v want %+v", got, c.want)
			}
		})
	}
}

func TestCheck(t *testing.T) {
	got, extended := Check(State{Current: 2, Max: 2, Last: Day(daysAgo(1))}, today)
	if !extended || got.Current != 3 || got.Max != 3 || got.Last != Day(today) {
		t.Fatalf("yesterday should extend, got %+v extended=%v", got, extended)
	}

	got, extended = Check(State{Current: 5, Max: 5, Last: Day(daysAgo(3))}, today)
	if extended || got.Current != 0 || got.Max != 5 || got.Last != Day(daysAgo(3)) {
		t.Fatalf("gap should reset to 0 and keep last, got %+v", got)
	}
	if after := Record(got, today); after.Current != 1 {
		t.Fatalf("activity after lapse should start at 1, got %+v", after)
	}

	got, _ = Check(State{Current: 3, Max: 3, Last: Day(today)}, today)
	if got.Current != 3 {
		t.Fatalf("same day check must not change streak, got %+v", got)
	}

	got, _ = Check(State{Current: 2}, today)
	if got.Current != 0 {
		t.Fatalf("no activity means no streak, got %+v", got)
	}
}

func TestFromDates(t *testing.T) {
	cases := []struct {
		name    string
		dates   []time.Time
		current int
		max     int
	}{
		{"empty", nil, 0, 0},
		{"today only", []time.Time{today}, 1, 1},
		{"run ending yesterday", []time.Time{daysAgo(1), daysAgo(2), daysAgo(3)}, 3, 3},
		{"run ending today with duplicates", []time.Time{today, today.Add(-time.Hour), daysAgo(1), daysAgo(2)}, 3, 3},
		{"lapsed", []time.Time{daysAgo(3), daysAgo(4)}, 0, 2},
		{"broken run", []time.Time{today, daysAgo(2), daysAgo(3), daysAgo(4)}, 1, 3},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := FromDates(c.dates, today)
			if got.Current != c.current || got.Max != c.max {
				t.Fatalf("FromDates = %+v want current=%d max=%d", got, c.current, c.max)
			}
		})
	}
}
