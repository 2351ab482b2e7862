package usage

import (
	"testing"
	"time"

	"github.com/screenwatch/screenwatch/internal/model"
)

func dailyEntry(date time.Time, total, net time.Duration, perApp map[string]time.Duration) model.DailyEntry {
	return model.DailyEntry{
		Date: date,
		Summary: model.DailySummary{
			TotalUsage:    total,
			NetActiveTime: net,
			PerAppUsage:   perApp,
		},
	}
}

func TestAggregateWeeklySumsDays(t *testing.T) {
	wed := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	thu := time.Date(2024, 1, 11, 0, 0, 0, 0, time.UTC)
	daily := []model.DailyEntry{
		dailyEntry(wed, 3600*time.Second, 50*time.Minute, map[string]time.Duration{"Browser": 3600 * time.Second}),
		dailyEntry(thu, 1800*time.Second, 25*time.Minute, map[string]time.Duration{"Browser": 900 * time.Second, "Editor": 900 * time.Second}),
	}
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	entries := AggregateWeekly(daily, now)
	if len(entries) != 1 {
		t.Fatalf("expected 1 week, got %d", len(entries))
	}
	s := entries[0].Summary
	if s.TotalUsage != 5400*time.Second {
		t.Fatalf("expected 5400s total, got %v", s.TotalUsage)
	}
	if s.NetActiveHours != 75*time.Minute {
		t.Fatalf("expected 75min net, got %v", s.NetActiveHours)
	}
	if s.PerAppUsage["Browser"] != 4500*time.Second || s.PerAppUsage["Editor"] != 900*time.Second {
		t.Fatalf("unexpected per-app roll-up: %v", s.PerAppUsage)
	}
	if s.IsCurrentWeek {
		t.Fatalf("week should not be current")
	}
}

func TestAggregateWeeklyFirstDayIsMonday(t *testing.T) {
	wed := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	daily := []model.DailyEntry{dailyEntry(wed, time.Hour, time.Hour, nil)}

	entries := AggregateWeekly(daily, wed)
	s := entries[0].Summary
	want := time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC)
	if !s.FirstDay.Equal(want) {
		t.Fatalf("expected Monday %v, got %v", want, s.FirstDay)
	}
	if entries[0].Key != (model.WeekKey{Year: 2024, Week: 2}) {
		t.Fatalf("unexpected key: %+v", entries[0].Key)
	}
}

func TestAggregateWeeklySeparatesYears(t *testing.T) {
	// Both dates fall into ISO week 2 of their own year.
	daily := []model.DailyEntry{
		dailyEntry(time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), time.Hour, time.Hour, nil),
		dailyEntry(time.Date(2025, 1, 8, 0, 0, 0, 0, time.UTC), time.Hour, time.Hour, nil),
	}
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	entries := AggregateWeekly(daily, now)
	if len(entries) != 2 {
		t.Fatalf("expected 2 weeks, got %d", len(entries))
	}
	if entries[0].Key.Year != 2025 || entries[1].Key.Year != 2024 {
		t.Fatalf("expected newest year first: %+v, %+v", entries[0].Key, entries[1].Key)
	}
	if entries[0].Key.Week != 2 || entries[1].Key.Week != 2 {
		t.Fatalf("expected week 2 in both years: %+v, %+v", entries[0].Key, entries[1].Key)
	}
}

func TestAggregateWeeklyCurrentWeekFlag(t *testing.T) {
	now := time.Date(2024, 1, 10, 15, 0, 0, 0, time.UTC)
	daily := []model.DailyEntry{
		dailyEntry(time.Date(2024, 1, 9, 0, 0, 0, 0, time.UTC), time.Hour, time.Hour, nil),
		dailyEntry(time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), time.Hour, time.Hour, nil),
	}

	entries := AggregateWeekly(daily, now)
	if len(entries) != 2 {
		t.Fatalf("expected 2 weeks, got %d", len(entries))
	}
	if !entries[0].Summary.IsCurrentWeek {
		t.Fatalf("expected week %+v to be current", entries[0].Key)
	}
	if entries[1].Summary.IsCurrentWeek {
		t.Fatalf("expected week %+v not to be current", entries[1].Key)
	}
}

func TestAggregateWeeklyEmptyInput(t *testing.T) {
	entries := AggregateWeekly(nil, time.Now())
	if len(entries) != 0 {
		t.Fatalf("expected no entries, got %d", len(entries))
	}
}
