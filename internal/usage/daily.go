// Package usage turns raw usage events into daily and weekly summaries.
package usage

import (
	"sort"
	"time"

	"github.com/screenwatch/screenwatch/internal/model"
)

// BreakThreshold is the minimum gap between sessions that counts as a break.
const BreakThreshold = 10 * time.Minute

// AggregateDaily partitions events by their start date in loc and summarizes
// each day. The result is ordered newest date first. Empty input yields nil.
func AggregateDaily(events []model.UsageEvent, loc *time.Location) []model.DailyEntry {
	buckets := map[time.Time][]model.UsageEvent{}
	for _, ev := range events {
		day := dayOf(ev.StartTime.In(loc))
		buckets[day] = append(buckets[day], ev)
	}

	entries := make([]model.DailyEntry, 0, len(buckets))
	for day, evs := range buckets {
		entries = append(entries, model.DailyEntry{
			Date:    day,
			Summary: summarizeDay(evs, loc),
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Date.After(entries[j].Date)
	})
	return entries
}

func summarizeDay(events []model.UsageEvent, loc *time.Location) model.DailySummary {
	s := model.DailySummary{
		PerAppUsage: map[string]time.Duration{},
	}
	for i, ev := range events {
		start := ev.StartTime.In(loc)
		end := ev.EndTime.In(loc)
		if i == 0 || start.Before(s.FirstUsage) {
			s.FirstUsage = start
		}
		if i == 0 || end.After(s.LastUsage) {
			s.LastUsage = end
		}
		s.TotalUsage += ev.Usage
		s.PerAppUsage[ev.App] += ev.Usage
	}

	// Breaks are computed over the start-sorted session list. Overlapping
	// sessions can produce a zero or negative gap, which never qualifies.
	sessions := append([]model.UsageEvent(nil), events...)
	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].StartTime.Before(sessions[j].StartTime)
	})
	var totalBreaks time.Duration
	for i := 1; i < len(sessions); i++ {
		gap := sessions[i].StartTime.Sub(sessions[i-1].EndTime)
		if gap > BreakThreshold {
			s.Breaks = append(s.Breaks, model.Break{
				Start:    sessions[i-1].EndTime.In(loc),
				End:      sessions[i].StartTime.In(loc),
				Duration: gap,
			})
			totalBreaks += gap
		}
	}

	// Not clamped: a day whose breaks exceed its span goes negative.
	s.NetActiveTime = s.LastUsage.Sub(s.FirstUsage) - totalBreaks
	return s
}

func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
