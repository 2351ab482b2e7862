// Package usage turns raw usage events into daily and weekly summaries.
package usage

import (
	"sort"
	"time"

	"github.com/screenwatch/screenwatch/internal/model"
)

// AggregateWeekly rolls daily summaries up into ISO weeks, keyed by
// (ISO year, week) so weeks from different years stay separate. The current
// week is determined once against now. Result is ordered newest week first.
func AggregateWeekly(daily []model.DailyEntry, now time.Time) []model.WeeklyEntry {
	currentYear, currentWeek := now.ISOWeek()

	acc := map[model.WeekKey]*model.WeeklySummary{}
	for _, d := range daily {
		year, week := d.Date.ISOWeek()
		key := model.WeekKey{Year: year, Week: week}
		summary, ok := acc[key]
		if !ok {
			summary = &model.WeeklySummary{
				PerAppUsage:   map[string]time.Duration{},
				FirstDay:      mondayOf(d.Date),
				IsCurrentWeek: year == currentYear && week == currentWeek,
			}
			acc[key] = summary
		}
		summary.TotalUsage += d.Summary.TotalUsage
		summary.NetActiveHours += d.Summary.NetActiveTime
		for app, dur := range d.Summary.PerAppUsage {
			summary.PerAppUsage[app] += dur
		}
	}

	entries := make([]model.WeeklyEntry, 0, len(acc))
	for key, summary := range acc {
		entries = append(entries, model.WeeklyEntry{Key: key, Summary: *summary})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Key.Year != entries[j].Key.Year {
			return entries[i].Key.Year > entries[j].Key.Year
		}
		return entries[i].Key.Week > entries[j].Key.Week
	})
	return entries
}

func mondayOf(date time.Time) time.Time {
	offset := (int(date.Weekday()) + 6) % 7
	return date.AddDate(0, 0, -offset)
}
