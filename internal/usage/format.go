// Package usage turns raw usage events into daily and weekly summaries.
package usage

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/screenwatch/screenwatch/internal/model"
)

const (
	dateLayout    = "2006-01-02"
	instantLayout = "2006-01-02 15:04:05"
)

// FormatDuration renders a duration as "2h 5min", "5min 30s", or "45s".
// Negative durations keep their sign.
func FormatDuration(d time.Duration) string {
	seconds := int64(d / time.Second)
	minutes := seconds / 60
	hours := minutes / 60

	if hours != 0 {
		return fmt.Sprintf("%dh %dmin", hours, minutes%60)
	}
	if minutes != 0 {
		return fmt.Sprintf("%dmin %ds", minutes, seconds%60)
	}
	return fmt.Sprintf("%ds", seconds)
}

// RenderDailyDetail formats one day's summary as multi-line text.
func RenderDailyDetail(date time.Time, s model.DailySummary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Date: %s\n", date.Format(dateLayout))
	fmt.Fprintf(&b, "  Total Usage: %s\n", FormatDuration(s.TotalUsage))
	fmt.Fprintf(&b, "  First Usage: %s\n", s.FirstUsage.Format(instantLayout))
	fmt.Fprintf(&b, "  Last Usage: %s\n", s.LastUsage.Format(instantLayout))
	fmt.Fprintf(&b, "  Net Active Hours: %s\n", FormatDuration(s.NetActiveTime))
	fmt.Fprintf(&b, "  Per App Usage:\n")
	for _, app := range appsByUsage(s.PerAppUsage) {
		fmt.Fprintf(&b, "    %s: %s\n", app, FormatDuration(s.PerAppUsage[app]))
	}
	fmt.Fprintf(&b, "  Breaks:\n")
	for _, br := range s.Breaks {
		fmt.Fprintf(&b, "    Break from %s to %s (%s)\n",
			br.Start.Format(instantLayout),
			br.End.Format(instantLayout),
			FormatDuration(br.Duration))
	}
	return b.String()
}

// RenderWeeklyDetail formats one week's summary as multi-line text.
func RenderWeeklyDetail(key model.WeekKey, s model.WeeklySummary) string {
	marker := ""
	if s.IsCurrentWeek {
		marker = " (Current Week)"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Week %d (Starting %s)%s:\n", key.Week, s.FirstDay.Format(dateLayout), marker)
	fmt.Fprintf(&b, "  Total Usage: %s\n", FormatDuration(s.TotalUsage))
	fmt.Fprintf(&b, "  Net Active Time: %s\n", FormatDuration(s.NetActiveHours))
	fmt.Fprintf(&b, "  Per App Usage:\n")
	for _, app := range appsByUsage(s.PerAppUsage) {
		fmt.Fprintf(&b, "    %s: %s\n", app, FormatDuration(s.PerAppUsage[app]))
	}
	return b.String()
}

// appsByUsage orders app names by usage descending, ties by name, so detail
// output is stable.
func appsByUsage(perApp map[string]time.Duration) []string {
	apps := make([]string, 0, len(perApp))
	for app := range perApp {
		apps = append(apps, app)
	}
	sort.Slice(apps, func(i, j int) bool {
		if perApp[apps[i]] == perApp[apps[j]] {
			return apps[i] < apps[j]
		}
		return perApp[apps[i]] > perApp[apps[j]]
	})
	return apps
}
