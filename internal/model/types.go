// Package model defines shared data structures.
package model

import "time"

// UsageEvent is one contiguous interval during which an application was in
// foreground use. Timestamps are UTC; Usage is the recorded end-start span.
type UsageEvent struct {
	App       string
	Usage     time.Duration
	StartTime time.Time
	EndTime   time.Time
}

// Break is an idle gap between two sessions on the same calendar day whose
// length exceeds the break threshold.
type Break struct {
	Start    time.Time
	End      time.Time
	Duration time.Duration
}

// DailySummary aggregates one calendar day of usage.
type DailySummary struct {
	TotalUsage    time.Duration
	FirstUsage    time.Time
	LastUsage     time.Time
	PerAppUsage   map[string]time.Duration
	Breaks        []Break
	NetActiveTime time.Duration
}

// DailyEntry pairs a calendar date (local midnight) with its summary.
type DailyEntry struct {
	Date    time.Time
	Summary DailySummary
}

// WeekKey identifies an ISO week. Year is the ISO year, so equal week
// numbers from different years never collide.
type WeekKey struct {
	Year int
	Week int
}

// WeeklySummary rolls up the daily summaries of one ISO week.
type WeeklySummary struct {
	TotalUsage     time.Duration
	NetActiveHours time.Duration
	PerAppUsage    map[string]time.Duration
	FirstDay       time.Time
	IsCurrentWeek  bool
}

// WeeklyEntry pairs an ISO week with its summary.
type WeeklyEntry struct {
	Key     WeekKey
	Summary WeeklySummary
}
