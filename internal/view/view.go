// Package view holds the navigation state machine and its projection.
package view

import (
	"fmt"

	"github.com/screenwatch/screenwatch/internal/model"
	"github.com/screenwatch/screenwatch/internal/usage"
)

// Tab selects which summary sequence is active.
type Tab int

// Tabs.
const (
	TabDaily Tab = iota
	TabWeekly
)

// Command is a discrete navigation input.
type Command int

// Commands. CommandNone covers every input that carries no meaning.
const (
	CommandNone Command = iota
	CommandSelectDaily
	CommandSelectWeekly
	CommandMoveUp
	CommandMoveDown
	CommandQuit
)

// State is the navigation state: the active tab and the selected row.
// Index is always a valid index into the active sequence, or 0 when the
// sequence is empty.
type State struct {
	Tab   Tab
	Index int
}

// Row is one selectable list entry of the projection.
type Row struct {
	Selected bool
	Label    string
}

// Placeholder is shown in the detail pane when the active sequence is empty.
const Placeholder = "No data available"

// Apply returns the state after cmd, given the daily and weekly sequence
// lengths. It is pure and total; CommandQuit and unknown commands leave the
// state unchanged (quitting is the caller's concern).
func Apply(s State, cmd Command, dailyCount, weeklyCount int) State {
	switch cmd {
	case CommandSelectDaily:
		return State{Tab: TabDaily, Index: 0}
	case CommandSelectWeekly:
		return State{Tab: TabWeekly, Index: 0}
	case CommandMoveUp:
		if s.Index > 0 {
			s.Index--
		}
		return s
	case CommandMoveDown:
		count := dailyCount
		if s.Tab == TabWeekly {
			count = weeklyCount
		}
		max := count - 1
		if max < 0 {
			max = 0
		}
		if s.Index < max {
			s.Index++
		}
		return s
	default:
		return s
	}
}

// Project maps the state and the two summary sequences to list rows and the
// detail text of the selected entry.
func Project(s State, daily []model.DailyEntry, weekly []model.WeeklyEntry) ([]Row, string) {
	if s.Tab == TabWeekly {
		rows := make([]Row, 0, len(weekly))
		for i, entry := range weekly {
			rows = append(rows, Row{
				Selected: i == s.Index,
				Label:    weeklyLabel(entry),
			})
		}
		detail := Placeholder
		if s.Index >= 0 && s.Index < len(weekly) {
			detail = usage.RenderWeeklyDetail(weekly[s.Index].Key, weekly[s.Index].Summary)
		}
		return rows, detail
	}

	rows := make([]Row, 0, len(daily))
	for i, entry := range daily {
		rows = append(rows, Row{
			Selected: i == s.Index,
			Label:    entry.Date.Format("2006-01-02"),
		})
	}
	detail := Placeholder
	if s.Index >= 0 && s.Index < len(daily) {
		detail = usage.RenderDailyDetail(daily[s.Index].Date, daily[s.Index].Summary)
	}
	return rows, detail
}

func weeklyLabel(entry model.WeeklyEntry) string {
	return fmt.Sprintf("Week %d (Starting %s)", entry.Key.Week, entry.Summary.FirstDay.Format("2006-01-02"))
}
