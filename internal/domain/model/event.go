package model

import "sort"

// EventKind is the closed set of raw match event kinds. The kind is decided
// once at ingestion; consumers switch on it instead of re-parsing strings.
type EventKind string

// Raw event kinds.
const (
	KindGoal         EventKind = "goal"
	KindAssist       EventKind = "assist"
	KindOwnGoal      EventKind = "own_goal"
	KindPenaltyGoal  EventKind = "penalty_goal"
	KindYellowCard   EventKind = "yellow_card"
	KindRedCard      EventKind = "red_card"
	KindSubstitution EventKind = "substitution"
)

// ParseEventKind maps a wire string onto an EventKind.
func ParseEventKind(s string) (EventKind, bool) {
	switch EventKind(s) {
	case KindGoal, KindAssist, KindOwnGoal, KindPenaltyGoal,
		KindYellowCard, KindRedCard, KindSubstitution:
		return EventKind(s), true
	default:
		return "", false
	}
}

// Scoring reports whether the kind directly adds to its own side's tally.
func (k EventKind) Scoring() bool {
	return k == KindGoal || k == KindPenaltyGoal
}

// TimePoint is a position inside a match: the minute plus an optional
// stoppage-time offset (0 when none).
type TimePoint struct {
	Minute   int
	Stoppage int
}

// Before reports strict ordering of two time points.
func (t TimePoint) Before(o TimePoint) bool {
	if t.Minute != o.Minute {
		return t.Minute < o.Minute
	}
	return t.Stoppage < o.Stoppage
}

// MatchEvent is one raw row of a match's event log. ID is an insertion-ordered
// identifier; it is the only tie-break when minute and stoppage collide.
type MatchEvent struct {
	ID       int64
	MatchID  int64
	TeamID   int64
	PlayerID int64 // 0 for team-attributed anomalies
	Kind     EventKind
	Minute   int
	Stoppage int
}

// At returns the event's time point.
func (e MatchEvent) At() TimePoint {
	return TimePoint{Minute: e.Minute, Stoppage: e.Stoppage}
}

// SortEvents orders rows by (minute, stoppage, insertion id) ascending.
// This ordering is the sole basis for pairing and on-field tracking.
func SortEvents(events []MatchEvent) {
	sort.SliceStable(events, func(i, j int) bool {
		a, b := events[i], events[j]
		if a.Minute != b.Minute {
			return a.Minute < b.Minute
		}
		if a.Stoppage != b.Stoppage {
			return a.Stoppage < b.Stoppage
		}
		return a.ID < b.ID
	})
}
