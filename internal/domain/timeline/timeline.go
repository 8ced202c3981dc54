// Package timeline turns one team's raw match events into composite,
// human-meaningful entries: goals with their assists, own goals, cards and
// substitution swaps.
package timeline

import (
	"github.com/mkovel/pitchside/internal/domain/model"
	"github.com/mkovel/pitchside/internal/domain/onfield"
)

// Entry is one composite timeline record. The set of implementations is
// closed: GoalEntry, OwnGoalEntry, CardEntry, SubstitutionEntry and
// AssistEntry.
type Entry interface {
	// At returns the entry's time point within the match.
	At() model.TimePoint

	entry()
}

// GoalEntry is a goal, optionally carrying the assisting player and a
// penalty flag.
type GoalEntry struct {
	Time     model.TimePoint
	ScorerID int64
	AssistID int64 // 0 when the goal had no recorded assist
	Penalty  bool
}

// OwnGoalEntry is a goal scored against the player's own side.
type OwnGoalEntry struct {
	Time     model.TimePoint
	PlayerID int64
}

// CardEntry is a yellow or red card.
type CardEntry struct {
	Time     model.TimePoint
	PlayerID int64
	Red      bool
}

// SubstitutionEntry is one swap. OutID or InID is 0 when the raw log held
// an unpaired substitution row; see Build.
type SubstitutionEntry struct {
	Time  model.TimePoint
	OutID int64
	InID  int64
}

// AssistEntry is an assist row that had no goal to attach to. The write
// path never produces one, but the builder keeps the row-accounting
// guarantee even over malformed logs.
type AssistEntry struct {
	Time     model.TimePoint
	PlayerID int64
}

func (e GoalEntry) At() model.TimePoint         { return e.Time }
func (e OwnGoalEntry) At() model.TimePoint      { return e.Time }
func (e CardEntry) At() model.TimePoint         { return e.Time }
func (e SubstitutionEntry) At() model.TimePoint { return e.Time }
func (e AssistEntry) At() model.TimePoint       { return e.Time }

func (GoalEntry) entry()         {}
func (OwnGoalEntry) entry()      {}
func (CardEntry) entry()         {}
func (SubstitutionEntry) entry() {}
func (AssistEntry) entry()       {}

// Timeline is the result of one build over one team's events.
type Timeline struct {
	Entries []Entry

	// SubbedOut and SubbedIn record which players left and entered the
	// pitch, for squad-list annotation.
	SubbedOut onfield.PlayerSet
	SubbedIn  onfield.PlayerSet
}

// Build consumes one team's raw events, scanning them in (minute, stoppage,
// insertion id) order. Pairing is two-phase: rows are first indexed by time
// point, then paired within each bucket, so pairing never depends on what
// happens to sit between two related rows.
//
// Every input row lands in exactly one entry. The sequence is finite and
// built eagerly; callers needing it twice rerun Build on a fresh row slice.
// The lineup seeds the running on-field set used to classify unpaired
// substitution rows as outgoing or incoming.
func Build(lineup []model.LineupEntry, events []model.MatchEvent) Timeline {
	rows := make([]model.MatchEvent, len(events))
	copy(rows, events)
	model.SortEvents(rows)

	// Phase one: index assist and substitution rows by time point.
	assists := make(map[model.TimePoint][]int)
	subs := make(map[model.TimePoint][]int)
	for i, e := range rows {
		switch e.Kind {
		case model.KindAssist:
			assists[e.At()] = append(assists[e.At()], i)
		case model.KindSubstitution:
			subs[e.At()] = append(subs[e.At()], i)
		}
	}

	tl := Timeline{
		SubbedOut: make(onfield.PlayerSet),
		SubbedIn:  make(onfield.PlayerSet),
	}
	onPitch := make(onfield.PlayerSet)
	for _, lu := range lineup {
		if lu.Starting {
			onPitch[lu.PlayerID] = struct{}{}
		}
	}

	consumed := make([]bool, len(rows))

	// takeAssist consumes the earliest unconsumed assist at tp, if any.
	takeAssist := func(tp model.TimePoint) int64 {
		for _, idx := range assists[tp] {
			if consumed[idx] {
				continue
			}
			consumed[idx] = true
			return rows[idx].PlayerID
		}
		return 0
	}

	// Phase two: scan left to right, consuming each row exactly once.
	for i, e := range rows {
		if consumed[i] {
			continue
		}
		consumed[i] = true

		switch e.Kind {
		case model.KindGoal, model.KindPenaltyGoal:
			tl.Entries = append(tl.Entries, GoalEntry{
				Time:     e.At(),
				ScorerID: e.PlayerID,
				AssistID: takeAssist(e.At()),
				Penalty:  e.Kind == model.KindPenaltyGoal,
			})

		case model.KindOwnGoal:
			tl.Entries = append(tl.Entries, OwnGoalEntry{Time: e.At(), PlayerID: e.PlayerID})

		case model.KindYellowCard, model.KindRedCard:
			tl.Entries = append(tl.Entries, CardEntry{
				Time:     e.At(),
				PlayerID: e.PlayerID,
				Red:      e.Kind == model.KindRedCard,
			})

		case model.KindAssist:
			// Only reachable when no goal at this time point claimed it.
			tl.Entries = append(tl.Entries, AssistEntry{Time: e.At(), PlayerID: e.PlayerID})

		case model.KindSubstitution:
			tl.Entries = append(tl.Entries, tl.buildSubstitution(rows, consumed, subs, onPitch, i))
		}
	}
	return tl
}

// buildSubstitution pairs the substitution row at idx with the next
// unconsumed row in the same time bucket. The first row of a pair is
// outgoing and the second incoming. A row with no partner is classified
// against the current on-field set, matching the on-field tracker's
// singleton handling.
func (tl *Timeline) buildSubstitution(rows []model.MatchEvent, consumed []bool, subs map[model.TimePoint][]int, onPitch onfield.PlayerSet, idx int) SubstitutionEntry {
	e := rows[idx]
	entry := SubstitutionEntry{Time: e.At(), OutID: e.PlayerID}

	for _, j := range subs[e.At()] {
		if j == idx || consumed[j] {
			continue
		}
		consumed[j] = true
		entry.InID = rows[j].PlayerID
		break
	}

	if entry.InID == 0 && e.PlayerID != 0 && !onPitch.Contains(e.PlayerID) {
		// Unpaired row for a player not on the pitch: an incoming-only swap.
		entry.OutID, entry.InID = 0, e.PlayerID
	}

	if entry.OutID != 0 {
		tl.SubbedOut[entry.OutID] = struct{}{}
		delete(onPitch, entry.OutID)
	}
	if entry.InID != 0 {
		tl.SubbedIn[entry.InID] = struct{}{}
		onPitch[entry.InID] = struct{}{}
	}
	return entry
}
