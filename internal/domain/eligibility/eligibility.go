// Package eligibility gates proposed match events before they are
// committed. A proposal either passes every rule and yields its raw rows as
// one atomic write unit, or is rejected with the full list of violated
// rules.
package eligibility

import (
	"github.com/mkovel/pitchside/internal/domain/model"
	"github.com/mkovel/pitchside/internal/domain/onfield"
)

// Minute bounds accepted for any event.
const (
	minMinute = 1
	maxMinute = 90
)

// Proposal is one proposed event, before commit. The set of implementations
// is closed: GoalProposal, OwnGoalProposal, CardProposal and
// SubstitutionProposal. Each carries only the fields its kind needs.
type Proposal interface {
	// Team is the side the proposed action is attributed to.
	Team() int64

	// ProposedAt is the time point the event would occur at.
	ProposedAt() model.TimePoint

	// Rows expands the proposal into the raw rows to persist atomically.
	// Row IDs are assigned by the store at commit.
	Rows(matchID int64) []model.MatchEvent

	check(v *check)
}

// GoalProposal proposes a goal, optionally with an assist.
type GoalProposal struct {
	TeamID   int64
	Time     model.TimePoint
	ScorerID int64
	AssistID int64 // 0 when no assist
	Penalty  bool
}

// OwnGoalProposal proposes an own goal, recorded against TeamID.
type OwnGoalProposal struct {
	TeamID   int64
	Time     model.TimePoint
	PlayerID int64
}

// CardProposal proposes a yellow or red card.
type CardProposal struct {
	TeamID   int64
	Time     model.TimePoint
	PlayerID int64
	Red      bool
}

// SubstitutionProposal proposes one swap; it expands into two raw rows.
type SubstitutionProposal struct {
	TeamID int64
	Time   model.TimePoint
	OutID  int64
	InID   int64
}

func (p GoalProposal) Team() int64         { return p.TeamID }
func (p OwnGoalProposal) Team() int64      { return p.TeamID }
func (p CardProposal) Team() int64         { return p.TeamID }
func (p SubstitutionProposal) Team() int64 { return p.TeamID }

func (p GoalProposal) ProposedAt() model.TimePoint         { return p.Time }
func (p OwnGoalProposal) ProposedAt() model.TimePoint      { return p.Time }
func (p CardProposal) ProposedAt() model.TimePoint         { return p.Time }
func (p SubstitutionProposal) ProposedAt() model.TimePoint { return p.Time }

// Validate applies every rule to the proposal given the team's lineup for
// the match and the on-field set at the proposed time. It returns nil on
// acceptance or a *Rejection listing every violated rule; it never stops at
// the first violation.
func Validate(p Proposal, lineup []model.LineupEntry, onField onfield.PlayerSet) error {
	v := &check{onField: onField, inLineup: make(map[int64]bool, len(lineup))}
	for _, lu := range lineup {
		v.inLineup[lu.PlayerID] = true
	}
	p.check(v)
	if len(v.reasons) == 0 {
		return nil
	}
	return &Rejection{Reasons: v.reasons}
}

// check accumulates rule violations for one proposal.
type check struct {
	onField  onfield.PlayerSet
	inLineup map[int64]bool
	reasons  []string
}

func (v *check) fail(reason string) {
	v.reasons = append(v.reasons, reason)
}

func (v *check) timeInRange(t model.TimePoint) {
	if t.Minute < minMinute || t.Minute > maxMinute {
		v.fail("minute must be between 1 and 90")
	}
	if t.Stoppage < 0 {
		v.fail("stoppage time must not be negative")
	}
}

func (v *check) rostered(id int64, who string) bool {
	if id == 0 {
		v.fail(who + " must be named")
		return false
	}
	if !v.inLineup[id] {
		v.fail(who + " must be in the roster for the specified team")
		return false
	}
	return true
}

func (v *check) onPitch(id int64, who string) {
	if id != 0 && !v.onField.Contains(id) {
		v.fail(who + " must be on the field at that moment")
	}
}

func (p GoalProposal) check(v *check) {
	v.timeInRange(p.Time)
	if v.rostered(p.ScorerID, "scorer") {
		v.onPitch(p.ScorerID, "scorer")
	}
	if p.AssistID != 0 {
		if v.rostered(p.AssistID, "assisting player") {
			v.onPitch(p.AssistID, "assisting player")
		}
		if p.AssistID == p.ScorerID {
			v.fail("scorer and assisting player must differ")
		}
	}
}

func (p OwnGoalProposal) check(v *check) {
	v.timeInRange(p.Time)
	if v.rostered(p.PlayerID, "player") {
		v.onPitch(p.PlayerID, "player")
	}
}

func (p CardProposal) check(v *check) {
	v.timeInRange(p.Time)
	if v.rostered(p.PlayerID, "player") {
		v.onPitch(p.PlayerID, "player")
	}
}

func (p SubstitutionProposal) check(v *check) {
	v.timeInRange(p.Time)
	if v.rostered(p.OutID, "outgoing player") {
		v.onPitch(p.OutID, "outgoing player")
	}
	if v.rostered(p.InID, "incoming player") && v.onField.Contains(p.InID) {
		v.fail("incoming player must not already be on the field")
	}
	if p.OutID != 0 && p.OutID == p.InID {
		v.fail("a player cannot be substituted for themselves")
	}
}

// Rows for a goal is the goal row plus its assist row, when present.
func (p GoalProposal) Rows(matchID int64) []model.MatchEvent {
	kind := model.KindGoal
	if p.Penalty {
		kind = model.KindPenaltyGoal
	}
	rows := []model.MatchEvent{{
		MatchID:  matchID,
		TeamID:   p.TeamID,
		PlayerID: p.ScorerID,
		Kind:     kind,
		Minute:   p.Time.Minute,
		Stoppage: p.Time.Stoppage,
	}}
	if p.AssistID != 0 {
		rows = append(rows, model.MatchEvent{
			MatchID:  matchID,
			TeamID:   p.TeamID,
			PlayerID: p.AssistID,
			Kind:     model.KindAssist,
			Minute:   p.Time.Minute,
			Stoppage: p.Time.Stoppage,
		})
	}
	return rows
}

func (p OwnGoalProposal) Rows(matchID int64) []model.MatchEvent {
	return []model.MatchEvent{{
		MatchID:  matchID,
		TeamID:   p.TeamID,
		PlayerID: p.PlayerID,
		Kind:     model.KindOwnGoal,
		Minute:   p.Time.Minute,
		Stoppage: p.Time.Stoppage,
	}}
}

func (p CardProposal) Rows(matchID int64) []model.MatchEvent {
	kind := model.KindYellowCard
	if p.Red {
		kind = model.KindRedCard
	}
	return []model.MatchEvent{{
		MatchID:  matchID,
		TeamID:   p.TeamID,
		PlayerID: p.PlayerID,
		Kind:     kind,
		Minute:   p.Time.Minute,
		Stoppage: p.Time.Stoppage,
	}}
}

// Rows for a substitution is the outgoing row followed by the incoming row.
func (p SubstitutionProposal) Rows(matchID int64) []model.MatchEvent {
	out := model.MatchEvent{
		MatchID:  matchID,
		TeamID:   p.TeamID,
		PlayerID: p.OutID,
		Kind:     model.KindSubstitution,
		Minute:   p.Time.Minute,
		Stoppage: p.Time.Stoppage,
	}
	in := out
	in.PlayerID = p.InID
	return []model.MatchEvent{out, in}
}
