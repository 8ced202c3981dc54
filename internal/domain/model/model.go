// Package model contains domain models passed between layers.
package model

import "time"

// Position is a player's declared role on the pitch.
type Position string

// Player positions.
const (
	Goalkeeper Position = "goalkeeper"
	Defender   Position = "defender"
	Midfielder Position = "midfielder"
	Forward    Position = "forward"
)

// Rank orders positions for squad display: GK, then defenders, midfielders,
// forwards; unknown positions sort last.
func (p Position) Rank() int {
	switch p {
	case Goalkeeper:
		return 0
	case Defender:
		return 1
	case Midfielder:
		return 2
	case Forward:
		return 3
	default:
		return 4
	}
}

// MatchStatus describes where a match is in its lifecycle.
type MatchStatus string

// Match statuses.
const (
	StatusScheduled MatchStatus = "scheduled"
	StatusLive      MatchStatus = "live"
	StatusFinished  MatchStatus = "finished"
)

// Coach identifies a team coach.
type Coach struct {
	ID        int64
	FirstName string
	LastName  string
	BirthDate time.Time
}

// Team identifies a league team. A coach is linked to at most one team;
// the write path enforces that, not this model.
type Team struct {
	ID      int64
	Name    string
	City    string
	CoachID int64 // 0 when no coach assigned
	Emblem  string
}

// Player identifies a registered player.
type Player struct {
	ID        int64
	FirstName string
	LastName  string
	BirthDate time.Time
	Position  Position
}

// RosterMembership ties a player to a team with an optional jersey number.
// Numbers are unique within a team among members that have one assigned.
type RosterMembership struct {
	ID       int64
	TeamID   int64
	PlayerID int64
	Number   int // 0 means no number assigned
}

// Match is one fixture between two distinct teams.
type Match struct {
	ID         int64
	HomeTeamID int64
	AwayTeamID int64
	Date       time.Time
	Status     MatchStatus
}

// LineupEntry registers a player for one match. A player appears at most
// once per match across both teams.
type LineupEntry struct {
	ID       int64
	MatchID  int64
	TeamID   int64
	PlayerID int64
	Position Position
	Starting bool
}
