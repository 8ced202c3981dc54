// Package repository defines the league snapshot store and its errors.
//
// The engine computes over immutable snapshots; every read returns copies.
// Writes are limited to what the engine proposes: appending one or more
// event rows atomically, and cascade-deleting a row together with its pair
// group.
package repository

import (
	"context"

	"github.com/mkovel/pitchside/internal/domain/model"
)

// Store provides snapshot reads of league entities and the two atomic
// write primitives the engine needs.
type Store interface {
	// Snapshot reads. Slices are copies; mutating them never affects the
	// store.
	Teams(ctx context.Context) []model.Team
	Team(ctx context.Context, id int64) (model.Team, error)
	Players(ctx context.Context) []model.Player
	Player(ctx context.Context, id int64) (model.Player, error)
	Coaches(ctx context.Context) []model.Coach
	Rosters(ctx context.Context) []model.RosterMembership
	RosterOf(ctx context.Context, teamID int64) []model.RosterMembership

	Matches(ctx context.Context) []model.Match
	Match(ctx context.Context, id int64) (model.Match, error)
	Lineup(ctx context.Context, matchID int64) []model.LineupEntry
	Lineups(ctx context.Context) []model.LineupEntry
	Events(ctx context.Context, matchID int64) []model.MatchEvent
	AllEvents(ctx context.Context) []model.MatchEvent
	EventsByMatch(ctx context.Context) map[int64][]model.MatchEvent

	// Entity writes used by the host layer and the seed loader.
	PutCoach(ctx context.Context, c model.Coach) (model.Coach, error)
	PutTeam(ctx context.Context, t model.Team) (model.Team, error)
	PutPlayer(ctx context.Context, p model.Player) (model.Player, error)
	PutRoster(ctx context.Context, r model.RosterMembership) (model.RosterMembership, error)
	PutMatch(ctx context.Context, m model.Match) (model.Match, error)
	PutLineup(ctx context.Context, lu model.LineupEntry) (model.LineupEntry, error)

	// AppendEvents persists all rows or none, assigning insertion-ordered
	// IDs. All rows must belong to the same match.
	AppendEvents(ctx context.Context, rows ...model.MatchEvent) ([]model.MatchEvent, error)

	// DeleteEventCascade removes the named rows and every row of their pair
	// groups (goal with assist, substitution with its partner), atomically.
	// It returns the number of rows removed.
	DeleteEventCascade(ctx context.Context, matchID int64, eventIDs ...int64) (int, error)
}
