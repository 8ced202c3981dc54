// Package seed loads a declarative YAML league fixture into a store, so
// the service and the report CLI can run on real data without a database.
package seed

import (
	"context"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/mkovel/pitchside/internal/adapters/repository"
	"github.com/mkovel/pitchside/internal/domain/model"
)

// File mirrors the YAML fixture layout.
type File struct {
	Coaches []Coach  `yaml:"coaches"`
	Teams   []Team   `yaml:"teams"`
	Players []Player `yaml:"players"`
	Rosters []Roster `yaml:"rosters"`
	Matches []Match  `yaml:"matches"`
	Lineups []Lineup `yaml:"lineups"`
	Events  []Event  `yaml:"events"`
}

type Coach struct {
	ID        int64  `yaml:"id"`
	FirstName string `yaml:"first_name"`
	LastName  string `yaml:"last_name"`
	BirthDate string `yaml:"birth_date,omitempty"`
}

type Team struct {
	ID      int64  `yaml:"id"`
	Name    string `yaml:"name"`
	City    string `yaml:"city,omitempty"`
	CoachID int64  `yaml:"coach_id,omitempty"`
	Emblem  string `yaml:"emblem,omitempty"`
}

type Player struct {
	ID        int64  `yaml:"id"`
	FirstName string `yaml:"first_name"`
	LastName  string `yaml:"last_name"`
	BirthDate string `yaml:"birth_date,omitempty"`
	Position  string `yaml:"position"`
}

type Roster struct {
	TeamID   int64 `yaml:"team_id"`
	PlayerID int64 `yaml:"player_id"`
	Number   int   `yaml:"number,omitempty"`
}

type Match struct {
	ID         int64  `yaml:"id"`
	HomeTeamID int64  `yaml:"home_team_id"`
	AwayTeamID int64  `yaml:"away_team_id"`
	Date       string `yaml:"date"`
	Status     string `yaml:"status"`
}

type Lineup struct {
	MatchID  int64  `yaml:"match_id"`
	TeamID   int64  `yaml:"team_id"`
	PlayerID int64  `yaml:"player_id"`
	Position string `yaml:"position,omitempty"`
	Starting bool   `yaml:"starting"`
}

type Event struct {
	MatchID  int64  `yaml:"match_id"`
	TeamID   int64  `yaml:"team_id"`
	PlayerID int64  `yaml:"player_id,omitempty"`
	Kind     string `yaml:"kind"`
	Minute   int    `yaml:"minute"`
	Stoppage int    `yaml:"stoppage,omitempty"`
}

const dateOnly = "2006-01-02"

// Parse decodes a fixture from YAML bytes.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	return &f, nil
}

// ParseFile decodes a fixture from a YAML file on disk.
func ParseFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRead, err)
	}
	return Parse(data)
}

// Apply loads the fixture into the store in dependency order. Events go
// through AppendEvents one row at a time so their IDs preserve fixture
// order as the insertion-order tie-break.
func Apply(ctx context.Context, store repository.Store, f *File) error {
	for _, c := range f.Coaches {
		birth, err := parseDate(c.BirthDate)
		if err != nil {
			return fmt.Errorf("coach %d: %w", c.ID, err)
		}
		if _, err := store.PutCoach(ctx, model.Coach{
			ID: c.ID, FirstName: c.FirstName, LastName: c.LastName, BirthDate: birth,
		}); err != nil {
			return fmt.Errorf("coach %d: %w", c.ID, err)
		}
	}

	for _, t := range f.Teams {
		if _, err := store.PutTeam(ctx, model.Team{
			ID: t.ID, Name: t.Name, City: t.City, CoachID: t.CoachID, Emblem: t.Emblem,
		}); err != nil {
			return fmt.Errorf("team %q: %w", t.Name, err)
		}
	}

	for _, p := range f.Players {
		pos, err := parsePosition(p.Position)
		if err != nil {
			return fmt.Errorf("player %d: %w", p.ID, err)
		}
		birth, err := parseDate(p.BirthDate)
		if err != nil {
			return fmt.Errorf("player %d: %w", p.ID, err)
		}
		if _, err := store.PutPlayer(ctx, model.Player{
			ID: p.ID, FirstName: p.FirstName, LastName: p.LastName,
			BirthDate: birth, Position: pos,
		}); err != nil {
			return fmt.Errorf("player %d: %w", p.ID, err)
		}
	}

	for _, r := range f.Rosters {
		if _, err := store.PutRoster(ctx, model.RosterMembership{
			TeamID: r.TeamID, PlayerID: r.PlayerID, Number: r.Number,
		}); err != nil {
			return fmt.Errorf("roster team=%d player=%d: %w", r.TeamID, r.PlayerID, err)
		}
	}

	for _, m := range f.Matches {
		status, err := parseStatus(m.Status)
		if err != nil {
			return fmt.Errorf("match %d: %w", m.ID, err)
		}
		date, err := time.Parse(time.RFC3339, m.Date)
		if err != nil {
			return fmt.Errorf("match %d: %w: %w", m.ID, ErrBadDate, err)
		}
		if _, err := store.PutMatch(ctx, model.Match{
			ID: m.ID, HomeTeamID: m.HomeTeamID, AwayTeamID: m.AwayTeamID,
			Date: date, Status: status,
		}); err != nil {
			return fmt.Errorf("match %d: %w", m.ID, err)
		}
	}

	for _, lu := range f.Lineups {
		pos := model.Position(lu.Position)
		if lu.Position != "" {
			var err error
			if pos, err = parsePosition(lu.Position); err != nil {
				return fmt.Errorf("lineup match=%d player=%d: %w", lu.MatchID, lu.PlayerID, err)
			}
		}
		if _, err := store.PutLineup(ctx, model.LineupEntry{
			MatchID: lu.MatchID, TeamID: lu.TeamID, PlayerID: lu.PlayerID,
			Position: pos, Starting: lu.Starting,
		}); err != nil {
			return fmt.Errorf("lineup match=%d player=%d: %w", lu.MatchID, lu.PlayerID, err)
		}
	}

	for _, e := range f.Events {
		kind, ok := model.ParseEventKind(e.Kind)
		if !ok {
			return fmt.Errorf("event match=%d: %w: %q", e.MatchID, ErrBadKind, e.Kind)
		}
		if _, err := store.AppendEvents(ctx, model.MatchEvent{
			MatchID: e.MatchID, TeamID: e.TeamID, PlayerID: e.PlayerID,
			Kind: kind, Minute: e.Minute, Stoppage: e.Stoppage,
		}); err != nil {
			return fmt.Errorf("event match=%d: %w", e.MatchID, err)
		}
	}
	return nil
}

// Load is ParseFile followed by Apply.
func Load(ctx context.Context, store repository.Store, path string) error {
	f, err := ParseFile(path)
	if err != nil {
		return err
	}
	return Apply(ctx, store, f)
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(dateOnly, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %w", ErrBadDate, err)
	}
	return t, nil
}

func parsePosition(s string) (model.Position, error) {
	switch p := model.Position(s); p {
	case model.Goalkeeper, model.Defender, model.Midfielder, model.Forward:
		return p, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrBadPosition, s)
	}
}

func parseStatus(s string) (model.MatchStatus, error) {
	switch st := model.MatchStatus(s); st {
	case model.StatusScheduled, model.StatusLive, model.StatusFinished:
		return st, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrBadStatus, s)
	}
}
