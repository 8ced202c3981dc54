package repository

import (
	"context"
	"sync"

	"github.com/mkovel/pitchside/internal/domain/model"
)

// MemStore implements Store with in-memory maps guarded by one RWMutex.
// Event IDs grow monotonically, so they double as the insertion-order
// tie-break key the engine's ordering relies on.
type MemStore struct {
	mu sync.RWMutex

	coaches map[int64]model.Coach
	teams   map[int64]model.Team
	players map[int64]model.Player
	rosters map[int64]model.RosterMembership
	matches map[int64]model.Match
	lineups map[int64]model.LineupEntry
	events  map[int64]model.MatchEvent

	nextID int64
}

// NewMemStore creates an empty in-memory store.
func NewMemStore(_ context.Context) *MemStore {
	return &MemStore{
		coaches: make(map[int64]model.Coach),
		teams:   make(map[int64]model.Team),
		players: make(map[int64]model.Player),
		rosters: make(map[int64]model.RosterMembership),
		matches: make(map[int64]model.Match),
		lineups: make(map[int64]model.LineupEntry),
		events:  make(map[int64]model.MatchEvent),
	}
}

func (s *MemStore) nextIDLocked() int64 {
	s.nextID++
	return s.nextID
}

// bumpID keeps the counter ahead of externally supplied IDs so later
// assignments never collide.
func (s *MemStore) bumpID(id int64) {
	if id > s.nextID {
		s.nextID = id
	}
}

func (s *MemStore) Teams(_ context.Context) []model.Team {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Team, 0, len(s.teams))
	for _, t := range s.teams {
		out = append(out, t)
	}
	return out
}

func (s *MemStore) Team(_ context.Context, id int64) (model.Team, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.teams[id]
	if !ok {
		return model.Team{}, ErrNotFound
	}
	return t, nil
}

func (s *MemStore) Players(_ context.Context) []model.Player {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Player, 0, len(s.players))
	for _, p := range s.players {
		out = append(out, p)
	}
	return out
}

func (s *MemStore) Player(_ context.Context, id int64) (model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.players[id]
	if !ok {
		return model.Player{}, ErrNotFound
	}
	return p, nil
}

func (s *MemStore) Coaches(_ context.Context) []model.Coach {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Coach, 0, len(s.coaches))
	for _, c := range s.coaches {
		out = append(out, c)
	}
	return out
}

func (s *MemStore) Rosters(_ context.Context) []model.RosterMembership {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.RosterMembership, 0, len(s.rosters))
	for _, r := range s.rosters {
		out = append(out, r)
	}
	return out
}

func (s *MemStore) RosterOf(_ context.Context, teamID int64) []model.RosterMembership {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []model.RosterMembership
	for _, r := range s.rosters {
		if r.TeamID == teamID {
			out = append(out, r)
		}
	}
	return out
}

func (s *MemStore) Matches(_ context.Context) []model.Match {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Match, 0, len(s.matches))
	for _, m := range s.matches {
		out = append(out, m)
	}
	return out
}

func (s *MemStore) Match(_ context.Context, id int64) (model.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.matches[id]
	if !ok {
		return model.Match{}, ErrNotFound
	}
	return m, nil
}

func (s *MemStore) Lineup(_ context.Context, matchID int64) []model.LineupEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []model.LineupEntry
	for _, lu := range s.lineups {
		if lu.MatchID == matchID {
			out = append(out, lu)
		}
	}
	return out
}

func (s *MemStore) Lineups(_ context.Context) []model.LineupEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.LineupEntry, 0, len(s.lineups))
	for _, lu := range s.lineups {
		out = append(out, lu)
	}
	return out
}

func (s *MemStore) Events(_ context.Context, matchID int64) []model.MatchEvent {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []model.MatchEvent
	for _, e := range s.events {
		if e.MatchID == matchID {
			out = append(out, e)
		}
	}
	model.SortEvents(out)
	return out
}

func (s *MemStore) AllEvents(_ context.Context) []model.MatchEvent {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.MatchEvent, 0, len(s.events))
	for _, e := range s.events {
		out = append(out, e)
	}
	model.SortEvents(out)
	return out
}

func (s *MemStore) EventsByMatch(_ context.Context) map[int64][]model.MatchEvent {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[int64][]model.MatchEvent)
	for _, e := range s.events {
		out[e.MatchID] = append(out[e.MatchID], e)
	}
	for id := range out {
		model.SortEvents(out[id])
	}
	return out
}

func (s *MemStore) PutCoach(_ context.Context, c model.Coach) (model.Coach, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c.ID == 0 {
		c.ID = s.nextIDLocked()
	}
	s.bumpID(c.ID)
	s.coaches[c.ID] = c
	return c, nil
}

func (s *MemStore) PutTeam(_ context.Context, t model.Team) (model.Team, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t.CoachID != 0 {
		for _, other := range s.teams {
			if other.ID != t.ID && other.CoachID == t.CoachID {
				return model.Team{}, ErrCoachAssigned
			}
		}
	}
	if t.ID == 0 {
		t.ID = s.nextIDLocked()
	}
	s.bumpID(t.ID)
	s.teams[t.ID] = t
	return t, nil
}

func (s *MemStore) PutPlayer(_ context.Context, p model.Player) (model.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID == 0 {
		p.ID = s.nextIDLocked()
	}
	s.bumpID(p.ID)
	s.players[p.ID] = p
	return p, nil
}

func (s *MemStore) PutRoster(_ context.Context, r model.RosterMembership) (model.RosterMembership, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r.Number != 0 {
		for _, other := range s.rosters {
			if other.ID != r.ID && other.TeamID == r.TeamID && other.Number == r.Number {
				return model.RosterMembership{}, ErrNumberTaken
			}
		}
	}
	if r.ID == 0 {
		r.ID = s.nextIDLocked()
	}
	s.bumpID(r.ID)
	s.rosters[r.ID] = r
	return r, nil
}

func (s *MemStore) PutMatch(_ context.Context, m model.Match) (model.Match, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if m.ID == 0 {
		m.ID = s.nextIDLocked()
	}
	s.bumpID(m.ID)
	s.matches[m.ID] = m
	return m, nil
}

func (s *MemStore) PutLineup(_ context.Context, lu model.LineupEntry) (model.LineupEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, other := range s.lineups {
		if other.ID != lu.ID && other.MatchID == lu.MatchID && other.PlayerID == lu.PlayerID {
			return model.LineupEntry{}, ErrDuplicateSlot
		}
	}
	if lu.ID == 0 {
		lu.ID = s.nextIDLocked()
	}
	s.bumpID(lu.ID)
	s.lineups[lu.ID] = lu
	return lu, nil
}

// AppendEvents persists all rows or none. IDs are assigned under the lock,
// so a multi-row unit (goal with assist, substitution pair) keeps adjacent
// insertion order.
func (s *MemStore) AppendEvents(_ context.Context, rows ...model.MatchEvent) ([]model.MatchEvent, error) {
	if len(rows) == 0 {
		return nil, ErrEmptyCommit
	}
	matchID := rows[0].MatchID
	for _, r := range rows[1:] {
		if r.MatchID != matchID {
			return nil, ErrMixedMatches
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.matches[matchID]; !ok {
		return nil, ErrNotFound
	}
	stored := make([]model.MatchEvent, len(rows))
	for i, r := range rows {
		r.ID = s.nextIDLocked()
		s.events[r.ID] = r
		stored[i] = r
	}
	return stored, nil
}

// DeleteEventCascade removes the named rows together with their pair
// groups. Deleting any one half of a goal-and-assist pair or a
// substitution pair removes the whole group; the group is every row of the
// paired kind sharing the row's match, team and time point.
func (s *MemStore) DeleteEventCascade(_ context.Context, matchID int64, eventIDs ...int64) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doomed := make(map[int64]struct{})
	for _, id := range eventIDs {
		ev, ok := s.events[id]
		if !ok || ev.MatchID != matchID {
			continue
		}
		doomed[id] = struct{}{}
		for _, kind := range cascadeKinds(ev.Kind) {
			for _, other := range s.events {
				if other.MatchID == matchID &&
					other.TeamID == ev.TeamID &&
					other.Kind == kind &&
					other.At() == ev.At() {
					doomed[other.ID] = struct{}{}
				}
			}
		}
	}
	if len(doomed) == 0 {
		return 0, ErrNotFound
	}
	for id := range doomed {
		delete(s.events, id)
	}
	return len(doomed), nil
}

// cascadeKinds lists which kinds are dragged along when a row of kind k is
// deleted.
func cascadeKinds(k model.EventKind) []model.EventKind {
	switch k {
	case model.KindGoal, model.KindPenaltyGoal:
		return []model.EventKind{model.KindAssist}
	case model.KindAssist:
		return []model.EventKind{model.KindGoal, model.KindPenaltyGoal}
	case model.KindSubstitution:
		return []model.EventKind{model.KindSubstitution}
	default:
		return nil
	}
}
