// Package app provides the core business service that implements the
// dependencies required by the HTTP API and the report CLI. Each operation
// takes a snapshot of the relevant rows from the store, runs the domain
// engines over it and returns a result; no state is retained between calls.
package app

import (
	"context"
	"time"

	"github.com/mkovel/pitchside/internal/adapters/repository"
	"github.com/mkovel/pitchside/internal/domain/dedupe"
	"github.com/mkovel/pitchside/internal/domain/eligibility"
	"github.com/mkovel/pitchside/internal/domain/model"
	"github.com/mkovel/pitchside/internal/domain/onfield"
	"github.com/mkovel/pitchside/internal/domain/playerstats"
	"github.com/mkovel/pitchside/internal/domain/score"
	"github.com/mkovel/pitchside/internal/domain/standings"
	"github.com/mkovel/pitchside/pkg/logger"
	"github.com/mkovel/pitchside/pkg/metrics"
)

// Service bundles the store with the domain engines.
type Service struct {
	store   repository.Store
	deduper dedupe.Deduper
	log     logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithStore sets the backing store.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(log logger.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// WithDeduper sets the idempotency tracker for event submissions.
func WithDeduper(d dedupe.Deduper) Option {
	return func(s *Service) {
		if d != nil {
			s.deduper = d
		}
	}
}

// New constructs a Service. Without options it runs on an empty in-memory
// store and the global logger.
func New(ctx context.Context, opts ...Option) *Service {
	s := &Service{}
	for _, opt := range opts {
		opt(s)
	}
	if s.store == nil {
		s.store = repository.NewMemStore(ctx)
	}
	if s.deduper == nil {
		s.deduper = dedupe.NewInMemoryDeduper()
	}
	if s.log == nil {
		s.log = logger.Get()
	}
	return s
}

// SeenAndRecord atomically checks and records a submission request ID.
func (s *Service) SeenAndRecord(ctx context.Context, id string) bool {
	return s.deduper.SeenAndRecord(ctx, id)
}

// Unrecord forgets a submission request ID so the caller can retry it.
func (s *Service) Unrecord(ctx context.Context, id string) {
	s.deduper.Unrecord(ctx, id)
}

// Size returns the number of remembered submission IDs.
func (s *Service) Size() int {
	return s.deduper.Size()
}

// Store exposes the backing store for the seed loader.
func (s *Service) Store() repository.Store {
	return s.store
}

// Score computes the current goal tally for one match.
func (s *Service) Score(ctx context.Context, matchID int64) (score.Result, error) {
	m, err := s.store.Match(ctx, matchID)
	if err != nil {
		return score.Result{}, err
	}
	events := s.store.Events(ctx, matchID)
	return score.Compute(m.HomeTeamID, m.AwayTeamID, events), nil
}

// OnFieldAt reconstructs one team's on-field set strictly before cutoff.
func (s *Service) OnFieldAt(ctx context.Context, matchID, teamID int64, cutoff model.TimePoint) (onfield.PlayerSet, error) {
	if _, err := s.store.Match(ctx, matchID); err != nil {
		return nil, err
	}
	lineup := teamLineup(s.store.Lineup(ctx, matchID), teamID)
	subs := teamEvents(s.store.Events(ctx, matchID), teamID)
	return onfield.At(lineup, subs, cutoff), nil
}

// ProposeEvent validates a proposed event against the match's roster and
// substitution history and, on acceptance, commits its rows as one atomic
// unit. On rejection it returns an *eligibility.Rejection listing every
// violated rule; nothing is written.
func (s *Service) ProposeEvent(ctx context.Context, matchID int64, p eligibility.Proposal) ([]model.MatchEvent, error) {
	m, err := s.store.Match(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if p.Team() != m.HomeTeamID && p.Team() != m.AwayTeamID {
		metrics.RecordEventRejection()
		return nil, &eligibility.Rejection{Reasons: []string{"team does not play in this match"}}
	}

	lineup := teamLineup(s.store.Lineup(ctx, matchID), p.Team())
	subs := teamEvents(s.store.Events(ctx, matchID), p.Team())
	onField := onfield.At(lineup, subs, p.ProposedAt())

	if err := eligibility.Validate(p, lineup, onField); err != nil {
		metrics.RecordEventRejection()
		s.log.Info(ctx, "event proposal rejected",
			logger.Int64("match", matchID),
			logger.Int64("team", p.Team()),
			logger.Error(err),
		)
		return nil, err
	}

	rows, err := s.store.AppendEvents(ctx, p.Rows(matchID)...)
	if err != nil {
		return nil, err
	}
	metrics.RecordEventsCommitted(len(rows))
	s.log.Info(ctx, "event committed",
		logger.Int64("match", matchID),
		logger.Int64("team", p.Team()),
		logger.Int("rows", len(rows)),
	)
	return rows, nil
}

// DeleteEvent removes one event row and its pair group. It returns the
// number of rows removed.
func (s *Service) DeleteEvent(ctx context.Context, matchID, eventID int64) (int, error) {
	if _, err := s.store.Match(ctx, matchID); err != nil {
		return 0, err
	}
	n, err := s.store.DeleteEventCascade(ctx, matchID, eventID)
	if err != nil {
		return 0, err
	}
	metrics.RecordEventsDeleted(n)
	return n, nil
}

// Standings computes the ranked league table over all finished matches.
func (s *Service) Standings(ctx context.Context) []standings.Row {
	start := time.Now()
	table := standings.Compute(s.store.Teams(ctx), s.store.Matches(ctx), s.store.EventsByMatch(ctx))
	metrics.RecordStandingsBuild(float64(time.Since(start).Microseconds()) / 1e3)
	return table
}

// TopPlayers ranks players by one metric over the whole league.
func (s *Service) TopPlayers(ctx context.Context, metric playerstats.Metric, limit int) []playerstats.Ranked {
	totals := playerstats.Aggregate(s.store.AllEvents(ctx), s.store.Lineups(ctx))
	return playerstats.TopBy(metric, s.store.Players(ctx), totals, limit)
}

// RefreshGauges pushes current store sizes to the metrics registry.
func (s *Service) RefreshGauges(ctx context.Context) {
	metrics.UpdateStoreCounts(
		len(s.store.Teams(ctx)),
		len(s.store.Matches(ctx)),
		len(s.store.AllEvents(ctx)),
	)
}

func teamLineup(lineup []model.LineupEntry, teamID int64) []model.LineupEntry {
	var out []model.LineupEntry
	for _, lu := range lineup {
		if lu.TeamID == teamID {
			out = append(out, lu)
		}
	}
	return out
}

func teamEvents(events []model.MatchEvent, teamID int64) []model.MatchEvent {
	var out []model.MatchEvent
	for _, e := range events {
		if e.TeamID == teamID {
			out = append(out, e)
		}
	}
	return out
}
