// Package report renders league data as tab-separated exports, one writer
// per report kind. The output is plain TSV with a header line, suitable for
// spreadsheets and downstream scripts.
package report

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/mkovel/pitchside/internal/adapters/repository"
	"github.com/mkovel/pitchside/internal/domain/model"
	"github.com/mkovel/pitchside/internal/domain/score"
	"github.com/mkovel/pitchside/internal/domain/standings"
)

const dateOnly = "2006-01-02"

// Players writes one line per player: identity, position, birth date and
// current roster slot.
func Players(ctx context.Context, store repository.Store, w io.Writer) error {
	teams := make(map[int64]model.Team)
	for _, t := range store.Teams(ctx) {
		teams[t.ID] = t
	}
	rosterOf := make(map[int64]model.RosterMembership)
	for _, r := range store.Rosters(ctx) {
		rosterOf[r.PlayerID] = r
	}

	players := store.Players(ctx)
	sort.Slice(players, func(i, j int) bool { return players[i].ID < players[j].ID })

	if _, err := fmt.Fprintln(w, "id\tfirst_name\tlast_name\tposition\tbirth_date\tteam\tnumber"); err != nil {
		return err
	}
	for _, p := range players {
		birth := ""
		if !p.BirthDate.IsZero() {
			birth = p.BirthDate.Format(dateOnly)
		}
		teamName, number := "", ""
		if r, ok := rosterOf[p.ID]; ok {
			teamName = teams[r.TeamID].Name
			if r.Number != 0 {
				number = strconv.Itoa(r.Number)
			}
		}
		if _, err := fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			p.ID, p.FirstName, p.LastName, p.Position, birth, teamName, number); err != nil {
			return err
		}
	}
	return nil
}

// Teams writes one line per team with its city and coach.
func Teams(ctx context.Context, store repository.Store, w io.Writer) error {
	coaches := make(map[int64]model.Coach)
	for _, c := range store.Coaches(ctx) {
		coaches[c.ID] = c
	}

	teams := store.Teams(ctx)
	sort.Slice(teams, func(i, j int) bool { return teams[i].Name < teams[j].Name })

	if _, err := fmt.Fprintln(w, "id\tname\tcity\tcoach"); err != nil {
		return err
	}
	for _, t := range teams {
		coach := ""
		if c, ok := coaches[t.CoachID]; ok {
			coach = c.FirstName + " " + c.LastName
		}
		if _, err := fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", t.ID, t.Name, t.City, coach); err != nil {
			return err
		}
	}
	return nil
}

// Matches writes one line per match, newest first. Scheduled matches show
// the score as "-:-".
func Matches(ctx context.Context, store repository.Store, w io.Writer) error {
	teams := make(map[int64]model.Team)
	for _, t := range store.Teams(ctx) {
		teams[t.ID] = t
	}
	eventsByMatch := store.EventsByMatch(ctx)

	matches := store.Matches(ctx)
	sort.Slice(matches, func(i, j int) bool { return matches[j].Date.Before(matches[i].Date) })

	if _, err := fmt.Fprintln(w, "id\tdate\thome\taway\tstatus\tscore"); err != nil {
		return err
	}
	for _, m := range matches {
		tally := "-:-"
		if m.Status != model.StatusScheduled {
			res := score.Compute(m.HomeTeamID, m.AwayTeamID, eventsByMatch[m.ID])
			tally = fmt.Sprintf("%d:%d", res.Home, res.Away)
		}
		if _, err := fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
			m.ID, m.Date.Format(dateOnly), teams[m.HomeTeamID].Name, teams[m.AwayTeamID].Name, m.Status, tally); err != nil {
			return err
		}
	}
	return nil
}

// Standings writes the ranked league table over all finished matches.
func Standings(ctx context.Context, store repository.Store, w io.Writer) error {
	table := standings.Compute(store.Teams(ctx), store.Matches(ctx), store.EventsByMatch(ctx))

	if _, err := fmt.Fprintln(w, "rank\tteam\tplayed\twon\tdrawn\tlost\tgf\tga\tgd\tpoints"); err != nil {
		return err
	}
	for i, row := range table {
		if _, err := fmt.Fprintf(w, "%d\t%s\t%d\t%d\t%d\t%d\t%d\t%d\t%d\t%d\n",
			i+1, row.TeamName, row.Played, row.Won, row.Drawn, row.Lost,
			row.GoalsFor, row.GoalsAgainst, row.GoalDifference(), row.Points); err != nil {
			return err
		}
	}
	return nil
}
