package report_test

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/mkovel/pitchside/internal/adapters/report"
	"github.com/mkovel/pitchside/internal/adapters/repository"
	"github.com/mkovel/pitchside/internal/domain/model"
)

func seedLeague(ctx context.Context) *repository.MemStore {
	store := repository.NewMemStore(ctx)

	coach, _ := store.PutCoach(ctx, model.Coach{FirstName: "Iva", LastName: "Lenz"})
	home, _ := store.PutTeam(ctx, model.Team{Name: "Harbor", City: "Westport", CoachID: coach.ID})
	away, _ := store.PutTeam(ctx, model.Team{Name: "Summit", City: "Eastvale"})

	ada, _ := store.PutPlayer(ctx, model.Player{
		FirstName: "Ada", LastName: "Veldt", Position: model.Forward,
		BirthDate: time.Date(1999, 7, 3, 0, 0, 0, 0, time.UTC),
	})
	store.PutRoster(ctx, model.RosterMembership{TeamID: home.ID, PlayerID: ada.ID, Number: 9})

	finished, _ := store.PutMatch(ctx, model.Match{
		HomeTeamID: home.ID, AwayTeamID: away.ID,
		Date: time.Date(2026, 4, 12, 16, 0, 0, 0, time.UTC), Status: model.StatusFinished,
	})
	store.PutMatch(ctx, model.Match{
		HomeTeamID: away.ID, AwayTeamID: home.ID,
		Date: time.Date(2026, 5, 1, 16, 0, 0, 0, time.UTC), Status: model.StatusScheduled,
	})
	store.AppendEvents(ctx, model.MatchEvent{
		MatchID: finished.ID, TeamID: home.ID, PlayerID: ada.ID, Kind: model.KindGoal, Minute: 23,
	})
	return store
}

func lines(buf *bytes.Buffer) []string {
	return strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
}

func TestReports(t *testing.T) {
	Convey("Given a seeded league", t, func() {
		ctx := context.Background()
		store := seedLeague(ctx)

		Convey("When the players report is rendered", func() {
			var buf bytes.Buffer
			So(report.Players(ctx, store, &buf), ShouldBeNil)
			out := lines(&buf)

			Convey("Then it has a header and one tab-separated row", func() {
				So(len(out), ShouldEqual, 2)
				So(out[0], ShouldEqual, "id\tfirst_name\tlast_name\tposition\tbirth_date\tteam\tnumber")
				cols := strings.Split(out[1], "\t")
				So(cols[1], ShouldEqual, "Ada")
				So(cols[4], ShouldEqual, "1999-07-03")
				So(cols[5], ShouldEqual, "Harbor")
				So(cols[6], ShouldEqual, "9")
			})
		})

		Convey("When the teams report is rendered", func() {
			var buf bytes.Buffer
			So(report.Teams(ctx, store, &buf), ShouldBeNil)
			out := lines(&buf)

			Convey("Then teams come out by name with their coach", func() {
				So(len(out), ShouldEqual, 3)
				harbor := strings.Split(out[1], "\t")
				So(harbor[1], ShouldEqual, "Harbor")
				So(harbor[2], ShouldEqual, "Westport")
				So(harbor[3], ShouldEqual, "Iva Lenz")
				So(strings.Split(out[2], "\t")[3], ShouldBeEmpty)
			})
		})

		Convey("When the matches report is rendered", func() {
			var buf bytes.Buffer
			So(report.Matches(ctx, store, &buf), ShouldBeNil)
			out := lines(&buf)

			Convey("Then newest first, scheduled with a blank score", func() {
				So(len(out), ShouldEqual, 3)
				So(strings.Split(out[1], "\t")[5], ShouldEqual, "-:-")
				So(strings.Split(out[2], "\t")[5], ShouldEqual, "1:0")
			})
		})

		Convey("When the standings report is rendered", func() {
			var buf bytes.Buffer
			So(report.Standings(ctx, store, &buf), ShouldBeNil)
			out := lines(&buf)

			Convey("Then the winner leads the ranked table", func() {
				So(len(out), ShouldEqual, 3)
				top := strings.Split(out[1], "\t")
				So(top[0], ShouldEqual, "1")
				So(top[1], ShouldEqual, "Harbor")
				So(top[9], ShouldEqual, "3")
			})
		})
	})
}
