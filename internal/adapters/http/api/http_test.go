package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gorilla/mux"
	. "github.com/smartystreets/goconvey/convey"

	"github.com/mkovel/pitchside/internal/adapters/http/api"
	"github.com/mkovel/pitchside/internal/adapters/repository"
	"github.com/mkovel/pitchside/internal/app"
	"github.com/mkovel/pitchside/internal/domain/model"
)

type testEnv struct {
	router *mux.Router
	match  model.Match
	home   model.Team
	away   model.Team
}

func newTestEnv(ctx context.Context) *testEnv {
	store := repository.NewMemStore(ctx)
	svc := app.New(ctx, app.WithStore(store))

	home, _ := store.PutTeam(ctx, model.Team{Name: "Harbor"})
	away, _ := store.PutTeam(ctx, model.Team{Name: "Summit"})

	players := []model.Player{
		{ID: 1, FirstName: "Ada", LastName: "Veldt", Position: model.Forward},
		{ID: 2, FirstName: "Bram", LastName: "Koster", Position: model.Midfielder},
		{ID: 3, FirstName: "Cato", LastName: "Smit", Position: model.Goalkeeper},
	}
	for _, p := range players {
		store.PutPlayer(ctx, p)
	}
	store.PutRoster(ctx, model.RosterMembership{TeamID: home.ID, PlayerID: 1, Number: 9})
	store.PutRoster(ctx, model.RosterMembership{TeamID: home.ID, PlayerID: 2, Number: 8})
	store.PutRoster(ctx, model.RosterMembership{TeamID: away.ID, PlayerID: 3, Number: 1})

	m, _ := store.PutMatch(ctx, model.Match{
		HomeTeamID: home.ID, AwayTeamID: away.ID,
		Date: time.Date(2026, 4, 12, 16, 0, 0, 0, time.UTC), Status: model.StatusLive,
	})
	store.PutLineup(ctx, model.LineupEntry{MatchID: m.ID, TeamID: home.ID, PlayerID: 1, Starting: true})
	store.PutLineup(ctx, model.LineupEntry{MatchID: m.ID, TeamID: home.ID, PlayerID: 2, Starting: true})
	store.PutLineup(ctx, model.LineupEntry{MatchID: m.ID, TeamID: away.ID, PlayerID: 3, Starting: true})

	router := mux.NewRouter()
	api.NewServer(svc, 50).Register(ctx, router)
	return &testEnv{router: router, match: m, home: home, away: away}
}

func (e *testEnv) do(method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decode(rec *httptest.ResponseRecorder) map[string]any {
	var out map[string]any
	So(json.Unmarshal(rec.Body.Bytes(), &out), ShouldBeNil)
	return out
}

func TestHealth(t *testing.T) {
	Convey("Given the API router", t, func() {
		env := newTestEnv(context.Background())

		Convey("When the health endpoint is hit", func() {
			rec := env.do(http.MethodGet, "/healthz", nil)

			Convey("Then it answers ok", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				So(decode(rec)["status"], ShouldEqual, "ok")
			})
		})

		Convey("When the metrics endpoint is hit", func() {
			rec := env.do(http.MethodGet, "/metrics", nil)

			Convey("Then the exposition format comes back", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
			})
		})
	})
}

func TestPostEvent(t *testing.T) {
	Convey("Given a live match", t, func() {
		ctx := context.Background()
		env := newTestEnv(ctx)
		path := "/matches/" + itoa(env.match.ID) + "/events"

		Convey("When a valid goal is posted", func() {
			rec := env.do(http.MethodPost, path, map[string]any{
				"team_id": env.home.ID, "kind": "goal", "minute": 23,
				"player_id": 1, "assist_id": 2,
			})

			Convey("Then both rows are committed", func() {
				So(rec.Code, ShouldEqual, http.StatusCreated)
				body := decode(rec)
				So(body["status"], ShouldEqual, "committed")
				So(len(body["event_ids"].([]any)), ShouldEqual, 2)
				So(body["request_id"], ShouldNotBeEmpty)
			})
		})

		Convey("When the same request ID is posted twice", func() {
			payload := map[string]any{
				"request_id": "req-42", "team_id": env.home.ID,
				"kind": "goal", "minute": 23, "player_id": 1,
			}
			first := env.do(http.MethodPost, path, payload)
			second := env.do(http.MethodPost, path, payload)

			Convey("Then the retry is acknowledged without a second commit", func() {
				So(first.Code, ShouldEqual, http.StatusCreated)
				So(second.Code, ShouldEqual, http.StatusOK)
				So(decode(second)["duplicate"], ShouldEqual, true)

				list := env.do(http.MethodGet, "/matches/"+itoa(env.match.ID), nil)
				So(list.Code, ShouldEqual, http.StatusOK)
			})
		})

		Convey("When a rejected request ID is retried after correction", func() {
			bad := map[string]any{
				"request_id": "req-43", "team_id": env.home.ID,
				"kind": "goal", "minute": 120, "player_id": 1,
			}
			first := env.do(http.MethodPost, path, bad)

			good := map[string]any{
				"request_id": "req-43", "team_id": env.home.ID,
				"kind": "goal", "minute": 20, "player_id": 1,
			}
			second := env.do(http.MethodPost, path, good)

			Convey("Then the rejection did not burn the ID", func() {
				So(first.Code, ShouldEqual, http.StatusUnprocessableEntity)
				So(second.Code, ShouldEqual, http.StatusCreated)
			})
		})

		Convey("When an ineligible event is posted", func() {
			rec := env.do(http.MethodPost, path, map[string]any{
				"team_id": env.home.ID, "kind": "goal", "minute": 95, "player_id": 3,
			})

			Convey("Then all violated rules come back", func() {
				So(rec.Code, ShouldEqual, http.StatusUnprocessableEntity)
				body := decode(rec)
				So(body["code"], ShouldEqual, "rejected")
				So(len(body["reasons"].([]any)), ShouldEqual, 2)
			})
		})

		Convey("When the event kind is unknown", func() {
			rec := env.do(http.MethodPost, path, map[string]any{
				"team_id": env.home.ID, "kind": "throw_in", "minute": 10, "player_id": 1,
			})

			Convey("Then the request is rejected as malformed", func() {
				So(rec.Code, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When the match does not exist", func() {
			rec := env.do(http.MethodPost, "/matches/999/events", map[string]any{
				"team_id": env.home.ID, "kind": "goal", "minute": 10, "player_id": 1,
			})

			Convey("Then it answers not found", func() {
				So(rec.Code, ShouldEqual, http.StatusNotFound)
			})
		})
	})
}

func TestDeleteEvent(t *testing.T) {
	Convey("Given a committed goal with assist", t, func() {
		ctx := context.Background()
		env := newTestEnv(ctx)
		path := "/matches/" + itoa(env.match.ID) + "/events"

		rec := env.do(http.MethodPost, path, map[string]any{
			"team_id": env.home.ID, "kind": "goal", "minute": 23,
			"player_id": 1, "assist_id": 2,
		})
		So(rec.Code, ShouldEqual, http.StatusCreated)
		ids := decode(rec)["event_ids"].([]any)
		goalID := itoa(int64(ids[0].(float64)))

		Convey("When the goal row is deleted", func() {
			del := env.do(http.MethodDelete, path+"/"+goalID, nil)

			Convey("Then the cascade count comes back", func() {
				So(del.Code, ShouldEqual, http.StatusOK)
				So(decode(del)["deleted"], ShouldEqual, 2)
			})
		})

		Convey("When an unknown event is deleted", func() {
			del := env.do(http.MethodDelete, path+"/999", nil)

			Convey("Then it answers not found", func() {
				So(del.Code, ShouldEqual, http.StatusNotFound)
			})
		})
	})
}

func TestReadEndpoints(t *testing.T) {
	Convey("Given a league with one live match", t, func() {
		ctx := context.Background()
		env := newTestEnv(ctx)
		path := "/matches/" + itoa(env.match.ID) + "/events"
		rec := env.do(http.MethodPost, path, map[string]any{
			"team_id": env.home.ID, "kind": "goal", "minute": 23, "player_id": 1, "assist_id": 2,
		})
		So(rec.Code, ShouldEqual, http.StatusCreated)

		Convey("When the standings are fetched", func() {
			rec := env.do(http.MethodGet, "/standings", nil)

			Convey("Then every team has a ranked row", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				var rows []map[string]any
				So(json.Unmarshal(rec.Body.Bytes(), &rows), ShouldBeNil)
				So(len(rows), ShouldEqual, 2)
				So(rows[0]["rank"], ShouldEqual, 1)
			})
		})

		Convey("When the match list is fetched", func() {
			rec := env.do(http.MethodGet, "/matches", nil)
			So(rec.Code, ShouldEqual, http.StatusOK)
		})

		Convey("When the match detail is fetched", func() {
			rec := env.do(http.MethodGet, "/matches/"+itoa(env.match.ID), nil)

			Convey("Then the reconstructed state comes back", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				body := decode(rec)
				So(body["home"], ShouldNotBeNil)
				So(body["away"], ShouldNotBeNil)
			})
		})

		Convey("When an unknown match detail is fetched", func() {
			rec := env.do(http.MethodGet, "/matches/999", nil)
			So(rec.Code, ShouldEqual, http.StatusNotFound)
		})

		Convey("When player stats are fetched", func() {
			rec := env.do(http.MethodGet, "/players/1/stats", nil)

			Convey("Then totals and team context come back", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				body := decode(rec)
				totals := body["totals"].(map[string]any)
				So(totals["goals"], ShouldEqual, 1)
				So(body["team_name"], ShouldEqual, "Harbor")
			})
		})

		Convey("When stats for an unknown player are fetched", func() {
			rec := env.do(http.MethodGet, "/players/999/stats", nil)
			So(rec.Code, ShouldEqual, http.StatusNotFound)
		})

		Convey("When the top list is fetched", func() {
			rec := env.do(http.MethodGet, "/stats/top?metric=goals", nil)

			Convey("Then the scorer leads", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				body := decode(rec)
				players := body["players"].([]any)
				So(len(players), ShouldEqual, 1)
				first := players[0].(map[string]any)
				So(first["player_id"], ShouldEqual, 1)
			})
		})

		Convey("When the top list metric is unknown", func() {
			rec := env.do(http.MethodGet, "/stats/top?metric=tackles", nil)
			So(rec.Code, ShouldEqual, http.StatusBadRequest)
		})
	})
}

func itoa(v int64) string {
	return strconv.FormatInt(v, 10)
}
