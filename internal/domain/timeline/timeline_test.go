package timeline_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/mkovel/pitchside/internal/domain/model"
	"github.com/mkovel/pitchside/internal/domain/timeline"
)

const team int64 = 7

func starters(ids ...int64) []model.LineupEntry {
	out := make([]model.LineupEntry, 0, len(ids))
	for _, id := range ids {
		out = append(out, model.LineupEntry{TeamID: team, PlayerID: id, Starting: true})
	}
	return out
}

func row(id, playerID int64, kind model.EventKind, minute, stoppage int) model.MatchEvent {
	return model.MatchEvent{
		ID: id, TeamID: team, PlayerID: playerID,
		Kind: kind, Minute: minute, Stoppage: stoppage,
	}
}

func TestBuild(t *testing.T) {
	Convey("Given one team's raw match events", t, func() {
		Convey("When a goal and its assist share a time point", func() {
			events := []model.MatchEvent{
				row(1, 10, model.KindGoal, 23, 0),
				row(2, 11, model.KindAssist, 23, 0),
			}
			tl := timeline.Build(starters(10, 11), events)

			Convey("Then they merge into one goal entry", func() {
				So(len(tl.Entries), ShouldEqual, 1)
				goal, ok := tl.Entries[0].(timeline.GoalEntry)
				So(ok, ShouldBeTrue)
				So(goal.ScorerID, ShouldEqual, 10)
				So(goal.AssistID, ShouldEqual, 11)
				So(goal.Penalty, ShouldBeFalse)
			})
		})

		Convey("When the assist row precedes the goal row", func() {
			events := []model.MatchEvent{
				row(1, 11, model.KindAssist, 23, 0),
				row(2, 10, model.KindGoal, 23, 0),
			}
			tl := timeline.Build(starters(10, 11), events)

			Convey("Then the pairing still holds", func() {
				So(len(tl.Entries), ShouldEqual, 1)
				goal := tl.Entries[0].(timeline.GoalEntry)
				So(goal.ScorerID, ShouldEqual, 10)
				So(goal.AssistID, ShouldEqual, 11)
			})
		})

		Convey("When an unrelated row sits between a goal and its assist", func() {
			events := []model.MatchEvent{
				row(1, 10, model.KindGoal, 23, 0),
				row(2, 12, model.KindYellowCard, 23, 0),
				row(3, 11, model.KindAssist, 23, 0),
			}
			tl := timeline.Build(starters(10, 11, 12), events)

			Convey("Then the goal still claims the assist", func() {
				So(len(tl.Entries), ShouldEqual, 2)
				goal := tl.Entries[0].(timeline.GoalEntry)
				So(goal.AssistID, ShouldEqual, 11)
				card := tl.Entries[1].(timeline.CardEntry)
				So(card.PlayerID, ShouldEqual, 12)
			})
		})

		Convey("When a penalty goal is scored without an assist", func() {
			events := []model.MatchEvent{
				row(1, 10, model.KindPenaltyGoal, 67, 0),
			}
			tl := timeline.Build(starters(10), events)

			Convey("Then the entry is a penalty with no assist", func() {
				goal := tl.Entries[0].(timeline.GoalEntry)
				So(goal.Penalty, ShouldBeTrue)
				So(goal.AssistID, ShouldEqual, 0)
			})
		})

		Convey("When an assist has no goal at its time point", func() {
			events := []model.MatchEvent{
				row(1, 11, model.KindAssist, 40, 0),
			}
			tl := timeline.Build(starters(11), events)

			Convey("Then it surfaces as a bare assist entry", func() {
				So(len(tl.Entries), ShouldEqual, 1)
				assist, ok := tl.Entries[0].(timeline.AssistEntry)
				So(ok, ShouldBeTrue)
				So(assist.PlayerID, ShouldEqual, 11)
			})
		})

		Convey("When a substitution pair shares a time point", func() {
			events := []model.MatchEvent{
				row(1, 10, model.KindSubstitution, 60, 0),
				row(2, 20, model.KindSubstitution, 60, 0),
			}
			tl := timeline.Build(starters(10, 11), events)

			Convey("Then the first row is out and the second in", func() {
				So(len(tl.Entries), ShouldEqual, 1)
				swap := tl.Entries[0].(timeline.SubstitutionEntry)
				So(swap.OutID, ShouldEqual, 10)
				So(swap.InID, ShouldEqual, 20)
			})

			Convey("Then the subbed sets record both players", func() {
				So(tl.SubbedOut.Contains(10), ShouldBeTrue)
				So(tl.SubbedIn.Contains(20), ShouldBeTrue)
			})
		})

		Convey("When two substitution pairs land at the same time point", func() {
			events := []model.MatchEvent{
				row(1, 10, model.KindSubstitution, 46, 0),
				row(2, 20, model.KindSubstitution, 46, 0),
				row(3, 11, model.KindSubstitution, 46, 0),
				row(4, 21, model.KindSubstitution, 46, 0),
			}
			tl := timeline.Build(starters(10, 11), events)

			Convey("Then they form two entries in insertion order", func() {
				So(len(tl.Entries), ShouldEqual, 2)
				first := tl.Entries[0].(timeline.SubstitutionEntry)
				second := tl.Entries[1].(timeline.SubstitutionEntry)
				So(first.OutID, ShouldEqual, 10)
				So(first.InID, ShouldEqual, 20)
				So(second.OutID, ShouldEqual, 11)
				So(second.InID, ShouldEqual, 21)
			})
		})

		Convey("When a substitution row has no partner", func() {
			Convey("And the player started the match", func() {
				events := []model.MatchEvent{
					row(1, 10, model.KindSubstitution, 75, 0),
				}
				tl := timeline.Build(starters(10), events)

				Convey("Then it is an outgoing-only swap", func() {
					swap := tl.Entries[0].(timeline.SubstitutionEntry)
					So(swap.OutID, ShouldEqual, 10)
					So(swap.InID, ShouldEqual, 0)
					So(tl.SubbedOut.Contains(10), ShouldBeTrue)
				})
			})

			Convey("And the player was on the bench", func() {
				events := []model.MatchEvent{
					row(1, 20, model.KindSubstitution, 75, 0),
				}
				tl := timeline.Build(starters(10), events)

				Convey("Then it is an incoming-only swap", func() {
					swap := tl.Entries[0].(timeline.SubstitutionEntry)
					So(swap.OutID, ShouldEqual, 0)
					So(swap.InID, ShouldEqual, 20)
					So(tl.SubbedIn.Contains(20), ShouldBeTrue)
				})
			})
		})

		Convey("When a full mixed log is built", func() {
			events := []model.MatchEvent{
				row(1, 10, model.KindGoal, 12, 0),
				row(2, 11, model.KindAssist, 12, 0),
				row(3, 12, model.KindYellowCard, 30, 0),
				row(4, 13, model.KindOwnGoal, 41, 0),
				row(5, 11, model.KindSubstitution, 60, 0),
				row(6, 20, model.KindSubstitution, 60, 0),
				row(7, 12, model.KindRedCard, 77, 0),
			}
			tl := timeline.Build(starters(10, 11, 12, 13), events)

			Convey("Then every row is accounted for in exactly one entry", func() {
				So(len(tl.Entries), ShouldEqual, 5)

				rowsCovered := 0
				for _, entry := range tl.Entries {
					switch e := entry.(type) {
					case timeline.GoalEntry:
						rowsCovered++
						if e.AssistID != 0 {
							rowsCovered++
						}
					case timeline.OwnGoalEntry, timeline.CardEntry, timeline.AssistEntry:
						rowsCovered++
					case timeline.SubstitutionEntry:
						if e.OutID != 0 {
							rowsCovered++
						}
						if e.InID != 0 {
							rowsCovered++
						}
					}
				}
				So(rowsCovered, ShouldEqual, len(events))
			})

			Convey("Then entries come out in time order", func() {
				for i := 1; i < len(tl.Entries); i++ {
					prev, cur := tl.Entries[i-1].At(), tl.Entries[i].At()
					So(cur.Before(prev), ShouldBeFalse)
				}
			})
		})

		Convey("When stoppage time separates two goals in the same minute", func() {
			events := []model.MatchEvent{
				row(1, 10, model.KindGoal, 45, 2),
				row(2, 11, model.KindAssist, 45, 2),
				row(3, 12, model.KindGoal, 45, 0),
			}
			tl := timeline.Build(starters(10, 11, 12), events)

			Convey("Then the assist binds only to the goal at its exact time point", func() {
				So(len(tl.Entries), ShouldEqual, 2)
				first := tl.Entries[0].(timeline.GoalEntry)
				second := tl.Entries[1].(timeline.GoalEntry)
				So(first.ScorerID, ShouldEqual, 12)
				So(first.AssistID, ShouldEqual, 0)
				So(second.ScorerID, ShouldEqual, 10)
				So(second.AssistID, ShouldEqual, 11)
			})
		})
	})
}
