// Package onfield reconstructs which players are on the pitch at a given
// point in a match, from the starting lineup and the substitution log.
package onfield

import "github.com/mkovel/pitchside/internal/domain/model"

// PlayerSet is a set of player identifiers.
type PlayerSet map[int64]struct{}

// Contains reports set membership.
func (s PlayerSet) Contains(id int64) bool {
	_, ok := s[id]
	return ok
}

// At returns the set of players from one team on the field strictly before
// cutoff. It starts from the lineup entries flagged as starting and applies
// substitution groups in (minute, stoppage, insertion id) order.
//
// Rows sharing an identical time point form one group. Within a group each
// player is classified by current-set membership: on field means outgoing,
// otherwise incoming. Row order inside the group carries no meaning. A row
// with no time-matching partner is a singleton group and is applied alone.
// Groups at or after cutoff are not applied; the cutoff is exclusive.
func At(lineup []model.LineupEntry, subs []model.MatchEvent, cutoff model.TimePoint) PlayerSet {
	onField := make(PlayerSet)
	for _, lu := range lineup {
		if lu.Starting {
			onField[lu.PlayerID] = struct{}{}
		}
	}

	ordered := make([]model.MatchEvent, 0, len(subs))
	for _, e := range subs {
		if e.Kind == model.KindSubstitution {
			ordered = append(ordered, e)
		}
	}
	model.SortEvents(ordered)

	for i := 0; i < len(ordered); {
		at := ordered[i].At()
		j := i
		for j < len(ordered) && ordered[j].At() == at {
			j++
		}
		group := ordered[i:j]
		i = j

		if !at.Before(cutoff) {
			break
		}
		applyGroup(onField, group)
	}
	return onField
}

// applyGroup removes the group's outgoing players and adds the incoming
// ones. Classification happens against the set as it was before the group,
// so a swap at one time point never cancels itself out.
func applyGroup(onField PlayerSet, group []model.MatchEvent) {
	var outgoing, incoming []int64
	for _, e := range group {
		if e.PlayerID == 0 {
			continue
		}
		if onField.Contains(e.PlayerID) {
			outgoing = append(outgoing, e.PlayerID)
		} else {
			incoming = append(incoming, e.PlayerID)
		}
	}
	for _, id := range outgoing {
		delete(onField, id)
	}
	for _, id := range incoming {
		onField[id] = struct{}{}
	}
}
