package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/mkovel/pitchside/internal/domain/eligibility"
	"github.com/mkovel/pitchside/internal/domain/model"
)

// EventsHandler handles event submission and deletion.
type EventsHandler struct {
	deps Dependencies
}

// NewEventsHandler creates a new events handler.
func NewEventsHandler(deps Dependencies) *EventsHandler {
	return &EventsHandler{deps: deps}
}

// eventRequest is the POST /matches/{id}/events body. RequestID is an
// optional idempotency key; retries with the same key are acknowledged
// without a second commit.
type eventRequest struct {
	RequestID string `json:"request_id,omitempty"`
	TeamID    int64  `json:"team_id"`
	Kind      string `json:"kind"`
	Minute    int    `json:"minute"`
	Stoppage  int    `json:"stoppage,omitempty"`
	PlayerID  int64  `json:"player_id,omitempty"`
	AssistID  int64  `json:"assist_id,omitempty"`
	OutID     int64  `json:"out_id,omitempty"`
	InID      int64  `json:"in_id,omitempty"`
}

// toProposal maps the wire shape onto a typed proposal. Only shape errors
// are caught here; the eligibility rules run in the service.
func (req eventRequest) toProposal() (eligibility.Proposal, error) {
	if req.TeamID == 0 {
		return nil, errors.New("missing team_id")
	}
	at := model.TimePoint{Minute: req.Minute, Stoppage: req.Stoppage}
	switch req.Kind {
	case "goal", "penalty_goal":
		return eligibility.GoalProposal{
			TeamID:   req.TeamID,
			Time:     at,
			ScorerID: req.PlayerID,
			AssistID: req.AssistID,
			Penalty:  req.Kind == "penalty_goal",
		}, nil
	case "own_goal":
		return eligibility.OwnGoalProposal{TeamID: req.TeamID, Time: at, PlayerID: req.PlayerID}, nil
	case "yellow_card", "red_card":
		return eligibility.CardProposal{
			TeamID:   req.TeamID,
			Time:     at,
			PlayerID: req.PlayerID,
			Red:      req.Kind == "red_card",
		}, nil
	case "substitution":
		return eligibility.SubstitutionProposal{TeamID: req.TeamID, Time: at, OutID: req.OutID, InID: req.InID}, nil
	default:
		return nil, errors.New("unknown event kind: " + req.Kind)
	}
}

type eventAck struct {
	Status    string  `json:"status"`
	RequestID string  `json:"request_id"`
	Duplicate bool    `json:"duplicate"`
	EventIDs  []int64 `json:"event_ids,omitempty"`
}

// HandlePostEvent handles POST /matches/{id}/events requests.
func (h *EventsHandler) HandlePostEvent(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_event"
	matchID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	var req eventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	proposal, err := req.toProposal()
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	requestID := req.RequestID
	if requestID == "" {
		requestID = uuid.NewString()
	} else if h.deps.SeenAndRecord(r.Context(), requestID) {
		writeJSON(w, http.StatusOK, eventAck{Status: "duplicate", RequestID: requestID, Duplicate: true})
		return
	}

	rows, err := h.deps.ProposeEvent(r.Context(), matchID, proposal)
	if err != nil {
		// A rejected or failed proposal must stay retryable under its key.
		if req.RequestID != "" {
			h.deps.Unrecord(r.Context(), requestID)
		}
		var rej *eligibility.Rejection
		if errors.As(err, &rej) {
			writeRejection(w, rej)
			return
		}
		if isNotFound(err) {
			writeError(w, http.StatusNotFound, "not_found", Wrap(op, err))
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}

	ack := eventAck{Status: "committed", RequestID: requestID}
	for _, row := range rows {
		ack.EventIDs = append(ack.EventIDs, row.ID)
	}
	writeJSON(w, http.StatusCreated, ack)
}

type deleteResponse struct {
	Deleted int `json:"deleted"`
}

// HandleDeleteEvent handles DELETE /matches/{id}/events/{eventID}. The
// whole pair group goes with the named row.
func (h *EventsHandler) HandleDeleteEvent(w http.ResponseWriter, r *http.Request) {
	const op = "api.delete_event"
	vars := mux.Vars(r)
	matchID, err := strconv.ParseInt(vars["id"], 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	eventID, err := strconv.ParseInt(vars["eventID"], 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	n, err := h.deps.DeleteEvent(r.Context(), matchID, eventID)
	if err != nil {
		if isNotFound(err) {
			writeError(w, http.StatusNotFound, "not_found", Wrap(op, err))
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, deleteResponse{Deleted: n})
}
