package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/thenoetrevino/carril/internal/models"
	"github.com/thenoetrevino/carril/internal/services/client"
)

// errInvalidBody is returned when the request body is not valid JSON
var errInvalidBody = errors.New("invalid request body")

// errorBody is the structured error payload every failure maps to
type errorBody struct {
	Message     string `json:"message"`
	LongMessage string `json:"long_message"`
}

// updateClientBody is the accepted PUT payload. Priority stays a raw
// message so that any scalar survives decoding and non-integer values
// surface as an invalid-priority error instead of a generic decode failure.
type updateClientBody struct {
	Status   *string          `json:"status"`
	Priority *json.RawMessage `json:"priority"`
}

// priorityNumber converts the raw priority value into number text for
// validation. String values are unquoted first, so "3" passes and "abc"
// fails on content rather than on JSON shape.
func priorityNumber(raw json.RawMessage) json.Number {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return json.Number(s)
	}
	return json.Number(raw)
}

// handleListClients serves GET /clients, optionally filtered by ?status=
func (s *Server) handleListClients(w http.ResponseWriter, r *http.Request) {
	rawStatus := r.URL.Query().Get("status")

	var (
		clients []*models.Client
		err     error
	)
	if rawStatus == "" {
		clients, err = s.clients.ListClients(r.Context())
	} else {
		clients, err = s.clients.ListClientsByStatus(r.Context(), rawStatus)
	}
	if err != nil {
		s.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, clientList(clients))
}

// handleGetClient serves GET /clients/{id}.
// An invalid id short-circuits the response with the error body alone.
func (s *Server) handleGetClient(w http.ResponseWriter, r *http.Request) {
	target, err := s.clients.GetClient(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, target)
}

// handleUpdateClient serves PUT /clients/{id}: applies the status/priority
// change, rebalances lane positions, and responds with the full client list
func (s *Server) handleUpdateClient(w http.ResponseWriter, r *http.Request) {
	var body updateClientBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.writeError(w, decodeError(err))
		return
	}

	var priority *json.Number
	if body.Priority != nil {
		n := priorityNumber(*body.Priority)
		priority = &n
	}

	clients, err := s.clients.UpdateClient(r.Context(), client.UpdateClientRequest{
		ClientID: r.PathValue("id"),
		Status:   body.Status,
		Priority: priority,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.metrics.IncUpdatesTotal()
	writeJSON(w, http.StatusOK, clientList(clients))
}

// handleHealthz serves a liveness probe
func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleMetrics serves a JSON snapshot of the server counters
func (s *Server) handleMetrics(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.metrics.GetSnapshot())
}

// decodeError maps JSON decode failures onto the field-specific error
// kinds. Priority never produces a type error because it is captured raw
// and rejected by validation instead.
func decodeError(err error) error {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field == "status" {
		return client.ErrInvalidStatus
	}
	return errInvalidBody
}

// writeError translates an error into its status code and structured body
func (s *Server) writeError(w http.ResponseWriter, err error) {
	s.metrics.IncErrorsTotal()

	status, body := errorResponse(err)
	if status == http.StatusInternalServerError {
		slog.Error("request failed", "error", err)
	}
	writeJSON(w, status, body)
}

// errorResponse maps each error kind to a status code plus short and long
// human-readable messages
func errorResponse(err error) (int, errorBody) {
	switch {
	case errors.Is(err, client.ErrInvalidID):
		return http.StatusBadRequest, errorBody{
			Message:     "invalid id",
			LongMessage: "The id provided does not match any client. Check the id and try again.",
		}
	case errors.Is(err, client.ErrInvalidStatus):
		return http.StatusBadRequest, errorBody{
			Message:     "invalid status",
			LongMessage: "Status must be one of backlog, in-progress, or complete.",
		}
	case errors.Is(err, client.ErrInvalidPriority):
		return http.StatusBadRequest, errorBody{
			Message:     "invalid priority",
			LongMessage: "Priority must be an integer. Lower values are more urgent.",
		}
	case errors.Is(err, client.ErrClientNotFound):
		return http.StatusNotFound, errorBody{
			Message:     "client not found",
			LongMessage: "No client with that id exists. It may have been removed.",
		}
	case errors.Is(err, errInvalidBody):
		return http.StatusBadRequest, errorBody{
			Message:     "invalid request body",
			LongMessage: "The request body could not be parsed as JSON.",
		}
	default:
		return http.StatusInternalServerError, errorBody{
			Message:     "internal error",
			LongMessage: "Something went wrong while processing the request.",
		}
	}
}

// clientList guarantees an empty lane encodes as [] rather than null
func clientList(clients []*models.Client) []*models.Client {
	if clients == nil {
		return []*models.Client{}
	}
	return clients
}

// writeJSON writes a JSON response with the given status code
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
