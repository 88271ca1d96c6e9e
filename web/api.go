package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/fwojciec/folio"
)

type turnResponse struct {
	Role string    `json:"role"`
	Text string    `json:"text"`
	Time time.Time `json:"time"`
}

type messagesResponse struct {
	SessionID string         `json:"session_id"`
	Messages  []turnResponse `json:"messages"`
}

type sendRequest struct {
	Text string `json:"text"`
}

type replyResponse struct {
	Role string `json:"role"`
	Text string `json:"text"`
	Kind string `json:"kind"`
}

type sendResponse struct {
	SessionID string         `json:"session_id"`
	Reply     replyResponse  `json:"reply"`
	Messages  []turnResponse `json:"messages"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func toTurnResponses(turns []folio.Turn) []turnResponse {
	out := make([]turnResponse, len(turns))
	for i, t := range turns {
		out[i] = turnResponse{Role: t.Role.String(), Text: t.Text, Time: t.Time}
	}
	return out
}

func (s *Server) listMessages(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(w, r)
	if err != nil {
		s.unavailable(w, err)
		return
	}
	writeJSON(w, http.StatusOK, messagesResponse{
		SessionID: sess.ID(),
		Messages:  toTurnResponses(sess.Messages()),
	})
}

func (s *Server) sendMessage(w http.ResponseWriter, r *http.Request) {
	var req sendRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 64<<10)).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}
	text := strings.TrimSpace(req.Text)
	if text == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "text is required"})
		return
	}

	sess, err := s.session(w, r)
	if err != nil {
		s.unavailable(w, err)
		return
	}
	reply := sess.Submit(r.Context(), text)
	s.logReply(sess, reply)

	t := reply.Turn()
	writeJSON(w, http.StatusOK, sendResponse{
		SessionID: sess.ID(),
		Reply:     replyResponse{Role: t.Role.String(), Text: t.Text, Kind: reply.Kind.String()},
		Messages:  toTurnResponses(sess.Messages()),
	})
}

func (s *Server) resetSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.existingSession(r)
	switch {
	case errors.Is(err, folio.ErrSessionNotFound):
	case err != nil:
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	default:
		s.sessions.Delete(sess.ID())
		s.logger.Debug().Str("session", sess.ID()).Msg("session reset")
	}
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) unavailable(w http.ResponseWriter, err error) {
	s.logger.Error().Err(err).Msg("failed to start session")
	writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "assistant unavailable"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
