package web

import (
	"html/template"
	"net/http"
	"strings"

	"github.com/fwojciec/folio"
)

type pageTurn struct {
	User    bool
	Warning bool
	Text    string
	HTML    template.HTML
}

type pageData struct {
	Title     string
	ModelName string
	AvatarURI template.URL
	Topics    []string
	Turns     []pageTurn
	Error     string
}

func (s *Server) page(w http.ResponseWriter, r *http.Request) {
	data := pageData{
		Title:     s.config.Title,
		ModelName: s.config.ModelName,
		// The avatar is read from the local assets directory.
		AvatarURI: template.URL(s.config.AvatarURI),
		Topics:    Topics,
	}

	status := http.StatusOK
	sess, err := s.session(w, r)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to start session")
		data.Error = "The assistant is not available right now. Please try again later."
		status = http.StatusServiceUnavailable
	} else {
		data.Turns = pageTurns(sess.Messages())
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := pageTemplate.Execute(w, data); err != nil {
		s.logger.Error().Err(err).Msg("failed to render page")
	}
}

func pageTurns(turns []folio.Turn) []pageTurn {
	out := make([]pageTurn, 0, len(turns))
	for _, t := range turns {
		pt := pageTurn{User: t.Role == folio.RoleUser, Warning: t.Warning(), Text: t.Text}
		if t.Role == folio.RoleAssistant && !pt.Warning {
			pt.HTML = renderMarkdown(t.Text)
		}
		out = append(out, pt)
	}
	return out
}

func (s *Server) chat(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	text := strings.TrimSpace(r.PostFormValue("message"))
	if text != "" {
		sess, err := s.session(w, r)
		if err != nil {
			s.logger.Error().Err(err).Msg("failed to start session")
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		reply := sess.Submit(r.Context(), text)
		s.logReply(sess, reply)
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) logReply(sess *folio.Session, reply folio.Reply) {
	if reply.Failed() {
		s.logger.Warn().Err(reply.Err).Str("session", sess.ID()).Stringer("kind", reply.Kind).Msg("reply failed")
		return
	}
	s.logger.Debug().Str("session", sess.ID()).Stringer("kind", reply.Kind).Msg("reply")
}
