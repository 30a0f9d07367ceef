package dashboard

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	gderrors "github.com/graphdeck/graphdeck/pkg/errors"
	"github.com/graphdeck/graphdeck/pkg/graph"
	"github.com/graphdeck/graphdeck/pkg/observability"
	"github.com/graphdeck/graphdeck/pkg/scene"
	"github.com/graphdeck/graphdeck/pkg/session"
)

// maxEventBody bounds interaction event payloads.
const maxEventBody = 1 << 16

// sessionFor resolves the session for a request. A missing, expired, or
// unknown session cookie yields a fresh session with the server defaults,
// persisted and set as a cookie on the response.
func (s *Server) sessionFor(w http.ResponseWriter, r *http.Request) (*session.Session, error) {
	if cookie, err := r.Cookie(sessionCookie); err == nil {
		sess, err := s.store.Get(r.Context(), cookie.Value)
		if err == nil {
			return sess, nil
		}
		if !errors.Is(err, session.ErrNotFound) {
			return nil, err
		}
	}

	sess := session.New(s.defaults)
	if err := s.store.Set(r.Context(), sess); err != nil {
		return nil, err
	}
	observability.Sessions().OnSessionCreated(r.Context(), sess.ID)
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    sess.ID,
		Path:     "/",
		Expires:  sess.ExpiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return sess, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps domain error codes onto HTTP status codes and emits a
// JSON error body.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	code := gderrors.GetCode(err)
	switch code {
	case gderrors.ErrCodeInvalidParameter,
		gderrors.ErrCodeMalformedGraph,
		gderrors.ErrCodeUnknownNode,
		gderrors.ErrCodeInvalidLayout,
		gderrors.ErrCodeInvalidFormat:
		status = http.StatusBadRequest
	case gderrors.ErrCodeSessionNotFound:
		status = http.StatusNotFound
	}
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "error", err)
	}
	writeJSON(w, status, map[string]string{
		"code":  string(code),
		"error": gderrors.UserMessage(err),
	})
}

// decodeEvent reads a bounded JSON body into dst. An empty body is allowed
// and leaves dst at its zero value.
func decodeEvent(r *http.Request, dst any) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxEventBody))
	if err != nil {
		return gderrors.Wrap(gderrors.ErrCodeInvalidParameter, err, "reading event body")
	}
	if len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return gderrors.Wrap(gderrors.ErrCodeInvalidParameter, err, "event body is not valid JSON")
	}
	return nil
}

// respondScene rebuilds and returns the scene for the session's current
// state. Every read and every event handler funnels through here so the
// widget always renders a consistent snapshot.
func (s *Server) respondScene(w http.ResponseWriter, sess *session.Session) {
	sc := scene.Build(s.graph, sess, sess.ColorAttr)
	writeJSON(w, http.StatusOK, sc)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"nodes":  s.graph.NodeCount(),
		"edges":  s.graph.EdgeCount(),
	})
}

func (s *Server) handleScene(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessionFor(w, r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.respondScene(w, sess)
}

func (s *Server) handleGraph(w http.ResponseWriter, r *http.Request) {
	data, err := s.graph.Marshal()
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(data)
}

// handleMeta reports the graph shape plus the knobs the control widgets
// need: available layouts, categorical attributes for coloring/filtering,
// and the distinct values per categorical attribute.
func (s *Server) handleMeta(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessionFor(w, r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	categorical := s.graph.CategoricalAttributes()
	values := make(map[string][]string, len(categorical))
	for _, attr := range categorical {
		var texts []string
		for _, v := range s.graph.AttributeValues(attr) {
			texts = append(texts, v.Text())
		}
		values[attr] = texts
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"directed":         s.graph.Directed(),
		"nodes":            s.graph.NodeCount(),
		"edges":            s.graph.EdgeCount(),
		"layouts":          scene.Layouts(),
		"categorical":      categorical,
		"attribute_values": values,
		"session": map[string]any{
			"layout":        sess.Layout,
			"color_attr":    sess.ColorAttr,
			"neighbor_mode": sess.NeighborMode,
			"selection":     sess.Selection.IDs(),
			"filter":        sess.Filter,
		},
	})
}

// handleNodeClick toggles the clicked node's membership in the selection.
func (s *Server) handleNodeClick(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessionFor(w, r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	var event struct {
		ID string `json:"id"`
	}
	if err := decodeEvent(r, &event); err != nil {
		s.writeError(w, err)
		return
	}

	if err := sess.Selection.Toggle(s.graph, event.ID); err != nil {
		s.writeError(w, err)
		return
	}
	if err := s.store.Set(r.Context(), sess); err != nil {
		s.writeError(w, err)
		return
	}
	s.respondScene(w, sess)
}

func (s *Server) handleClearSelection(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessionFor(w, r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	sess.Selection.Clear()
	if err := s.store.Set(r.Context(), sess); err != nil {
		s.writeError(w, err)
		return
	}
	s.respondScene(w, sess)
}

// handleFilter sets or clears the attribute filter. A null value (or an
// empty attribute) clears the filter.
func (s *Server) handleFilter(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessionFor(w, r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	var event struct {
		Attr  string       `json:"attr"`
		Value *graph.Value `json:"value"`
	}
	if err := decodeEvent(r, &event); err != nil {
		s.writeError(w, err)
		return
	}

	if event.Attr == "" || event.Value == nil {
		sess.Filter.Clear()
	} else {
		sess.Filter.Set(event.Attr, s.resolveFilterValue(event.Attr, *event.Value))
	}
	if err := s.store.Set(r.Context(), sess); err != nil {
		s.writeError(w, err)
		return
	}
	s.respondScene(w, sess)
}

// resolveFilterValue recovers the typed attribute value behind a posted
// filter value. The control widget round-trips values through /api/meta as
// display text, so a numeric or bool attribute comes back as a string;
// matching by Text against the attribute's actual values restores the
// original kind before the kind-sensitive filter comparison.
func (s *Server) resolveFilterValue(attr string, posted graph.Value) graph.Value {
	text := posted.Text()
	for _, v := range s.graph.AttributeValues(attr) {
		if v.Text() == text {
			return v
		}
	}
	return posted
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessionFor(w, r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	var event struct {
		Layout string `json:"layout"`
	}
	if err := decodeEvent(r, &event); err != nil {
		s.writeError(w, err)
		return
	}

	layout, err := scene.ParseLayout(event.Layout)
	if err != nil {
		s.writeError(w, err)
		return
	}

	sess.Layout = string(layout)
	if err := s.store.Set(r.Context(), sess); err != nil {
		s.writeError(w, err)
		return
	}
	s.respondScene(w, sess)
}

// handleColor switches the coloring attribute. Only categorical attributes
// of the loaded graph are accepted; an empty attribute disables coloring.
func (s *Server) handleColor(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessionFor(w, r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	var event struct {
		Attr string `json:"attr"`
	}
	if err := decodeEvent(r, &event); err != nil {
		s.writeError(w, err)
		return
	}

	if event.Attr != "" {
		found := false
		for _, attr := range s.graph.CategoricalAttributes() {
			if attr == event.Attr {
				found = true
				break
			}
		}
		if !found {
			s.writeError(w, gderrors.New(gderrors.ErrCodeInvalidParameter,
				"attribute %q is not a categorical node attribute", event.Attr))
			return
		}
	}

	sess.ColorAttr = event.Attr
	if err := s.store.Set(r.Context(), sess); err != nil {
		s.writeError(w, err)
		return
	}
	s.respondScene(w, sess)
}
