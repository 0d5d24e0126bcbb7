package server

import (
	"encoding/json"
	"net/http"

	"github.com/sooperboring/content-studio/internal/catalog"
	"github.com/sooperboring/content-studio/internal/validation"
)

// createSessionRequest opens an editing session. RecordID is empty for a
// new draft.
type createSessionRequest struct {
	Type     string `json:"type"`
	RecordID string `json:"record_id,omitempty"`
}

// sessionState is the client-visible state of an editing session.
type sessionState struct {
	SessionID string         `json:"session_id"`
	Type      string         `json:"type"`
	RecordID  string         `json:"record_id,omitempty"`
	Dirty     bool           `json:"dirty"`
	Snapshot  map[string]any `json:"snapshot"`
}

func (s *Server) sessionState(es *editSession) sessionState {
	return sessionState{
		SessionID: es.id,
		Type:      es.typ.Name,
		RecordID:  es.draft.ID(),
		Dirty:     es.draft.Dirty(),
		Snapshot:  es.draft.Snapshot(),
	}
}

// handleCreateSession opens an editing session for a new or existing record.
func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	typ, ok := catalog.ByName(req.Type)
	if !ok {
		s.failResponse(w, &ErrUnknownType{Name: req.Type})
		return
	}

	es, err := s.sessions.Create(r.Context(), typ, req.RecordID)
	if err != nil {
		s.failResponse(w, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, s.sessionState(es))
}

// handleSessionState returns the current draft state.
func (s *Server) handleSessionState(w http.ResponseWriter, r *http.Request) {
	es, err := s.sessions.Get(r.PathValue("id"))
	if err != nil {
		s.failResponse(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, s.sessionState(es))
}

// handleSetField mutates one field of the draft.
func (s *Server) handleSetField(w http.ResponseWriter, r *http.Request) {
	es, err := s.sessions.Get(r.PathValue("id"))
	if err != nil {
		s.failResponse(w, err)
		return
	}

	var req struct {
		Field string `json:"field"`
		Value any    `json:"value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Field == "" {
		s.errorResponse(w, http.StatusBadRequest, "field is required")
		return
	}

	es.draft.Set(req.Field, req.Value)
	s.jsonResponse(w, http.StatusOK, s.sessionState(es))
}

// handleCommit validates the draft against its schema and persists it.
func (s *Server) handleCommit(w http.ResponseWriter, r *http.Request) {
	es, err := s.sessions.Get(r.PathValue("id"))
	if err != nil {
		s.failResponse(w, err)
		return
	}

	if err := validation.ValidateRecord(es.typ, es.draft.Snapshot()); err != nil {
		s.failResponse(w, err)
		return
	}
	if err := es.draft.Commit(r.Context()); err != nil {
		s.failResponse(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, s.sessionState(es))
}

// handleCloseSession ends a session. Closing a dirty session requires
// ?save=true or ?discard=true; otherwise 409 so edits are never silently
// dropped.
func (s *Server) handleCloseSession(w http.ResponseWriter, r *http.Request) {
	save := r.URL.Query().Get("save") == "true"
	discard := r.URL.Query().Get("discard") == "true"

	if err := s.sessions.Close(r.Context(), r.PathValue("id"), save, discard); err != nil {
		s.failResponse(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "closed"})
}

// handleAddEntry appends a sub-record to a list field.
func (s *Server) handleAddEntry(w http.ResponseWriter, r *http.Request) {
	es, err := s.sessions.Get(r.PathValue("id"))
	if err != nil {
		s.failResponse(w, err)
		return
	}

	entry := es.draft.AddEntry(r.PathValue("field"))
	s.jsonResponse(w, http.StatusCreated, entry)
}

// handleUpdateEntry mutates one field of a list entry.
func (s *Server) handleUpdateEntry(w http.ResponseWriter, r *http.Request) {
	es, err := s.sessions.Get(r.PathValue("id"))
	if err != nil {
		s.failResponse(w, err)
		return
	}

	var req struct {
		Field string `json:"field"`
		Value any    `json:"value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if err := es.draft.UpdateEntry(r.PathValue("field"), r.PathValue("entry_id"), req.Field, req.Value); err != nil {
		s.failResponse(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, s.sessionState(es))
}

// handleRemoveEntry deletes a list entry.
func (s *Server) handleRemoveEntry(w http.ResponseWriter, r *http.Request) {
	es, err := s.sessions.Get(r.PathValue("id"))
	if err != nil {
		s.failResponse(w, err)
		return
	}

	if err := es.draft.RemoveEntry(r.PathValue("field"), r.PathValue("entry_id")); err != nil {
		s.failResponse(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, s.sessionState(es))
}

// handleListSkills returns the session's selected skills.
func (s *Server) handleListSkills(w http.ResponseWriter, r *http.Request) {
	es, err := s.sessions.Get(r.PathValue("id"))
	if err != nil {
		s.failResponse(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"skills": es.picker.Selected()})
}

// handleAddSkill adds one skill and writes the list through to the draft.
func (s *Server) handleAddSkill(w http.ResponseWriter, r *http.Request) {
	es, err := s.sessions.Get(r.PathValue("id"))
	if err != nil {
		s.failResponse(w, err)
		return
	}

	var req struct {
		Skill string `json:"skill"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	added := es.picker.Add(req.Skill)
	if added {
		es.picker.Apply(es.draft)
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"added": added, "skills": es.picker.Selected()})
}

// handleRemoveSkill removes one skill and writes the list through.
func (s *Server) handleRemoveSkill(w http.ResponseWriter, r *http.Request) {
	es, err := s.sessions.Get(r.PathValue("id"))
	if err != nil {
		s.failResponse(w, err)
		return
	}

	var req struct {
		Skill string `json:"skill"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	removed := es.picker.Remove(req.Skill)
	if removed {
		es.picker.Apply(es.draft)
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"removed": removed, "skills": es.picker.Selected()})
}

// handleSuggestSkills returns taxonomy matches for ?q=.
func (s *Server) handleSuggestSkills(w http.ResponseWriter, r *http.Request) {
	es, err := s.sessions.Get(r.PathValue("id"))
	if err != nil {
		s.failResponse(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"suggestions": es.picker.Suggest(r.URL.Query().Get("q")),
	})
}
