package server

import (
	"net/http"

	"github.com/sooperboring/content-studio/internal/browse"
	"github.com/sooperboring/content-studio/internal/catalog"
	"github.com/sooperboring/content-studio/internal/record"
)

// contentItem is one row of the manager list: the raw record plus the
// derived display fields.
type contentItem struct {
	Record    record.Record `json:"record"`
	Title     string        `json:"title"`
	Subtitle  string        `json:"subtitle"`
	Thumbnail string        `json:"thumbnail"`
}

// handleListContent lists records of one type, newest first, optionally
// narrowed by ?q=.
func (s *Server) handleListContent(w http.ResponseWriter, r *http.Request) {
	typ, ok := catalog.ByName(r.PathValue("type"))
	if !ok {
		s.failResponse(w, &ErrUnknownType{Name: r.PathValue("type")})
		return
	}

	b := browse.New(s.svc, typ)
	b.Fetch(r.Context(), r.URL.Query().Get("q"))
	if msg := b.Error(); msg != "" {
		s.errorResponse(w, http.StatusBadGateway, msg)
		return
	}

	items := make([]contentItem, 0, len(b.Items()))
	for _, rec := range b.Items() {
		items = append(items, contentItem{
			Record:    rec,
			Title:     browse.ItemTitle(rec),
			Subtitle:  browse.ItemSubtitle(typ, rec),
			Thumbnail: browse.ThumbnailURL(s.svc, typ, rec),
		})
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"items": items})
}

// handleGetContent returns one record.
func (s *Server) handleGetContent(w http.ResponseWriter, r *http.Request) {
	typ, ok := catalog.ByName(r.PathValue("type"))
	if !ok {
		s.failResponse(w, &ErrUnknownType{Name: r.PathValue("type")})
		return
	}

	rec, err := s.svc.SelectOne(r.Context(), typ.Table, r.PathValue("id"))
	if err != nil {
		s.failResponse(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, rec)
}

// handleDeleteContent removes one record. Dashboard access is enforced by
// the route wrapper.
func (s *Server) handleDeleteContent(w http.ResponseWriter, r *http.Request) {
	typ, ok := catalog.ByName(r.PathValue("type"))
	if !ok {
		s.failResponse(w, &ErrUnknownType{Name: r.PathValue("type")})
		return
	}

	if err := s.svc.Delete(r.Context(), typ.Table, r.PathValue("id")); err != nil {
		s.failResponse(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// handleObject serves a stored object. Available only with the Postgres
// backed object store.
func (s *Server) handleObject(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.errorResponse(w, http.StatusNotFound, "object storage not available")
		return
	}

	data, err := s.store.Object(r.Context(), r.PathValue("bucket"), r.PathValue("objpath"))
	if err != nil {
		s.failResponse(w, err)
		return
	}
	w.Header().Set("Content-Type", http.DetectContentType(data))
	if _, err := w.Write(data); err != nil {
		return
	}
}
