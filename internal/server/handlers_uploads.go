package server

import (
	"fmt"
	"io"
	"net/http"
	"path"
	"time"

	"github.com/sooperboring/content-studio/internal/upload"
)

// maxUploadBytes bounds one upload request. Course folders run large.
const maxUploadBytes = 256 << 20

// handleUpload stores the uploaded file(s) for one field. Single-file
// fields take one "file" part; folder fields take repeated "files" parts
// whose file names carry folder-relative paths.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	es, err := s.sessions.Get(r.PathValue("id"))
	if err != nil {
		s.failResponse(w, err)
		return
	}

	key := r.PathValue("field")
	field, ok := es.tracker.FieldFor(key)
	if !ok {
		s.errorResponse(w, http.StatusBadRequest, fmt.Sprintf("no uploadable field %q", key))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid multipart body")
		return
	}

	if field.Folder {
		s.handleFolderUpload(w, r, es, key)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "missing file part")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "failed to read file")
		return
	}

	destPath := fmt.Sprintf("%s/%d%s", es.folderID, time.Now().UnixMilli(), path.Ext(header.Filename))
	if err := upload.UploadFile(r.Context(), es.tracker, key, s.svc, destPath, header.Filename, data); err != nil {
		s.failResponse(w, err)
		return
	}

	state, _ := es.tracker.State(key)
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"url":   es.draft.Field(key),
		"state": state,
	})
}

func (s *Server) handleFolderUpload(w http.ResponseWriter, r *http.Request, es *editSession, key string) {
	headers := r.MultipartForm.File["files"]
	if len(headers) == 0 {
		s.errorResponse(w, http.StatusBadRequest, "missing files parts")
		return
	}

	units := make([]upload.Unit, 0, len(headers))
	for _, header := range headers {
		file, err := header.Open()
		if err != nil {
			s.errorResponse(w, http.StatusBadRequest, "failed to open file part")
			return
		}
		data, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			s.errorResponse(w, http.StatusBadRequest, "failed to read file part")
			return
		}
		units = append(units, upload.Unit{RelPath: header.Filename, Data: data})
	}

	if err := upload.UploadFolder(r.Context(), es.tracker, key, s.svc, es.folderID, units); err != nil {
		s.failResponse(w, err)
		return
	}

	state, _ := es.tracker.State(key)
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"url":   es.draft.Field(key),
		"state": state,
	})
}

// handleUploadState returns the upload state of one field.
func (s *Server) handleUploadState(w http.ResponseWriter, r *http.Request) {
	es, err := s.sessions.Get(r.PathValue("id"))
	if err != nil {
		s.failResponse(w, err)
		return
	}

	state, ok := es.tracker.State(r.PathValue("field"))
	if !ok {
		s.errorResponse(w, http.StatusBadRequest, fmt.Sprintf("no uploadable field %q", r.PathValue("field")))
		return
	}
	s.jsonResponse(w, http.StatusOK, state)
}
