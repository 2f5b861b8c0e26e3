package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/andeslegal/consulta/internal/classify"
	"github.com/andeslegal/consulta/internal/engine"
	"github.com/andeslegal/consulta/internal/models"
)

// queryRequest is the POST /api/v1/query body. Documents may be supplied
// inline or looked up by owner when a document store is configured.
type queryRequest struct {
	Question  string                   `json:"question"`
	Context   string                   `json:"context,omitempty"`
	Profile   *models.RequesterProfile `json:"profile,omitempty"`
	OwnerID   string                   `json:"owner_id,omitempty"`
	Documents []*models.UserDocument   `json:"documents,omitempty"`
}

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	var req queryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	docs := req.Documents
	if req.OwnerID != "" && s.storage != nil {
		stored, err := s.storage.GetDocumentsByOwner(r.Context(), req.OwnerID)
		if err != nil {
			s.logger.Warn("document lookup failed",
				zap.String("owner_id", req.OwnerID),
				zap.Error(err))
		} else {
			docs = append(docs, stored...)
		}
	}

	env, err := s.engine.Answer(r.Context(), &models.Question{
		Text:      req.Question,
		Context:   req.Context,
		Profile:   req.Profile,
		Documents: docs,
	})
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, env)
}

func (s *Server) handleSuggestions(w http.ResponseWriter, r *http.Request) {
	if category := r.URL.Query().Get("category"); category != "" {
		s.respondJSON(w, http.StatusOK, engine.Suggestions(classify.ParseCategory(category)))
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"suggestions": engine.SuggestionCatalog(),
	})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, s.engine.Status(r.Context()))
}

func (s *Server) handleCreateDocument(w http.ResponseWriter, r *http.Request) {
	if s.storage == nil {
		s.respondError(w, http.StatusNotImplemented, "document store not configured")
		return
	}
	var doc models.UserDocument
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if doc.Name == "" || doc.OwnerID == "" {
		s.respondError(w, http.StatusBadRequest, "name and owner_id are required")
		return
	}
	if doc.ID == "" {
		doc.ID = uuid.NewString()
	}
	// Content arrives already extracted, so the document is immediately usable.
	if doc.Status == "" && doc.Content != "" {
		doc.Status = models.DocumentStatusReady
	}
	if err := s.storage.CreateDocument(r.Context(), &doc); err != nil {
		s.logger.Error("document creation failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusCreated, map[string]string{"id": doc.ID, "status": doc.Status})
}

func (s *Server) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	if s.storage == nil {
		s.respondError(w, http.StatusNotImplemented, "document store not configured")
		return
	}
	id := chi.URLParam(r, "id")
	doc, err := s.storage.GetDocument(r.Context(), id)
	if err != nil {
		s.respondError(w, http.StatusNotFound, "document not found")
		return
	}
	s.respondJSON(w, http.StatusOK, doc)
}

func (s *Server) handleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	if s.storage == nil {
		s.respondError(w, http.StatusNotImplemented, "document store not configured")
		return
	}
	id := chi.URLParam(r, "id")
	if err := s.storage.DeleteDocument(r.Context(), id); err != nil {
		s.respondError(w, http.StatusNotFound, "document not found")
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("failed to encode response", zap.Error(err))
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
