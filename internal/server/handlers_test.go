package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"github.com/andeslegal/consulta/internal/config"
	"github.com/andeslegal/consulta/internal/docstore"
	"github.com/andeslegal/consulta/internal/engine"
	"github.com/andeslegal/consulta/internal/generation"
	"github.com/andeslegal/consulta/internal/models"
	"github.com/andeslegal/consulta/internal/retrieval"
	"github.com/andeslegal/consulta/internal/synthesis"
	"github.com/andeslegal/consulta/internal/vectorindex"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	idx := vectorindex.NewMemoryIndex()
	idx.Add(&models.RetrievedPassage{
		Text:       "la sociedad por acciones simplificada se constituye por documento privado",
		Source:     "codigo_comercio_art_5.txt",
		Similarity: 0.9,
	})

	gen := generation.NewMockGenerator("Debe inscribir el documento en la Cámara de Comercio.")
	eng := engine.New(
		idx,
		retrieval.NewRetriever(idx, nil, nil),
		synthesis.NewSynthesizer(gen, nil),
		zap.NewNop(),
		engine.Options{},
	)

	storage, err := docstore.NewSQLiteStorage(filepath.Join(t.TempDir(), "consulta.db"))
	if err != nil {
		t.Fatalf("NewSQLiteStorage() error = %v", err)
	}
	t.Cleanup(func() { _ = storage.Close() })

	return NewServer(eng, storage, &config.ServerConfig{Host: "localhost", Port: 0}, zap.NewNop())
}

func doRequest(t *testing.T, s *Server, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encoding body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func TestHandleQuery(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s, http.MethodPost, "/api/v1/query", map[string]string{
		"question": "¿Cómo constituyo una SAS?",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var env models.ResponseEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decoding envelope: %v", err)
	}
	if env.Category != "formation" {
		t.Errorf("category = %q", env.Category)
	}
	if env.Answer == "" || env.QueryID == "" {
		t.Errorf("incomplete envelope: %+v", env)
	}
}

func TestHandleQuery_Validation(t *testing.T) {
	_ = newTestServer(t)

	tests := []struct {
		name string
		body interface{}
	}{
		{"empty question", map[string]string{"question": ""}},
		{"malformed body", "not json"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var rec *httptest.ResponseRecorder
			if s, ok := tt.body.(string); ok {
				req := httptest.NewRequest(http.MethodPost, "/api/v1/query", bytes.NewBufferString(s))
				rec = httptest.NewRecorder()
				newTestServer(t).Router().ServeHTTP(rec, req)
			} else {
				rec = doRequest(t, newTestServer(t), http.MethodPost, "/api/v1/query", tt.body)
			}
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
		})
	}
}

func TestHandleQuery_OwnerDocuments(t *testing.T) {
	s := newTestServer(t)

	if err := s.storage.CreateDocument(context.Background(), &models.UserDocument{
		ID:      "doc-1",
		OwnerID: "owner-1",
		Name:    "estatutos.pdf",
		Content: "estatutos de la sociedad con reglas para constituir sucursales",
		Status:  models.DocumentStatusReady,
	}); err != nil {
		t.Fatalf("CreateDocument() error = %v", err)
	}

	rec := doRequest(t, s, http.MethodPost, "/api/v1/query", map[string]string{
		"question": "¿Qué dicen mis estatutos sobre constituir sucursales?",
		"owner_id": "owner-1",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var env models.ResponseEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decoding envelope: %v", err)
	}
	if len(env.UsedDocuments) != 1 || env.UsedDocuments[0] != "estatutos.pdf" {
		t.Errorf("used documents = %v", env.UsedDocuments)
	}
}

func TestHandleSuggestions(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s, http.MethodGet, "/api/v1/suggestions", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var catalog struct {
		Suggestions []engine.SuggestionSet `json:"suggestions"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &catalog); err != nil {
		t.Fatalf("decoding catalog: %v", err)
	}
	if len(catalog.Suggestions) != 5 {
		t.Errorf("catalog has %d sets", len(catalog.Suggestions))
	}

	rec = doRequest(t, s, http.MethodGet, "/api/v1/suggestions?category=labor", nil)
	var set engine.SuggestionSet
	if err := json.Unmarshal(rec.Body.Bytes(), &set); err != nil {
		t.Fatalf("decoding set: %v", err)
	}
	if set.Category != "labor" {
		t.Errorf("category = %q", set.Category)
	}
}

func TestHandleStatus(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s, http.MethodGet, "/api/v1/status", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var st engine.Status
	if err := json.Unmarshal(rec.Body.Bytes(), &st); err != nil {
		t.Fatalf("decoding status: %v", err)
	}
	if !st.IndexAvailable || len(st.Categories) != 5 {
		t.Errorf("status = %+v", st)
	}
}

func TestDocumentEndpoints(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s, http.MethodPost, "/api/v1/documents", map[string]string{
		"owner_id": "owner-1",
		"name":     "contrato.pdf",
		"content":  "contrato de prestación de servicios",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var created map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decoding create response: %v", err)
	}
	if created["id"] == "" || created["status"] != models.DocumentStatusReady {
		t.Errorf("create response = %v", created)
	}

	rec = doRequest(t, s, http.MethodGet, "/api/v1/documents/"+created["id"], nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d", rec.Code)
	}

	rec = doRequest(t, s, http.MethodDelete, "/api/v1/documents/"+created["id"], nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete status = %d", rec.Code)
	}

	rec = doRequest(t, s, http.MethodGet, "/api/v1/documents/"+created["id"], nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("get after delete status = %d", rec.Code)
	}
}

func TestDocumentEndpoints_MissingFields(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s, http.MethodPost, "/api/v1/documents", map[string]string{
		"name": "sin-dueño.pdf",
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestHandleHealth(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s, http.MethodGet, "/health", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if body := rec.Body.String(); !bytes.Contains([]byte(body), []byte("ok")) {
		t.Errorf("body = %s", body)
	}
}
