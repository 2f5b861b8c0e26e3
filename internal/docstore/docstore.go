// Package docstore persists requester-owned documents in SQLite.
package docstore

import (
	"context"

	"github.com/andeslegal/consulta/internal/models"
)

// Storage is the persistence surface the engine needs for user documents.
type Storage interface {
	CreateDocument(ctx context.Context, doc *models.UserDocument) error
	GetDocument(ctx context.Context, id string) (*models.UserDocument, error)
	GetDocumentsByOwner(ctx context.Context, ownerID string) ([]*models.UserDocument, error)
	UpdateDocumentStatus(ctx context.Context, id, status string) error
	DeleteDocument(ctx context.Context, id string) error
	Close() error
}
