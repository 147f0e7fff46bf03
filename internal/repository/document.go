package repository

import (
	"context"

	"pdfqa/internal/model"
)

// DocumentRepository defines data access for documents using SQL queries only.
// No business logic here, strictly persistence operations.
type DocumentRepository interface {
	// Create inserts a new document record. The id is assigned by the
	// database sequence, so ids are unique and monotonically increasing.
	// Returns the stored document including the assigned id.
	Create(ctx context.Context, doc *model.Document) (*model.Document, error)

	// FindByID returns the full record, including extracted text.
	// Unknown ids surface as sql.ErrNoRows.
	FindByID(ctx context.Context, id int64) (*model.Document, error)

	// List returns document metadata (never extracted text) in insertion
	// order: uploaded_at ascending, id breaking ties.
	List(ctx context.Context) ([]model.Document, error)

	// Delete removes a document by id. It returns nil if the row was deleted
	// or did not exist; existence checks belong to the service layer.
	Delete(ctx context.Context, id int64) error
}
