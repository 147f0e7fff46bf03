package service

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"pdfqa/internal/active"
	"pdfqa/internal/extractor"
	"pdfqa/internal/model"
	"pdfqa/internal/repository"
	"pdfqa/internal/storage"
)

var (
	ErrReaderNil = errors.New("reader is nil")
	ErrNotFound  = errors.New("document not found")
)

// DocumentService defines the ingestion-side use cases for documents.
type DocumentService interface {
	// Ingest extracts text from the PDF, archives the raw bytes, persists the
	// document record, and points the active register at the new document.
	// If extraction fails, neither store nor register is touched. If the DB
	// insert fails after a successful archive, the archived object is rolled
	// back so no partial document is visible.
	Ingest(ctx context.Context, r io.Reader, originalFilename string) (*model.Document, error)

	// List returns document metadata in upload order (never full text).
	List(ctx context.Context) ([]model.Document, error)

	// Get returns a single document by its id, text included.
	Get(ctx context.Context, id int64) (*model.Document, error)

	// File streams the archived original PDF for a document.
	File(ctx context.Context, id int64) (io.ReadCloser, *model.Document, error)

	// Delete removes a document from archive and repository, and clears the
	// active register if it still points at the deleted id.
	Delete(ctx context.Context, id int64) error
}

// documentService is a concrete implementation of DocumentService.
type documentService struct {
	extract  extractor.Extractor
	store    storage.Storage
	repo     repository.DocumentRepository
	register *active.Register
}

// NewDocumentService constructs a new DocumentService.
func NewDocumentService(ex extractor.Extractor, store storage.Storage, repo repository.DocumentRepository, reg *active.Register) DocumentService {
	return &documentService{extract: ex, store: store, repo: repo, register: reg}
}

func (s *documentService) Ingest(ctx context.Context, r io.Reader, originalFilename string) (*model.Document, error) {
	if r == nil {
		return nil, ErrReaderNil
	}
	// The bytes are needed twice (extraction, archive), so buffer them once.
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}

	// Extraction comes first: a broken PDF must leave store and register untouched.
	text, err := s.extract.Extract(ctx, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("extract text: %w", err)
	}

	key := filepath.ToSlash(filepath.Join("uploads", uuid.New().String()+".pdf"))
	if _, err := s.store.Put(ctx, key, bytes.NewReader(data), storage.PutObjectOptions{
		Size:        int64(len(data)),
		ContentType: "application/pdf",
		Metadata: map[string]string{
			"original-filename": originalFilename,
		},
	}); err != nil {
		return nil, fmt.Errorf("archive upload: %w", err)
	}

	doc := &model.Document{
		Filename:    originalFilename,
		StoragePath: key,
		TextLength:  len(text),
		UploadedAt:  time.Now().UTC(),
		Text:        text,
	}
	stored, err := s.repo.Create(ctx, doc)
	if err != nil {
		// Rollback: remove the archived object so no partial document remains.
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			return nil, fmt.Errorf("db save failed: %v; rollback delete failed: %v", err, delErr)
		}
		return nil, fmt.Errorf("db save failed: %w", err)
	}

	// The new id becomes visible to Ask only after the insert has returned,
	// so a question is never answered against a half-written document.
	s.register.Set(stored.ID)

	return stored, nil
}

func (s *documentService) List(ctx context.Context) ([]model.Document, error) {
	return s.repo.List(ctx)
}

func (s *documentService) Get(ctx context.Context, id int64) (*model.Document, error) {
	doc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return doc, nil
}

func (s *documentService) File(ctx context.Context, id int64) (io.ReadCloser, *model.Document, error) {
	doc, err := s.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	rc, _, err := s.store.Get(ctx, doc.StoragePath)
	if err != nil {
		return nil, nil, fmt.Errorf("fetch archived pdf: %w", err)
	}
	return rc, doc, nil
}

func (s *documentService) Delete(ctx context.Context, id int64) error {
	doc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	// Archive first; if this fails the DB row survives, so nothing dangles.
	if err := s.store.Delete(ctx, doc.StoragePath); err != nil {
		return fmt.Errorf("delete archived pdf: %w", err)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	// Compare-and-clear: never clobber a pointer to a newer upload.
	s.register.ClearIf(id)
	return nil
}
