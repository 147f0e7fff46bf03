package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"pdfqa/internal/model"
)

func TestDocumentPostgres_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewDocumentPostgres(db)
	ctx := context.Background()

	now := time.Now().UTC()
	doc := &model.Document{
		Filename:    "contract.pdf",
		StoragePath: "uploads/abc.pdf",
		TextLength:  36,
		Text:        "Termination clause: 30 days notice.\n",
		UploadedAt:  now,
	}

	rows := sqlmock.NewRows([]string{"id", "filename", "storage_path", "text_length", "extracted_text", "uploaded_at"}).
		AddRow(int64(1), doc.Filename, doc.StoragePath, doc.TextLength, doc.Text, doc.UploadedAt)

	mock.ExpectQuery("INSERT INTO documents").
		WithArgs(doc.Filename, doc.StoragePath, doc.TextLength, doc.Text, doc.UploadedAt).
		WillReturnRows(rows)

	result, err := repo.Create(ctx, doc)

	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.Equal(t, int64(1), result.ID)
	assert.Equal(t, 36, result.TextLength)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentPostgres_FindByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewDocumentPostgres(db)
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "filename", "storage_path", "text_length", "extracted_text", "uploaded_at"}).
			AddRow(int64(3), "contract.pdf", "uploads/abc.pdf", 36, "Termination clause: 30 days notice.\n", time.Now())

		mock.ExpectQuery("SELECT (.+) FROM documents WHERE id = ?").
			WithArgs(int64(3)).
			WillReturnRows(rows)

		doc, err := repo.FindByID(ctx, 3)

		assert.NoError(t, err)
		assert.NotNil(t, doc)
		assert.Equal(t, int64(3), doc.ID)
		assert.NotEmpty(t, doc.Text)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM documents WHERE id = ?").
			WithArgs(int64(999)).
			WillReturnError(sql.ErrNoRows)

		doc, err := repo.FindByID(ctx, 999)

		assert.Error(t, err)
		assert.True(t, errors.Is(err, sql.ErrNoRows))
		assert.Nil(t, doc)
	})
}

func TestDocumentPostgres_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewDocumentPostgres(db)
	ctx := context.Background()

	t.Run("insertion order, no text column", func(t *testing.T) {
		earlier := time.Now().Add(-time.Hour)
		later := time.Now()
		rows := sqlmock.NewRows([]string{"id", "filename", "storage_path", "text_length", "uploaded_at"}).
			AddRow(int64(1), "a.pdf", "uploads/a.pdf", 10, earlier).
			AddRow(int64(2), "b.pdf", "uploads/b.pdf", 20, later)

		mock.ExpectQuery("SELECT (.+) FROM documents ORDER BY uploaded_at ASC").
			WillReturnRows(rows)

		items, err := repo.List(ctx)

		assert.NoError(t, err)
		assert.Len(t, items, 2)
		assert.Equal(t, int64(1), items[0].ID)
		assert.Equal(t, int64(2), items[1].ID)
		assert.Empty(t, items[0].Text)
	})

	t.Run("empty table yields empty slice", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "filename", "storage_path", "text_length", "uploaded_at"})
		mock.ExpectQuery("SELECT (.+) FROM documents ORDER BY uploaded_at ASC").
			WillReturnRows(rows)

		items, err := repo.List(ctx)

		assert.NoError(t, err)
		assert.NotNil(t, items)
		assert.Len(t, items, 0)
	})
}

func TestDocumentPostgres_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewDocumentPostgres(db)
	ctx := context.Background()

	mock.ExpectExec("DELETE FROM documents WHERE id = ?").
		WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.Delete(ctx, 1)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
