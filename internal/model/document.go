package model

import "time"

// Document is a stored PDF together with the text extracted from it.
// This is a pure domain model with no database-specific dependencies or tags.
// Text and StoragePath are never serialized: list and upload responses carry
// metadata only, so full document text stays out of HTTP payloads.
type Document struct {
	ID          int64     `json:"id"`
	Filename    string    `json:"filename"`
	StoragePath string    `json:"-"`
	TextLength  int       `json:"text_length"`
	UploadedAt  time.Time `json:"upload_date"`
	Text        string    `json:"-"`
}

// AnswerResult is a single question/answer exchange. It is transient: the
// server returns it and forgets it; conversation history is a client concern.
type AnswerResult struct {
	Question       string `json:"question"`
	Answer         string `json:"answer"`
	SourceDocument string `json:"source_document"`
}
