package handler

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"pdfqa/internal/extractor"
	"pdfqa/internal/service"
)

// HealthCheck reports readiness: the database must answer a ping.
func HealthCheck(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			return writeError(c, fiber.StatusServiceUnavailable, "dependency unavailable")
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy"})
	}
}

// LivenessProbe is a bare liveness check with no dependencies.
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}

// UploadDocument accepts a PDF as multipart/form-data (field name: file),
// ingests it, and makes it the active document for subsequent questions.
func UploadDocument(docSvc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fh, err := c.FormFile("file")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "file is required")
		}

		if strings.ToLower(filepath.Ext(fh.Filename)) != ".pdf" {
			return writeError(c, fiber.StatusBadRequest, "Only PDF files are allowed")
		}

		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "cannot open uploaded file")
		}
		defer f.Close()

		doc, err := docSvc.Ingest(c.UserContext(), f, fh.Filename)
		if err != nil {
			switch {
			case errors.Is(err, extractor.ErrNoText):
				return writeError(c, fiber.StatusBadRequest, "No text could be extracted from the PDF")
			case errors.Is(err, extractor.ErrInvalidPDF):
				return writeError(c, fiber.StatusBadRequest, "Error extracting text from PDF: the file is not a readable PDF")
			default:
				return writeError(c, fiber.StatusInternalServerError, "Error processing file")
			}
		}
		return c.Status(fiber.StatusCreated).JSON(doc)
	}
}

type askRequest struct {
	Question string `json:"question" form:"question"`
}

// AskQuestion answers a question against the most recently uploaded document.
// The question is taken from the form field or a JSON body.
func AskQuestion(querySvc service.QueryService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		question := c.FormValue("question")
		if question == "" {
			var body askRequest
			if err := c.BodyParser(&body); err == nil {
				question = body.Question
			}
		}

		res, err := querySvc.Ask(c.UserContext(), question)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrQuestionRequired):
				return writeError(c, fiber.StatusBadRequest, "question is required")
			case errors.Is(err, service.ErrNoActiveDocument):
				return writeError(c, fiber.StatusNotFound, "No documents found. Please upload a PDF first.")
			default:
				return writeError(c, fiber.StatusBadGateway, "Error answering question")
			}
		}
		return c.JSON(res)
	}
}

// ListDocuments returns metadata for every stored document in upload order.
func ListDocuments(docSvc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		docs, err := docSvc.List(c.UserContext())
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "internal server error")
		}
		return c.JSON(docs)
	}
}

// DeleteDocument removes a stored document by id.
func DeleteDocument(docSvc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.ParseInt(c.Params("id"), 10, 64)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "invalid id format")
		}
		if err := docSvc.Delete(c.UserContext(), id); err != nil {
			if errors.Is(err, service.ErrNotFound) {
				return writeError(c, fiber.StatusNotFound, "Document not found")
			}
			return writeError(c, fiber.StatusInternalServerError, "internal server error")
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// DownloadDocument streams the archived original PDF for a document.
func DownloadDocument(docSvc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.ParseInt(c.Params("id"), 10, 64)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "invalid id format")
		}
		rc, doc, err := docSvc.File(c.UserContext(), id)
		if err != nil {
			if errors.Is(err, service.ErrNotFound) {
				return writeError(c, fiber.StatusNotFound, "Document not found")
			}
			return writeError(c, fiber.StatusInternalServerError, "internal server error")
		}
		c.Set(fiber.HeaderContentType, "application/pdf")
		c.Set(fiber.HeaderContentDisposition, `inline; filename="`+doc.Filename+`"`)
		return c.SendStream(rc)
	}
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
func RegisterRoutes(app *fiber.App, db *sql.DB, docSvc service.DocumentService, querySvc service.QueryService) {
	// Serve OpenAPI spec and Swagger UI
	app.Get("/openapi.yaml", func(c *fiber.Ctx) error {
		c.Type("yaml")
		return c.SendFile("openapi.yaml")
	})
	app.Get("/docs", func(c *fiber.Ctx) error {
		html := `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>API Docs</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    window.ui = SwaggerUIBundle({
      url: '/openapi.yaml',
      dom_id: '#swagger-ui',
      presets: [SwaggerUIBundle.presets.apis],
      layout: 'BaseLayout'
    });
  </script>
</body>
</html>`
		return c.Type("html").SendString(html)
	})

	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	app.Post("/upload", UploadDocument(docSvc))
	app.Post("/ask", AskQuestion(querySvc))

	app.Get("/documents", ListDocuments(docSvc))
	app.Delete("/documents/:id", DeleteDocument(docSvc))
	app.Get("/documents/:id/file", DownloadDocument(docSvc))
}
