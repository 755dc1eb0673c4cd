package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/zhubert/studydesk/internal/errors"
	"github.com/zhubert/studydesk/internal/models"
)

// MaxUploadSize is the largest document the client will send.
const MaxUploadSize int64 = 5 << 20

// Upload describes one document upload.
type Upload struct {
	Name      string
	Type      models.DocumentType
	StudentID string // empty uploads to the global library
	Size      int64
	Body      io.Reader
}

// ListDocuments returns the global document library.
func (c *Client) ListDocuments(ctx context.Context) ([]models.Document, error) {
	var docs []models.Document
	if err := c.doJSON(ctx, "api.ListDocuments", http.MethodGet, "/api/documents", nil, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

// ListStudentDocuments returns the documents filed under one student.
func (c *Client) ListStudentDocuments(ctx context.Context, studentID string) ([]models.Document, error) {
	var docs []models.Document
	path := "/api/documents/student/" + escape(studentID)
	if err := c.doJSON(ctx, "api.ListStudentDocuments", http.MethodGet, path, nil, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

// UploadDocument streams a multipart upload. Oversized files are rejected
// before anything is sent.
func (c *Client) UploadDocument(ctx context.Context, up Upload) (models.Document, error) {
	const op errors.Op = "api.UploadDocument"
	if up.Size > MaxUploadSize {
		return models.Document{}, errors.FileTooLarge(up.Name, up.Size, MaxUploadSize)
	}

	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)
	go func() {
		pw.CloseWithError(writeUpload(mw, up))
	}()

	req, err := c.newRequest(ctx, http.MethodPost, "/api/documents/upload", pr)
	if err != nil {
		pr.Close()
		return models.Document{}, errors.E(op, errors.KindInvalid, "failed to create request", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.do(op, req)
	if err != nil {
		pr.Close()
		return models.Document{}, err
	}
	defer resp.Body.Close()

	var doc models.Document
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return models.Document{}, errors.E(op, errors.KindNetwork, "failed to parse response", err)
	}
	return doc, nil
}

func writeUpload(mw *multipart.Writer, up Upload) error {
	part, err := mw.CreateFormFile("file", up.Name)
	if err != nil {
		return err
	}
	// Read one byte past the cap so a lying Size is still caught.
	n, err := io.Copy(part, io.LimitReader(up.Body, MaxUploadSize+1))
	if err != nil {
		return err
	}
	if n > MaxUploadSize {
		return fmt.Errorf("%s exceeds %d bytes", up.Name, MaxUploadSize)
	}
	if err := mw.WriteField("type", string(up.Type)); err != nil {
		return err
	}
	if up.StudentID != "" {
		if err := mw.WriteField("studentId", up.StudentID); err != nil {
			return err
		}
	}
	return mw.Close()
}

// DownloadDocument copies the document's content into w and returns the
// number of bytes written.
func (c *Client) DownloadDocument(ctx context.Context, id string, w io.Writer) (int64, error) {
	const op errors.Op = "api.DownloadDocument"
	req, err := c.newRequest(ctx, http.MethodGet, "/api/documents/"+escape(id)+"/download", nil)
	if err != nil {
		return 0, errors.E(op, errors.KindInvalid, "failed to create request", err)
	}
	req.Header.Set("Accept", "*/*")

	resp, err := c.do(op, req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	n, err := io.Copy(w, resp.Body)
	if err != nil {
		return n, errors.E(op, errors.KindIO, "failed to save download", err)
	}
	return n, nil
}

// DeleteDocument removes a document.
func (c *Client) DeleteDocument(ctx context.Context, id string) error {
	return c.doJSON(ctx, "api.DeleteDocument", http.MethodDelete, "/api/documents/"+escape(id), nil, nil)
}
