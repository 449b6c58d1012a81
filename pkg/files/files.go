// Package files covers the file upload, listing, retrieval, and deletion
// endpoints. Uploads use multipart form encoding; everything else is plain
// JSON over the shared transport.
package files

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"

	"github.com/frage-dev/frage/pkg/api"
	"github.com/frage-dev/frage/pkg/client"
)

const endpoint = "files"

// Purpose declares what an uploaded file is for.
type Purpose string

const (
	// PurposeFineTune marks training data for fine-tuning jobs.
	PurposeFineTune Purpose = "fine-tune"
)

// File describes one stored file.
type File struct {
	ID            string `json:"id"`
	Object        string `json:"object"`
	Bytes         int64  `json:"bytes"`
	CreatedAt     int64  `json:"created_at"`
	Filename      string `json:"filename"`
	Purpose       string `json:"purpose"`
	Status        string `json:"status,omitempty"`
	StatusDetails string `json:"status_details,omitempty"`
}

// listResponse wraps GET files: {"object": "list", "data": [...]}.
type listResponse struct {
	Object string `json:"object"`
	Data   []File `json:"data"`
}

// Upload stores a file under the given purpose. filename is the name
// reported to the backend; content supplies the bytes.
func Upload(ctx context.Context, c *client.Client, purpose Purpose, filename string, content io.Reader) (*File, error) {
	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)

	if err := form.WriteField("purpose", string(purpose)); err != nil {
		return nil, api.NewConfigError(fmt.Sprintf("encoding form field: %s", err))
	}
	part, err := form.CreateFormFile("file", filename)
	if err != nil {
		return nil, api.NewConfigError(fmt.Sprintf("encoding form file: %s", err))
	}
	if _, err := io.Copy(part, content); err != nil {
		return nil, api.NewConfigError(fmt.Sprintf("reading file content: %s", err))
	}
	if err := form.Close(); err != nil {
		return nil, api.NewConfigError(fmt.Sprintf("finalizing form: %s", err))
	}

	return client.PostForm[File](ctx, c, endpoint, form.FormDataContentType(), &buf)
}

// List returns all stored files.
func List(ctx context.Context, c *client.Client) ([]File, error) {
	resp, err := client.Get[listResponse](ctx, c, endpoint)
	if err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// Retrieve returns the metadata of one file by ID.
func Retrieve(ctx context.Context, c *client.Client, fileID string) (*File, error) {
	return client.Get[File](ctx, c, fmt.Sprintf("files/%s", fileID))
}

// RetrieveContent downloads the raw content of one file by ID.
func RetrieveContent(ctx context.Context, c *client.Client, fileID string) ([]byte, error) {
	return client.GetRaw(ctx, c, fmt.Sprintf("files/%s/content", fileID))
}

// Delete removes one file by ID.
func Delete(ctx context.Context, c *client.Client, fileID string) (*api.Deleted, error) {
	return client.Delete[api.Deleted](ctx, c, fmt.Sprintf("files/%s", fileID))
}
