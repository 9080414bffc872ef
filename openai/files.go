// Copyright (c) Microsoft. All rights reserved.

package openai

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"os"
	"path/filepath"

	"github.com/microsoft/azure-ai-playground/go/azureai"
)

// PurposeAssistants marks files for use by agent tools such as code interpreter.
const PurposeAssistants = "assistants"

// File is an uploaded file.
type File struct {
	ID        string `json:"id"`
	Object    string `json:"object"`
	Bytes     int64  `json:"bytes"`
	CreatedAt int64  `json:"created_at"`
	Filename  string `json:"filename"`
	Purpose   string `json:"purpose"`
	Status    string `json:"status,omitempty"`
}

// UploadFile uploads the file at path with the given purpose.
func (c *Client) UploadFile(ctx context.Context, path, purpose string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("upload file: %w", err)
	}
	defer f.Close()
	return c.UploadFileReader(ctx, f, filepath.Base(path), purpose)
}

// UploadFileReader uploads the content of r under filename.
func (c *Client) UploadFileReader(ctx context.Context, r io.Reader, filename, purpose string) (*File, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if err := mw.WriteField("purpose", purpose); err != nil {
		return nil, fmt.Errorf("upload file: %w", err)
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, filename))
	ct := mime.TypeByExtension(filepath.Ext(filename))
	if ct == "" {
		ct = "application/octet-stream"
	}
	h.Set("Content-Type", ct)
	part, err := mw.CreatePart(h)
	if err != nil {
		return nil, fmt.Errorf("upload file: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return nil, fmt.Errorf("upload file: read %s: %w", filename, err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("upload file: %w", err)
	}

	var file File
	if _, err := c.core.DoJSON(ctx, &azureai.Request{
		Method:      http.MethodPost,
		Path:        "/files",
		RawBody:     &buf,
		ContentType: mw.FormDataContentType(),
	}, &file); err != nil {
		return nil, fmt.Errorf("upload file: %w", err)
	}
	return &file, nil
}
