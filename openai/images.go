// Copyright (c) Microsoft. All rights reserved.

package openai

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"

	"github.com/microsoft/azure-ai-playground/go/azureai"
)

// ImageRequest is the body of [Client.GenerateImage].
type ImageRequest struct {
	Model          string `json:"model,omitempty"`
	Prompt         string `json:"prompt"`
	N              int    `json:"n,omitempty"`
	Size           string `json:"size,omitempty"`
	Quality        string `json:"quality,omitempty"`
	Style          string `json:"style,omitempty"`
	ResponseFormat string `json:"response_format,omitempty"`
}

// Image is one generated image, returned either as a URL or inline.
type Image struct {
	URL           string `json:"url,omitempty"`
	B64JSON       string `json:"b64_json,omitempty"`
	RevisedPrompt string `json:"revised_prompt,omitempty"`
}

// ImageResponse is the result of [Client.GenerateImage].
type ImageResponse struct {
	Created int64   `json:"created"`
	Data    []Image `json:"data"`
}

// GenerateImage asks the image model to render req.Prompt.
func (c *Client) GenerateImage(ctx context.Context, req *ImageRequest) (*ImageResponse, error) {
	if req.Prompt == "" {
		return nil, fmt.Errorf("%w: empty prompt", azureai.ErrInvalidRequest)
	}
	body := *req
	body.Model = c.resolveModel(body.Model)

	var resp ImageResponse
	if _, err := c.core.DoJSON(ctx, &azureai.Request{
		Method: http.MethodPost,
		Path:   c.modelPath(body.Model, "/images/generations"),
		Body:   &body,
	}, &resp); err != nil {
		return nil, fmt.Errorf("generate image: %w", err)
	}
	return &resp, nil
}

// Bytes returns the image data, decoding it inline or downloading it from
// its URL with hc.
func (img *Image) Bytes(ctx context.Context, hc *http.Client) ([]byte, error) {
	if img.B64JSON != "" {
		data, err := base64.StdEncoding.DecodeString(img.B64JSON)
		if err != nil {
			return nil, fmt.Errorf("%w: decode image: %v", azureai.ErrInvalidResponse, err)
		}
		return data, nil
	}
	if img.URL == "" {
		return nil, fmt.Errorf("%w: image has neither url nor data", azureai.ErrInvalidResponse)
	}
	return download(ctx, hc, img.URL)
}

// FetchImageDataURL downloads an image and returns it as a base64 data URL
// of media type image/<format>, ready for a vision chat message.
func FetchImageDataURL(ctx context.Context, hc *http.Client, imageURL, format string) (string, error) {
	data, err := download(ctx, hc, imageURL)
	if err != nil {
		return "", err
	}
	return azureai.NewDataContent(data, "image/"+format).URI, nil
}

// download fetches an unauthenticated URL, such as a SAS image link.
func download(ctx context.Context, hc *http.Client, u string) ([]byte, error) {
	if hc == nil {
		hc = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("download %s: %w", u, err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download %s: %w", u, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return nil, &azureai.ServiceError{
			StatusCode: resp.StatusCode,
			Message:    "download " + u + ": " + http.StatusText(resp.StatusCode),
			Err:        azureai.ErrService,
		}
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("download %s: %w", u, err)
	}
	return data, nil
}
