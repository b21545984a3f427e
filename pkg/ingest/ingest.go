// Package ingest turns uploaded files into plain document text.
package ingest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/user/docaudit/pkg/resilient"
)

// Document is the extracted text of an uploaded file.
type Document struct {
	Filename string
	Text     string
	Pages    int
}

// Extractor converts a raw uploaded file into document text. Extraction
// failure aborts the whole analysis, there is nothing to audit without text.
type Extractor interface {
	Extract(ctx context.Context, filename string, data []byte) (Document, error)
}

// ServiceExtractor calls the external text-extraction service for binary
// formats and handles plain-text files locally.
type ServiceExtractor struct {
	baseURL string
	client  *http.Client
	policy  resilient.Policy
	log     *zap.Logger
}

func NewServiceExtractor(baseURL string, policy resilient.Policy, log *zap.Logger) *ServiceExtractor {
	return &ServiceExtractor{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 120 * time.Second},
		policy:  policy,
		log:     log,
	}
}

func (s *ServiceExtractor) Extract(ctx context.Context, filename string, data []byte) (Document, error) {
	if len(data) == 0 {
		return Document{}, fmt.Errorf("extract %s: empty file", filename)
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".txt", ".md":
		return Document{Filename: filename, Text: string(data), Pages: 1}, nil
	}

	text, pages, err := resilientExtract(ctx, s, filename, data)
	if err != nil {
		return Document{}, fmt.Errorf("extract %s: %w", filename, err)
	}
	if strings.TrimSpace(text) == "" {
		return Document{}, fmt.Errorf("extract %s: service returned no text", filename)
	}

	s.log.Info("document extracted",
		zap.String("filename", filename), zap.Int("chars", len(text)), zap.Int("pages", pages))
	return Document{Filename: filename, Text: text, Pages: pages}, nil
}

type extractResponse struct {
	Text  string `json:"text"`
	Pages int    `json:"pages"`
}

func resilientExtract(ctx context.Context, s *ServiceExtractor, filename string, data []byte) (string, int, error) {
	resp, err := resilient.Call(ctx, "extractor-service", s.policy, s.log, func(ctx context.Context) (extractResponse, error) {
		return s.post(ctx, filename, data)
	})
	if err != nil {
		return "", 0, err
	}
	return resp.Text, resp.Pages, nil
}

func (s *ServiceExtractor) post(ctx context.Context, filename string, data []byte) (extractResponse, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return extractResponse{}, err
	}
	if _, err := part.Write(data); err != nil {
		return extractResponse{}, err
	}
	if err := mw.Close(); err != nil {
		return extractResponse{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/extract", &body)
	if err != nil {
		return extractResponse{}, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := s.client.Do(req)
	if err != nil {
		return extractResponse{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return extractResponse{}, fmt.Errorf("extraction service returned %d: %s", resp.StatusCode, msg)
	}

	var out extractResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return extractResponse{}, fmt.Errorf("decode extraction response: %w", err)
	}
	return out, nil
}
