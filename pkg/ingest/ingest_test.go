package ingest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/user/docaudit/pkg/resilient"
)

func fastPolicy() resilient.Policy {
	return resilient.Policy{MaxRetries: 0, BaseDelay: time.Millisecond}
}

func TestExtractPlainTextPassthrough(t *testing.T) {
	// No server configured: plain text never leaves the process.
	e := NewServiceExtractor("", fastPolicy(), zap.NewNop())

	doc, err := e.Extract(context.Background(), "notes.txt", []byte("hello world"))
	require.NoError(t, err)
	assert.Equal(t, "notes.txt", doc.Filename)
	assert.Equal(t, "hello world", doc.Text)
	assert.Equal(t, 1, doc.Pages)

	doc, err = e.Extract(context.Background(), "README.md", []byte("# title"))
	require.NoError(t, err)
	assert.Equal(t, "# title", doc.Text)
}

func TestExtractEmptyFile(t *testing.T) {
	e := NewServiceExtractor("", fastPolicy(), zap.NewNop())
	_, err := e.Extract(context.Background(), "empty.txt", nil)
	assert.Error(t, err)
}

func TestExtractCallsService(t *testing.T) {
	var gotFilename string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/extract", r.URL.Path)
		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		gotFilename = header.Filename

		json.NewEncoder(w).Encode(map[string]any{"text": "extracted body", "pages": 12})
	}))
	defer srv.Close()

	e := NewServiceExtractor(srv.URL, fastPolicy(), zap.NewNop())
	doc, err := e.Extract(context.Background(), "thesis.pdf", []byte("%PDF-1.4 fake"))
	require.NoError(t, err)

	assert.Equal(t, "thesis.pdf", gotFilename)
	assert.Equal(t, "extracted body", doc.Text)
	assert.Equal(t, 12, doc.Pages)
}

func TestExtractServiceError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unsupported format", http.StatusUnprocessableEntity)
	}))
	defer srv.Close()

	e := NewServiceExtractor(srv.URL, fastPolicy(), zap.NewNop())
	_, err := e.Extract(context.Background(), "thesis.pdf", []byte("data"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "thesis.pdf")

	var collabErr *resilient.CollaboratorError
	assert.ErrorAs(t, err, &collabErr)
}

func TestExtractEmptyServiceText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"text": "   ", "pages": 1})
	}))
	defer srv.Close()

	e := NewServiceExtractor(srv.URL, fastPolicy(), zap.NewNop())
	_, err := e.Extract(context.Background(), "scan.pdf", []byte("data"))
	assert.Error(t, err)
}
