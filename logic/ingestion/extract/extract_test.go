package extract

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readerSource(name, body string) Source {
	return Source{
		Name: name,
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(strings.NewReader(body)), nil
		},
	}
}

func TestPlaceholder(t *testing.T) {
	got, err := Placeholder{}.Extract(context.Background(), Source{Name: "lease.pdf"})
	require.NoError(t, err)
	assert.Equal(t, "Content of lease.pdf. (File content reading is not implemented in this demo environment).", got)
}

func TestDocumentExtractorReader(t *testing.T) {
	e, err := NewDocumentExtractor(context.Background())
	require.NoError(t, err)

	got, err := e.Extract(context.Background(), readerSource("terms.txt", "  The term is 12 months.\x00\n"))
	require.NoError(t, err)
	assert.Equal(t, "The term is 12 months.", got)
}

func TestDocumentExtractorPath(t *testing.T) {
	e, err := NewDocumentExtractor(context.Background())
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "nda.md")
	require.NoError(t, os.WriteFile(path, []byte("# NDA\nConfidential."), 0o644))

	got, err := e.Extract(context.Background(), Source{Name: "nda.md", Path: path})
	require.NoError(t, err)
	assert.Equal(t, "# NDA\nConfidential.", got)
}

func TestDocumentExtractorEdgeCases(t *testing.T) {
	e, err := NewDocumentExtractor(context.Background())
	require.NoError(t, err)
	ctx := context.Background()

	got, err := e.Extract(ctx, readerSource("scan.docx", "binary"))
	require.NoError(t, err)
	assert.Equal(t, PlaceholderContent("scan.docx"), got)

	_, err = e.Extract(ctx, readerSource("empty.txt", " \x00 "))
	assert.ErrorIs(t, err, ErrNoText)

	_, err = e.Extract(ctx, Source{Name: "orphan.txt"})
	assert.Error(t, err)
}
