package loader

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileLoader_Load_LocalFile(t *testing.T) {
	tmpDir := t.TempDir()
	testFile := filepath.Join(tmpDir, "test.yaml")
	content := []byte("swagger: \"2.0\"\n")
	require.NoError(t, os.WriteFile(testFile, content, 0644))

	data, err := NewFileLoader().Load(context.Background(), testFile)
	require.NoError(t, err)
	assert.Equal(t, content, data)
}

func TestFileLoader_Load_FileNotFound(t *testing.T) {
	_, err := NewFileLoader().Load(context.Background(), "nonexistent.yaml")
	require.Error(t, err)

	var notFound *ErrFileNotFound
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, "nonexistent.yaml", notFound.Path)
	assert.Equal(t, "file not found: nonexistent.yaml", err.Error())
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFileLoader_Load_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewFileLoader().Load(ctx, "test.yaml")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFileLoader_Load_RelativePath(t *testing.T) {
	tmpDir := t.TempDir()
	content := []byte("test content")
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "test.yaml"), content, 0644))

	oldDir, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(tmpDir))
	defer os.Chdir(oldDir)

	data, err := NewFileLoader().Load(context.Background(), "test.yaml")
	require.NoError(t, err)
	assert.Equal(t, content, data)
}

func TestFileLoader_Load_HTTP(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/swagger.json" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(`{"swagger":"2.0"}`))
	}))
	defer server.Close()

	data, err := NewFileLoader().Load(context.Background(), server.URL+"/swagger.json")
	require.NoError(t, err)
	assert.Equal(t, `{"swagger":"2.0"}`, string(data))

	_, err = NewFileLoader().Load(context.Background(), server.URL+"/missing.json")
	var notFound *ErrFileNotFound
	assert.True(t, errors.As(err, &notFound))
}

func TestFileLoader_Load_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := NewFileLoader().Load(context.Background(), server.URL+"/swagger.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP error")
}
