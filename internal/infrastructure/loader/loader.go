package loader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/miorlan/swagger-validator/internal/domain"
)

// FileLoader загружает документы с локального диска или по HTTP
type FileLoader struct {
	client *http.Client
}

// NewFileLoader создает новый FileLoader
func NewFileLoader() domain.FileLoader {
	return NewFileLoaderWithTimeout(30 * time.Second)
}

// NewFileLoaderWithTimeout создает новый FileLoader с указанным таймаутом
func NewFileLoaderWithTimeout(timeout time.Duration) domain.FileLoader {
	return &FileLoader{
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// Load загружает файл с локального диска или по HTTP
func (fl *FileLoader) Load(ctx context.Context, path string) ([]byte, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	if isURL(path) {
		return fl.loadHTTP(ctx, path)
	}

	cleanPath := filepath.Clean(path)
	if !filepath.IsAbs(cleanPath) {
		absPath, err := filepath.Abs(cleanPath)
		if err != nil {
			return nil, fmt.Errorf("invalid path: %w", err)
		}
		cleanPath = absPath
	}
	data, err := os.ReadFile(cleanPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &ErrFileNotFound{Path: path}
		}
		return nil, err
	}
	return data, nil
}

// loadHTTP загружает файл по HTTP
func (fl *FileLoader) loadHTTP(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json, application/yaml;q=0.9, */*;q=0.8")

	resp, err := fl.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch HTTP resource: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, &ErrFileNotFound{Path: url}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %s", resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read HTTP response: %w", err)
	}

	return data, nil
}

func isURL(path string) bool {
	return strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://")
}
