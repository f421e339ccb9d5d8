package file

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// LocalSource keeps uploaded import files under BaseDir.
type LocalSource struct {
	BaseDir string
}

func NewLocalSource(baseDir string) *LocalSource {
	if baseDir == "" {
		baseDir = "."
	}
	return &LocalSource{BaseDir: baseDir}
}

func (s *LocalSource) Open(ctx context.Context, sourcePath string) (io.ReadCloser, error) {
	file, err := os.Open(s.resolve(sourcePath))
	if err != nil {
		return nil, fmt.Errorf("open file %s: %w", sourcePath, err)
	}
	return file, nil
}

// Save writes content under a fresh name that keeps the original
// extension and returns the path relative to BaseDir.
func (s *LocalSource) Save(ctx context.Context, filename string, content io.Reader) (string, error) {
	if err := os.MkdirAll(s.BaseDir, 0o755); err != nil {
		return "", fmt.Errorf("create import dir: %w", err)
	}

	name := uuid.NewString() + filepath.Ext(filepath.Base(filename))
	out, err := os.Create(filepath.Join(s.BaseDir, name))
	if err != nil {
		return "", fmt.Errorf("create file %s: %w", name, err)
	}

	_, err = io.Copy(out, content)
	if closeErr := out.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(out.Name())
		return "", fmt.Errorf("write file %s: %w", name, err)
	}
	return name, nil
}

func (s *LocalSource) resolve(sourcePath string) string {
	if filepath.IsAbs(sourcePath) {
		return sourcePath
	}
	return filepath.Join(s.BaseDir, sourcePath)
}
