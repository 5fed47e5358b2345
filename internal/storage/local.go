package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
)

// LocalUploader writes objects under a directory on disk. The returned
// path is relative ("/media/..."); main serves the directory as static
// files under that prefix.
type LocalUploader struct {
	dir    string
	prefix string
}

func NewLocalUploader(dir, prefix string) *LocalUploader {
	return &LocalUploader{dir: dir, prefix: prefix}
}

func (u *LocalUploader) Upload(_ context.Context, objectName string, _ string, r io.Reader) (string, error) {
	dst := filepath.Join(u.dir, filepath.FromSlash(objectName))
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", err
	}

	f, err := os.Create(dst)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return "", err
	}
	return u.prefix + "/" + objectName, nil
}
