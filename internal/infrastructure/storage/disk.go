package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// DiskStorage stores assets on the local filesystem under
// {root}/pdfs and {root}/covers.
type DiskStorage struct {
	root string
}

func NewDiskStorage(root string) (*DiskStorage, error) {
	for _, class := range []AssetClass{ClassPDF, ClassCover} {
		dir := filepath.Join(root, string(class))
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create upload dir %s: %w", dir, err)
		}
	}
	return &DiskStorage{root: root}, nil
}

var _ AssetStorage = (*DiskStorage)(nil)

// path resolves a stored filename inside its class directory. The
// base of the name is taken to keep traversal out of stored refs.
func (s *DiskStorage) path(class AssetClass, filename string) string {
	return filepath.Join(s.root, string(class), filepath.Base(filename))
}

func (s *DiskStorage) Save(ctx context.Context, class AssetClass, filename string, r io.Reader, size int64, contentType string) error {
	dst, err := os.Create(s.path(class, filename))
	if err != nil {
		return fmt.Errorf("create asset file: %w", err)
	}

	if _, err := io.Copy(dst, r); err != nil {
		dst.Close()
		os.Remove(dst.Name())
		return fmt.Errorf("write asset file: %w", err)
	}

	if err := dst.Close(); err != nil {
		return fmt.Errorf("flush asset file: %w", err)
	}
	return nil
}

func (s *DiskStorage) Open(ctx context.Context, class AssetClass, filename string) (io.ReadCloser, error) {
	f, err := os.Open(s.path(class, filename))
	if err != nil {
		return nil, fmt.Errorf("open asset file: %w", err)
	}
	return f, nil
}

func (s *DiskStorage) Remove(ctx context.Context, class AssetClass, filename string) error {
	err := os.Remove(s.path(class, filename))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove asset file: %w", err)
	}
	return nil
}

func (s *DiskStorage) List(ctx context.Context, class AssetClass) ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(s.root, string(class)))
	if err != nil {
		return nil, fmt.Errorf("list asset dir: %w", err)
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	return names, nil
}
