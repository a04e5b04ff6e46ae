package storage

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"path/filepath"
	"time"
)

// AssetClass selects the storage area for an uploaded file.
type AssetClass string

const (
	ClassPDF   AssetClass = "pdfs"
	ClassCover AssetClass = "covers"
)

// AssetStorage persists uploaded book assets. Implementations: local
// disk (default) and MinIO.
type AssetStorage interface {
	// Save writes the asset under the given class-specific area.
	Save(ctx context.Context, class AssetClass, filename string, r io.Reader, size int64, contentType string) error

	// Open returns a reader for a stored asset.
	Open(ctx context.Context, class AssetClass, filename string) (io.ReadCloser, error)

	// Remove deletes a stored asset. Removing a missing file is not
	// an error: deletions are idempotent.
	Remove(ctx context.Context, class AssetClass, filename string) error

	// List returns the filenames currently stored under a class.
	// Used by the orphan sweep.
	List(ctx context.Context, class AssetClass) ([]string, error)
}

// GenerateFilename produces a collision-resistant stored name:
// {fieldName}-{unixTimeMillis}-{randomInt}{originalExtension}.
// No lookup is needed; the millisecond timestamp plus random suffix
// keep concurrent uploads apart.
func GenerateFilename(fieldName, originalName string) string {
	return fmt.Sprintf("%s-%d-%d%s",
		fieldName,
		time.Now().UnixMilli(),
		rand.IntN(1_000_000_000),
		filepath.Ext(originalName),
	)
}
