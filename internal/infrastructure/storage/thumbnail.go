package storage

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"strings"

	_ "image/gif"
	_ "image/png"

	"github.com/disintegration/imaging"
)

// Thumbnailer produces a small JPEG variant of an uploaded cover.
type Thumbnailer struct {
	Size    int
	Quality int
}

func NewThumbnailer() *Thumbnailer {
	return &Thumbnailer{Size: 300, Quality: 90}
}

// Thumbnail decodes the cover and re-encodes a fitted JPEG. An error
// means the bytes did not decode as an image; callers treat that as
// non-fatal since the upload contract is content-type based.
func (t *Thumbnailer) Thumbnail(data []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("cannot decode cover: %w", err)
	}

	resized := imaging.Fit(img, t.Size, t.Size, imaging.Lanczos)
	buf := new(bytes.Buffer)
	if err := jpeg.Encode(buf, resized, &jpeg.Options{Quality: t.Quality}); err != nil {
		return nil, fmt.Errorf("cannot encode thumbnail: %w", err)
	}
	return buf.Bytes(), nil
}

// ThumbName derives the variant filename from the stored cover name:
// capa-123-456.png -> capa-123-456-thumb.jpg.
func ThumbName(coverName string) string {
	base := coverName
	if idx := strings.LastIndex(base, "."); idx > 0 {
		base = base[:idx]
	}
	return base + "-thumb.jpg"
}
