package storage

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDisk(t *testing.T) *DiskStorage {
	t.Helper()
	s, err := NewDiskStorage(t.TempDir())
	require.NoError(t, err)
	return s
}

func TestDiskSaveOpenRoundtrip(t *testing.T) {
	s := newDisk(t)
	ctx := context.Background()

	content := []byte("%PDF-1.4 conteudo")
	err := s.Save(ctx, ClassPDF, "arquivo_pdf-1-1.pdf", bytes.NewReader(content), int64(len(content)), "application/pdf")
	require.NoError(t, err)

	rc, err := s.Open(ctx, ClassPDF, "arquivo_pdf-1-1.pdf")
	require.NoError(t, err)
	defer rc.Close()

	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, content, got)
}

func TestDiskClassesAreIsolated(t *testing.T) {
	s := newDisk(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, ClassPDF, "mesmo-nome", strings.NewReader("pdf"), 3, "application/pdf"))
	require.NoError(t, s.Save(ctx, ClassCover, "mesmo-nome", strings.NewReader("img"), 3, "image/png"))

	rc, err := s.Open(ctx, ClassCover, "mesmo-nome")
	require.NoError(t, err)
	defer rc.Close()
	got, _ := io.ReadAll(rc)
	assert.Equal(t, "img", string(got))
}

func TestDiskRemoveIsIdempotent(t *testing.T) {
	s := newDisk(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, ClassPDF, "a.pdf", strings.NewReader("x"), 1, "application/pdf"))
	require.NoError(t, s.Remove(ctx, ClassPDF, "a.pdf"))
	require.NoError(t, s.Remove(ctx, ClassPDF, "a.pdf"))

	_, err := s.Open(ctx, ClassPDF, "a.pdf")
	assert.Error(t, err)
}

func TestDiskStripsTraversal(t *testing.T) {
	s := newDisk(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, ClassPDF, "../../../etc/passwd", strings.NewReader("x"), 1, "application/pdf"))

	// The path collapses to the base name inside the class dir.
	names, err := s.List(ctx, ClassPDF)
	require.NoError(t, err)
	assert.Equal(t, []string{"passwd"}, names)
}

func TestDiskList(t *testing.T) {
	s := newDisk(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, ClassPDF, "a.pdf", strings.NewReader("x"), 1, "application/pdf"))
	require.NoError(t, s.Save(ctx, ClassPDF, "b.pdf", strings.NewReader("y"), 1, "application/pdf"))

	names, err := s.List(ctx, ClassPDF)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a.pdf", "b.pdf"}, names)
}

func TestThumbName(t *testing.T) {
	assert.Equal(t, "capa-1-1-thumb.jpg", ThumbName("capa-1-1.png"))
	assert.Equal(t, "capa-2-2-thumb.jpg", ThumbName("capa-2-2.jpg"))
}

func TestThumbnailFitsLargeImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 900, 600))
	for x := 0; x < 900; x += 30 {
		for y := 0; y < 600; y++ {
			img.Set(x, y, color.RGBA{R: 200, A: 255})
		}
	}
	buf := new(bytes.Buffer)
	require.NoError(t, png.Encode(buf, img))

	data, err := NewThumbnailer().Thumbnail(buf.Bytes())
	require.NoError(t, err)

	thumb, _, err := image.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.LessOrEqual(t, thumb.Bounds().Dx(), 300)
	assert.LessOrEqual(t, thumb.Bounds().Dy(), 300)
}

func TestThumbnailRejectsGarbage(t *testing.T) {
	_, err := NewThumbnailer().Thumbnail([]byte("isto não é uma imagem"))
	assert.Error(t, err)
}

func TestGenerateFilenameKeepsExtensionAndField(t *testing.T) {
	name := GenerateFilename("arquivo_pdf", "Apostila Final.PDF")
	assert.True(t, strings.HasPrefix(name, "arquivo_pdf-"))
	assert.True(t, strings.HasSuffix(name, ".PDF"))
}
