package book

import (
	"bytes"
	"mime/multipart"
	"net/textproto"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testMaxSize = 10 * 1024 * 1024

type formFile struct {
	field       string
	filename    string
	contentType string
	content     string
}

func buildForm(t *testing.T, files ...formFile) *multipart.Form {
	t.Helper()

	buf := new(bytes.Buffer)
	w := multipart.NewWriter(buf)
	for _, f := range files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition",
			`form-data; name="`+f.field+`"; filename="`+f.filename+`"`)
		h.Set("Content-Type", f.contentType)
		part, err := w.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write([]byte(f.content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	reader := multipart.NewReader(buf, w.Boundary())
	form, err := reader.ReadForm(32 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form
}

func TestParseUploadsAcceptsPDFAndCover(t *testing.T) {
	form := buildForm(t,
		formFile{FieldPDF, "apostila.pdf", "application/pdf", "%PDF-1.4 fake"},
		formFile{FieldCover, "capa.png", "image/png", "not a real png"},
	)

	up, err := ParseUploads(form, testMaxSize)
	require.NoError(t, err)
	require.NotNil(t, up.PDF)
	require.NotNil(t, up.Cover)

	assert.Equal(t, "apostila.pdf", up.PDF.OriginalName)
	assert.True(t, strings.HasPrefix(up.PDF.StorageName, "arquivo_pdf-"))
	assert.True(t, strings.HasSuffix(up.PDF.StorageName, ".pdf"))
	assert.True(t, strings.HasPrefix(up.Cover.StorageName, "capa-"))
	assert.True(t, strings.HasSuffix(up.Cover.StorageName, ".png"))
}

func TestParseUploadsRejectsNonPDFUnderPDFField(t *testing.T) {
	form := buildForm(t,
		formFile{FieldPDF, "notas.txt", "text/plain", "plain text"},
	)

	_, err := ParseUploads(form, testMaxSize)
	assert.ErrorIs(t, err, ErrPDFOnly)
}

func TestParseUploadsRejectsImageUnderPDFField(t *testing.T) {
	// The PDF field requires exactly application/pdf, an image is
	// not accepted even though images are fine under capa.
	form := buildForm(t,
		formFile{FieldPDF, "capa.png", "image/png", "png bytes"},
	)

	_, err := ParseUploads(form, testMaxSize)
	assert.ErrorIs(t, err, ErrPDFOnly)
}

func TestParseUploadsRejectsNonImageCover(t *testing.T) {
	form := buildForm(t,
		formFile{FieldCover, "capa.pdf", "application/pdf", "%PDF-1.4"},
	)

	_, err := ParseUploads(form, testMaxSize)
	assert.ErrorIs(t, err, ErrImagesOnly)
}

func TestParseUploadsRejectsUnknownField(t *testing.T) {
	form := buildForm(t,
		formFile{"anexo", "anexo.pdf", "application/pdf", "%PDF-1.4"},
	)

	_, err := ParseUploads(form, testMaxSize)
	assert.ErrorIs(t, err, ErrUnrecognizedField)
}

func TestParseUploadsRejectsOversizedFile(t *testing.T) {
	form := buildForm(t,
		formFile{FieldPDF, "grande.pdf", "application/pdf", strings.Repeat("x", 2048)},
	)

	_, err := ParseUploads(form, 1024)
	assert.ErrorIs(t, err, ErrFileTooLarge)
}

func TestParseUploadsRejectsDuplicateField(t *testing.T) {
	form := buildForm(t,
		formFile{FieldPDF, "um.pdf", "application/pdf", "%PDF-1.4"},
		formFile{FieldPDF, "dois.pdf", "application/pdf", "%PDF-1.4"},
	)

	_, err := ParseUploads(form, testMaxSize)
	assert.ErrorIs(t, err, ErrUnrecognizedField)
}

func TestParseUploadsAllowsMissingFiles(t *testing.T) {
	form := buildForm(t)

	up, err := ParseUploads(form, testMaxSize)
	require.NoError(t, err)
	assert.Nil(t, up.PDF)
	assert.Nil(t, up.Cover)
}
