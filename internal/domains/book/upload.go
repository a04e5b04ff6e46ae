package book

import (
	"mime/multipart"
	"strings"

	"biblioteca-backend/internal/infrastructure/storage"
)

// Multipart field names accepted by the book endpoints.
const (
	FieldPDF   = "arquivo_pdf"
	FieldCover = "capa"
)

// FileUpload is a validated multipart file ready to be stored.
type FileUpload struct {
	FieldName    string
	StorageName  string
	OriginalName string
	ContentType  string
	Size         int64

	header *multipart.FileHeader
}

func (f *FileUpload) Open() (multipart.File, error) {
	return f.header.Open()
}

// Uploads holds the files of one book form. PDF may be nil on update,
// Cover is always optional.
type Uploads struct {
	PDF   *FileUpload
	Cover *FileUpload
}

// ParseUploads validates the files of a multipart form: only the
// arquivo_pdf and capa fields are accepted, at most one file each,
// arquivo_pdf must declare application/pdf and capa any image type,
// and no file may exceed maxSize bytes.
func ParseUploads(form *multipart.Form, maxSize int64) (*Uploads, error) {
	up := &Uploads{}
	if form == nil {
		return up, nil
	}

	for field, headers := range form.File {
		if len(headers) == 0 {
			continue
		}
		if len(headers) > 1 {
			return nil, ErrUnrecognizedField
		}
		header := headers[0]
		contentType := header.Header.Get("Content-Type")

		switch field {
		case FieldPDF:
			if contentType != "application/pdf" {
				return nil, ErrPDFOnly
			}
		case FieldCover:
			if !strings.HasPrefix(contentType, "image/") {
				return nil, ErrImagesOnly
			}
		default:
			return nil, ErrUnrecognizedField
		}

		if header.Size > maxSize {
			return nil, ErrFileTooLarge
		}

		file := &FileUpload{
			FieldName:    field,
			StorageName:  storage.GenerateFilename(field, header.Filename),
			OriginalName: header.Filename,
			ContentType:  contentType,
			Size:         header.Size,
			header:       header,
		}
		if field == FieldPDF {
			up.PDF = file
		} else {
			up.Cover = file
		}
	}
	return up, nil
}
