package service

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/textproto"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"biblioteca-backend/internal/domains/book"
	"biblioteca-backend/internal/infrastructure/storage"
	"biblioteca-backend/internal/shared"
)

type mockRepository struct {
	createFn     func(ctx context.Context, b *book.Book) error
	getByIDFn    func(ctx context.Context, id uuid.UUID) (*book.Book, error)
	listFn       func(ctx context.Context, filter book.ListFilter) ([]book.Book, error)
	updateFn     func(ctx context.Context, b *book.Book) error
	deleteFn     func(ctx context.Context, id uuid.UUID) error
	assetNamesFn func(ctx context.Context) (map[string]struct{}, error)
}

func (m *mockRepository) Create(ctx context.Context, b *book.Book) error { return m.createFn(ctx, b) }
func (m *mockRepository) GetByID(ctx context.Context, id uuid.UUID) (*book.Book, error) {
	return m.getByIDFn(ctx, id)
}
func (m *mockRepository) List(ctx context.Context, filter book.ListFilter) ([]book.Book, error) {
	return m.listFn(ctx, filter)
}
func (m *mockRepository) Update(ctx context.Context, b *book.Book) error { return m.updateFn(ctx, b) }
func (m *mockRepository) Delete(ctx context.Context, id uuid.UUID) error { return m.deleteFn(ctx, id) }
func (m *mockRepository) AssetNames(ctx context.Context) (map[string]struct{}, error) {
	return m.assetNamesFn(ctx)
}

// memStorage is an in-memory AssetStorage for tests.
type memStorage struct {
	mu    sync.Mutex
	files map[string][]byte
}

func newMemStorage() *memStorage {
	return &memStorage{files: map[string][]byte{}}
}

func (s *memStorage) key(class storage.AssetClass, name string) string {
	return string(class) + "/" + name
}

func (s *memStorage) Save(ctx context.Context, class storage.AssetClass, filename string, r io.Reader, size int64, contentType string) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[s.key(class, filename)] = data
	return nil
}

func (s *memStorage) Open(ctx context.Context, class storage.AssetClass, filename string) (io.ReadCloser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.files[s.key(class, filename)]
	if !ok {
		return nil, io.ErrUnexpectedEOF
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (s *memStorage) Remove(ctx context.Context, class storage.AssetClass, filename string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.files, s.key(class, filename))
	return nil
}

func (s *memStorage) List(ctx context.Context, class storage.AssetClass) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := []string{}
	prefix := string(class) + "/"
	for k := range s.files {
		if len(k) > len(prefix) && k[:len(prefix)] == prefix {
			names = append(names, k[len(prefix):])
		}
	}
	return names, nil
}

func (s *memStorage) has(class storage.AssetClass, name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.files[s.key(class, name)]
	return ok
}

type mockCleaner struct {
	payloads []shared.DeleteBookAssetsPayload
	err      error
}

func (m *mockCleaner) EnqueueDeleteAssets(ctx context.Context, payload shared.DeleteBookAssetsPayload) error {
	if m.err != nil {
		return m.err
	}
	m.payloads = append(m.payloads, payload)
	return nil
}

func pdfUploads(t *testing.T) *book.Uploads {
	t.Helper()

	buf := new(bytes.Buffer)
	w := multipart.NewWriter(buf)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="arquivo_pdf"; filename="apostila.pdf"`)
	h.Set("Content-Type", "application/pdf")
	part, err := w.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write([]byte("%PDF-1.4 fake content"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(buf, w.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })

	up, err := book.ParseUploads(form, 10*1024*1024)
	require.NoError(t, err)
	return up
}

var (
	professorID = uuid.New()
	otherProfID = uuid.New()
	adminID     = uuid.New()
)

func ownedBook() *book.Book {
	capa := "capa-1-1.png"
	thumb := "capa-1-1-thumb.jpg"
	return &book.Book{
		ID:          uuid.New(),
		Titulo:      "Estruturas de Dados",
		IDAutor:     uuid.New(),
		IDCategoria: uuid.New(),
		IDProfessor: professorID,
		ArquivoPDF:  "arquivo_pdf-1-1.pdf",
		Capa:        &capa,
		CapaThumb:   &thumb,
	}
}

func TestCreateRequiresPDF(t *testing.T) {
	svc := NewBookService(&mockRepository{}, newMemStorage(), storage.NewThumbnailer(), nil)

	req := book.CreateBookRequest{
		Titulo:      "Sem arquivo",
		IDAutor:     uuid.NewString(),
		IDCategoria: uuid.NewString(),
	}
	_, err := svc.Create(context.Background(), book.Actor{ID: professorID, Tipo: shared.RoleProfessor}, req, &book.Uploads{})
	assert.ErrorIs(t, err, book.ErrPDFRequired)
}

func TestCreateStoresPDFAndRow(t *testing.T) {
	assets := newMemStorage()
	var created *book.Book
	repo := &mockRepository{
		createFn: func(ctx context.Context, b *book.Book) error {
			created = b
			return nil
		},
		getByIDFn: func(ctx context.Context, id uuid.UUID) (*book.Book, error) {
			return created, nil
		},
	}
	svc := NewBookService(repo, assets, storage.NewThumbnailer(), nil)

	req := book.CreateBookRequest{
		Titulo:      "Estruturas de Dados",
		IDAutor:     uuid.NewString(),
		IDCategoria: uuid.NewString(),
		Descricao:   "apostila introdutória",
	}
	b, err := svc.Create(context.Background(),
		book.Actor{ID: professorID, Tipo: shared.RoleProfessor}, req, pdfUploads(t))
	require.NoError(t, err)

	assert.Equal(t, professorID, b.IDProfessor)
	assert.True(t, assets.has(storage.ClassPDF, b.ArquivoPDF))
	require.NotNil(t, b.Descricao)
	assert.Equal(t, "apostila introdutória", *b.Descricao)
}

func TestCreateOwnerAssignment(t *testing.T) {
	cases := []struct {
		name      string
		actor     book.Actor
		reqOwner  string
		wantOwner uuid.UUID
	}{
		{"professor owns own upload", book.Actor{ID: professorID, Tipo: shared.RoleProfessor}, "", professorID},
		{"professor cannot assign owner", book.Actor{ID: professorID, Tipo: shared.RoleProfessor}, otherProfID.String(), professorID},
		{"admin assigns owner", book.Actor{ID: adminID, Tipo: shared.RoleAdmin}, professorID.String(), professorID},
		{"admin default is self", book.Actor{ID: adminID, Tipo: shared.RoleAdmin}, "", adminID},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var created *book.Book
			repo := &mockRepository{
				createFn: func(ctx context.Context, b *book.Book) error {
					created = b
					return nil
				},
				getByIDFn: func(ctx context.Context, id uuid.UUID) (*book.Book, error) {
					return created, nil
				},
			}
			svc := NewBookService(repo, newMemStorage(), storage.NewThumbnailer(), nil)

			req := book.CreateBookRequest{
				Titulo:      "Posse",
				IDAutor:     uuid.NewString(),
				IDCategoria: uuid.NewString(),
				IDProfessor: tc.reqOwner,
			}
			b, err := svc.Create(context.Background(), tc.actor, req, pdfUploads(t))
			require.NoError(t, err)
			assert.Equal(t, tc.wantOwner, b.IDProfessor)
		})
	}
}

func TestCreateCleansUpFilesWhenInsertFails(t *testing.T) {
	assets := newMemStorage()
	repo := &mockRepository{
		createFn: func(ctx context.Context, b *book.Book) error {
			return book.ErrInvalidReference
		},
	}
	svc := NewBookService(repo, assets, storage.NewThumbnailer(), nil)

	req := book.CreateBookRequest{
		Titulo:      "Referência quebrada",
		IDAutor:     uuid.NewString(),
		IDCategoria: uuid.NewString(),
	}
	_, err := svc.Create(context.Background(),
		book.Actor{ID: professorID, Tipo: shared.RoleProfessor}, req, pdfUploads(t))
	assert.ErrorIs(t, err, book.ErrInvalidReference)

	names, _ := assets.List(context.Background(), storage.ClassPDF)
	assert.Empty(t, names, "stored file must not survive a failed insert")
}

func TestUpdateOwnership(t *testing.T) {
	cases := []struct {
		name    string
		actor   book.Actor
		wantErr error
	}{
		{"owner professor", book.Actor{ID: professorID, Tipo: shared.RoleProfessor}, nil},
		{"other professor", book.Actor{ID: otherProfID, Tipo: shared.RoleProfessor}, book.ErrNotOwner},
		{"admin", book.Actor{ID: adminID, Tipo: shared.RoleAdmin}, nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			existing := ownedBook()
			repo := &mockRepository{
				getByIDFn: func(ctx context.Context, id uuid.UUID) (*book.Book, error) {
					return existing, nil
				},
				updateFn: func(ctx context.Context, b *book.Book) error { return nil },
			}
			svc := NewBookService(repo, newMemStorage(), storage.NewThumbnailer(), nil)

			_, err := svc.Update(context.Background(), tc.actor, existing.ID,
				book.UpdateBookRequest{Titulo: "Novo título"}, nil)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestUpdateMissingBookIsNotFoundBeforeOwnership(t *testing.T) {
	repo := &mockRepository{
		getByIDFn: func(ctx context.Context, id uuid.UUID) (*book.Book, error) {
			return nil, book.ErrBookNotFound
		},
	}
	svc := NewBookService(repo, newMemStorage(), storage.NewThumbnailer(), nil)

	// Even a professor that owns nothing sees 404, not 403.
	_, err := svc.Update(context.Background(),
		book.Actor{ID: otherProfID, Tipo: shared.RoleProfessor}, uuid.New(),
		book.UpdateBookRequest{Titulo: "x"}, nil)
	assert.ErrorIs(t, err, book.ErrBookNotFound)
}

func TestUpdateReplacesPDFAndRemovesOldFile(t *testing.T) {
	assets := newMemStorage()
	existing := ownedBook()
	oldPDF := existing.ArquivoPDF
	require.NoError(t, assets.Save(context.Background(), storage.ClassPDF, oldPDF,
		bytes.NewReader([]byte("old")), 3, "application/pdf"))

	repo := &mockRepository{
		getByIDFn: func(ctx context.Context, id uuid.UUID) (*book.Book, error) {
			return existing, nil
		},
		updateFn: func(ctx context.Context, b *book.Book) error { return nil },
	}
	svc := NewBookService(repo, assets, storage.NewThumbnailer(), nil)

	updated, err := svc.Update(context.Background(),
		book.Actor{ID: professorID, Tipo: shared.RoleProfessor}, existing.ID,
		book.UpdateBookRequest{}, pdfUploads(t))
	require.NoError(t, err)

	assert.NotEqual(t, oldPDF, updated.ArquivoPDF)
	assert.False(t, assets.has(storage.ClassPDF, oldPDF), "replaced file should be removed")
	assert.True(t, assets.has(storage.ClassPDF, updated.ArquivoPDF))
}

func TestDeleteEnqueuesAssetCleanup(t *testing.T) {
	existing := ownedBook()
	repo := &mockRepository{
		getByIDFn: func(ctx context.Context, id uuid.UUID) (*book.Book, error) {
			return existing, nil
		},
		deleteFn: func(ctx context.Context, id uuid.UUID) error { return nil },
	}
	cleaner := &mockCleaner{}
	svc := NewBookService(repo, newMemStorage(), storage.NewThumbnailer(), cleaner)

	err := svc.Delete(context.Background(),
		book.Actor{ID: professorID, Tipo: shared.RoleProfessor}, existing.ID)
	require.NoError(t, err)

	require.Len(t, cleaner.payloads, 1)
	assert.Equal(t, existing.ArquivoPDF, cleaner.payloads[0].PDF)
	require.NotNil(t, cleaner.payloads[0].Capa)
	assert.Equal(t, *existing.Capa, *cleaner.payloads[0].Capa)
}

func TestDeleteFallsBackToInlineRemoval(t *testing.T) {
	assets := newMemStorage()
	existing := ownedBook()
	require.NoError(t, assets.Save(context.Background(), storage.ClassPDF, existing.ArquivoPDF,
		bytes.NewReader([]byte("pdf")), 3, "application/pdf"))
	require.NoError(t, assets.Save(context.Background(), storage.ClassCover, *existing.Capa,
		bytes.NewReader([]byte("img")), 3, "image/png"))

	repo := &mockRepository{
		getByIDFn: func(ctx context.Context, id uuid.UUID) (*book.Book, error) {
			return existing, nil
		},
		deleteFn: func(ctx context.Context, id uuid.UUID) error { return nil },
	}
	cleaner := &mockCleaner{err: io.ErrClosedPipe}
	svc := NewBookService(repo, assets, storage.NewThumbnailer(), cleaner)

	err := svc.Delete(context.Background(),
		book.Actor{ID: adminID, Tipo: shared.RoleAdmin}, existing.ID)
	require.NoError(t, err)

	assert.False(t, assets.has(storage.ClassPDF, existing.ArquivoPDF))
	assert.False(t, assets.has(storage.ClassCover, *existing.Capa))
}

func TestDeleteOwnershipDenied(t *testing.T) {
	existing := ownedBook()
	repo := &mockRepository{
		getByIDFn: func(ctx context.Context, id uuid.UUID) (*book.Book, error) {
			return existing, nil
		},
	}
	svc := NewBookService(repo, newMemStorage(), storage.NewThumbnailer(), nil)

	err := svc.Delete(context.Background(),
		book.Actor{ID: otherProfID, Tipo: shared.RoleProfessor}, existing.ID)
	assert.ErrorIs(t, err, book.ErrNotOwner)
}

func TestDownloadPDFStreamsStoredFile(t *testing.T) {
	assets := newMemStorage()
	existing := ownedBook()
	require.NoError(t, assets.Save(context.Background(), storage.ClassPDF, existing.ArquivoPDF,
		bytes.NewReader([]byte("%PDF-1.4 data")), 13, "application/pdf"))

	repo := &mockRepository{
		getByIDFn: func(ctx context.Context, id uuid.UUID) (*book.Book, error) {
			return existing, nil
		},
	}
	svc := NewBookService(repo, assets, storage.NewThumbnailer(), nil)

	dl, err := svc.DownloadPDF(context.Background(), existing.ID)
	require.NoError(t, err)
	defer dl.Reader.Close()

	assert.Equal(t, "Estruturas de Dados.pdf", dl.Filename)
	assert.Equal(t, "application/pdf", dl.ContentType)
	data, err := io.ReadAll(dl.Reader)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4 data", string(data))
}

func TestDownloadPDFMissingAsset(t *testing.T) {
	existing := ownedBook()
	repo := &mockRepository{
		getByIDFn: func(ctx context.Context, id uuid.UUID) (*book.Book, error) {
			return existing, nil
		},
	}
	svc := NewBookService(repo, newMemStorage(), storage.NewThumbnailer(), nil)

	_, err := svc.DownloadPDF(context.Background(), existing.ID)
	assert.ErrorIs(t, err, book.ErrAssetNotFound)
}
