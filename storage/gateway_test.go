package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"mime/multipart"
	"net/textproto"
	"strings"
	"sync"
	"testing"

	"creatorhub-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	mu        sync.Mutex
	objects   map[string][]byte
	putErr    error
	removeErr error
	removed   []string
}

func newFakeStore() *fakeStore {
	return &fakeStore{objects: map[string][]byte{}}
}

func (f *fakeStore) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.putErr != nil {
		return f.putErr
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	f.objects[key] = data
	return nil
}

func (f *fakeStore) Remove(ctx context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.removed = append(f.removed, key)
	if f.removeErr != nil {
		return f.removeErr
	}
	if _, ok := f.objects[key]; !ok {
		return ErrObjectNotFound
	}
	delete(f.objects, key)
	return nil
}

// jpegBytes commence par la signature JPEG pour passer le sniff
func jpegBytes(size int) []byte {
	data := make([]byte, size)
	copy(data, []byte{0xFF, 0xD8, 0xFF, 0xE0})
	return data
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	img := image.NewRGBA(image.Rect(0, 0, 600, 600))
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func newFileHeader(t *testing.T, filename, contentType string, data []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="media"; filename="%s"`, filename))
	header.Set("Content-Type", contentType)

	part, err := w.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(32 << 20)
	require.NoError(t, err)

	return form.File["media"][0]
}

func newTestGateway(store ObjectStore) *Gateway {
	return New(store, "media", "https://cdn.example.com")
}

func TestUpload_TwoFilesSameOwnerGetDistinctKeys(t *testing.T) {
	store := newFakeStore()
	gw := newTestGateway(store)

	file := newFileHeader(t, "a.jpg", "image/jpeg", jpegBytes(256))

	first, err := gw.Upload(context.Background(), "owner-1", file, models.MediaTypeImage, AssetContentMedia)
	require.NoError(t, err)
	second, err := gw.Upload(context.Background(), "owner-1", file, models.MediaTypeImage, AssetContentMedia)
	require.NoError(t, err)

	assert.NotEqual(t, first.Key, second.Key)
	assert.NotEqual(t, first.URL, second.URL)
	assert.Len(t, store.objects, 2)

	// La clé est préfixée par le propriétaire et l'URL se déduit de la clé
	assert.True(t, strings.HasPrefix(first.Key, "owner-1-"))
	assert.Equal(t, "https://cdn.example.com/media/"+first.Key, first.URL)
	assert.True(t, strings.HasSuffix(first.Key, ".jpg"))
}

func TestUpload_RejectsBadTypeWithoutTouchingStore(t *testing.T) {
	store := newFakeStore()
	gw := newTestGateway(store)

	file := newFileHeader(t, "doc.pdf", "application/pdf", []byte("%PDF-1.4 fake"))

	_, err := gw.Upload(context.Background(), "owner-1", file, models.MediaTypeImage, AssetContentMedia)

	var vErr *ValidationError
	assert.ErrorAs(t, err, &vErr)
	assert.Empty(t, store.objects)
	assert.Empty(t, store.removed)
}

func TestUpload_RejectsDeclaredTypeMismatch(t *testing.T) {
	store := newFakeStore()
	gw := newTestGateway(store)

	// Un PDF déguisé en JPEG: la signature le trahit
	file := newFileHeader(t, "photo.jpg", "image/jpeg", []byte("%PDF-1.4 not a jpeg at all, just text"))

	_, err := gw.Upload(context.Background(), "owner-1", file, models.MediaTypeImage, AssetContentMedia)

	var vErr *ValidationError
	assert.ErrorAs(t, err, &vErr)
	assert.Empty(t, store.objects)
}

func TestUpload_StreamFailureCleansUpPartialObject(t *testing.T) {
	store := newFakeStore()
	store.putErr = errors.New("connection reset")
	gw := newTestGateway(store)

	file := newFileHeader(t, "a.jpg", "image/jpeg", jpegBytes(256))

	_, err := gw.Upload(context.Background(), "owner-1", file, models.MediaTypeImage, AssetContentMedia)

	var sErr *StorageError
	assert.ErrorAs(t, err, &sErr)
	// Le nettoyage best-effort a bien visé la clé partielle
	assert.Len(t, store.removed, 1)
	assert.True(t, strings.HasPrefix(store.removed[0], "owner-1-"))
}

func TestReplace_OldObjectDeletedAfterSuccess(t *testing.T) {
	store := newFakeStore()
	store.objects["owner-1-old.jpg"] = []byte("old")
	gw := newTestGateway(store)

	file := newFileHeader(t, "b.jpg", "image/jpeg", jpegBytes(128))

	obj, err := gw.Replace(context.Background(), "owner-1", file, models.MediaTypeImage, AssetProfilePicture, "owner-1-old.jpg")
	require.NoError(t, err)

	assert.Contains(t, store.removed, "owner-1-old.jpg")
	_, oldStillThere := store.objects["owner-1-old.jpg"]
	assert.False(t, oldStillThere)
	_, newThere := store.objects[obj.Key]
	assert.True(t, newThere)
}

// L'échec de la suppression de l'ancien objet ne fait pas échouer le
// remplacement: le nouvel asset est déjà en ligne.
func TestReplace_SucceedsEvenIfOldDeleteFails(t *testing.T) {
	store := newFakeStore()
	store.objects["owner-1-old.jpg"] = []byte("old")
	store.removeErr = errors.New("backend unavailable")
	gw := newTestGateway(store)

	file := newFileHeader(t, "b.jpg", "image/jpeg", jpegBytes(128))

	obj, err := gw.Replace(context.Background(), "owner-1", file, models.MediaTypeImage, AssetProfilePicture, "owner-1-old.jpg")

	require.NoError(t, err)
	assert.NotNil(t, obj)
	assert.Contains(t, store.removed, "owner-1-old.jpg")
}

func TestReplace_ValidationFailureKeepsOldObject(t *testing.T) {
	store := newFakeStore()
	store.objects["owner-1-old.jpg"] = []byte("old")
	gw := newTestGateway(store)

	file := newFileHeader(t, "doc.pdf", "application/pdf", []byte("%PDF-1.4"))

	_, err := gw.Replace(context.Background(), "owner-1", file, models.MediaTypeImage, AssetProfilePicture, "owner-1-old.jpg")

	var vErr *ValidationError
	assert.ErrorAs(t, err, &vErr)
	assert.Empty(t, store.removed)
	_, oldStillThere := store.objects["owner-1-old.jpg"]
	assert.True(t, oldStillThere)
}

func TestDelete_MissingKeyIsSuccess(t *testing.T) {
	store := newFakeStore()
	gw := newTestGateway(store)

	err := gw.Delete(context.Background(), "owner-1-gone.jpg")

	assert.NoError(t, err)
}

func TestDelete_BackendFailureIsStorageError(t *testing.T) {
	store := newFakeStore()
	store.objects["k"] = []byte("x")
	store.removeErr = errors.New("backend unavailable")
	gw := newTestGateway(store)

	err := gw.Delete(context.Background(), "k")

	var sErr *StorageError
	assert.ErrorAs(t, err, &sErr)
}

func TestUploadImageWithThumbnail_DerivesThumb(t *testing.T) {
	store := newFakeStore()
	gw := newTestGateway(store)

	file := newFileHeader(t, "photo.png", "image/png", pngBytes(t))

	media, thumb, err := gw.UploadImageWithThumbnail(context.Background(), "owner-1", file, AssetContentMedia)
	require.NoError(t, err)
	require.NotNil(t, media)
	require.NotNil(t, thumb)

	assert.True(t, strings.HasPrefix(thumb.Key, strings.TrimSuffix(media.Key, ".png")))
	assert.True(t, strings.HasSuffix(thumb.Key, "-thumb.jpg"))
	assert.Equal(t, "image/jpeg", thumb.ContentType)
	assert.Len(t, store.objects, 2)
}

// Une image indéchiffrable donne un média sans vignette, pas une erreur
func TestUploadImageWithThumbnail_ThumbFailureIsNotFatal(t *testing.T) {
	store := newFakeStore()
	gw := newTestGateway(store)

	corrupted := append([]byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}, []byte("garbage")...)
	file := newFileHeader(t, "photo.png", "image/png", corrupted)

	media, thumb, err := gw.UploadImageWithThumbnail(context.Background(), "owner-1", file, AssetContentMedia)

	require.NoError(t, err)
	assert.NotNil(t, media)
	assert.Nil(t, thumb)
	assert.Len(t, store.objects, 1)
}
