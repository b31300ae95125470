package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"os"
	"path"
	"strings"
	"time"

	"creatorhub-backend/models"
	"creatorhub-backend/utils"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

const (
	defaultUploadTimeout = 2 * time.Minute
	deleteTimeout        = 15 * time.Second
	thumbnailMaxSize     = 480
)

// StoredObject est le résultat durable d'un upload.
type StoredObject struct {
	URL         string `json:"url"`
	Key         string `json:"key"`
	ContentType string `json:"contentType"`
	SizeBytes   int64  `json:"sizeBytes"`
}

// Gateway streams validated files to the object store, assigns write-once
// keys and builds public URLs. Construit une fois dans main et injecté dans
// les handlers: pas de client global.
type Gateway struct {
	store         ObjectStore
	bucket        string
	baseURL       string
	uploadTimeout time.Duration
}

func New(store ObjectStore, bucket, publicBaseURL string) *Gateway {
	return &Gateway{
		store:         store,
		bucket:        bucket,
		baseURL:       strings.TrimRight(publicBaseURL, "/"),
		uploadTimeout: defaultUploadTimeout,
	}
}

// NewFromEnv lit la configuration du stockage objet. Une variable absente
// est une erreur fatale au démarrage, pas une erreur par requête.
func NewFromEnv() (*Gateway, error) {
	endpoint := os.Getenv("MINIO_ENDPOINT")
	accessKey := os.Getenv("MINIO_ACCESS_KEY")
	secretKey := os.Getenv("MINIO_SECRET_KEY")
	bucket := os.Getenv("MEDIA_BUCKET")
	baseURL := os.Getenv("MEDIA_PUBLIC_BASE_URL")
	useSSL := os.Getenv("MINIO_USE_SSL") == "true"

	if endpoint == "" || accessKey == "" || secretKey == "" || bucket == "" || baseURL == "" {
		return nil, fmt.Errorf("missing object store configuration: MINIO_ENDPOINT, MINIO_ACCESS_KEY, MINIO_SECRET_KEY, MEDIA_BUCKET and MEDIA_PUBLIC_BASE_URL are required")
	}

	store, err := newMinioStore(endpoint, accessKey, secretKey, bucket, useSSL)
	if err != nil {
		return nil, err
	}

	return New(store, bucket, baseURL), nil
}

// Upload valide puis streame le fichier vers le bucket sous une clé neuve.
// En cas d'échec du stream (erreur réseau, timeout, client déconnecté),
// l'objet partiellement écrit est supprimé en best-effort.
func (g *Gateway) Upload(ctx context.Context, ownerID string, file *multipart.FileHeader, kind models.MediaType, class AssetClass) (*StoredObject, error) {
	contentType := file.Header.Get("Content-Type")

	if err := Validate(contentType, file.Size, kind, class); err != nil {
		return nil, err
	}

	src, err := file.Open()
	if err != nil {
		return nil, &StorageError{Op: "open", Err: err}
	}
	defer src.Close()

	detected, err := sniffContentType(src)
	if err != nil {
		return nil, &StorageError{Op: "read", Err: err}
	}
	if !mimeMatches(detected, contentType) {
		return nil, &ValidationError{Reason: fmt.Sprintf("declared type %s does not match detected type %s", contentType, detected)}
	}

	key := newObjectKey(ownerID, contentType)

	putCtx, cancel := context.WithTimeout(ctx, g.uploadTimeout)
	defer cancel()

	if err := g.store.Put(putCtx, key, src, file.Size, contentType); err != nil {
		uploadFailures.Inc()
		g.deleteQuietly(key)
		return nil, &StorageError{Op: "put", Key: key, Err: err}
	}

	uploadsTotal.WithLabelValues(string(class)).Inc()

	return &StoredObject{
		URL:         g.publicURL(key),
		Key:         key,
		ContentType: contentType,
		SizeBytes:   file.Size,
	}, nil
}

// UploadImageWithThumbnail uploads the image then derives and uploads a
// thumbnail next to it. L'échec de la vignette ne condamne pas l'upload
// principal: elle est dérivable à tout moment.
func (g *Gateway) UploadImageWithThumbnail(ctx context.Context, ownerID string, file *multipart.FileHeader, class AssetClass) (*StoredObject, *StoredObject, error) {
	media, err := g.Upload(ctx, ownerID, file, models.MediaTypeImage, class)
	if err != nil {
		return nil, nil, err
	}

	thumb, err := g.uploadThumbnail(ctx, file, media.Key)
	if err != nil {
		utils.LogWarn(err, "Thumbnail generation failed for "+media.Key)
		return media, nil, nil
	}

	return media, thumb, nil
}

func (g *Gateway) uploadThumbnail(ctx context.Context, file *multipart.FileHeader, mediaKey string) (*StoredObject, error) {
	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	img, err := imaging.Decode(src)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	resized := imaging.Fit(img, thumbnailMaxSize, thumbnailMaxSize, imaging.Lanczos)
	if err := imaging.Encode(&buf, resized, imaging.JPEG, imaging.JPEGQuality(80)); err != nil {
		return nil, err
	}

	key := strings.TrimSuffix(mediaKey, path.Ext(mediaKey)) + "-thumb.jpg"
	size := int64(buf.Len())

	putCtx, cancel := context.WithTimeout(ctx, g.uploadTimeout)
	defer cancel()

	if err := g.store.Put(putCtx, key, &buf, size, "image/jpeg"); err != nil {
		return nil, &StorageError{Op: "put", Key: key, Err: err}
	}

	return &StoredObject{
		URL:         g.publicURL(key),
		Key:         key,
		ContentType: "image/jpeg",
		SizeBytes:   size,
	}, nil
}

// Replace écrit d'abord le nouvel objet; l'ancien n'est supprimé qu'après
// succès, en best-effort. Cet ordre garantit que l'utilisateur n'est jamais
// laissé sans asset valide, quitte à laisser un ancien objet orphelin.
func (g *Gateway) Replace(ctx context.Context, ownerID string, file *multipart.FileHeader, kind models.MediaType, class AssetClass, oldKey string) (*StoredObject, error) {
	obj, err := g.Upload(ctx, ownerID, file, kind, class)
	if err != nil {
		return nil, err
	}

	if oldKey != "" {
		g.deleteQuietly(oldKey)
	}

	return obj, nil
}

// Delete est idempotent: une clé absente compte comme un succès.
func (g *Gateway) Delete(ctx context.Context, key string) error {
	delCtx, cancel := context.WithTimeout(ctx, deleteTimeout)
	defer cancel()

	err := g.store.Remove(delCtx, key)
	if errors.Is(err, ErrObjectNotFound) {
		return nil
	}
	if err != nil {
		return &StorageError{Op: "delete", Key: key, Err: err}
	}

	cleanupDeletes.Inc()
	return nil
}

// DeleteQuietly supprime en best-effort: l'échec est loggé, jamais remonté.
// Contexte détaché: une déconnexion du client ne doit pas annuler un
// nettoyage déjà décidé.
func (g *Gateway) DeleteQuietly(key string) {
	g.deleteQuietly(key)
}

func (g *Gateway) deleteQuietly(key string) {
	ctx, cancel := context.WithTimeout(context.Background(), deleteTimeout)
	defer cancel()

	err := g.store.Remove(ctx, key)
	if err != nil && !errors.Is(err, ErrObjectNotFound) {
		utils.LogWarn(err, "Best-effort delete failed, orphaned object left at "+key)
		return
	}

	cleanupDeletes.Inc()
}

// L'URL publique se déduit du bucket et de la clé, sans aller-retour.
func (g *Gateway) publicURL(key string) string {
	return fmt.Sprintf("%s/%s/%s", g.baseURL, g.bucket, key)
}

// La clé porte une composante aléatoire: pas de collision même pour des
// uploads du même propriétaire au même instant, pas d'écrasement, et pas
// d'énumération par identifiants séquentiels.
func newObjectKey(ownerID, mimeType string) string {
	return ownerID + "-" + uuid.NewString() + extensionFor(mimeType)
}
