package storage

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"creatorhub-backend/models"
)

// AssetClass distingue les politiques de taille: une photo de profil est
// petite et stricte, un média de contenu est plus large.
type AssetClass string

const (
	AssetProfilePicture AssetClass = "profile_picture"
	AssetContentMedia   AssetClass = "content_media"
)

const (
	MaxProfilePictureSize = 5 * 1024 * 1024
	MaxContentImageSize   = 100 * 1024 * 1024
	MaxContentVideoSize   = 500 * 1024 * 1024
)

var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

var videoExtensions = map[string]string{
	"video/mp4":  ".mp4",
	"video/webm": ".webm",
}

// Validate vérifie le type MIME déclaré et la taille contre la politique de
// la classe d'asset. Fonction pure, aucune E/S: elle tourne et échoue avant
// le moindre appel au backend de stockage.
func Validate(mimeType string, sizeBytes int64, kind models.MediaType, class AssetClass) error {
	switch kind {
	case models.MediaTypeImage:
		if _, ok := imageExtensions[mimeType]; !ok {
			return &ValidationError{Reason: fmt.Sprintf("unsupported image type %q, use JPEG, PNG, WebP or GIF", mimeType)}
		}
	case models.MediaTypeVideo:
		if class == AssetProfilePicture {
			return &ValidationError{Reason: "a profile picture must be an image"}
		}
		if _, ok := videoExtensions[mimeType]; !ok {
			return &ValidationError{Reason: fmt.Sprintf("unsupported video type %q, use MP4 or WebM", mimeType)}
		}
	default:
		return &ValidationError{Reason: fmt.Sprintf("unknown media type %q", kind)}
	}

	if sizeBytes <= 0 {
		return &ValidationError{Reason: "empty file"}
	}

	limit := sizeLimit(kind, class)
	if sizeBytes > limit {
		return &ValidationError{Reason: fmt.Sprintf("file too large: %d bytes, maximum %d allowed", sizeBytes, limit)}
	}

	return nil
}

func sizeLimit(kind models.MediaType, class AssetClass) int64 {
	if class == AssetProfilePicture {
		return MaxProfilePictureSize
	}
	if kind == models.MediaTypeVideo {
		return MaxContentVideoSize
	}
	return MaxContentImageSize
}

func extensionFor(mimeType string) string {
	if ext, ok := imageExtensions[mimeType]; ok {
		return ext
	}
	if ext, ok := videoExtensions[mimeType]; ok {
		return ext
	}
	return ""
}

// sniffContentType lit les premiers octets pour identifier la signature du
// fichier, puis réinitialise le curseur.
func sniffContentType(src io.ReadSeeker) (string, error) {
	buffer := make([]byte, 512)
	n, err := src.Read(buffer)
	if err != nil && err != io.EOF {
		return "", err
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return "", err
	}
	return http.DetectContentType(buffer[:n]), nil
}

func mimeMatches(detected, declared string) bool {
	// Signature inconnue: on ne peut pas trancher, le type déclaré fait foi
	if detected == "application/octet-stream" {
		return true
	}
	if detected == declared {
		return true
	}
	return strings.Split(detected, "/")[0] == strings.Split(declared, "/")[0]
}
