package storage

import (
	"testing"

	"creatorhub-backend/models"

	"github.com/stretchr/testify/assert"
)

func TestValidate_AcceptedImageTypes(t *testing.T) {
	for _, mimeType := range []string{"image/jpeg", "image/png", "image/webp", "image/gif"} {
		err := Validate(mimeType, 1024, models.MediaTypeImage, AssetContentMedia)
		assert.NoError(t, err, mimeType)
	}
}

func TestValidate_RejectsPdfRegardlessOfSize(t *testing.T) {
	err := Validate("application/pdf", 10, models.MediaTypeImage, AssetContentMedia)

	var vErr *ValidationError
	assert.ErrorAs(t, err, &vErr)
}

// 10MB contre un plafond de 5MB pour une photo de profil
func TestValidate_RejectsOversizeProfilePicture(t *testing.T) {
	err := Validate("image/jpeg", 10*1024*1024, models.MediaTypeImage, AssetProfilePicture)

	var vErr *ValidationError
	assert.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Reason, "too large")
}

func TestValidate_SameSizeAllowedForContentMedia(t *testing.T) {
	// La politique diffère par classe: 10MB passe pour un média de contenu
	err := Validate("image/jpeg", 10*1024*1024, models.MediaTypeImage, AssetContentMedia)
	assert.NoError(t, err)
}

func TestValidate_VideoAllowedForContentOnly(t *testing.T) {
	err := Validate("video/mp4", 1024, models.MediaTypeVideo, AssetContentMedia)
	assert.NoError(t, err)

	err = Validate("video/mp4", 1024, models.MediaTypeVideo, AssetProfilePicture)
	var vErr *ValidationError
	assert.ErrorAs(t, err, &vErr)
}

func TestValidate_RejectsUnsupportedVideoType(t *testing.T) {
	err := Validate("video/x-msvideo", 1024, models.MediaTypeVideo, AssetContentMedia)

	var vErr *ValidationError
	assert.ErrorAs(t, err, &vErr)
}

func TestValidate_RejectsEmptyFile(t *testing.T) {
	err := Validate("image/png", 0, models.MediaTypeImage, AssetContentMedia)

	var vErr *ValidationError
	assert.ErrorAs(t, err, &vErr)
}

func TestValidate_RejectsOversizeVideo(t *testing.T) {
	err := Validate("video/webm", MaxContentVideoSize+1, models.MediaTypeVideo, AssetContentMedia)

	var vErr *ValidationError
	assert.ErrorAs(t, err, &vErr)
}
