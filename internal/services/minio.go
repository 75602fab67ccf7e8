package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"net/url"
	"os"
	"path"
	"time"

	"beautymart_back_end/internal/database"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
)

func returnsBucket() string {
	bucket := os.Getenv("MINIO_RETURNS_BUCKET")
	if bucket == "" {
		bucket = "returns"
	}
	return bucket
}

// UploadReturnPhoto envoie une photo d'article (preuve de dommage) dans MinIO.
// L'objet est rangé sous <return_id>/<uuid><ext> pour éviter les collisions de noms.
func UploadReturnPhoto(ctx context.Context, returnID string, file *multipart.FileHeader) (string, error) {
	if database.MinIO == nil {
		return "", fmt.Errorf("MinIO non initialisé")
	}

	f, err := file.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	objectName := fmt.Sprintf("%s/%s%s", returnID, uuid.NewString(), path.Ext(file.Filename))

	_, err = database.MinIO.PutObject(ctx, returnsBucket(), objectName, f, file.Size,
		minio.PutObjectOptions{ContentType: file.Header.Get("Content-Type")})
	if err != nil {
		return "", err
	}

	return objectName, nil
}

// GenerateSignedPhotoURL génère une URL signée avec expiration pour une photo de retour
func GenerateSignedPhotoURL(ctx context.Context, objectName string, duration time.Duration) (string, error) {
	if database.MinIO == nil {
		return "", fmt.Errorf("MinIO non initialisé")
	}

	reqParams := make(url.Values)

	presignedURL, err := database.MinIO.PresignedGetObject(ctx, returnsBucket(), objectName, duration, reqParams)
	if err != nil {
		return "", err
	}

	return presignedURL.String(), nil
}
