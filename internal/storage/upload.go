package storage

import (
	"context"
	"errors"
	"mime/multipart"
	"path/filepath"
	"strings"
)

// UploadMultipartFile uploads a multipart upload to R2 and returns the public URL.
// Size and extension limits are enforced here so every upload path shares them.
func UploadMultipartFile(
	ctx context.Context,
	client *R2Client,
	key string,
	file *multipart.FileHeader,
	maxBytes int64,
	allowedExts []string,
) (string, error) {

	if file.Size > maxBytes {
		return "", errors.New("file too large")
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	allowed := false
	for _, a := range allowedExts {
		if ext == a {
			allowed = true
			break
		}
	}
	if !allowed {
		return "", errors.New("unsupported file type: " + ext)
	}

	f, err := file.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	return client.Upload(ctx, key, f)
}
