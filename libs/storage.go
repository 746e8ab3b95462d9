package libs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
)

var (
	ErrFileTooLarge    = errors.New("file too large")
	ErrInvalidFileType = errors.New("invalid file type. Only jpg, jpeg, png, gif, webp allowed")
)

var allowedImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// ImageStorage persists an uploaded image and returns a public URL for it.
type ImageStorage interface {
	Upload(ctx context.Context, file io.Reader, filename, folder string) (string, error)
}

func ValidateImageFile(header *multipart.FileHeader, maxSize int64) error {
	if header.Size > maxSize {
		return fmt.Errorf("%w (max %d bytes)", ErrFileTooLarge, maxSize)
	}
	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedImageExtensions[ext] {
		return ErrInvalidFileType
	}
	return nil
}

type CloudinaryStorage struct {
	cld *cloudinary.Cloudinary
}

// NewCloudinaryStorage accepts either a CLOUDINARY_URL or the three separate
// credentials.
func NewCloudinaryStorage(cloudinaryURL, cloudName, apiKey, apiSecret string) (*CloudinaryStorage, error) {
	var (
		cld *cloudinary.Cloudinary
		err error
	)
	switch {
	case cloudName != "" && apiKey != "" && apiSecret != "":
		cld, err = cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	case cloudinaryURL != "":
		cld, err = cloudinary.NewFromURL(cloudinaryURL)
	default:
		return nil, errors.New("cloudinary credentials not configured")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cloudinary: %w", err)
	}
	return &CloudinaryStorage{cld: cld}, nil
}

func (s *CloudinaryStorage) Upload(ctx context.Context, file io.Reader, filename, folder string) (string, error) {
	base := strings.TrimSuffix(strings.ReplaceAll(filename, " ", "_"), filepath.Ext(filename))
	publicID := fmt.Sprintf("%d_%s", time.Now().Unix(), base)

	result, err := s.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		PublicID:       publicID,
		Folder:         folder,
		ResourceType:   "image",
		Transformation: "q_auto,f_auto",
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to cloudinary: %w", err)
	}
	if result.SecureURL != "" {
		return result.SecureURL, nil
	}
	if result.URL != "" {
		return result.URL, nil
	}
	return "", errors.New("cloudinary returned no url")
}

// LocalStorage writes under dir and serves the files from baseURL + "/uploads".
type LocalStorage struct {
	dir     string
	baseURL string
}

func NewLocalStorage(dir, baseURL string) *LocalStorage {
	return &LocalStorage{dir: dir, baseURL: strings.TrimSuffix(baseURL, "/")}
}

func (s *LocalStorage) Upload(ctx context.Context, file io.Reader, filename, folder string) (string, error) {
	target := filepath.Join(s.dir, folder)
	if err := os.MkdirAll(target, os.ModePerm); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	name := fmt.Sprintf("%d_%s%s", time.Now().Unix(), uuid.NewString()[:8], strings.ToLower(filepath.Ext(filename)))
	out, err := os.Create(filepath.Join(target, name))
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, file); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}

	return fmt.Sprintf("%s/uploads/%s/%s", s.baseURL, folder, name), nil
}

// NewImageStorage picks Cloudinary when credentials are present and falls back
// to local disk otherwise.
func NewImageStorage(cloudinaryURL, cloudName, apiKey, apiSecret, uploadDir, baseURL string) ImageStorage {
	if cloudinaryURL != "" || cloudName != "" {
		cs, err := NewCloudinaryStorage(cloudinaryURL, cloudName, apiKey, apiSecret)
		if err == nil {
			slog.Info("Image uploads go to Cloudinary")
			return cs
		}
		slog.Warn("Cloudinary unavailable, storing uploads locally", "error", err)
	}
	return NewLocalStorage(uploadDir, baseURL)
}
