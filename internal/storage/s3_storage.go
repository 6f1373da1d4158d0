package storage

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

const presignExpiry = 15 * time.Minute

// Upload folders, one per kind of listing image.
const (
	FolderDoctors     = "doctors"
	FolderAttractions = "attractions"
	FolderMaps        = "maps"
)

var (
	ErrContentTypeNotAllowed = errors.New("content type is not allowed")
	ErrFolderNotAllowed      = errors.New("upload folder is not allowed")
)

var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

var allowedFolders = map[string]bool{
	FolderDoctors:     true,
	FolderAttractions: true,
	FolderMaps:        true,
}

type PresignedUpload struct {
	UploadURL string `json:"upload_url"`
	FileURL   string `json:"file_url"`
	Key       string `json:"key"`
	ExpiresAt string `json:"expires_at"`
}

// ImageStorage hands out direct-to-bucket upload URLs for listing images.
type ImageStorage interface {
	PresignImageUpload(ctx context.Context, folder, filename, contentType string) (*PresignedUpload, error)
}

type S3Storage struct {
	client  *s3.Client
	bucket  string
	region  string
	baseURL string
}

func NewS3Storage(ctx context.Context, region, bucket, accessKeyID, secretAccessKey, baseURL string) *S3Storage {
	var cfg aws.Config

	if accessKeyID != "" && secretAccessKey != "" {
		cfg = aws.Config{
			Region:      region,
			Credentials: credentials.NewStaticCredentialsProvider(accessKeyID, secretAccessKey, ""),
		}
	} else {
		// Environment, shared config or instance role.
		var err error
		cfg, err = config.LoadDefaultConfig(ctx, config.WithRegion(region))
		if err != nil {
			cfg = aws.Config{Region: region}
		}
	}

	return &S3Storage{
		client:  s3.NewFromConfig(cfg),
		bucket:  bucket,
		region:  region,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// ObjectKey builds a collision-free key inside folder, keeping a known image extension.
func ObjectKey(folder, filename, contentType string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" || len(ext) > 5 {
		ext = allowedImageTypes[contentType]
	}
	return fmt.Sprintf("%s/%s%s", folder, uuid.New().String(), ext)
}

// ValidateImageUpload checks the folder and content type before anything is signed.
func ValidateImageUpload(folder, contentType string) error {
	if !allowedFolders[folder] {
		return ErrFolderNotAllowed
	}
	if _, ok := allowedImageTypes[strings.ToLower(contentType)]; !ok {
		return ErrContentTypeNotAllowed
	}
	return nil
}

func (s *S3Storage) PresignImageUpload(ctx context.Context, folder, filename, contentType string) (*PresignedUpload, error) {
	contentType = strings.ToLower(contentType)
	if err := ValidateImageUpload(folder, contentType); err != nil {
		return nil, err
	}

	key := ObjectKey(folder, filename, contentType)
	presignClient := s3.NewPresignClient(s.client)
	req, err := presignClient.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(presignExpiry))
	if err != nil {
		return nil, fmt.Errorf("failed to generate presigned URL: %w", err)
	}

	return &PresignedUpload{
		UploadURL: req.URL,
		FileURL:   s.fileURL(key),
		Key:       key,
		ExpiresAt: time.Now().Add(presignExpiry).UTC().Format(time.RFC3339),
	}, nil
}

// fileURL prefers the CDN base URL and falls back to the bucket's virtual-hosted URL.
func (s *S3Storage) fileURL(key string) string {
	if s.baseURL != "" {
		return s.baseURL + "/" + key
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)
}
