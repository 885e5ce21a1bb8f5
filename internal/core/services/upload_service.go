package services

import (
	"context"
	"fmt"
	"mime/multipart"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// UploadService stores user documents (ID cards, ownership proofs,
// profile pictures) on Cloudinary and returns their secure URLs.
type UploadService struct {
	cld *cloudinary.Cloudinary
}

// NewUploadService creates a new upload service
func NewUploadService(cloudName, apiKey, apiSecret string) (*UploadService, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Cloudinary: %w", err)
	}
	return &UploadService{cld: cld}, nil
}

// Upload uploads a multipart file into the given folder and returns its
// secure URL.
func (s *UploadService) Upload(ctx context.Context, fileHeader *multipart.FileHeader, folder string) (string, error) {
	if folder == "" {
		folder = "loye"
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	result, err := s.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder:       folder,
		ResourceType: "auto",
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to Cloudinary: %w", err)
	}

	return result.SecureURL, nil
}
