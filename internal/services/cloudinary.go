package services

import (
	"context"
	"fmt"
	"mime/multipart"

	"github.com/ChadiEch/ambassador-dashboard/internal/config"
	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// CloudinaryService handles all Cloudinary operations
type CloudinaryService struct {
	cld *cloudinary.Cloudinary
}

// NewCloudinaryService creates a new Cloudinary service instance
func NewCloudinaryService(cfg *config.Config) (*CloudinaryService, error) {
	if cfg.CloudinaryCloudName == "" || cfg.CloudinaryAPIKey == "" || cfg.CloudinaryAPISecret == "" {
		return nil, fmt.Errorf("cloudinary configuration is missing")
	}

	cld, err := cloudinary.NewFromParams(
		cfg.CloudinaryCloudName,
		cfg.CloudinaryAPIKey,
		cfg.CloudinaryAPISecret,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cloudinary: %w", err)
	}

	return &CloudinaryService{
		cld: cld,
	}, nil
}

// UploadProfilePhoto upload la photo de profil d'un ambassadeur
func (s *CloudinaryService) UploadProfilePhoto(ctx context.Context, file multipart.File, userID string) (string, error) {
	// Chemin stable : un nouvel upload écrase l'ancienne photo
	publicID := fmt.Sprintf("profiles/%s", userID)
	overwrite := true

	uploadResult, err := s.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		PublicID:       publicID,
		Folder:         "ambassadors/profiles",
		Overwrite:      &overwrite,
		ResourceType:   "image",
		Format:         "jpg",
		Transformation: "c_fill,g_face,h_500,w_500", // Redimensionner et centrer sur le visage
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to cloudinary: %w", err)
	}

	return uploadResult.SecureURL, nil
}

// DeleteProfilePhoto supprime la photo de profil d'un ambassadeur
func (s *CloudinaryService) DeleteProfilePhoto(ctx context.Context, userID string) error {
	_, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID:     fmt.Sprintf("ambassadors/profiles/profiles/%s", userID),
		ResourceType: "image",
	})
	if err != nil {
		return fmt.Errorf("failed to delete profile photo: %w", err)
	}

	return nil
}
