package services

import (
	"context"
	"fmt"
	"io"
	"log"
	"path"
	"strings"
	"time"

	"edumart/internal/caching"
	"edumart/internal/models"
	"edumart/internal/repositories"

	"github.com/google/uuid"
)

// BannerService manages banner records and their backing images. The image
// lands in object storage first; a failed database write leaves an orphan
// object, cleaned up opportunistically on delete.
type BannerService interface {
	Create(ctx context.Context, orgID uuid.UUID, domain, title string, image io.Reader, imageSize int64, contentType string) (*models.Banner, error)
	CreateFromURL(ctx context.Context, orgID uuid.UUID, domain, title, imageURL string) (*models.Banner, error)
	GetByID(ctx context.Context, orgID, id uuid.UUID) (*models.Banner, error)
	Update(ctx context.Context, domain string, banner *models.Banner) error
	Delete(ctx context.Context, orgID, id uuid.UUID, domain string) error
	List(ctx context.Context, orgID uuid.UUID, limit, offset int) ([]*models.Banner, error)
}

// presignExpiry bounds how long a banner image link stays fetchable.
const presignExpiry = 15 * time.Minute

type bannerService struct {
	bannerRepo repositories.BannerRepository
	mediaSvc   MediaService
	cacheSvc   caching.CacheService
}

func NewBannerService(bannerRepo repositories.BannerRepository, mediaSvc MediaService, cacheSvc caching.CacheService) BannerService {
	return &bannerService{bannerRepo: bannerRepo, mediaSvc: mediaSvc, cacheSvc: cacheSvc}
}

func (s *bannerService) Create(ctx context.Context, orgID uuid.UUID, domain, title string, image io.Reader, imageSize int64, contentType string) (*models.Banner, error) {
	id := uuid.New()
	objectName := fmt.Sprintf("banners/%s/%s%s", orgID, id, extFor(contentType))
	imageURL, err := s.mediaSvc.UploadImage(ctx, objectName, image, imageSize, contentType)
	if err != nil {
		return nil, err
	}
	return s.persist(ctx, &models.Banner{ID: id, OrgID: orgID, Title: title, ImageURL: imageURL}, domain)
}

// CreateFromURL keeps the original JSON create path working when the image
// is already hosted elsewhere.
func (s *bannerService) CreateFromURL(ctx context.Context, orgID uuid.UUID, domain, title, imageURL string) (*models.Banner, error) {
	return s.persist(ctx, &models.Banner{ID: uuid.New(), OrgID: orgID, Title: title, ImageURL: imageURL}, domain)
}

func (s *bannerService) persist(ctx context.Context, banner *models.Banner, domain string) (*models.Banner, error) {
	if err := s.bannerRepo.Create(ctx, banner); err != nil {
		return nil, err
	}
	s.invalidate(ctx, domain)
	return banner, nil
}

func (s *bannerService) GetByID(ctx context.Context, orgID, id uuid.UUID) (*models.Banner, error) {
	banner, err := s.bannerRepo.GetByID(ctx, orgID, id)
	if err != nil {
		return nil, err
	}
	// Images we hold in object storage are served through a time-limited
	// URL; externally hosted images pass through untouched.
	if object := objectNameFromURL(banner.ImageURL); object != "" {
		url, err := s.mediaSvc.GetPresignedURL(ctx, object, presignExpiry)
		if err != nil {
			log.Printf("WARN: failed to presign banner image %s: %v", object, err)
		} else {
			banner.ImageURL = url
		}
	}
	return banner, nil
}

func (s *bannerService) Update(ctx context.Context, domain string, banner *models.Banner) error {
	if err := s.bannerRepo.Update(ctx, banner); err != nil {
		return err
	}
	s.invalidate(ctx, domain)
	return nil
}

func (s *bannerService) Delete(ctx context.Context, orgID, id uuid.UUID, domain string) error {
	banner, err := s.bannerRepo.GetByID(ctx, orgID, id)
	if err != nil {
		return err
	}
	if err := s.bannerRepo.Delete(ctx, orgID, id); err != nil {
		return err
	}
	// Only objects we uploaded live under banners/; external URLs are left alone.
	if object := objectNameFromURL(banner.ImageURL); object != "" {
		if err := s.mediaSvc.DeleteImage(ctx, object); err != nil {
			log.Printf("WARN: failed to remove banner image %s: %v", object, err)
		}
	}
	s.invalidate(ctx, domain)
	return nil
}

func (s *bannerService) List(ctx context.Context, orgID uuid.UUID, limit, offset int) ([]*models.Banner, error) {
	return s.bannerRepo.List(ctx, orgID, limit, offset)
}

func (s *bannerService) invalidate(ctx context.Context, domain string) {
	if domain == "" {
		return
	}
	if err := s.cacheSvc.InvalidateContent(ctx, domain); err != nil {
		log.Printf("WARN: failed to invalidate content cache for %s: %v", domain, err)
	}
}

func extFor(contentType string) string {
	switch contentType {
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	default:
		return ".jpg"
	}
}

func objectNameFromURL(imageURL string) string {
	dir, file := path.Split(imageURL)
	if file == "" {
		return ""
	}
	idx := strings.Index(dir, "banners/")
	if idx < 0 {
		return ""
	}
	return dir[idx:] + file
}
