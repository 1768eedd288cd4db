package service

import (
	"context"
	"errors"
	"time"

	"github.com/foomo/studio-gallery/assetstore"
	"github.com/foomo/studio-gallery/service/vo"
	"go.uber.org/zap"
)

const (
	CarouselListing = "carousel"
	GalleryListing  = "gallery"

	NoImagesMessage      = "No images found"
	NotConfiguredMessage = "Cloudinary credentials not configured"

	DefaultMaxCursorPages = 20
)

type Service interface {
	ListCarousel(ctx context.Context) (*vo.Listing, error)
	ListGallery(ctx context.Context, category string, page, limit int) (*vo.Listing, error)
}

// Observer is notified about every resolved listing.
type Observer func(event vo.ResolutionEvent)

type Settings struct {
	MaxCursorPages int
	PageSize       PageSizeConfig
}

func DefaultSettings() Settings {
	return Settings{
		MaxCursorPages: DefaultMaxCursorPages,
		PageSize: PageSizeConfig{
			Default: DefaultPageLimit,
			Max:     MaxPageLimit,
		},
	}
}

type Option func(*service)

func WithMetrics(m *Metrics) Option {
	return func(s *service) {
		s.metrics = m
	}
}

func WithObserver(o Observer) Option {
	return func(s *service) {
		s.observer = o
	}
}

type service struct {
	logger     *zap.Logger
	store      assetstore.Store
	configured bool
	settings   Settings
	metrics    *Metrics
	observer   Observer
}

// NewService creates the listing service. A nil store means the asset store
// credentials are missing: the carousel then degrades to an empty listing and
// galleries fail with assetstore.ErrNotConfigured.
func NewService(logger *zap.Logger, store assetstore.Store, settings Settings, opts ...Option) Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &service{
		logger:     logger,
		store:      store,
		configured: store != nil,
		settings:   settings,
	}
	if store == nil {
		s.store = assetstore.Unconfigured()
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) ListCarousel(ctx context.Context) (*vo.Listing, error) {
	images, err := s.resolve(ctx, CarouselListing, CarouselListing, CarouselPlaceholder, CarouselStrategies(s.settings.MaxCursorPages))
	if errors.Is(err, ErrNoImages) {
		return vo.Failed(NoImagesMessage), nil
	} else if err != nil {
		return nil, err
	}
	return &vo.Listing{
		Images:  images,
		Success: true,
	}, nil
}

func (s *service) ListGallery(ctx context.Context, category string, page, limit int) (*vo.Listing, error) {
	if !s.configured {
		s.logger.Error("missing asset store credentials", zap.String("category", category))
		return nil, assetstore.ErrNotConfigured
	}
	if page < 1 {
		page = 1
	}
	limit = ClampLimit(limit, s.settings.PageSize)

	all, err := s.resolve(ctx, GalleryListing, category, GalleryPlaceholder, GalleryStrategies(category))
	if errors.Is(err, ErrNoImages) {
		return vo.Failed(NoImagesMessage), nil
	} else if err != nil {
		return nil, err
	}

	images, pagination := Paginate(all, page, limit)
	s.logger.Debug("gallery page",
		zap.String("category", category),
		zap.Int("page", pagination.Page),
		zap.Int("images", len(images)),
		zap.Bool("hasMore", pagination.HasMore),
	)
	return &vo.Listing{
		Images:     images,
		Success:    true,
		Pagination: &pagination,
	}, nil
}

// resolve runs the chain and shapes the winning assets into images.
func (s *service) resolve(ctx context.Context, listing, name, placeholder string, strategies []Strategy) ([]vo.Image, error) {
	logger := s.logger.With(zap.String("listing", name))
	p := &Pipeline{
		Store:      s.store,
		Strategies: strategies,
		Logger:     logger,
		Metrics:    s.metrics,
	}
	res, err := p.Resolve(ctx)
	var images []vo.Image
	if err == nil {
		images = ToImages(res.Assets, placeholder, res.Permissive)
	}

	event := vo.ResolutionEvent{Listing: name, Time: time.Now()}
	switch {
	case err == nil:
		event.Strategy = res.Strategy
		event.Images = len(images)
		event.Success = true
		s.metrics.resolved(listing, res.Kind)
	case errors.Is(err, ErrNoImages):
		logger.Warn("no images found")
		event.Error = NoImagesMessage
		s.metrics.resolved(listing, "")
	default:
		logger.Error("failed to resolve listing", zap.Error(err))
		event.Error = err.Error()
	}
	if s.observer != nil {
		s.observer(event)
	}
	return images, err
}
