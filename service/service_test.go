package service

import (
	"context"
	"math"
	"testing"

	"github.com/foomo/studio-gallery/assetstore"
	"github.com/foomo/studio-gallery/service/vo"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestListGalleryNotConfigured(t *testing.T) {
	s := NewService(zap.NewNop(), nil, DefaultSettings())
	_, err := s.ListGallery(context.Background(), "Family", 1, 12)
	require.ErrorIs(t, err, assetstore.ErrNotConfigured)
}

func TestListCarouselNotConfigured(t *testing.T) {
	s := NewService(zap.NewNop(), nil, DefaultSettings())
	listing, err := s.ListCarousel(context.Background())
	require.NoError(t, err)
	assert.Equal(t, vo.Failed(NoImagesMessage), listing)
}

func TestListCarousel(t *testing.T) {
	store := newFakeStore()
	store.search["folder:Photographer/Carousel"] = append(
		imageAssets("Photographer/Carousel", 3),
		assetstore.Asset{PublicID: "Photographer/Carousel/clip", ResourceType: "video"},
	)

	listing, err := NewService(zap.NewNop(), store, DefaultSettings()).ListCarousel(context.Background())
	require.NoError(t, err)
	assert.True(t, listing.Success)
	assert.Nil(t, listing.Pagination)
	require.Len(t, listing.Images, 3)
	assert.Equal(t, vo.Image{
		URL:     "https://res.cloudinary.com/studio/image/upload/v1/Photographer/Carousel/img0.jpg",
		AltText: "img0",
		AssetID: "Photographer/Carousel/img0",
	}, listing.Images[0])
}

func TestListCarouselFallsBackToPrefixListing(t *testing.T) {
	store := newFakeStore()
	store.list["Photographer/Carousel"] = []assetstore.Asset{
		{PublicID: "Photographer/Carousel/", SecureURL: "https://cdn/untitled.jpg"},
	}

	listing, err := NewService(zap.NewNop(), store, DefaultSettings()).ListCarousel(context.Background())
	require.NoError(t, err)
	require.Len(t, listing.Images, 1)
	assert.Equal(t, CarouselPlaceholder, listing.Images[0].AltText)
}

func TestListGalleryPagination(t *testing.T) {
	store := newFakeStore()
	store.search[folderExpression("Photographer/Gallery/Family")] = imageAssets("Photographer/Gallery/Family", 25)
	s := NewService(zap.NewNop(), store, DefaultSettings())

	listing, err := s.ListGallery(context.Background(), "Family", 3, 12)
	require.NoError(t, err)
	assert.True(t, listing.Success)
	require.Len(t, listing.Images, 1)
	assert.Equal(t, "img24", listing.Images[0].AltText)
	assert.Equal(t, &vo.Pagination{Page: 3, Limit: 12, Total: 25, HasMore: false}, listing.Pagination)

	listing, err = s.ListGallery(context.Background(), "Family", 0, 0)
	require.NoError(t, err)
	assert.Len(t, listing.Images, 12)
	assert.Equal(t, &vo.Pagination{Page: 1, Limit: 12, Total: 25, HasMore: true}, listing.Pagination)
}

func TestListGalleryPagePastTheEnd(t *testing.T) {
	store := newFakeStore()
	store.search[folderExpression("Photographer/Gallery/Family")] = imageAssets("Photographer/Gallery/Family", 25)
	s := NewService(zap.NewNop(), store, DefaultSettings())

	listing, err := s.ListGallery(context.Background(), "Family", math.MaxInt/12+2, 12)
	require.NoError(t, err)
	assert.True(t, listing.Success)
	assert.Empty(t, listing.Images)
	assert.False(t, listing.Pagination.HasMore)
	assert.Equal(t, 25, listing.Pagination.Total)
}

func TestListGalleryIdempotent(t *testing.T) {
	store := newFakeStore()
	store.search[tagExpression("newborn")] = imageAssets("Photographer/Gallery/NewBorn", 7)
	s := NewService(zap.NewNop(), store, DefaultSettings())

	first, err := s.ListGallery(context.Background(), "NewBorn", 1, 12)
	require.NoError(t, err)
	second, err := s.ListGallery(context.Background(), "NewBorn", 1, 12)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestListGalleryNoImages(t *testing.T) {
	s := NewService(zap.NewNop(), newFakeStore(), DefaultSettings())
	listing, err := s.ListGallery(context.Background(), "Weddings", 1, 12)
	require.NoError(t, err)
	assert.Equal(t, vo.Failed(NoImagesMessage), listing)
}

func TestListGalleryUnknownCategoryUsesDefaults(t *testing.T) {
	store := newFakeStore()
	store.search[folderExpression("Photographer/Weddings")] = imageAssets("Photographer/Weddings", 2)

	listing, err := NewService(zap.NewNop(), store, DefaultSettings()).ListGallery(context.Background(), "Weddings", 1, 12)
	require.NoError(t, err)
	assert.Len(t, listing.Images, 2)
	assert.Equal(t, tagExpression("weddings"), store.searches[0].Expression)
}

func TestListGalleryUnexpectedError(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewService(zap.NewNop(), newFakeStore(), DefaultSettings()).ListGallery(ctx, "Family", 1, 12)
	require.ErrorIs(t, err, context.Canceled)
}

func TestObserverAndMetrics(t *testing.T) {
	store := newFakeStore()
	store.search[tagExpression("family")] = imageAssets("Photographer/Gallery/Family", 2)

	var events []vo.ResolutionEvent
	metrics := NewMetrics(prometheus.NewRegistry())
	s := NewService(zap.NewNop(), store, DefaultSettings(),
		WithMetrics(metrics),
		WithObserver(func(e vo.ResolutionEvent) {
			events = append(events, e)
		}),
	)

	_, err := s.ListGallery(context.Background(), "Family", 1, 12)
	require.NoError(t, err)
	_, err = s.ListGallery(context.Background(), "Pregnancy", 1, 12)
	require.NoError(t, err)

	require.Len(t, events, 2)
	assert.Equal(t, "Family", events[0].Listing)
	assert.Equal(t, "tag:family", events[0].Strategy)
	assert.Equal(t, 2, events[0].Images)
	assert.True(t, events[0].Success)
	assert.Equal(t, "Pregnancy", events[1].Listing)
	assert.False(t, events[1].Success)
	assert.Equal(t, NoImagesMessage, events[1].Error)

	assert.InDelta(t, 1, testutil.ToFloat64(metrics.resolutions.WithLabelValues(GalleryListing, KindTag)), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(metrics.resolutions.WithLabelValues(GalleryListing, "none")), 0)
}

func TestObserverCountsShapedImages(t *testing.T) {
	assets := imageAssets("Photographer/Carousel", 3)
	assets = append(assets, assetstore.Asset{
		PublicID:     "Photographer/Carousel/teaser",
		SecureURL:    "https://res.cloudinary.com/studio/video/upload/v1/Photographer/Carousel/teaser.mp4",
		ResourceType: "video",
	})
	store := newFakeStore()
	store.search["folder:Photographer/Carousel"] = assets

	var events []vo.ResolutionEvent
	s := NewService(zap.NewNop(), store, DefaultSettings(), WithObserver(func(e vo.ResolutionEvent) {
		events = append(events, e)
	}))

	listing, err := s.ListCarousel(context.Background())
	require.NoError(t, err)
	require.Len(t, listing.Images, 3)
	require.Len(t, events, 1)
	assert.Equal(t, len(listing.Images), events[0].Images)
}
