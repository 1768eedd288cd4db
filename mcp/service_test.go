package mcp

import (
	"context"

	"github.com/foomo/studio-gallery/service/vo"
)

type galleryCall struct {
	category    string
	page, limit int
}

// fakeService returns canned listings and records gallery calls.
type fakeService struct {
	carousel    *vo.Listing
	carouselErr error
	gallery     *vo.Listing
	galleryErr  error
	panicWith   any

	galleryCalls []galleryCall
}

func (f *fakeService) ListCarousel(context.Context) (*vo.Listing, error) {
	if f.panicWith != nil {
		panic(f.panicWith)
	}
	return f.carousel, f.carouselErr
}

func (f *fakeService) ListGallery(_ context.Context, category string, page, limit int) (*vo.Listing, error) {
	if f.panicWith != nil {
		panic(f.panicWith)
	}
	f.galleryCalls = append(f.galleryCalls, galleryCall{category, page, limit})
	return f.gallery, f.galleryErr
}

func sampleListing() *vo.Listing {
	return &vo.Listing{
		Images: []vo.Image{
			{URL: "https://res.cloudinary.com/studio/img42.jpg", AltText: "img42", AssetID: "Photographer/Gallery/Family/img42"},
		},
		Success:    true,
		Pagination: &vo.Pagination{Page: 1, Limit: 12, Total: 1},
	}
}
