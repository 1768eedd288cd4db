package service

import (
	"strings"

	"github.com/foomo/studio-gallery/assetstore"
	"github.com/foomo/studio-gallery/service/vo"
)

const (
	CarouselPlaceholder = "Carousel Image"
	GalleryPlaceholder  = "Gallery Image"
)

// AltText derives an image's alt text from the last segment of its asset id.
func AltText(publicID, placeholder string) string {
	if i := strings.LastIndex(publicID, "/"); i >= 0 {
		publicID = publicID[i+1:]
	}
	if publicID == "" {
		return placeholder
	}
	return publicID
}

// ToImages keeps the image assets and maps them to descriptors. When
// permissive is set an asset without a resource type counts as an image.
func ToImages(assets []assetstore.Asset, placeholder string, permissive bool) []vo.Image {
	images := make([]vo.Image, 0, len(assets))
	for _, a := range assets {
		if !isImage(a, permissive) {
			continue
		}
		images = append(images, vo.Image{
			URL:     a.SecureURL,
			AltText: AltText(a.PublicID, placeholder),
			AssetID: a.PublicID,
		})
	}
	return images
}

func isImage(a assetstore.Asset, permissive bool) bool {
	return a.ResourceType == "image" || (permissive && a.ResourceType == "")
}
