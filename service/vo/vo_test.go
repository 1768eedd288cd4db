package vo

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListing(t *testing.T) {
	listing := Listing{
		Images: []Image{
			{
				URL:     "https://res.cloudinary.com/studio/image/upload/v1/Photographer/Gallery/Family/img42.jpg",
				AltText: "img42",
				AssetID: "Photographer/Gallery/Family/img42",
			},
		},
		Success: true,
		Pagination: &Pagination{
			Page:    1,
			Limit:   12,
			Total:   1,
			HasMore: false,
		},
	}

	jsonData, err := json.Marshal(listing)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"images": [{
			"src": "https://res.cloudinary.com/studio/image/upload/v1/Photographer/Gallery/Family/img42.jpg",
			"alt": "img42",
			"publicId": "Photographer/Gallery/Family/img42"
		}],
		"success": true,
		"pagination": {"page": 1, "limit": 12, "total": 1, "hasMore": false}
	}`, string(jsonData))
}

func TestFailed(t *testing.T) {
	jsonData, err := json.Marshal(Failed("No images found"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"images": [], "success": false, "error": "No images found"}`, string(jsonData))
}
