package assetstore

import (
	"context"
	"errors"
)

// MaxResults is the largest page the store hands out per call.
const MaxResults = 500

var ErrNotConfigured = errors.New("asset store credentials not configured")

type Asset struct {
	PublicID     string   `json:"public_id"`
	SecureURL    string   `json:"secure_url"`
	ResourceType string   `json:"resource_type,omitempty"`
	Folder       string   `json:"folder,omitempty"`
	Tags         []string `json:"tags,omitempty"`
}

// SearchQuery is a boolean expression query, e.g. "folder:Photographer/Carousel".
type SearchQuery struct {
	Expression string
	MaxResults int
	NextCursor string
}

type SearchResult struct {
	Assets     []Asset
	TotalCount int
	NextCursor string
}

// ListQuery lists uploaded image assets whose public id starts with Prefix.
type ListQuery struct {
	Prefix     string
	MaxResults int
}

type ListResult struct {
	Assets []Asset
}

// Store is the capability surface the listing pipeline needs from the media store.
type Store interface {
	Search(ctx context.Context, query SearchQuery) (*SearchResult, error)
	List(ctx context.Context, query ListQuery) (*ListResult, error)
}

// Unconfigured returns a Store that fails every call with ErrNotConfigured.
func Unconfigured() Store {
	return unconfigured{}
}

type unconfigured struct{}

func (unconfigured) Search(context.Context, SearchQuery) (*SearchResult, error) {
	return nil, ErrNotConfigured
}

func (unconfigured) List(context.Context, ListQuery) (*ListResult, error) {
	return nil, ErrNotConfigured
}
