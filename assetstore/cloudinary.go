package assetstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/admin"
	"github.com/cloudinary/cloudinary-go/v2/api/admin/search"
)

type cloudinaryStore struct {
	cld *cloudinary.Cloudinary
}

// NewCloudinary creates a Store backed by the Cloudinary search and admin APIs.
func NewCloudinary(cloudName, apiKey, apiSecret string) (Store, error) {
	if cloudName == "" || apiKey == "" || apiSecret == "" {
		return nil, ErrNotConfigured
	}
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to create cloudinary client: %w", err)
	}
	return &cloudinaryStore{cld: cld}, nil
}

func (s *cloudinaryStore) Search(ctx context.Context, query SearchQuery) (*SearchResult, error) {
	resp, err := s.cld.Admin.Search(ctx, search.Query{
		Expression: query.Expression,
		MaxResults: capResults(query.MaxResults),
		NextCursor: query.NextCursor,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search %q: %w", query.Expression, err)
	}
	if resp.Error.Message != "" {
		return nil, fmt.Errorf("failed to search %q: %w", query.Expression, errors.New(resp.Error.Message))
	}

	result := &SearchResult{
		Assets:     make([]Asset, 0, len(resp.Assets)),
		TotalCount: resp.TotalCount,
		NextCursor: resp.NextCursor,
	}
	for _, a := range resp.Assets {
		result.Assets = append(result.Assets, fromSearchAsset(a))
	}
	return result, nil
}

func (s *cloudinaryStore) List(ctx context.Context, query ListQuery) (*ListResult, error) {
	resp, err := s.cld.Admin.Assets(ctx, admin.AssetsParams{
		AssetType:    api.Image,
		DeliveryType: string(api.Upload),
		Prefix:       query.Prefix,
		MaxResults:   capResults(query.MaxResults),
		Tags:         api.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list prefix %q: %w", query.Prefix, err)
	}
	if resp.Error.Message != "" {
		return nil, fmt.Errorf("failed to list prefix %q: %w", query.Prefix, errors.New(resp.Error.Message))
	}

	result := &ListResult{Assets: make([]Asset, 0, len(resp.Assets))}
	for _, a := range resp.Assets {
		result.Assets = append(result.Assets, fromBriefAsset(a))
	}
	return result, nil
}

func fromSearchAsset(a admin.SearchAsset) Asset {
	return Asset{
		PublicID:     a.PublicID,
		SecureURL:    a.SecureURL,
		ResourceType: a.ResourceType,
		Folder:       a.Folder,
		Tags:         a.Tags,
	}
}

// fromBriefAsset maps an admin listing entry. Folder is only set on accounts
// using dynamic folders.
func fromBriefAsset(a api.BriefAssetResult) Asset {
	return Asset{
		PublicID:     a.PublicID,
		SecureURL:    a.SecureURL,
		ResourceType: a.AssetType,
		Folder:       a.AssetFolder,
		Tags:         a.Tags,
	}
}

func capResults(n int) int {
	if n <= 0 || n > MaxResults {
		return MaxResults
	}
	return n
}
