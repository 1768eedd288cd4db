package service

import (
	"context"
	"fmt"

	"github.com/foomo/studio-gallery/assetstore"
)

// fakeStore answers searches by expression and listings by prefix.
type fakeStore struct {
	search    map[string][]assetstore.Asset
	list      map[string][]assetstore.Asset
	searchErr map[string]error
	listErr   map[string]error

	searches []assetstore.SearchQuery
	lists    []assetstore.ListQuery
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		search:    map[string][]assetstore.Asset{},
		list:      map[string][]assetstore.Asset{},
		searchErr: map[string]error{},
		listErr:   map[string]error{},
	}
}

func (f *fakeStore) Search(_ context.Context, q assetstore.SearchQuery) (*assetstore.SearchResult, error) {
	f.searches = append(f.searches, q)
	if err := f.searchErr[q.Expression]; err != nil {
		return nil, err
	}
	assets := f.search[q.Expression]
	return &assetstore.SearchResult{Assets: assets, TotalCount: len(assets)}, nil
}

func (f *fakeStore) List(_ context.Context, q assetstore.ListQuery) (*assetstore.ListResult, error) {
	f.lists = append(f.lists, q)
	if err := f.listErr[q.Prefix]; err != nil {
		return nil, err
	}
	return &assetstore.ListResult{Assets: f.list[q.Prefix]}, nil
}

func (f *fakeStore) calls() int {
	return len(f.searches) + len(f.lists)
}

// pagedStore serves a search in pages linked by cursors.
type pagedStore struct {
	pages    map[string]assetstore.SearchResult // by incoming cursor
	searches []assetstore.SearchQuery
}

func (p *pagedStore) Search(_ context.Context, q assetstore.SearchQuery) (*assetstore.SearchResult, error) {
	p.searches = append(p.searches, q)
	res, ok := p.pages[q.NextCursor]
	if !ok {
		return nil, fmt.Errorf("unknown cursor %q", q.NextCursor)
	}
	return &res, nil
}

func (p *pagedStore) List(context.Context, assetstore.ListQuery) (*assetstore.ListResult, error) {
	return &assetstore.ListResult{}, nil
}

func imageAssets(folder string, n int) []assetstore.Asset {
	assets := make([]assetstore.Asset, n)
	for i := range assets {
		id := fmt.Sprintf("%s/img%d", folder, i)
		assets[i] = assetstore.Asset{
			PublicID:     id,
			SecureURL:    "https://res.cloudinary.com/studio/image/upload/v1/" + id + ".jpg",
			ResourceType: "image",
			Folder:       folder,
		}
	}
	return assets
}

func folderExpression(path string) string {
	return "folder:" + path + " AND resource_type:image"
}

func tagExpression(tag string) string {
	return "tags:" + tag + " AND resource_type:image"
}
