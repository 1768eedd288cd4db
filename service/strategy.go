package service

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/davecgh/go-spew/spew"
	"github.com/foomo/studio-gallery/assetstore"
	"go.uber.org/zap"
)

// Strategy kinds, in the order a gallery chain tries them.
const (
	KindTag    = "tag"
	KindFolder = "folder"
	KindPrefix = "prefix"
	KindScan   = "scan"
	KindCursor = "cursor"
)

// FetchFunc queries the store for one strategy. An empty result is not an error.
type FetchFunc func(ctx context.Context, store assetstore.Store, logger *zap.Logger) ([]assetstore.Asset, error)

// Strategy is one step of a fallback chain.
type Strategy struct {
	Kind   string
	Target string
	// Permissive strategies come from the admin listing, which may omit the
	// resource type.
	Permissive bool
	Fetch      FetchFunc
}

func (s Strategy) Name() string {
	return s.Kind + ":" + s.Target
}

// TagSearch searches image assets carrying tag.
func TagSearch(tag string) Strategy {
	return Strategy{
		Kind:   KindTag,
		Target: tag,
		Fetch:  searchOnce(fmt.Sprintf("tags:%s AND resource_type:image", quote(tag))),
	}
}

// FolderSearch searches image assets in folder path.
func FolderSearch(path string) Strategy {
	return Strategy{
		Kind:   KindFolder,
		Target: path,
		Fetch:  searchOnce(fmt.Sprintf("folder:%s AND resource_type:image", quote(path))),
	}
}

// PrefixListing lists uploaded images whose id starts with prefix.
func PrefixListing(prefix string) Strategy {
	return Strategy{
		Kind:       KindPrefix,
		Target:     prefix,
		Permissive: true,
		Fetch: func(ctx context.Context, store assetstore.Store, _ *zap.Logger) ([]assetstore.Asset, error) {
			res, err := store.List(ctx, assetstore.ListQuery{Prefix: prefix, MaxResults: assetstore.MaxResults})
			if err != nil {
				return nil, err
			}
			return res.Assets, nil
		},
	}
}

// BroadScan lists everything under prefix and keeps the assets matching the
// category tags or name variations.
func BroadScan(prefix string, tags, names []string) Strategy {
	return Strategy{
		Kind:       KindScan,
		Target:     prefix,
		Permissive: true,
		Fetch: func(ctx context.Context, store assetstore.Store, logger *zap.Logger) ([]assetstore.Asset, error) {
			res, err := store.List(ctx, assetstore.ListQuery{Prefix: prefix, MaxResults: assetstore.MaxResults})
			if err != nil {
				return nil, err
			}
			if logger.Core().Enabled(zap.DebugLevel) && len(res.Assets) > 0 {
				logger.Debug("broad scan sample",
					zap.Int("total", len(res.Assets)),
					zap.String("assets", spew.Sdump(res.Assets[:min(10, len(res.Assets))])),
				)
			}
			var matching []assetstore.Asset
			for _, a := range res.Assets {
				if MatchesCategory(a, tags, names) {
					matching = append(matching, a)
				}
			}
			return matching, nil
		},
	}
}

// CursorFollow runs a folder search and follows its continuation cursors,
// accumulating every page. More than maxPages calls or a repeated cursor
// fail with ErrCursorLoop.
func CursorFollow(folder string, maxPages int) Strategy {
	expression := "folder:" + quote(folder)
	return Strategy{
		Kind:   KindCursor,
		Target: folder,
		Fetch: func(ctx context.Context, store assetstore.Store, logger *zap.Logger) ([]assetstore.Asset, error) {
			return followCursor(ctx, store, logger, expression, maxPages)
		},
	}
}

func followCursor(ctx context.Context, store assetstore.Store, logger *zap.Logger, expression string, maxPages int) ([]assetstore.Asset, error) {
	var (
		all    []assetstore.Asset
		cursor string
		seen   = map[string]struct{}{}
	)
	for page := 1; ; page++ {
		if maxPages > 0 && page > maxPages {
			return nil, fmt.Errorf("%w: %q still paginating after %d pages", ErrCursorLoop, expression, maxPages)
		}
		res, err := store.Search(ctx, assetstore.SearchQuery{
			Expression: expression,
			MaxResults: assetstore.MaxResults,
			NextCursor: cursor,
		})
		if err != nil {
			return nil, err
		}
		logger.Debug("search page",
			zap.String("expression", expression),
			zap.Int("page", page),
			zap.Int("assets", len(res.Assets)),
			zap.Int("totalCount", res.TotalCount),
			zap.String("nextCursor", res.NextCursor),
		)
		if len(res.Assets) == 0 {
			break
		}
		all = append(all, res.Assets...)
		if res.NextCursor == "" {
			break
		}
		if _, ok := seen[res.NextCursor]; ok {
			return nil, fmt.Errorf("%w: %q repeated cursor %q", ErrCursorLoop, expression, res.NextCursor)
		}
		seen[res.NextCursor] = struct{}{}
		cursor = res.NextCursor
	}
	return all, nil
}

func searchOnce(expression string) FetchFunc {
	return func(ctx context.Context, store assetstore.Store, _ *zap.Logger) ([]assetstore.Asset, error) {
		res, err := store.Search(ctx, assetstore.SearchQuery{Expression: expression, MaxResults: assetstore.MaxResults})
		if err != nil {
			return nil, err
		}
		return res.Assets, nil
	}
}

// quote wraps expression values containing whitespace in double quotes.
func quote(value string) string {
	if !strings.ContainsFunc(value, unicode.IsSpace) {
		return value
	}
	return `"` + strings.ReplaceAll(value, `"`, `\"`) + `"`
}

// CarouselStrategies is the chain behind the carousel listing.
func CarouselStrategies(maxPages int) []Strategy {
	return []Strategy{
		CursorFollow(carouselFolder, maxPages),
		PrefixListing(carouselFolder),
	}
}

// GalleryStrategies is the chain behind a gallery category listing: tag
// searches, folder searches, prefix listings and finally the broad scan.
func GalleryStrategies(key string) []Strategy {
	c := LookupCategory(key)
	paths := PathVariations(key, c)

	strategies := make([]Strategy, 0, len(c.Tags)+2*len(paths)+1)
	for _, tag := range c.Tags {
		strategies = append(strategies, TagSearch(tag))
	}
	for _, path := range paths {
		strategies = append(strategies, FolderSearch(path))
	}
	for _, path := range paths {
		strategies = append(strategies, PrefixListing(path))
	}
	return append(strategies, BroadScan(RootPrefix, c.Tags, NameVariations(key, c)))
}
