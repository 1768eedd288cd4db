package service

import (
	"strings"

	"github.com/foomo/studio-gallery/assetstore"
)

// PathVariations lists the folder paths a category's images have been
// uploaded under over time, most specific first.
func PathVariations(key string, c Category) []string {
	lower := strings.ToLower(key)
	return uniq([]string{
		c.Path,
		strings.ToLower(c.Path),
		strings.ReplaceAll(c.Path, "_", "-"),
		strings.ReplaceAll(c.Path, "-", "_"),
		galleryPrefix + "/" + key,
		galleryPrefix + "/" + lower,
		strings.ToLower(galleryPrefix) + "/" + lower,
		RootPrefix + "/" + key,
		RootPrefix + "/" + lower,
	})
}

// NameVariations lists the lower-cased name forms the broad scan looks for
// in asset ids and folders.
func NameVariations(key string, c Category) []string {
	lower := strings.ToLower(key)
	names := []string{
		lower,
		strings.ReplaceAll(lower, "_", "-"),
		strings.ReplaceAll(lower, "-", "_"),
	}
	for _, alias := range c.Aliases {
		names = append(names, strings.ToLower(alias))
	}
	return uniq(names)
}

// MatchesCategory reports whether an asset carries one of tags or mentions
// one of names in its public id or folder. names must be lower-cased.
func MatchesCategory(asset assetstore.Asset, tags, names []string) bool {
	for _, assetTag := range asset.Tags {
		for _, tag := range tags {
			if strings.EqualFold(assetTag, tag) {
				return true
			}
		}
	}
	publicID := strings.ToLower(asset.PublicID)
	folder := strings.ToLower(asset.Folder)
	for _, name := range names {
		if name == "" {
			continue
		}
		if strings.Contains(publicID, name) || strings.Contains(folder, name) {
			return true
		}
	}
	return false
}

func uniq(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	ret := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		ret = append(ret, v)
	}
	return ret
}
