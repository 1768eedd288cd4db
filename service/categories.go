package service

import "strings"

const (
	// RootPrefix is the top-level folder all site images live under.
	RootPrefix = "Photographer"

	galleryPrefix  = RootPrefix + "/Gallery"
	carouselFolder = RootPrefix + "/Carousel"
)

// Category maps a gallery key to where its images live in the store.
type Category struct {
	Path    string   // Folder path
	Tags    []string // Alternate tags the images may carry instead
	Aliases []string // Historical name forms, only used by the broad scan
}

var categories = map[string]Category{
	"OneYear": {
		Path:    galleryPrefix + "/one_year",
		Tags:    []string{"one_year", "one-year", "oneyear", "one year", "גיל שנה"},
		Aliases: []string{"one_year", "one-year", "oneyear"},
	},
	"BatMitzva": {
		Path: galleryPrefix + "/BatMitzva",
		Tags: []string{"batmitzva", "bat-mitzva", "בת מצווה"},
	},
	"Family": {
		Path: galleryPrefix + "/Family",
		Tags: []string{"family", "משפחה"},
	},
	"Pregnancy": {
		Path: galleryPrefix + "/Pregnancy",
		Tags: []string{"pregnancy", "הריון"},
	},
	"BarMitzva": {
		Path: galleryPrefix + "/BarMitzva",
		Tags: []string{"barmitzva", "bar-mitzva", "בר מצווה"},
	},
	"NewBorn": {
		Path: galleryPrefix + "/NewBorn",
		Tags: []string{"newborn", "new-born", "ניו בורן"},
	},
}

// LookupCategory returns the mapping for key, or a default derived from it.
func LookupCategory(key string) Category {
	if c, ok := categories[key]; ok {
		return Category{
			Path:    c.Path,
			Tags:    append([]string(nil), c.Tags...),
			Aliases: append([]string(nil), c.Aliases...),
		}
	}
	return Category{
		Path: RootPrefix + "/" + key,
		Tags: []string{strings.ToLower(key)},
	}
}

// Categories returns the known category keys.
func Categories() []string {
	keys := make([]string, 0, len(categories))
	for k := range categories {
		keys = append(keys, k)
	}
	return keys
}
