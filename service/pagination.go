package service

import (
	"strconv"

	"github.com/foomo/studio-gallery/assetstore"
	"github.com/foomo/studio-gallery/service/vo"
)

const (
	DefaultPageLimit = 12
	MaxPageLimit     = assetstore.MaxResults
)

// PageSizeConfig configures how page query values are normalized.
type PageSizeConfig struct {
	Default int
	Max     int
}

// ParsePage parses page and limit query values, falling back to page 1 and
// the configured default limit on anything unusable.
func ParsePage(pageValue, limitValue string, cfg PageSizeConfig) (page, limit int) {
	page, err := strconv.Atoi(pageValue)
	if err != nil || page < 1 {
		page = 1
	}
	limit, err = strconv.Atoi(limitValue)
	if err != nil {
		limit = 0
	}
	return page, ClampLimit(limit, cfg)
}

// ClampLimit applies defaults and the upper bound to a page size.
func ClampLimit(limit int, cfg PageSizeConfig) int {
	if limit <= 0 {
		limit = cfg.Default
	}
	if cfg.Max > 0 && limit > cfg.Max {
		limit = cfg.Max
	}
	if limit <= 0 {
		limit = DefaultPageLimit
	}
	return limit
}

// Paginate returns the images of the given page and the pagination state.
func Paginate(images []vo.Image, page, limit int) ([]vo.Image, vo.Pagination) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultPageLimit
	}
	total := len(images)
	pagination := vo.Pagination{Page: page, Limit: limit, Total: total}
	// pages past the end are empty; checked before multiplying so huge
	// page numbers cannot overflow the offset
	if page-1 > total/limit {
		return []vo.Image{}, pagination
	}
	offset := (page - 1) * limit
	end := offset + min(limit, total-offset)
	pagination.HasMore = end < total

	paged := make([]vo.Image, end-offset)
	copy(paged, images[offset:end])
	return paged, pagination
}
