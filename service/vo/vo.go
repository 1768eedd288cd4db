package vo

import "time"

type Markdown string

type Image struct {
	URL     string `json:"src"`      // Absolute delivery url
	AltText string `json:"alt"`      // Last segment of the asset id
	AssetID string `json:"publicId"` // Store asset id
}

type Pagination struct {
	Page    int  `json:"page"`
	Limit   int  `json:"limit"`
	Total   int  `json:"total"`
	HasMore bool `json:"hasMore"`
}

type Listing struct {
	Images     []Image     `json:"images"`
	Success    bool        `json:"success"`
	Pagination *Pagination `json:"pagination,omitempty"`
	Error      string      `json:"error,omitempty"`
}

// Failed returns a listing with no images and the given message.
func Failed(message string) *Listing {
	return &Listing{
		Images:  []Image{},
		Success: false,
		Error:   message,
	}
}

// ResolutionEvent describes how a listing was resolved.
type ResolutionEvent struct {
	Listing  string    `json:"listing"`  // "carousel" or the gallery category
	Strategy string    `json:"strategy"` // Winning strategy, empty when nothing matched
	Images   int       `json:"images"`
	Success  bool      `json:"success"`
	Error    string    `json:"error,omitempty"`
	Time     time.Time `json:"time"`
}
