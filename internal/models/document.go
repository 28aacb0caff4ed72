package models

import "time"

// Document is one fetched page, body included.
type Document struct {
	URL         string        `json:"url"`
	FinalURL    string        `json:"final_url,omitempty"`
	StatusCode  int           `json:"status_code"`
	ContentType string        `json:"content_type,omitempty"`
	Body        []byte        `json:"-"`
	FetchedAt   time.Time     `json:"fetched_at"`
	Duration    time.Duration `json:"-"`
}

// DocumentPair bundles the two pages of one comparison run.
type DocumentPair struct {
	Old *Document
	New *Document
}
