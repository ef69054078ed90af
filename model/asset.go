package model

// Asset is a proxied static file. Status 504 with an empty body means both
// the cache and the upstream missed.
type Asset struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
	Cached      bool   `json:"-"`
}
