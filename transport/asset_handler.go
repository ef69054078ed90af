package transport

import (
	"net/http"

	"github.com/gorilla/mux"
)

// Asset serves front-end files through the style sheet cache.
func (s *RestHandler) Asset(w http.ResponseWriter, r *http.Request) {
	asset := s.AssetApp.Fetch(r.Context(), mux.Vars(r)["path"])

	if asset.ContentType != "" {
		w.Header().Set("Content-Type", asset.ContentType)
	}
	if asset.Cached {
		w.Header().Set("X-Cache", "HIT")
	}
	w.WriteHeader(asset.Status)
	_, _ = w.Write(asset.Body)
}
