package transport

import (
	"net/http"

	"github.com/gorilla/mux"
	utilsContext "github.com/muhammadheryan/mogadishu-rentals/utils/context"
)

// ListWishlist handler
// @Summary Saved listing ids of the caller
// @Tags Wishlist
// @Security BearerAuth
// @Produce json
// @Success 200 {object} model.WishlistResponse
// @Router /wishlist [get]
func (s *RestHandler) ListWishlist(w http.ResponseWriter, r *http.Request) {
	userID, _ := utilsContext.GetUserID(r.Context())

	res, err := s.WishlistApp.List(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// AddWishlist handler
// @Summary Save a listing
// @Tags Wishlist
// @Security BearerAuth
// @Param listing_id path string true "Listing ID"
// @Success 200 {object} Response
// @Router /wishlist/{listing_id} [post]
func (s *RestHandler) AddWishlist(w http.ResponseWriter, r *http.Request) {
	userID, _ := utilsContext.GetUserID(r.Context())

	if err := s.WishlistApp.Add(r.Context(), userID, mux.Vars(r)["listing_id"]); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, nil)
}

// RemoveWishlist handler
// @Summary Unsave a listing
// @Tags Wishlist
// @Security BearerAuth
// @Param listing_id path string true "Listing ID"
// @Success 200 {object} Response
// @Router /wishlist/{listing_id} [delete]
func (s *RestHandler) RemoveWishlist(w http.ResponseWriter, r *http.Request) {
	userID, _ := utilsContext.GetUserID(r.Context())

	if err := s.WishlistApp.Remove(r.Context(), userID, mux.Vars(r)["listing_id"]); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, nil)
}
