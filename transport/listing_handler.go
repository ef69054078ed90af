package transport

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	listingapp "github.com/muhammadheryan/mogadishu-rentals/application/listing"
	"github.com/muhammadheryan/mogadishu-rentals/constant"
	"github.com/muhammadheryan/mogadishu-rentals/model"
	utilsContext "github.com/muhammadheryan/mogadishu-rentals/utils/context"
	"github.com/muhammadheryan/mogadishu-rentals/utils/errors"
)

// ListListings handler
// @Summary Visible listings, newest first
// @Tags Listing
// @Produce json
// @Success 200 {array} model.Listing
// @Router /listings [get]
func (s *RestHandler) ListListings(w http.ResponseWriter, r *http.Request) {
	res, err := s.ListingApp.ListVisible(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// GetListing handler
// @Summary Listing detail
// @Tags Listing
// @Produce json
// @Param id path string true "Listing ID"
// @Success 200 {object} model.Listing
// @Failure 404 {object} Response
// @Router /listings/{id} [get]
func (s *RestHandler) GetListing(w http.ResponseWriter, r *http.Request) {
	viewerID, _ := utilsContext.GetUserID(r.Context())

	res, err := s.ListingApp.Get(r.Context(), mux.Vars(r)["id"], viewerID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// CreateListing handler
// @Summary Publish a listing
// @Tags Listing
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body model.CreateListingRequest true "Listing"
// @Success 200 {object} model.Listing
// @Router /listings [post]
func (s *RestHandler) CreateListing(w http.ResponseWriter, r *http.Request) {
	var req model.CreateListingRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}

	req.UserID, _ = utilsContext.GetUserID(r.Context())
	res, err := s.ListingApp.Create(r.Context(), &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// DeleteListing handler
// @Summary Soft delete an owned listing
// @Tags Listing
// @Security BearerAuth
// @Param id path string true "Listing ID"
// @Success 200 {object} Response
// @Failure 403 {object} Response
// @Router /listings/{id} [delete]
func (s *RestHandler) DeleteListing(w http.ResponseWriter, r *http.Request) {
	userID, _ := utilsContext.GetUserID(r.Context())

	if err := s.ListingApp.SoftDelete(r.Context(), mux.Vars(r)["id"], userID); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, nil)
}

// SetVisibility handler
// @Summary Publish or unpublish an owned listing
// @Tags Listing
// @Security BearerAuth
// @Accept json
// @Param id path string true "Listing ID"
// @Param request body model.VisibilityRequest true "Visibility"
// @Success 200 {object} Response
// @Router /listings/{id}/visibility [patch]
func (s *RestHandler) SetVisibility(w http.ResponseWriter, r *http.Request) {
	var req model.VisibilityRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}

	userID, _ := utilsContext.GetUserID(r.Context())
	if err := s.ListingApp.SetVisibility(r.Context(), mux.Vars(r)["id"], userID, req.IsVisible); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, nil)
}

// AddPhotos handler
// @Summary Attach photo URLs to an owned listing
// @Tags Listing
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Listing ID"
// @Param request body model.AddPhotosRequest true "Photos"
// @Success 200 {array} model.ListingPhoto
// @Router /listings/{id}/photos [post]
func (s *RestHandler) AddPhotos(w http.ResponseWriter, r *http.Request) {
	var req model.AddPhotosRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}

	userID, _ := utilsContext.GetUserID(r.Context())
	res, err := s.ListingApp.AddPhotos(r.Context(), mux.Vars(r)["id"], userID, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// MyListings handler
// @Summary Listings owned by the caller, drafts included
// @Tags Listing
// @Security BearerAuth
// @Produce json
// @Success 200 {array} model.Listing
// @Router /me/listings [get]
func (s *RestHandler) MyListings(w http.ResponseWriter, r *http.Request) {
	userID, _ := utilsContext.GetUserID(r.Context())

	res, err := s.ListingApp.ListByOwner(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// uploadPhotoHandler stores the raw request body as a listing photo.
// @Summary Upload a listing photo
// @Tags Storage
// @Security BearerAuth
// @Accept octet-stream
// @Produce json
// @Param path path string true "Object path, must start with the caller id"
// @Success 200 {object} model.UploadPhotoResponse
// @Router /storage/listing-photos/{path} [put]
func (s *RestHandler) uploadPhotoHandler(maxBytes int64) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if maxBytes > 0 {
			if r.ContentLength > maxBytes {
				writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
				return
			}
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
		}

		userID, _ := utilsContext.GetUserID(r.Context())
		res, err := s.ListingApp.UploadPhoto(r.Context(), userID, &listingapp.UploadPhotoInput{
			Path:        mux.Vars(r)["path"],
			ContentType: r.Header.Get("Content-Type"),
			Size:        r.ContentLength,
			Data:        r.Body,
		})
		if err != nil {
			writeError(w, err)
			return
		}

		writeSuccess(w, res)
	})
}

// photoFileHandler serves photos kept by an in-process store.
func photoFileHandler(reader PhotoReader) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		obj, ok := reader.Open(vars["bucket"], vars["path"])
		if !ok {
			writeError(w, errors.SetCustomError(constant.ErrNotFound))
			return
		}

		if obj.ContentType != "" {
			w.Header().Set("Content-Type", obj.ContentType)
		}
		if obj.CacheSeconds > 0 {
			w.Header().Set("Cache-Control", fmt.Sprintf("public, max-age=%d", obj.CacheSeconds))
		}
		w.Header().Set("Content-Length", strconv.Itoa(len(obj.Data)))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(obj.Data)
	})
}

// RefreshFeed rebuilds the cached listing feed. Internal only.
func (s *RestHandler) RefreshFeed(w http.ResponseWriter, r *http.Request) {
	if err := s.ListingApp.RefreshFeed(r.Context()); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, nil)
}
