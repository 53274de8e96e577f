package handler

import (
	"net/http"

	"github.com/templui/nocturne/internal/ctxkeys"
	"github.com/templui/nocturne/internal/model"
	"github.com/templui/nocturne/internal/render"
	"github.com/templui/nocturne/internal/service"
	"github.com/templui/nocturne/internal/validation"
)

// multipart overhead on top of the file itself
const multipartSlack = 1 << 20

type profileHandler struct {
	profileService *service.ProfileService
	avatarService  *service.AvatarService
}

func NewProfileHandler(profileService *service.ProfileService, avatarService *service.AvatarService) *profileHandler {
	return &profileHandler{
		profileService: profileService,
		avatarService:  avatarService,
	}
}

func (h *profileHandler) Get(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	profile, err := h.profileService.Profile(r.Context(), user.ID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	render.JSON(w, http.StatusOK, profile)
}

func (h *profileHandler) Update(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var update model.ProfileUpdate
	err := decodeJSON(w, r, &update)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	profile, err := h.profileService.Update(r.Context(), user.ID, update)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	render.JSON(w, http.StatusOK, profile)
}

// UploadAvatar expects a multipart form with an "avatar" file.
func (h *profileHandler) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	if !h.avatarService.Enabled() {
		writeServiceError(w, r, service.ErrStorageUnavailable)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, validation.ImageConstraints.MaxSize+multipartSlack)
	err := r.ParseMultipartForm(validation.ImageConstraints.MaxSize)
	if err != nil {
		writeBodyError(w, err, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("avatar")
	if err != nil {
		render.Error(w, http.StatusBadRequest, "avatar file is required")
		return
	}
	defer func() { _ = file.Close() }()

	profile, err := h.avatarService.Upload(r.Context(), user.ID, file, header)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	render.JSON(w, http.StatusOK, profile)
}

func (h *profileHandler) DeleteAvatar(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	profile, err := h.avatarService.Remove(r.Context(), user.ID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	render.JSON(w, http.StatusOK, profile)
}
