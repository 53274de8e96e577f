package handler

import (
	"errors"
	"io"
	"mime"
	"net/http"
	"strconv"

	"github.com/templui/nocturne/internal/ctxkeys"
	"github.com/templui/nocturne/internal/model"
	"github.com/templui/nocturne/internal/render"
	"github.com/templui/nocturne/internal/service"
	"github.com/templui/nocturne/internal/validation"
)

type noteHTMLResponse struct {
	ID   string `json:"id"`
	HTML string `json:"html"`
}

type noteHandler struct {
	noteService *service.NoteService
}

func NewNoteHandler(noteService *service.NoteService) *noteHandler {
	return &noteHandler{
		noteService: noteService,
	}
}

func (h *noteHandler) List(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	notes, err := h.noteService.Notes(r.Context(), user.ID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	render.JSON(w, http.StatusOK, notes)
}

func (h *noteHandler) Pinned(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	limit := service.DefaultPinnedLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			render.Error(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	notes, err := h.noteService.Pinned(r.Context(), user.ID, limit)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	render.JSON(w, http.StatusOK, notes)
}

func (h *noteHandler) Get(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	note, err := h.noteService.Note(r.Context(), user.ID, r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	render.JSON(w, http.StatusOK, note)
}

func (h *noteHandler) HTML(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	noteID := r.PathValue("id")

	html, err := h.noteService.RenderHTML(r.Context(), user.ID, noteID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	render.JSON(w, http.StatusOK, noteHTMLResponse{ID: noteID, HTML: html})
}

func (h *noteHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var input model.NewNote
	err := decodeJSON(w, r, &input)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	note, err := h.noteService.Create(r.Context(), user.ID, input)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	render.JSON(w, http.StatusCreated, note)
}

// Import takes either a multipart form with a "file" field or the raw
// markdown as the body, named by the "filename" query parameter.
func (h *noteHandler) Import(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	maxSize := validation.MarkdownConstraints.MaxSize

	filename := r.URL.Query().Get("filename")
	var source []byte

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		r.Body = http.MaxBytesReader(w, r.Body, maxSize+multipartSlack)
		err := r.ParseMultipartForm(maxSize)
		if err != nil {
			writeBodyError(w, err, "invalid multipart form")
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			render.Error(w, http.StatusBadRequest, "file is required")
			return
		}
		defer func() { _ = file.Close() }()

		err = validation.ValidateFile(header, validation.MarkdownConstraints)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		source, err = io.ReadAll(file)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		filename = header.Filename
	} else {
		var err error
		source, err = io.ReadAll(http.MaxBytesReader(w, r.Body, maxSize))
		if err != nil {
			writeBodyError(w, err, "failed to read body")
			return
		}
	}

	if len(source) == 0 {
		render.Error(w, http.StatusBadRequest, "markdown document is empty")
		return
	}

	note, err := h.noteService.Import(r.Context(), user.ID, filename, source)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	render.JSON(w, http.StatusCreated, note)
}

func (h *noteHandler) Update(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var update model.NoteUpdate
	err := decodeJSON(w, r, &update)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	note, err := h.noteService.Update(r.Context(), user.ID, r.PathValue("id"), update)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	render.JSON(w, http.StatusOK, note)
}

func (h *noteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	err := h.noteService.Delete(r.Context(), user.ID, r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	render.NoContent(w)
}

func writeBodyError(w http.ResponseWriter, err error, message string) {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		render.Error(w, http.StatusRequestEntityTooLarge, "file too large")
		return
	}
	render.Error(w, http.StatusBadRequest, message)
}
