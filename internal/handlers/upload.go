package handlers

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/greenpress/apiserver/internal/services"
)

const (
	// maxImageBytes caps a single uploaded image.
	maxImageBytes = 10 << 20

	maxMultipartMemory = 32 << 20

	formFieldImage = "image"
)

// UploadHandler accepts staff image uploads and stores them in object
// storage.
type UploadHandler struct {
	mediaService *services.MediaService
}

// NewUploadHandler constructs an UploadHandler with the provided service.
func NewUploadHandler(mediaService *services.MediaService) *UploadHandler {
	return &UploadHandler{mediaService: mediaService}
}

// UploadRouter registers the upload routes. Uploads require an
// authenticated principal.
func UploadRouter(r chi.Router, mediaService *services.MediaService, authMiddleware func(http.Handler) http.Handler) {
	handler := NewUploadHandler(mediaService)

	r.Use(authMiddleware)
	r.Post("/", handler.Upload)
}

// UploadResponse carries the durable URL of a stored image.
type UploadResponse struct {
	URL string `json:"url"`
}

// Upload reads the image form field, stores the bytes and returns the
// public URL the stored object is reachable at.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	image, err := parseImageFile(r.MultipartForm)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	url, err := h.mediaService.Store(r.Context(), image.Filename, image.Data)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUnsupportedFormat):
			writeError(w, http.StatusBadRequest, "unsupported image format")
		case errors.Is(err, services.ErrEmptyImage):
			writeError(w, http.StatusBadRequest, "image file is empty")
		default:
			slog.Error("uploads: store image", "filename", image.Filename, "err", err)
			writeError(w, http.StatusInternalServerError, "failed to store image")
		}
		return
	}

	writeJSON(w, http.StatusCreated, UploadResponse{URL: url})
}

// ImageFile is an uploaded image read fully into memory.
type ImageFile struct {
	Filename string
	Data     []byte
}

func parseImageFile(form *multipart.Form) (ImageFile, error) {
	if form == nil {
		return ImageFile{}, errors.New("missing form data")
	}

	files := form.File[formFieldImage]
	if len(files) == 0 {
		return ImageFile{}, errors.New("image file is required")
	}
	if len(files) > 1 {
		return ImageFile{}, errors.New("only one image file is allowed")
	}

	fileHeader := files[0]
	file, err := fileHeader.Open()
	if err != nil {
		return ImageFile{}, fmt.Errorf("failed to read image file: %w", err)
	}

	data, err := readFileLimited(file, maxImageBytes)
	_ = file.Close()
	if err != nil {
		return ImageFile{}, err
	}

	return ImageFile{
		Filename: fileHeader.Filename,
		Data:     data,
	}, nil
}

func readFileLimited(reader io.Reader, limit int64) ([]byte, error) {
	limited := io.LimitReader(reader, limit+1)
	data, err := io.ReadAll(limited)
	if err != nil {
		return nil, errors.New("failed to read upload")
	}
	if int64(len(data)) > limit {
		return nil, errors.New("uploaded file too large")
	}
	return data, nil
}
