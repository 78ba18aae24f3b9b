package uploads

import (
	"errors"
	"net/http"
	"path"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/driftroom/driftroom/internal/infrastructure/json"
	"github.com/driftroom/driftroom/internal/infrastructure/storage"
)

// maxUploadBytes caps a single media upload at 10 MB.
const maxUploadBytes = 10 << 20

type Handler struct {
	store  storage.BlobStore
	logger *zap.SugaredLogger
}

func NewHandler(store storage.BlobStore, logger *zap.SugaredLogger) *Handler {
	return &Handler{
		store:  store,
		logger: logger,
	}
}

// UploadHandler godoc
// @Summary      Upload a media attachment
// @Description  Stores an image or short video and returns the URL to reference from a chat message
// @Tags         uploads
// @Accept       multipart/form-data
// @Produce      json
// @Param        file formData file true "Media file (jpeg, png, gif, webp, mp4, webm)"
// @Success      201 {object} uploadResponse "Upload stored"
// @Failure      400 {object} map[string]interface{} "Missing file or unsupported content type"
// @Failure      500 {object} map[string]interface{} "Internal server error"
// @Router       /uploads [post]
func (h *Handler) UploadHandler(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		json.WriteBadRequestError(w, "Missing or oversized file field")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if _, err := storage.MediaTypeFor(contentType); err != nil {
		if errors.Is(err, storage.ErrUnsupportedContentType) {
			json.WriteBadRequestError(w, "Unsupported content type: "+contentType)
			return
		}
		json.WriteInternalError(w, err)
		return
	}

	key := uuid.NewString() + path.Ext(header.Filename)

	upload, err := h.store.Put(r.Context(), key, contentType, file)
	if err != nil {
		h.logger.Errorw("failed to store upload", "key", key, "error", err)
		json.WriteInternalError(w, err)
		return
	}

	json.Write(w, http.StatusCreated, uploadResponse{
		URL:  upload.URL,
		Type: string(upload.MediaType),
	})
}
