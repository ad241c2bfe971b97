package http

import (
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/mmbm-clothing/storefront/internal/imaging"
)

// maxUploadSize caps logo uploads at 10MB.
const maxUploadSize = 10 << 20

// LogoHandler exposes the background-removal utility.
type LogoHandler struct {
	remover *imaging.Remover
}

func NewLogoHandler(remover *imaging.Remover) *LogoHandler {
	return &LogoHandler{remover: remover}
}

func (h *LogoHandler) RegisterRoutes(router chi.Router) {
	router.Post("/logo/remove-background", h.handleRemoveBackground)
}

func (h *LogoHandler) handleRemoveBackground(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		log.Warn().Err(err).Msg("Failed to parse logo upload")
		respondWithError(w, http.StatusBadRequest, "Invalid multipart upload")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "image file is required")
		return
	}
	defer file.Close()

	image, err := io.ReadAll(file)
	if err != nil {
		log.Error().Err(err).Msg("Failed to read uploaded image")
		respondWithError(w, http.StatusInternalServerError, "Failed to read uploaded image")
		return
	}

	processed, err := h.remover.RemoveBackground(r.Context(), image, header.Header.Get("Content-Type"))
	if err != nil {
		log.Warn().Err(err).Str("filename", header.Filename).Msg("Background removal failed")
		respondWithError(w, mapErrorToStatusCode(err), err.Error())
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Disposition", `attachment; filename="mmbm-logo-transparent.png"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(processed); err != nil {
		log.Error().Err(err).Msg("Failed to write processed image")
	}
}
