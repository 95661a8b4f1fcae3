package handlers

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"voicescribe/internal/api/middleware"
	"voicescribe/internal/api/v1/dto"
	"voicescribe/internal/api/v1/services"
	apperrors "voicescribe/internal/app/errors"
	"voicescribe/internal/app/validation"
)

// TranscriptionHandler handles the transcription and history endpoints.
type TranscriptionHandler struct {
	service    services.TranscriptionService
	history    services.HistoryService
	keyPresent func() bool
	logger     *slog.Logger
}

// NewTranscriptionHandler creates the handler.
func NewTranscriptionHandler(
	service services.TranscriptionService,
	history services.HistoryService,
	keyPresent func() bool,
	logger *slog.Logger,
) *TranscriptionHandler {
	return &TranscriptionHandler{
		service:    service,
		history:    history,
		keyPresent: keyPresent,
		logger:     logger,
	}
}

// Transcribe handles POST /transcribe: multipart field `audio`, optional
// bearer identity. The gate runs against the multipart header first so an
// oversized or mistyped upload is rejected before its payload is buffered.
func (h *TranscriptionHandler) Transcribe(c *gin.Context) {
	fileHeader, err := c.FormFile("audio")
	if err != nil {
		middleware.HandleError(c, h.logger, apperrors.Validation("No audio file provided. Please select an audio file."))
		return
	}

	upload := validation.Upload{
		Present:   true,
		Size:      fileHeader.Size,
		MediaType: fileHeader.Header.Get("Content-Type"),
	}
	if err := validation.Check(upload, h.keyPresent()); err != nil {
		middleware.HandleError(c, h.logger, err)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		middleware.HandleError(c, h.logger, apperrors.Validation("Audio file could not be read. Please try again."))
		return
	}
	defer file.Close()

	// The header size already passed the gate; the limit guards a header
	// that understates the actual payload.
	data, err := io.ReadAll(io.LimitReader(file, validation.MaxUploadBytes+1))
	if err != nil {
		middleware.HandleError(c, h.logger, apperrors.Validation("Audio file could not be read. Please try again."))
		return
	}
	if int64(len(data)) > validation.MaxUploadBytes {
		middleware.HandleError(c, h.logger, apperrors.Validation("File too large. Maximum size is 25MB."))
		return
	}

	resp, err := h.service.Transcribe(c.Request.Context(), &services.TranscribeRequest{
		FileName:  fileHeader.Filename,
		MediaType: upload.MediaType,
		Size:      int64(len(data)),
		Data:      data,
		OwnerID:   c.GetString(middleware.ContextOwnerID),
	})
	if err != nil {
		middleware.HandleError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ListHistory handles GET /history.
func (h *TranscriptionHandler) ListHistory(c *gin.Context) {
	var query dto.HistoryQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		middleware.HandleError(c, h.logger, apperrors.Validation("Invalid limit parameter."))
		return
	}

	views, err := h.history.List(c.Request.Context(), query.Limit)
	if err != nil {
		middleware.HandleError(c, h.logger, err)
		return
	}
	if views == nil {
		views = []dto.TranscriptionView{}
	}

	c.JSON(http.StatusOK, dto.HistoryResponse{
		Success:        true,
		Transcriptions: views,
	})
}

// ClearHistory handles DELETE /history.
func (h *TranscriptionHandler) ClearHistory(c *gin.Context) {
	if err := h.history.Clear(c.Request.Context()); err != nil {
		middleware.HandleError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{
		Success: true,
		Message: "History cleared successfully",
	})
}
