package handlers

import (
	"errors"
	"net/http"

	"dinevoice/services/speech"
	"dinevoice/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SpeechHandler transcribes short WAV uploads for clients without on-device
// recognition.
type SpeechHandler struct {
	Transcriber     speech.Transcriber
	DefaultLanguage string
	logger          *zap.Logger
}

func NewSpeechHandler(t speech.Transcriber, defaultLanguage string, logger *zap.Logger) *SpeechHandler {
	return &SpeechHandler{Transcriber: t, DefaultLanguage: defaultLanguage, logger: logger}
}

// TranscribeHandler expects a multipart "audio" file and an optional
// "language" field.
func (h *SpeechHandler) TranscribeHandler(c *gin.Context) {
	if h.Transcriber == nil {
		utils.JSONError(c, http.StatusServiceUnavailable, "Speech recognition is not configured", "")
		return
	}
	language := c.DefaultPostForm("language", h.DefaultLanguage)

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, speech.MaxFileSize+1<<20)
	file, header, err := c.Request.FormFile("audio")
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "audio file is required", err.Error())
		return
	}
	defer file.Close()

	text, err := h.Transcriber.Transcribe(c.Request.Context(), file, header.Filename, language)
	switch {
	case errors.Is(err, speech.ErrInvalidAudio):
		utils.JSONError(c, http.StatusBadRequest, "invalid audio", err.Error())
		return
	case errors.Is(err, speech.ErrTooLong):
		utils.JSONError(c, http.StatusRequestEntityTooLarge, "audio must be one minute or shorter", "")
		return
	case err != nil:
		h.logger.Error("Transcription failed", zap.Error(err))
		utils.JSONError(c, http.StatusBadGateway, "speech recognition failed", err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"transcript": text, "language": language})
}
