package handlers

import (
	"errors"
	"net/http"

	"dinevoice/services/voicesession"
	"dinevoice/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// VoiceHandler drives server-hosted conversations turn by turn. The client
// speaks the returned prompts and posts back what the guest said.
type VoiceHandler struct {
	Sessions      *voicesession.Manager
	DefaultLocale string
	logger        *zap.Logger
}

func NewVoiceHandler(sessions *voicesession.Manager, defaultLocale string, logger *zap.Logger) *VoiceHandler {
	return &VoiceHandler{Sessions: sessions, DefaultLocale: defaultLocale, logger: logger}
}

type replyRequest struct {
	Text string `json:"text"`
}

func (h *VoiceHandler) StartSessionHandler(c *gin.Context) {
	var opts voicesession.StartOptions
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&opts); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid session request", err.Error())
			return
		}
	}
	if opts.Locale == "" {
		opts.Locale = h.DefaultLocale
	}

	turn, err := h.Sessions.Start(c.Request.Context(), opts)
	if err != nil {
		h.writeSessionError(c, err)
		return
	}
	c.JSON(http.StatusCreated, turn)
}

// ReplyHandler posts one transcript. An empty text counts as silence.
func (h *VoiceHandler) ReplyHandler(c *gin.Context) {
	var req replyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid reply payload", err.Error())
		return
	}

	turn, err := h.Sessions.Reply(c.Request.Context(), c.Param("id"), req.Text)
	if err != nil {
		h.writeSessionError(c, err)
		return
	}
	c.JSON(http.StatusOK, turn)
}

func (h *VoiceHandler) GetSessionHandler(c *gin.Context) {
	snap, err := h.Sessions.Snapshot(c.Param("id"))
	if err != nil {
		h.writeSessionError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

// StopSessionHandler raises the stop signal. Nothing is submitted after it.
func (h *VoiceHandler) StopSessionHandler(c *gin.Context) {
	turn, err := h.Sessions.Stop(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeSessionError(c, err)
		return
	}
	h.logger.Info("Voice session stopped by client", zap.String("sessionId", c.Param("id")))
	c.JSON(http.StatusOK, turn)
}

func (h *VoiceHandler) writeSessionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, voicesession.ErrNotFound):
		utils.JSONError(c, http.StatusNotFound, "Voice session not found", c.Param("id"))
	case errors.Is(err, voicesession.ErrFinished), errors.Is(err, voicesession.ErrNotListening):
		utils.JSONError(c, http.StatusConflict, err.Error(), c.Param("id"))
	default:
		utils.JSONError(c, http.StatusInternalServerError, "Voice session failed", err.Error())
	}
}
