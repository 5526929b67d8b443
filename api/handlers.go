package api

import (
	stderrors "errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"

	"batepapo/domain"
	"batepapo/errors"
	"batepapo/services"
)

// userHeader identifies the requester on the message and status routes.
const userHeader = "user"

type Handler struct {
	log  *slog.Logger
	chat services.IChatService
}

func NewHandler(log *slog.Logger, chat services.IChatService) *Handler {
	return &Handler{log: log, chat: chat}
}

func (h *Handler) RegisterParticipant(c *gin.Context) {
	var req services.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": []string{"invalid request body"}})
		return
	}

	err := h.chat.Register(req)
	var validation services.ValidationError
	switch {
	case stderrors.As(err, &validation):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": validation.Violations})
	case stderrors.Is(err, errors.ErrNameTaken):
		c.JSON(http.StatusConflict, gin.H{"error": errors.ErrNameTaken.Error()})
	case err != nil:
		h.fail(c, "register participant", err)
	default:
		c.Status(http.StatusCreated)
	}
}

func (h *Handler) ListParticipants(c *gin.Context) {
	participants, err := h.chat.Participants()
	if err != nil {
		h.fail(c, "list participants", err)
		return
	}
	if participants == nil {
		participants = []domain.Participant{}
	}
	c.JSON(http.StatusOK, participants)
}

func (h *Handler) PostMessage(c *gin.Context) {
	sender := c.GetHeader(userHeader)

	var req services.PostMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": []string{"invalid request body"}})
		return
	}

	_, err := h.chat.PostMessage(sender, req)
	var validation services.ValidationError
	switch {
	case stderrors.As(err, &validation):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": validation.Violations})
	case stderrors.Is(err, errors.ErrNotRegistered):
		// The historical contract reports an unknown sender as an
		// unprocessable submission here, not as a 404.
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": []string{errors.ErrNotRegistered.Error()}})
	case err != nil:
		h.fail(c, "post message", err)
	default:
		c.Status(http.StatusCreated)
	}
}

func (h *Handler) ListMessages(c *gin.Context) {
	viewer := c.GetHeader(userHeader)

	var limit *int
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": []string{errors.ErrInvalidLimit.Error()}})
			return
		}
		limit = lo.ToPtr(n)
	}

	messages, err := h.chat.Messages(viewer, limit)
	if err != nil {
		h.fail(c, "list messages", err)
		return
	}
	if messages == nil {
		messages = []domain.Message{}
	}
	c.JSON(http.StatusOK, messages)
}

func (h *Handler) StatusPing(c *gin.Context) {
	sender := c.GetHeader(userHeader)

	err := h.chat.Status(sender)
	switch {
	case stderrors.Is(err, errors.ErrNotRegistered):
		// Unlike message posting, the status route has always answered 404
		// for an unknown sender.
		c.JSON(http.StatusNotFound, gin.H{"error": errors.ErrNotRegistered.Error()})
	case err != nil:
		h.fail(c, "status ping", err)
	default:
		c.Status(http.StatusOK)
	}
}

// fail logs the store failure with full detail and answers a generic 500.
func (h *Handler) fail(c *gin.Context, operation string, err error) {
	h.log.Error("Store operation failed", "operation", operation, "err", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}
