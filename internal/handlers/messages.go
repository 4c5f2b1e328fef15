package handlers

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/casedesk/casedesk/internal/config"
	"github.com/casedesk/casedesk/internal/message"
	"github.com/casedesk/casedesk/internal/message/event"
)

const sseHeartbeatInterval = 20 * time.Second

type MessageReader interface {
	List(ctx context.Context, filter message.ListFilter) ([]message.Message, error)
	GetByMessageID(ctx context.Context, messageID string) (message.Message, error)
}

// MessageHandler serves WhatsApp message history and live updates to the front end.
type MessageHandler struct {
	messages     MessageReader
	events       event.Subscriber
	defaultLimit int32
	heartbeat    time.Duration
	logger       *slog.Logger
}

func NewMessageHandler(log *slog.Logger, cfg config.Config, messages *message.DBService, hub *event.Hub) *MessageHandler {
	return newMessageHandler(log, int32(cfg.Ingest.MessageListLimit), messages, hub)
}

func newMessageHandler(log *slog.Logger, defaultLimit int32, messages MessageReader, events event.Subscriber) *MessageHandler {
	if defaultLimit <= 0 {
		defaultLimit = config.DefaultMessageListLimit
	}
	return &MessageHandler{
		messages:     messages,
		events:       events,
		defaultLimit: defaultLimit,
		heartbeat:    sseHeartbeatInterval,
		logger:       log.With(slog.String("handler", "message")),
	}
}

func (h *MessageHandler) Register(e *echo.Echo) {
	e.GET("/api/messages", h.ListMessages)
	e.GET("/api/messages/events", h.StreamMessageEvents)
	e.GET("/api/messages/:message_id", h.GetMessage)
}

// ListMessages godoc
// @Summary List WhatsApp messages
// @Tags messages
// @Param case_id query string false "Only messages linked to this case"
// @Param limit query int false "Maximum rows"
// @Success 200 {array} message.Message
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/messages [get]
func (h *MessageHandler) ListMessages(c echo.Context) error {
	limit := h.defaultLimit
	if raw := strings.TrimSpace(c.QueryParam("limit")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "limit must be a positive integer")
		}
		if parsed < int(limit) {
			limit = int32(parsed)
		}
	}
	items, err := h.messages.List(c.Request().Context(), message.ListFilter{
		CaseID: strings.TrimSpace(c.QueryParam("case_id")),
		Limit:  limit,
	})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, items)
}

// GetMessage godoc
// @Summary Get one WhatsApp message by its WhatsApp message id
// @Tags messages
// @Param message_id path string true "WhatsApp message id"
// @Success 200 {object} message.Message
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/messages/{message_id} [get]
func (h *MessageHandler) GetMessage(c echo.Context) error {
	item, err := h.messages.GetByMessageID(c.Request().Context(), c.Param("message_id"))
	if err != nil {
		if errors.Is(err, message.ErrMessageNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		h.logger.Error("get message failed", slog.String("message_id", c.Param("message_id")), slog.Any("error", err))
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, item)
}

// StreamMessageEvents streams message upserts as server-sent events,
// optionally restricted to one case.
func (h *MessageHandler) StreamMessageEvents(c echo.Context) error {
	if h.events == nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "message events not configured")
	}
	caseID := strings.TrimSpace(c.QueryParam("case_id"))

	flusher, ok := c.Response().Writer.(http.Flusher)
	if !ok {
		return echo.NewHTTPError(http.StatusInternalServerError, "streaming not supported")
	}

	c.Response().Header().Set(echo.HeaderContentType, "text/event-stream")
	c.Response().Header().Set(echo.HeaderCacheControl, "no-cache")
	c.Response().Header().Set(echo.HeaderConnection, "keep-alive")
	c.Response().WriteHeader(http.StatusOK)
	writer := bufio.NewWriter(c.Response().Writer)

	_, stream, cancel := h.events.Subscribe(128)
	defer cancel()
	flusher.Flush()

	heartbeatTicker := time.NewTicker(h.heartbeat)
	defer heartbeatTicker.Stop()

	for {
		select {
		case <-c.Request().Context().Done():
			return nil
		case <-heartbeatTicker.C:
			if err := writeSSEJSON(writer, flusher, map[string]any{"type": "ping"}); err != nil {
				return nil
			}
		case evt, ok := <-stream:
			if !ok {
				return nil
			}
			if evt.Type != event.EventTypeMessageUpserted || len(evt.Data) == 0 {
				continue
			}
			if caseID != "" && evt.CaseID != caseID {
				continue
			}
			var msg message.Message
			if err := json.Unmarshal(evt.Data, &msg); err != nil {
				h.logger.Warn("decode message event failed", slog.Any("error", err))
				continue
			}
			if err := writeSSEJSON(writer, flusher, map[string]any{
				"type":    string(evt.Type),
				"case_id": evt.CaseID,
				"message": msg,
			}); err != nil {
				return nil
			}
		}
	}
}
