package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/traveldesk/travel-requests/internal/core/ports"
)

type ChatHandler struct {
	chat   ports.ChatService
	logger zerolog.Logger
}

func NewChatHandler(chat ports.ChatService, logger zerolog.Logger) *ChatHandler {
	return &ChatHandler{chat: chat, logger: logger}
}

// Chat answers a free-text question about travel requests. Staff only.
//
// @Summary      Ask the travel request assistant
// @Tags         chat
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      chatRequest  true  "Question"
// @Success      200   {object}  chatResponse
// @Failure      400   {object}  map[string]string
// @Failure      429   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /chat/ [post]
func (h *ChatHandler) Chat(c echo.Context) error {
	var req chatRequest
	// a malformed body is treated as an empty message, after the rate limit
	if err := c.Bind(&req); err != nil {
		h.logger.Debug().Err(err).Msg("chat payload not decodable, treating as empty message")
	}

	reply, err := h.chat.Reply(c.Request().Context(), req.Message)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, chatResponse{Response: reply})
}
