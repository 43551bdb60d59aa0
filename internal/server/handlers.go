package server

import (
	"net/http"
	"strings"

	"helpdesk_assistant/pkg"
	"helpdesk_assistant/src/logger"
	"helpdesk_assistant/src/model"

	"github.com/gin-gonic/gin"
)

func userID(c *gin.Context) string {
	if id := strings.TrimSpace(c.GetHeader(headerUserID)); id != "" {
		return id
	}
	return anonymousUser
}

func (s *Server) handleSend(c *gin.Context) {
	var req pkg.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, pkg.ErrorResponse{Error: "invalid request body"})
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		c.JSON(http.StatusBadRequest, pkg.ErrorResponse{Error: "message is required"})
		return
	}

	reply := s.chat.SendMessage(c.Request.Context(), model.ChatTurn{
		UserID:     userID(c),
		Message:    req.Message,
		Role:       model.ParseRole(c.GetHeader(headerUserRole)),
		WantsAudio: req.GenerateAudio,
	})

	c.JSON(http.StatusOK, pkg.SendMessageResponse{
		Response:    reply.ResponseText,
		IsResolved:  reply.IsConversationOver,
		AudioBase64: reply.AudioPayload,
	})
}

func (s *Server) handleStatus(c *gin.Context) {
	c.JSON(http.StatusOK, pkg.StatusResponse{
		Status:    "online",
		Timestamp: s.now().UTC(),
	})
}

func (s *Server) handleHistory(c *gin.Context) {
	id := userID(c)

	exchanges, err := s.chat.History(c.Request.Context(), id)
	if err != nil {
		logger.Error().Err(err).Str("user_id", id).Msg("Failed to load history")
		c.JSON(http.StatusInternalServerError, pkg.ErrorResponse{Error: "internal"})
		return
	}

	resp := pkg.HistoryResponse{UserID: id, Messages: make([]pkg.HistoryEntry, 0, len(exchanges))}
	for _, ex := range exchanges {
		resp.Messages = append(resp.Messages, pkg.HistoryEntry{
			Message:    ex.Message,
			Response:   ex.Response,
			IsResolved: ex.Resolved,
			CreatedAt:  ex.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, resp)
}
