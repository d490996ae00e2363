package controllers

import (
	"net/http"

	"github.com/Devak1234/Fitness-Chatbot/services"

	"github.com/gin-gonic/gin"
)

type ChatController struct {
	Chat *services.ChatService
}

func NewChatController(cs *services.ChatService) *ChatController {
	return &ChatController{Chat: cs}
}

// POST /chat { "message": "..." }
func (cc *ChatController) Send(c *gin.Context) {
	uid, ok := requireUser(c)
	if !ok {
		return
	}
	var req services.ChatRequest
	if !bindJSON(c, &req) {
		return
	}
	reply, err := cc.Chat.Reply(c.Request.Context(), uid, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reply": reply})
}

func (cc *ChatController) History(c *gin.Context) {
	uid, ok := requireUser(c)
	if !ok {
		return
	}
	msgs, err := cc.Chat.History(c.Request.Context(), uid)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, msgs)
}
