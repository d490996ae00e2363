package controllers

import (
	"net/http"

	"github.com/Devak1234/Fitness-Chatbot/services"

	"github.com/gin-gonic/gin"
)

type NotificationController struct {
	Settings *services.NotificationService
}

func NewNotificationController(ns *services.NotificationService) *NotificationController {
	return &NotificationController{Settings: ns}
}

// GET /notification-settings
func (nc *NotificationController) Get(c *gin.Context) {
	uid, ok := requireUser(c)
	if !ok {
		return
	}
	ns, err := nc.Settings.GetSettings(c.Request.Context(), uid)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ns)
}

// PUT /notification-settings changes only the fields present in the body.
func (nc *NotificationController) Update(c *gin.Context) {
	uid, ok := requireUser(c)
	if !ok {
		return
	}
	var in services.NotificationSettingsInput
	if !bindJSON(c, &in) {
		return
	}
	ns, err := nc.Settings.UpdateSettings(c.Request.Context(), uid, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ns)
}

// POST /notification-settings/telegram-link returns a one-time code to send
// to the bot.
func (nc *NotificationController) TelegramLink(c *gin.Context) {
	uid, ok := requireUser(c)
	if !ok {
		return
	}
	link, err := nc.Settings.StartTelegramLink(c.Request.Context(), uid)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, link)
}

func (nc *NotificationController) TelegramUnlink(c *gin.Context) {
	uid, ok := requireUser(c)
	if !ok {
		return
	}
	if err := nc.Settings.UnlinkTelegram(c.Request.Context(), uid); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "telegram unlinked"})
}
