package controllers

import (
	"net/http"
	"strconv"

	"github.com/Devak1234/Fitness-Chatbot/services"

	"github.com/gin-gonic/gin"
)

type AlertController struct {
	Bus *services.AlertBus
}

func NewAlertController(bus *services.AlertBus) *AlertController {
	return &AlertController{Bus: bus}
}

// GET /alerts?limit=20
func (ac *AlertController) List(c *gin.Context) {
	uid, ok := requireUser(c)
	if !ok {
		return
	}
	limit, _ := strconv.Atoi(c.Query("limit"))
	alerts, err := ac.Bus.Recent(c.Request.Context(), uid, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, alerts)
}

type testAlertReq struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// POST /alerts/test sends an alert through every configured channel.
func (ac *AlertController) Test(c *gin.Context) {
	uid, ok := requireUser(c)
	if !ok {
		return
	}

	var req testAlertReq
	if c.Request.ContentLength > 0 && !bindJSON(c, &req) {
		return
	}
	if req.Type == "" {
		req.Type = "warning"
	}
	if req.Message == "" {
		req.Message = "This is only a test."
	}

	a, err := ac.Bus.Emit(c.Request.Context(), uid, req.Type, req.Message)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}
