package controllers

import (
	"net/http"

	"github.com/Devak1234/Fitness-Chatbot/services"

	"github.com/gin-gonic/gin"
)

type DeviceController struct {
	Push *services.PushService
}

// constructor
func NewDeviceController(ps *services.PushService) *DeviceController {
	return &DeviceController{Push: ps}
}

// POST /devices
func (dc *DeviceController) Register(c *gin.Context) {
	uid, ok := requireUser(c)
	if !ok {
		return
	}

	var req services.RegisterDeviceReq
	if !bindJSON(c, &req) {
		return
	}

	dev, err := dc.Push.RegisterDevice(c.Request.Context(), uid, req.Platform, req.Token)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"endpoint_arn": dev.EndpointARN})
}

type toggleReq struct {
	Enabled *bool `json:"enabled" binding:"required"`
}

// POST /devices/toggle
func (dc *DeviceController) Toggle(c *gin.Context) {
	uid, ok := requireUser(c)
	if !ok {
		return
	}

	var req toggleReq
	if !bindJSON(c, &req) {
		return
	}

	n, err := dc.Push.SetDevicesEnabled(c.Request.Context(), uid, *req.Enabled)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "notifications updated",
		"enabled": *req.Enabled,
		"devices": n,
	})
}
