package controllers

import (
	"net/http"

	"github.com/Devak1234/Fitness-Chatbot/services"

	"github.com/gin-gonic/gin"
)

type DataController struct {
	Svc *services.PortabilityService
}

func NewDataController(svc *services.PortabilityService) *DataController {
	return &DataController{Svc: svc}
}

// GET /export
func (dc *DataController) Export(c *gin.Context) {
	uid, ok := requireUser(c)
	if !ok {
		return
	}
	bundle, err := dc.Svc.Export(c.Request.Context(), uid)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bundle)
}

// POST /import
func (dc *DataController) Import(c *gin.Context) {
	uid, ok := requireUser(c)
	if !ok {
		return
	}
	var bundle services.DataBundle
	if !bindJSON(c, &bundle) {
		return
	}
	if err := dc.Svc.Import(c.Request.Context(), uid, bundle); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "data imported"})
}

// DELETE /data
func (dc *DataController) Clear(c *gin.Context) {
	uid, ok := requireUser(c)
	if !ok {
		return
	}
	if err := dc.Svc.ClearAll(c.Request.Context(), uid); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "all data cleared"})
}
