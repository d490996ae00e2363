package controllers

import (
	"net/http"

	"github.com/Devak1234/Fitness-Chatbot/services"

	"github.com/gin-gonic/gin"
)

type ChecklistController struct {
	Svc *services.ChecklistService
}

func NewChecklistController(svc *services.ChecklistService) *ChecklistController {
	return &ChecklistController{Svc: svc}
}

// GET /checklist?date=2026-01-31
func (cc *ChecklistController) List(c *gin.Context) {
	uid, ok := requireUser(c)
	if !ok {
		return
	}
	days, err := cc.Svc.List(c.Request.Context(), uid, c.Query("date"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, days)
}

// POST /checklist writes the day named in the body, today by default.
func (cc *ChecklistController) Upsert(c *gin.Context) {
	uid, ok := requireUser(c)
	if !ok {
		return
	}
	var in services.ChecklistInput
	if !bindJSON(c, &in) {
		return
	}
	day, err := cc.Svc.Upsert(c.Request.Context(), uid, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, day)
}

func (cc *ChecklistController) ForDate(c *gin.Context) {
	uid, ok := requireUser(c)
	if !ok {
		return
	}
	day, err := cc.Svc.ForDate(c.Request.Context(), uid, c.Param("date"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, day)
}

func (cc *ChecklistController) Streak(c *gin.Context) {
	uid, ok := requireUser(c)
	if !ok {
		return
	}
	n, err := cc.Svc.Streak(c.Request.Context(), uid)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"streak": n})
}
