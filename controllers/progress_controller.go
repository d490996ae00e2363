package controllers

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/Devak1234/Fitness-Chatbot/services"

	"github.com/gin-gonic/gin"
)

type ProgressController struct {
	Svc *services.ProgressService
}

func NewProgressController(svc *services.ProgressService) *ProgressController {
	return &ProgressController{Svc: svc}
}

func (h *ProgressController) List(c *gin.Context) {
	uid, ok := requireUser(c)
	if !ok {
		return
	}
	entries, err := h.Svc.ListEntries(c.Request.Context(), uid)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

// POST /progress returns the stored entry plus a warning when the change
// against the previous entry is too fast.
func (h *ProgressController) Add(c *gin.Context) {
	uid, ok := requireUser(c)
	if !ok {
		return
	}
	var in services.ProgressInput
	if !bindJSON(c, &in) {
		return
	}
	entry, warning, err := h.Svc.AddEntry(c.Request.Context(), uid, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"entry": entry, "warning": warning})
}

func (h *ProgressController) Summary(c *gin.Context) {
	uid, ok := requireUser(c)
	if !ok {
		return
	}
	out, err := h.Svc.Summary(c.Request.Context(), uid)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GET /progress/export downloads the history as CSV.
func (h *ProgressController) Export(c *gin.Context) {
	uid, ok := requireUser(c)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := h.Svc.ExportCSV(c.Request.Context(), uid, &buf); err != nil {
		respondError(c, err)
		return
	}
	name := fmt.Sprintf("fitness-progress-%s.csv", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}
