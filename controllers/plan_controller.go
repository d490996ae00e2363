package controllers

import (
	"net/http"

	"github.com/Devak1234/Fitness-Chatbot/models"
	"github.com/Devak1234/Fitness-Chatbot/services"

	"github.com/gin-gonic/gin"
)

type PlanController struct {
	Plans *services.PlanService
}

func NewPlanController(ps *services.PlanService) *PlanController {
	return &PlanController{Plans: ps}
}

func (pc *PlanController) List(c *gin.Context) {
	uid, ok := requireUser(c)
	if !ok {
		return
	}
	plans, err := pc.Plans.ListPlans(c.Request.Context(), uid)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, plans)
}

// POST /weekly-plans stores the body as sent.
func (pc *PlanController) Create(c *gin.Context) {
	uid, ok := requireUser(c)
	if !ok {
		return
	}
	var plan models.WeeklyPlan
	if !bindJSON(c, &plan) {
		return
	}
	out, err := pc.Plans.CreatePlan(c.Request.Context(), uid, plan)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (pc *PlanController) Generate(c *gin.Context) {
	uid, ok := requireUser(c)
	if !ok {
		return
	}
	var in services.GenerateInput
	if !bindJSON(c, &in) {
		return
	}
	plan, err := pc.Plans.Generate(c.Request.Context(), uid, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, plan)
}

// GET /weekly-plans/active returns null when nothing is active.
func (pc *PlanController) Active(c *gin.Context) {
	uid, ok := requireUser(c)
	if !ok {
		return
	}
	plan, err := pc.Plans.ActivePlan(c.Request.Context(), uid)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, plan)
}

func (pc *PlanController) Activate(c *gin.Context) {
	uid, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	plan, err := pc.Plans.Activate(c.Request.Context(), uid, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, plan)
}

func (pc *PlanController) Delete(c *gin.Context) {
	uid, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := pc.Plans.DeletePlan(c.Request.Context(), uid, id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "plan deleted"})
}

// PUT /weekly-plans/:id replaces the sections present in the body.
func (pc *PlanController) Update(c *gin.Context) {
	uid, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var in services.PlanUpdate
	if !bindJSON(c, &in) {
		return
	}
	plan, err := pc.Plans.UpdatePlan(c.Request.Context(), uid, id, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, plan)
}

func (pc *PlanController) Swap(c *gin.Context) {
	uid, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var in services.SwapInput
	if !bindJSON(c, &in) {
		return
	}
	plan, err := pc.Plans.SwapExercise(c.Request.Context(), uid, id, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, plan)
}

func (pc *PlanController) Regenerate(c *gin.Context) {
	uid, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var in services.RegenerateInput
	if !bindJSON(c, &in) {
		return
	}
	plan, err := pc.Plans.RegenerateDay(c.Request.Context(), uid, id, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, plan)
}

func (pc *PlanController) Review(c *gin.Context) {
	uid, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	review, err := pc.Plans.Review(c.Request.Context(), uid, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, review)
}
