package controllers

import (
	"net/http"

	"github.com/Devak1234/Fitness-Chatbot/catalog"
	"github.com/Devak1234/Fitness-Chatbot/services"

	"github.com/gin-gonic/gin"
)

type CatalogController struct {
	Catalog *services.CatalogService
	Food    *services.FoodService
}

func NewCatalogController(cs *services.CatalogService, fs *services.FoodService) *CatalogController {
	return &CatalogController{Catalog: cs, Food: fs}
}

// GET /nutrition?category=Protein
func (cc *CatalogController) ListNutrition(c *gin.Context) {
	rows, err := cc.Catalog.ListNutrition(c.Request.Context(), c.Query("category"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// GET /workouts?level=Beginner&primary=Legs
func (cc *CatalogController) ListWorkouts(c *gin.Context) {
	rows, err := cc.Catalog.ListWorkouts(c.Request.Context(), c.Query("level"), c.Query("primary"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (cc *CatalogController) ListExercises(c *gin.Context) {
	c.JSON(http.StatusOK, cc.Catalog.Catalog().FindExercises(catalog.ExerciseFilter{
		Muscle:     c.Query("muscle"),
		Difficulty: c.Query("difficulty"),
		Equipment:  c.Query("equipment"),
		Query:      c.Query("q"),
	}))
}

func (cc *CatalogController) MuscleGroups(c *gin.Context) {
	c.JSON(http.StatusOK, cc.Catalog.Catalog().MuscleGroups())
}

func (cc *CatalogController) GetExercise(c *gin.Context) {
	e, ok := cc.Catalog.Catalog().ExerciseByID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Exercise not found"})
		return
	}
	c.JSON(http.StatusOK, e)
}

func (cc *CatalogController) Alternatives(c *gin.Context) {
	alts, ok := cc.Catalog.Catalog().Alternatives(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Exercise not found"})
		return
	}
	c.JSON(http.StatusOK, alts)
}

func (cc *CatalogController) ListFoods(c *gin.Context) {
	c.JSON(http.StatusOK, cc.Catalog.Catalog().FindFoods(catalog.FoodFilter{
		DietType: c.Query("dietType"),
		Category: c.Query("category"),
		Query:    c.Query("q"),
	}))
}

func (cc *CatalogController) GetFood(c *gin.Context) {
	f, ok := cc.Catalog.Catalog().FoodByID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Food not found"})
		return
	}
	c.JSON(http.StatusOK, f)
}

func (cc *CatalogController) ListPlans(c *gin.Context) {
	c.JSON(http.StatusOK, cc.Catalog.Catalog().FindPlans(catalog.PlanFilter{
		Type:     c.Query("type"),
		Category: c.Query("category"),
		Level:    c.Query("level"),
	}))
}

func (cc *CatalogController) GetPlan(c *gin.Context) {
	p, ok := cc.Catalog.Catalog().PlanByID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Plan not found"})
		return
	}
	c.JSON(http.StatusOK, p)
}

// POST /nutrition/recognize  { "image_base64": "data:…"}
func (cc *CatalogController) RecognizeFood(c *gin.Context) {
	var req struct {
		ImageBase64 string `json:"image_base64" binding:"required"`
	}
	if !bindJSON(c, &req) {
		return
	}
	out, err := cc.Food.Recognize(c.Request.Context(), req.ImageBase64)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}
