package controllers

import (
	"net/http"

	"github.com/Devak1234/Fitness-Chatbot/services"

	"github.com/gin-gonic/gin"
)

type FavoritesController struct {
	Favorites *services.FavoritesService
}

func NewFavoritesController(fs *services.FavoritesService) *FavoritesController {
	return &FavoritesController{Favorites: fs}
}

type favoriteReq struct {
	Kind   string `json:"kind" binding:"required"`
	ItemID string `json:"itemId" binding:"required"`
}

func (fc *FavoritesController) List(c *gin.Context) {
	uid, ok := requireUser(c)
	if !ok {
		return
	}
	out, err := fc.Favorites.List(c.Request.Context(), uid)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (fc *FavoritesController) Add(c *gin.Context) {
	uid, ok := requireUser(c)
	if !ok {
		return
	}
	var req favoriteReq
	if !bindJSON(c, &req) {
		return
	}
	out, err := fc.Favorites.Add(c.Request.Context(), uid, req.Kind, req.ItemID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// DELETE /favorites/:kind/:itemId
func (fc *FavoritesController) Remove(c *gin.Context) {
	uid, ok := requireUser(c)
	if !ok {
		return
	}
	out, err := fc.Favorites.Remove(c.Request.Context(), uid, c.Param("kind"), c.Param("itemId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}
