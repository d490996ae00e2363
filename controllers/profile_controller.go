package controllers

import (
	"errors"
	"net/http"

	"github.com/Devak1234/Fitness-Chatbot/services"

	"github.com/gin-gonic/gin"
)

type ProfileController struct {
	Profiles *services.ProfileService
}

func NewProfileController(ps *services.ProfileService) *ProfileController {
	return &ProfileController{Profiles: ps}
}

// GET /profiles returns null when no profile exists yet.
func (pc *ProfileController) Get(c *gin.Context) {
	uid, ok := requireUser(c)
	if !ok {
		return
	}
	p, err := pc.Profiles.GetProfile(c.Request.Context(), uid)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (pc *ProfileController) Create(c *gin.Context) {
	uid, ok := requireUser(c)
	if !ok {
		return
	}
	var input services.ProfileInput
	if !bindJSON(c, &input) {
		return
	}
	p, err := pc.Profiles.CreateProfile(c.Request.Context(), uid, input)
	if errors.Is(err, services.ErrAlreadyExists) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Profile already exists"})
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (pc *ProfileController) Update(c *gin.Context) {
	uid, ok := requireUser(c)
	if !ok {
		return
	}
	var input services.ProfileInput
	if !bindJSON(c, &input) {
		return
	}
	p, err := pc.Profiles.UpdateProfile(c.Request.Context(), uid, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

type uploadPictureReq struct {
	ImageBase64 string `json:"image_base64" binding:"required"`
}

// POST /profiles/picture
func (pc *ProfileController) UploadPicture(c *gin.Context) {
	uid, ok := requireUser(c)
	if !ok {
		return
	}
	var req uploadPictureReq
	if !bindJSON(c, &req) {
		return
	}
	p, err := pc.Profiles.UploadPicture(c.Request.Context(), uid, req.ImageBase64)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": p.ProfilePicture, "profile": p})
}

func (pc *ProfileController) Metrics(c *gin.Context) {
	uid, ok := requireUser(c)
	if !ok {
		return
	}
	m, err := pc.Profiles.Metrics(c.Request.Context(), uid)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}
