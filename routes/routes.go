package routes

import (
	"net/http"
	"time"

	"github.com/Devak1234/Fitness-Chatbot/controllers"
	"github.com/Devak1234/Fitness-Chatbot/middlewares"
	"github.com/Devak1234/Fitness-Chatbot/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Services is everything the HTTP layer calls into.
type Services struct {
	Auth          *services.AuthService
	Catalog       *services.CatalogService
	Food          *services.FoodService
	Profiles      *services.ProfileService
	Plans         *services.PlanService
	Progress      *services.ProgressService
	Checklist     *services.ChecklistService
	Chat          *services.ChatService
	Favorites     *services.FavoritesService
	Notifications *services.NotificationService
	Push          *services.PushService
	Alerts        *services.AlertBus
	Hub           *services.RealtimeHub
	Portability   *services.PortabilityService
}

type Options struct {
	JWTSecret       []byte
	LoginRatePerMin int
	CORSOrigins     []string
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", middlewares.RequestIDHeader},
		ExposeHeaders: []string{"Content-Disposition", middlewares.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}

func SetupRouter(opts Options, svc Services) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middlewares.RequestLogger(), cors.New(corsConfig(opts.CORSOrigins)))

	authCtl := controllers.NewAuthController(svc.Auth)
	catalogCtl := controllers.NewCatalogController(svc.Catalog, svc.Food)
	profileCtl := controllers.NewProfileController(svc.Profiles)
	planCtl := controllers.NewPlanController(svc.Plans)
	progressCtl := controllers.NewProgressController(svc.Progress)
	checklistCtl := controllers.NewChecklistController(svc.Checklist)
	chatCtl := controllers.NewChatController(svc.Chat)
	favoritesCtl := controllers.NewFavoritesController(svc.Favorites)
	notificationCtl := controllers.NewNotificationController(svc.Notifications)
	deviceCtl := controllers.NewDeviceController(svc.Push)
	alertCtl := controllers.NewAlertController(svc.Alerts)
	realtimeCtl := controllers.NewRealtimeController(svc.Hub)
	dataCtl := controllers.NewDataController(svc.Portability)

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	// Public auth routes
	limiter := middlewares.NewIPRateLimiter(opts.LoginRatePerMin)
	auth := r.Group("/auth")
	{
		auth.POST("/register", authCtl.Register)
		auth.POST("/login", limiter.Middleware(), authCtl.Login)
		auth.POST("/forgot-password", limiter.Middleware(), authCtl.ForgotPassword)
		auth.POST("/reset-password", limiter.Middleware(), authCtl.ResetPassword)
	}

	// Public catalog
	r.GET("/nutrition", catalogCtl.ListNutrition)
	r.GET("/workouts", catalogCtl.ListWorkouts)
	cat := r.Group("/catalog")
	{
		cat.GET("/exercises", catalogCtl.ListExercises)
		cat.GET("/exercises/:id", catalogCtl.GetExercise)
		cat.GET("/exercises/:id/alternatives", catalogCtl.Alternatives)
		cat.GET("/muscles", catalogCtl.MuscleGroups)
		cat.GET("/foods", catalogCtl.ListFoods)
		cat.GET("/foods/:id", catalogCtl.GetFood)
		cat.GET("/plans", catalogCtl.ListPlans)
		cat.GET("/plans/:id", catalogCtl.GetPlan)
	}

	// Protected routes
	api := r.Group("/")
	api.Use(middlewares.AuthMiddleware(opts.JWTSecret))
	{
		api.POST("/nutrition/recognize", catalogCtl.RecognizeFood)

		api.GET("/profiles", profileCtl.Get)
		api.POST("/profiles", profileCtl.Create)
		api.PUT("/profiles", profileCtl.Update)
		api.POST("/profiles/picture", profileCtl.UploadPicture)
		api.GET("/profiles/metrics", profileCtl.Metrics)

		api.GET("/weekly-plans", planCtl.List)
		api.POST("/weekly-plans", planCtl.Create)
		api.POST("/weekly-plans/generate", planCtl.Generate)
		api.GET("/weekly-plans/active", planCtl.Active)
		api.POST("/weekly-plans/:id/activate", planCtl.Activate)
		api.PUT("/weekly-plans/:id", planCtl.Update)
		api.POST("/weekly-plans/:id/swap", planCtl.Swap)
		api.POST("/weekly-plans/:id/regenerate", planCtl.Regenerate)
		api.POST("/weekly-plans/:id/review", planCtl.Review)
		api.DELETE("/weekly-plans/:id", planCtl.Delete)

		api.GET("/progress", progressCtl.List)
		api.POST("/progress", progressCtl.Add)
		api.GET("/progress/summary", progressCtl.Summary)
		api.GET("/progress/export", progressCtl.Export)

		api.GET("/checklist", checklistCtl.List)
		api.POST("/checklist", checklistCtl.Upsert)
		api.GET("/checklist/streak", checklistCtl.Streak)
		api.GET("/checklist/:date", checklistCtl.ForDate)

		api.POST("/chat", chatCtl.Send)
		api.GET("/chat/history", chatCtl.History)

		api.GET("/favorites", favoritesCtl.List)
		api.POST("/favorites", favoritesCtl.Add)
		api.DELETE("/favorites/:kind/:itemId", favoritesCtl.Remove)

		api.GET("/notification-settings", notificationCtl.Get)
		api.PUT("/notification-settings", notificationCtl.Update)
		api.POST("/notification-settings/telegram-link", notificationCtl.TelegramLink)
		api.DELETE("/notification-settings/telegram", notificationCtl.TelegramUnlink)
		api.POST("/devices", deviceCtl.Register)
		api.POST("/devices/toggle", deviceCtl.Toggle)

		api.GET("/alerts", alertCtl.List)
		api.POST("/alerts/test", alertCtl.Test)
		api.GET("/ws/alerts", realtimeCtl.AlertsWS)

		api.GET("/export", dataCtl.Export)
		api.POST("/import", dataCtl.Import)
		api.DELETE("/data", dataCtl.Clear)
	}

	return r
}
