package router

import (
	"time"

	"github.com/reehan7086/EchoVibe-sub000/config"
	"github.com/reehan7086/EchoVibe-sub000/internal/handler"
	"github.com/reehan7086/EchoVibe-sub000/internal/middleware"
	"github.com/reehan7086/EchoVibe-sub000/internal/repository"
	"github.com/reehan7086/EchoVibe-sub000/internal/service"
	"github.com/reehan7086/EchoVibe-sub000/internal/ws"
	"github.com/reehan7086/EchoVibe-sub000/pkg/cloudinary"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Hubs groups the long-lived realtime fan-out channels. They outlive any
// single request and are shared between HTTP handlers and WS endpoints.
type Hubs struct {
	Map  *ws.MapHub
	Chat *ws.ChatHub
	Feed *ws.Hub
}

func NewHubs() *Hubs {
	return &Hubs{
		Map:  ws.NewMapHub(),
		Chat: ws.NewChatHub(),
		Feed: ws.NewHub(),
	}
}

// Setup wires repositories, services, and handlers onto a gin engine.
func Setup(cfg *config.Config, db *gorm.DB, cld cloudinary.Client, hubs *Hubs) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	limiter := middleware.NewInMemoryRateLimiter(300, time.Minute)
	r.Use(middleware.RateLimit(limiter))

	// Repositories.
	userRepo := repository.NewUserRepository(db)
	nearbyRepo := repository.NewNearbyRepository(db)
	connRepo := repository.NewConnectionRepository(db)
	chatRepo := repository.NewChatRepository(db)
	echoRepo := repository.NewEchoRepository(db)
	communityRepo := repository.NewCommunityRepository(db)
	notifRepo := repository.NewNotificationRepository(db)
	safetyRepo := repository.NewSafetyRepository(db)

	// Services. Notifications push over the per-user feed hub.
	authSvc := service.NewAuthService(cfg, userRepo)
	notifSvc := service.NewNotificationService(notifRepo, hubs.Feed)
	connSvc := service.NewConnectionService(db, connRepo, userRepo, safetyRepo, notifSvc, hubs.Feed)
	nearbySvc := service.NewNearbyService(nearbyRepo, cfg.Discovery)

	// Handlers.
	authH := handler.NewAuthHandler(authSvc, userRepo)
	googleH := handler.NewGoogleOAuthHandler(cfg, authSvc)
	meH := handler.NewMeHandler(userRepo, connRepo, cfg, hubs.Map)
	profileH := handler.NewProfileHandler(userRepo, safetyRepo, connRepo)
	nearbyH := handler.NewNearbyHandler(nearbySvc)
	connH := handler.NewConnectionHandler(connSvc, connRepo)
	chatH := handler.NewChatHandler(chatRepo, userRepo, safetyRepo)
	echoH := handler.NewEchoHandler(echoRepo, userRepo, notifSvc)
	communityH := handler.NewCommunityHandler(communityRepo, hubs.Feed)
	notifH := handler.NewNotificationHandler(notifRepo)
	uploadH := handler.NewUploadHandler(cld)
	safetyH := handler.NewSafetyHandler(safetyRepo, connSvc)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.Group("/api/v1")

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", authH.Register)
		authGroup.POST("/login", authH.Login)
		authGroup.POST("/refresh", authH.Refresh)
		authGroup.GET("/google", googleH.Redirect)
		authGroup.GET("/google/callback", googleH.Callback)
	}

	authed := api.Group("")
	authed.Use(middleware.AuthRequired(&cfg.JWT))
	{
		authed.POST("/auth/logout", authH.Logout)

		me := authed.Group("/me")
		{
			me.GET("", meH.GetProfile)
			me.PATCH("", meH.UpdateProfile)
			me.PATCH("/location", meH.UpdateLocation)
			me.GET("/location", meH.GetMyLocation)
			me.POST("/heartbeat", meH.Heartbeat)
			me.DELETE("", meH.Deactivate)
		}

		authed.GET("/map/nearby", nearbyH.Nearby)

		authed.GET("/users/search", profileH.Search)
		authed.GET("/users/:id", profileH.Get)

		conns := authed.Group("/connections")
		{
			conns.POST("", connH.Request)
			conns.GET("", connH.List)
			conns.GET("/pending", connH.ListPending)
			conns.POST("/:id/accept", connH.Accept)
			conns.POST("/:id/decline", connH.Decline)
			conns.DELETE("/:id", connH.Disconnect)
		}

		chats := authed.Group("/chats")
		{
			chats.POST("", chatH.Open)
			chats.GET("", chatH.List)
			chats.GET("/:id/messages", chatH.Messages)
			chats.POST("/:id/read", chatH.MarkRead)
		}

		echoes := authed.Group("/echoes")
		{
			echoes.POST("", echoH.Create)
			echoes.GET("", echoH.Feed)
			echoes.POST("/:id/like", echoH.Like)
			echoes.DELETE("/:id/like", echoH.Unlike)
			echoes.POST("/:id/comments", echoH.Comment)
			echoes.GET("/:id/comments", echoH.Comments)
			echoes.DELETE("/:id", echoH.Delete)
		}

		communities := authed.Group("/communities")
		{
			communities.POST("", communityH.Create)
			communities.GET("", communityH.List)
			communities.GET("/mine", communityH.ListMine)
			communities.POST("/:id/join", communityH.Join)
			communities.POST("/:id/leave", communityH.Leave)
		}

		notifs := authed.Group("/notifications")
		{
			notifs.GET("", notifH.List)
			notifs.GET("/unread", notifH.UnreadCount)
			notifs.POST("/:id/read", notifH.MarkRead)
			notifs.POST("/read-all", notifH.MarkAllRead)
		}

		uploads := authed.Group("/uploads")
		{
			uploads.POST("/image", uploadH.UploadImage)
			uploads.POST("/video", uploadH.UploadVideo)
		}

		authed.POST("/blocks", safetyH.Block)
		authed.DELETE("/blocks", safetyH.Unblock)
		authed.GET("/blocks", safetyH.ListBlocked)
		authed.POST("/reports", safetyH.Report)
	}

	// WebSocket endpoints authenticate via token query param; the browser WS
	// API cannot set an Authorization header.
	r.GET("/ws/map", ws.UpgradeMapWS(&cfg.JWT, hubs.Map))
	r.GET("/ws/feed", ws.UpgradeFeedWS(&cfg.JWT, hubs.Feed))
	r.GET("/ws/chat", handler.UpgradeChatWS(&cfg.JWT, hubs.Chat, chatRepo, userRepo, notifSvc))

	return r
}
