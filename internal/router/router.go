package router

import (
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/athera-ai/athera/internal/auth"
	"github.com/athera-ai/athera/internal/config"
	"github.com/athera-ai/athera/internal/handlers"
	"github.com/athera-ai/athera/internal/mailer"
	"github.com/athera-ai/athera/internal/middleware"
	"github.com/athera-ai/athera/internal/otp"
	"github.com/athera-ai/athera/internal/services"
	"github.com/athera-ai/athera/internal/session"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func NewRouter(cfg *config.Config, database *gorm.DB) (*gin.Engine, error) {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	tokens, err := auth.NewTokenService(cfg.JWTSecret)

	if err != nil {
		return nil, err
	}

	sessions := session.NewStore(database, tokens)

	var mail mailer.Mailer = mailer.LogMailer{}

	if cfg.KafkaBroker != "" {
		kafkaMailer, err := mailer.NewKafkaMailer(cfg.KafkaBroker)
		if err != nil {
			return nil, err
		}
		mail = kafkaMailer
	}

	issuer := otp.NewIssuer(database, mail)

	authHandler := handlers.NewAuthHandler(database, sessions, cfg.IsProduction())
	otpHandler := handlers.NewOtpHandler(issuer, sessions, cfg.IsProduction())
	quoteHandler := handlers.NewQuoteHandler(services.NewQuoteService())

	var chatService *services.ChatService

	if cfg.GroqAPIKey != "" {
		chatService = services.NewChatService(cfg.GroqAPIKey)
	}

	chatbotHandler := handlers.NewChatbotHandler(chatService)

	r := gin.Default()

	// Add CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Page navigation gate; API routes pass straight through.
	r.Use(middleware.PageGate(tokens))

	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthCheck)
		api.GET("/quote", quoteHandler.Quote)
		api.POST("/chatbot", middleware.RequireAuth(sessions), chatbotHandler.Chat)

		authGroup := api.Group("/auth")
		{
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/logout", authHandler.Logout)
			authGroup.GET("/me", authHandler.Me)
		}

		otpGroup := api.Group("/otp")
		{
			otpGroup.POST("/send", otpHandler.Send)
			otpGroup.POST("/verify", otpHandler.Verify)
		}
	}

	if cfg.StaticDir != "" {
		r.NoRoute(servePages(cfg.StaticDir))
	}

	return r, nil
}

// servePages serves the built web UI, falling back to index.html for
// client-routed paths.
func servePages(staticDir string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if ctx.Request.Method != http.MethodGet && ctx.Request.Method != http.MethodHead {
			ctx.Status(http.StatusNotFound)
			return
		}

		requested := filepath.Join(staticDir, filepath.Clean("/"+ctx.Request.URL.Path))

		if info, err := os.Stat(requested); err == nil && !info.IsDir() {
			ctx.File(requested)
			return
		}

		ctx.File(filepath.Join(staticDir, "index.html"))
	}
}
