package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"slices"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"quizapi/auth"
	"quizapi/config"
	"quizapi/crypto"
	"quizapi/game"
	"quizapi/migrations"
	"quizapi/pack"
	"quizapi/sched"
	"quizapi/share"
	"quizapi/storage"
)

func CreateServer(allowedOrigins []string) *gin.Engine {
	r := gin.New()
	r.SetTrustedProxies([]string{"127.0.0.1", "10.0.0.0/8", "172.16.0.0/12", "192.168.0.0/16"})
	r.GET("/health", func(ctx *gin.Context) { ctx.String(200, "healthy") })

	r.Use(func(ctx *gin.Context) {
		origin := ctx.Request.Header.Get("Origin")

		if origin == "" || slices.Contains(allowedOrigins, origin) {
			ctx.Next()
			return
		}
		ctx.String(http.StatusForbidden, "forbidden origin")
		ctx.Abort()
	})

	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowCredentials: true,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{
			"Content-Type",
			"Authorization",
			"Upgrade",
			"Connection",
			"Sec-WebSocket-Key",
			"Sec-WebSocket-Version",
			"Sec-WebSocket-Extensions",
			"Sec-WebSocket-Protocol",
		},
	}))

	return r
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Invalid configuration: ", err)
	}

	// logger setup
	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	// run migrations
	migrations.Migrate(cfg.PostgresURL)

	// Dependencies
	pgRepo, err := storage.NewPostgresRepo(context.Background(), cfg.PostgresURL)
	if err != nil {
		log.Fatal(err)
	}
	defer pgRepo.Close()

	tokenAge := time.Hour * 24 * 7 // 7 days
	passwordHasher := crypto.NewArgon2idHasher(3, 1024*64, 32, 16, 1)
	tokenManager := crypto.NewJWTManager(cfg.JWTKey, tokenAge)

	authService := auth.NewService(pgRepo, passwordHasher, tokenManager)
	authHandler := auth.NewAuthHandler(authService, tokenAge)

	r := CreateServer(cfg.AllowedOrigins)

	{
		authGroup := r.Group("/auth")
		authGroup.POST("/signup", authHandler.SignupHandler)
		authGroup.POST("/login", authHandler.LoginHandler)
		authGroup.POST("/logout", authHandler.LogoutHandler)
		authGroup.GET("/refresh", authHandler.RefreshSessionHandler)
	}

	contentShare := share.NewStore(cfg.PublicBaseURL)

	manager := game.NewManager(
		func(pkg pack.Package) game.Engine { return sched.NewEngine(pkg) },
		contentShare,
		passwordHasher,
		logger,
	)

	manager.SessionFinished = func(s *game.Session) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if _, err := pgRepo.SaveGameReport(ctx, s.Report()); err != nil {
			slog.Error("failed to persist game report", "session", s.Id(), "error", err)
		}
	}

	gameHandler := game.NewHandler(manager, passwordHasher, game.SessionDefaults{
		MinPlayers:     cfg.MinPlayers,
		MaxPlayers:     cfg.MaxPlayers,
		ButtonBlocking: time.Duration(cfg.ButtonBlockingSecs) * time.Second,
		Thinking:       time.Duration(cfg.ThinkingSecs) * time.Second,
		AutoStart:      time.Duration(cfg.AutoStartSecs) * time.Second,
		UsePingPenalty: cfg.UsePingPenalty,
		ReadingSpeed:   20,
	})

	{
		gameGroup := r.Group("/game")
		gameGroup.Use(authHandler.RequireAuthMiddleware(time.Second * 2))

		gameGroup.POST("/create", gameHandler.CreateSessionHandler)
		gameGroup.GET("/join/:id", gameHandler.JoinSessionHandler)
		gameGroup.GET("/sessions", gameHandler.ListSessionsHandler)
	}

	r.GET("/share/:key", func(ctx *gin.Context) {
		data, ok := contentShare.Get(ctx.Param("key"))
		if !ok {
			ctx.Status(http.StatusNotFound)
			return
		}
		ctx.Data(http.StatusOK, "application/octet-stream", data)
	})

	go func() {
		if err := r.Run(cfg.ListenAddr); err != nil {
			log.Fatal("Server error: ", err)
		}
	}()
	sigCh := make(chan os.Signal, 1)

	signal.Notify(sigCh, syscall.SIGTERM, os.Interrupt)
	slog.Info("Server started", "addr", cfg.ListenAddr)
	<-sigCh
	slog.Info("SIGTERM or SIGINT received, shutting down")
}
