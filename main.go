package main

import (
	"net/http"
	"os"

	"openboard-api/config"
	"openboard-api/handlers"
	"openboard-api/middleware"
	"openboard-api/repositories"
	"openboard-api/services"
	"openboard-api/token"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// .env is optional; the environment may already be populated
	_ = godotenv.Load()

	logger := config.NewLogger()

	db, err := config.InitDB()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}

	tokenConfig, err := config.LoadToken()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load token config")
	}
	codec, err := token.NewCodec(tokenConfig.Key, tokenConfig.TTL)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to build token codec")
	}

	profileFetcher := services.NewHTTPProfileFetcher(os.Getenv("OAUTH_USERINFO_URL"))

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	membershipRepo := repositories.NewMembershipRepository(db)
	boardRepo := repositories.NewBoardRepository(db)
	articleRepo := repositories.NewArticleRepository(db)
	commentRepo := repositories.NewCommentRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo, codec, profileFetcher)
	accessService := services.NewAccessService(boardRepo)
	boardService := services.NewBoardService(boardRepo, membershipRepo)
	articleService := services.NewArticleService(articleRepo, boardRepo, accessService)
	commentService := services.NewCommentService(commentRepo, articleRepo, boardRepo, accessService)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	boardHandler := handlers.NewBoardHandler(boardService)
	articleHandler := handlers.NewArticleHandler(articleService)
	commentHandler := handlers.NewCommentHandler(commentService)

	// Setup router
	router := gin.New()
	router.Use(middleware.RequestLogger(logger), gin.Recovery())

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	// API routes
	v1 := router.Group("/api/v1")
	{
		// Auth routes (public)
		auth := v1.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/oauth", authHandler.OAuthLogin)
		}

		v1.GET("/profile", middleware.Auth(authService), authHandler.GetProfile)

		v1.GET("/memberships", boardHandler.GetMemberships)

		// Boards and their articles
		boards := v1.Group("/boards")
		{
			boards.GET("", boardHandler.GetBoards)
			boards.GET("/:id", boardHandler.GetBoard)
			boards.GET("/:id/articles", middleware.OptionalAuth(authService), articleHandler.GetBoardArticles)
			boards.POST("/:id/articles", middleware.Auth(authService), articleHandler.CreateArticle)
		}

		// Articles and their comments
		articles := v1.Group("/articles")
		{
			articles.GET("/:id", middleware.OptionalAuth(authService), articleHandler.GetArticle)
			articles.PUT("/:id", middleware.Auth(authService), articleHandler.UpdateArticle)
			articles.DELETE("/:id", middleware.Auth(authService), articleHandler.DeleteArticle)
			articles.GET("/:id/snapshots", middleware.OptionalAuth(authService), articleHandler.GetArticleSnapshots)
			articles.GET("/:id/comments", middleware.OptionalAuth(authService), commentHandler.GetArticleComments)
			articles.POST("/:id/comments", middleware.Auth(authService), commentHandler.CreateComment)
		}

		comments := v1.Group("/comments")
		{
			comments.GET("/:id", middleware.OptionalAuth(authService), commentHandler.GetComment)
			comments.PUT("/:id", middleware.Auth(authService), commentHandler.UpdateComment)
			comments.DELETE("/:id", middleware.Auth(authService), commentHandler.DeleteComment)
			comments.GET("/:id/snapshots", middleware.OptionalAuth(authService), commentHandler.GetCommentSnapshots)
		}
	}

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	logger.Info().Str("port", port).Msg("server starting")
	if err := http.ListenAndServe(":"+port, router); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}
