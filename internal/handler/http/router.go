package http

import (
	"net/http"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/mikiasgoitom/yamdb/internal/domain/entity"
	"github.com/mikiasgoitom/yamdb/internal/handler/http/middleware"
	usecasecontract "github.com/mikiasgoitom/yamdb/internal/usecase/contract"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RouterConfig holds the transport-level settings of the API.
type RouterConfig struct {
	AllowedOrigins []string
	// AuthRateLimit is the per-client request rate allowed on /auth; zero disables it.
	AuthRateLimit float64
	PageSize      int
}

type Router struct {
	authUsecase     usecasecontract.IAuthUseCase
	authHandler     *AuthHandler
	userHandler     *UserHandler
	categoryHandler *TaxonomyHandler
	genreHandler    *TaxonomyHandler
	titleHandler    *TitleHandler
	reviewHandler   *ReviewHandler
	commentHandler  *CommentHandler
	config          RouterConfig
}

func NewRouter(
	authUsecase usecasecontract.IAuthUseCase,
	userUsecase usecasecontract.IUserUseCase,
	taxonomyUsecase usecasecontract.ITaxonomyUseCase,
	titleUsecase usecasecontract.ITitleUseCase,
	reviewUsecase usecasecontract.IReviewUseCase,
	commentUsecase usecasecontract.ICommentUseCase,
	config RouterConfig,
) *Router {
	pageSize := config.PageSize
	return &Router{
		authUsecase:     authUsecase,
		authHandler:     NewAuthHandler(authUsecase),
		userHandler:     NewUserHandler(userUsecase, pageSize),
		categoryHandler: NewTaxonomyHandler(entity.TaxonomyCategory, taxonomyUsecase, pageSize),
		genreHandler:    NewTaxonomyHandler(entity.TaxonomyGenre, taxonomyUsecase, pageSize),
		titleHandler:    NewTitleHandler(titleUsecase, pageSize),
		reviewHandler:   NewReviewHandler(reviewUsecase, pageSize),
		commentHandler:  NewCommentHandler(commentUsecase, reviewUsecase, pageSize),
		config:          config,
	}
}

func (r *Router) corsConfig() cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", "Accept"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	if len(r.config.AllowedOrigins) == 0 || slices.Contains(r.config.AllowedOrigins, "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = r.config.AllowedOrigins
		cfg.AllowCredentials = true
	}
	return cfg
}

// SetupRoutes registers every route. Collection and item paths end with a
// slash; gin redirects the bare form.
func (r *Router) SetupRoutes(router *gin.Engine) {
	router.Use(middleware.Metrics())
	router.Use(cors.New(r.corsConfig()))

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")

	// Public routes (no authentication required)
	auth := v1.Group("/auth")
	if r.config.AuthRateLimit > 0 {
		auth.Use(middleware.RateLimiter(middleware.NewLimiter(r.config.AuthRateLimit)))
	}
	{
		auth.POST("/signup/", r.authHandler.SignUp)
		auth.POST("/token/", r.authHandler.ObtainToken)
	}

	api := v1.Group("")
	api.Use(middleware.AuthMiddleWare(r.authUsecase))

	// Current user routes
	me := api.Group("/users/me", middleware.RequireAuth())
	{
		me.GET("/", r.userHandler.GetCurrentUser)
		me.PATCH("/", r.userHandler.UpdateCurrentUser)
	}

	// User administration
	users := api.Group("/users", middleware.RequireAdmin())
	{
		users.GET("/", r.userHandler.ListUsers)
		users.POST("/", r.userHandler.CreateUser)
		users.GET("/:username/", r.userHandler.GetUser)
		users.PUT("/:username/", r.userHandler.ReplaceUser)
		users.PATCH("/:username/", r.userHandler.UpdateUser)
		users.DELETE("/:username/", r.userHandler.DeleteUser)
	}

	// Taxonomy and titles: anyone reads, admins write
	catalog := api.Group("", middleware.AdminOrReadOnly())
	{
		catalog.GET("/categories/", r.categoryHandler.List)
		catalog.POST("/categories/", r.categoryHandler.Create)
		catalog.DELETE("/categories/:slug/", r.categoryHandler.Delete)

		catalog.GET("/genres/", r.genreHandler.List)
		catalog.POST("/genres/", r.genreHandler.Create)
		catalog.DELETE("/genres/:slug/", r.genreHandler.Delete)

		catalog.GET("/titles/", r.titleHandler.ListTitles)
		catalog.POST("/titles/", r.titleHandler.CreateTitle)
		catalog.GET("/titles/:title_id/", r.titleHandler.GetTitle)
		catalog.PUT("/titles/:title_id/", r.titleHandler.UpdateTitle)
		catalog.PATCH("/titles/:title_id/", r.titleHandler.UpdateTitle)
		catalog.DELETE("/titles/:title_id/", r.titleHandler.DeleteTitle)
	}

	// Reviews and comments: anyone reads, signed-in users write, authors
	// and moderators edit
	reviews := api.Group("/titles/:title_id/reviews", middleware.AuthenticatedOrReadOnly())
	{
		reviews.GET("/", r.reviewHandler.ListReviews)
		reviews.POST("/", r.reviewHandler.CreateReview)
		reviews.GET("/:review_id/", r.reviewHandler.GetReview)
		reviews.PUT("/:review_id/", r.reviewHandler.UpdateReview)
		reviews.PATCH("/:review_id/", r.reviewHandler.UpdateReview)
		reviews.DELETE("/:review_id/", r.reviewHandler.DeleteReview)

		reviews.GET("/:review_id/comments/", r.commentHandler.GetReviewComments)
		reviews.POST("/:review_id/comments/", r.commentHandler.CreateComment)
		reviews.GET("/:review_id/comments/:comment_id/", r.commentHandler.GetComment)
		reviews.PUT("/:review_id/comments/:comment_id/", r.commentHandler.UpdateComment)
		reviews.PATCH("/:review_id/comments/:comment_id/", r.commentHandler.UpdateComment)
		reviews.DELETE("/:review_id/comments/:comment_id/", r.commentHandler.DeleteComment)
	}
}
