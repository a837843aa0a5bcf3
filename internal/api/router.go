package api

import (
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/d60-Lab/social-graph/config"
	_ "github.com/d60-Lab/social-graph/docs"
	"github.com/d60-Lab/social-graph/internal/api/handler"
	"github.com/d60-Lab/social-graph/internal/api/middleware"
	"github.com/d60-Lab/social-graph/pkg/metrics"
)

// NewRouter 注册全部路由
func NewRouter(cfg *config.Config, h *handler.Handler, verifier middleware.TokenVerifier) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	handler.RegisterValidators()

	r := gin.New()
	r.Use(middleware.Sentry(), middleware.Recovery(), middleware.Logger(), middleware.Metrics())
	if cfg.Tracing.Enabled {
		r.Use(otelgin.Middleware(cfg.Tracing.ServiceName))
	}
	r.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/metrics"})))

	r.GET("/health", h.Health)
	r.GET("/metrics", gin.WrapH(metrics.Handler()))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	auth := middleware.Auth(verifier, cfg.Cookie.Name)

	user := r.Group("/api/user")
	{
		public := user.Group("")
		if cfg.RateLimit.Enabled {
			public.Use(middleware.RateLimit(middleware.NewIPRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)))
		}
		public.POST("/register", h.Register)
		public.POST("/login", h.Login)

		user.GET("/logout", h.Logout)
		user.GET("/posts", h.ListPosts)
		user.GET("/post/:postId", h.GetPost)

		user.GET("/me", auth, h.Me)
		user.GET("/myPosts", auth, h.MyPosts)
		user.GET("/post", auth, h.SearchPosts)
		user.POST("/post", auth, h.CreatePost)
		user.PUT("/post/:postId", auth, h.UpdatePost)
		user.GET("/likePost/:postId", auth, h.LikePost)
		user.POST("/comment/:postId", auth, h.AddComment)
		user.GET("/likeComment/:commentId", auth, h.LikeComment)
		user.POST("/follow/:followedId", auth, h.Follow)
		user.POST("/unfollow/:followedId", auth, h.Unfollow)
		user.GET("/myFollowers", auth, h.MyFollowers)
		user.GET("/myFollowings", auth, h.MyFollowings)
	}

	return r
}
