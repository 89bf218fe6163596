package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"bookhub/internal/microservices/http-api/middleware"
	"bookhub/internal/microservices/http-api/service"
)

// Services are the use cases behind the HTTP API.
type Services struct {
	Auth    service.AuthService
	Users   service.UserService
	Authors service.AuthorService
	Books   service.BookService
	Library service.LibraryService
	Shelf   service.ShelfService
	Posts   service.PostService
	Comment service.CommentService
	Tags    service.TagService
}

// RouterOptions carry the ambient settings of the router.
type RouterOptions struct {
	Redis           redis.UniversalClient // nil disables the write limiter
	WriteRateLimit  int
	WriteRateWindow time.Duration
	LoginLimiter    *middleware.LoginLimiter
	RequestTimeout  time.Duration
	CORSOrigins     []string
}

// NewRouter builds the engine with every route under /api.
func NewRouter(svc Services, opts RouterOptions) *gin.Engine {
	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Logger(),
		middleware.Recovery(),
		middleware.CORS(opts.CORSOrigins),
		middleware.Timeout(opts.RequestTimeout),
	)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	loginLimit := func(c *gin.Context) { c.Next() }
	if opts.LoginLimiter != nil {
		loginLimit = opts.LoginLimiter.Middleware()
	}
	requireAuth := middleware.AuthMiddleware(svc.Auth)

	api := r.Group("/api",
		middleware.OptionalAuth(svc.Auth),
		middleware.WriteRateLimit(opts.Redis, opts.WriteRateLimit, opts.WriteRateWindow),
	)

	NewAuthHandler(svc.Auth, svc.Users).RegisterRoutes(api, requireAuth, loginLimit)
	NewUserHandler(svc.Users).RegisterRoutes(api, requireAuth)
	NewAuthorHandler(svc.Authors).RegisterRoutes(api)
	NewBookHandler(svc.Books).RegisterRoutes(api)
	NewLibraryHandler(svc.Library).RegisterRoutes(api)
	NewShelfHandler(svc.Shelf).RegisterRoutes(api)
	NewPostHandler(svc.Posts, svc.Tags).RegisterRoutes(api)
	NewCommentHandler(svc.Comment).RegisterRoutes(api)

	return r
}
