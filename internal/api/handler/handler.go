package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/social-graph/config"
	"github.com/d60-Lab/social-graph/internal/service"
)

// Handler 聚合各业务服务的 HTTP 入口
type Handler struct {
	authService    service.AuthService
	postService    service.PostService
	commentService service.CommentService
	relService     service.RelationshipService
	userService    service.UserService
	cookie         config.CookieConfig
}

// Services 构造 Handler 所需的服务
type Services struct {
	Auth          service.AuthService
	Posts         service.PostService
	Comments      service.CommentService
	Relationships service.RelationshipService
	Users         service.UserService
}

func NewHandler(svc Services, cookie config.CookieConfig) *Handler {
	return &Handler{
		authService:    svc.Auth,
		postService:    svc.Posts,
		commentService: svc.Comments,
		relService:     svc.Relationships,
		userService:    svc.Users,
		cookie:         cookie,
	}
}

// pageQuery 解析 page/limit，非法值交给服务层回退默认值
func pageQuery(c *gin.Context, limitKey string) (int, int) {
	page, _ := strconv.Atoi(c.Query("page"))
	limit, _ := strconv.Atoi(c.Query(limitKey))
	return page, limit
}
