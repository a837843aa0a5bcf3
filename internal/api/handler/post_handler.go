package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/social-graph/internal/api/middleware"
	"github.com/d60-Lab/social-graph/internal/graph"
	"github.com/d60-Lab/social-graph/pkg/response"
)

type postRequest struct {
	Text     string `json:"text"`
	Category string `json:"category"`
	Title    string `json:"title"`
}

func (r postRequest) input() graph.PostInput {
	return graph.PostInput{Text: r.Text, Category: r.Category, Title: r.Title}
}

// ListPosts 全站帖子，最新在前
// @Summary 帖子列表
// @Tags 帖子
// @Produce json
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量" default(10)
// @Success 200 {object} response.Response{data=model.PostPage}
// @Router /api/user/posts [get]
func (h *Handler) ListPosts(c *gin.Context) {
	page, limit := pageQuery(c, "limit")
	res, err := h.postService.List(c.Request.Context(), page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

// MyPosts 当前用户的帖子
// @Summary 我的帖子
// @Tags 帖子
// @Produce json
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量" default(10)
// @Success 200 {object} response.Response{data=model.PostPage}
// @Failure 401 {object} response.Response
// @Router /api/user/myPosts [get]
func (h *Handler) MyPosts(c *gin.Context) {
	page, limit := pageQuery(c, "limit")
	res, err := h.postService.ListByOwner(c.Request.Context(), middleware.CurrentUserID(c), page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

// SearchPosts 按正文搜索（不区分大小写）
// @Summary 搜索帖子
// @Tags 帖子
// @Produce json
// @Param q query string true "关键字"
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量" default(10)
// @Success 200 {object} response.Response{data=model.PostPage}
// @Failure 400 {object} response.Response
// @Router /api/user/post [get]
func (h *Handler) SearchPosts(c *gin.Context) {
	page, limit := pageQuery(c, "limit")
	res, err := h.postService.Search(c.Request.Context(), c.Query("q"), page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

// CreatePost 发帖
// @Summary 发帖
// @Tags 帖子
// @Accept json
// @Produce json
// @Param request body postRequest true "帖子内容"
// @Success 201 {object} response.Response{data=model.Post}
// @Failure 400 {object} response.Response
// @Router /api/user/post [post]
func (h *Handler) CreatePost(c *gin.Context) {
	var req postRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, graph.ErrEmptyPost)
		return
	}
	post, err := h.postService.Create(c.Request.Context(), middleware.CurrentUserID(c), req.input())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "post successful", post)
}

// UpdatePost 仅作者可编辑
// @Summary 编辑帖子
// @Tags 帖子
// @Accept json
// @Produce json
// @Param postId path string true "帖子ID"
// @Param request body postRequest true "帖子内容"
// @Success 200 {object} response.Response{data=model.Post}
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/user/post/{postId} [put]
func (h *Handler) UpdatePost(c *gin.Context) {
	var req postRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, graph.ErrEmptyPost)
		return
	}
	post, err := h.postService.Update(c.Request.Context(), middleware.CurrentUserID(c), c.Param("postId"), req.input())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithMessage(c, "post updated", post)
}

// GetPost 帖子详情及评论
// @Summary 帖子详情
// @Tags 帖子
// @Produce json
// @Param postId path string true "帖子ID"
// @Success 200 {object} response.Response{data=model.PostDetail}
// @Failure 404 {object} response.Response
// @Router /api/user/post/{postId} [get]
func (h *Handler) GetPost(c *gin.Context) {
	detail, err := h.postService.Get(c.Request.Context(), c.Param("postId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, detail)
}

// LikePost 点赞/取消点赞
// @Summary 切换点赞
// @Tags 帖子
// @Produce json
// @Param postId path string true "帖子ID"
// @Success 200 {object} response.Response{data=service.LikeResult}
// @Failure 404 {object} response.Response
// @Router /api/user/likePost/{postId} [get]
func (h *Handler) LikePost(c *gin.Context) {
	res, err := h.postService.ToggleLike(c.Request.Context(), middleware.CurrentUserID(c), c.Param("postId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	msg := "post unliked"
	if res.Liked {
		msg = "post liked"
	}
	response.SuccessWithMessage(c, msg, res)
}
