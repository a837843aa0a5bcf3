package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/social-graph/internal/api/middleware"
	"github.com/d60-Lab/social-graph/internal/graph"
	"github.com/d60-Lab/social-graph/pkg/response"
)

type commentRequest struct {
	Text string `json:"text"`
}

// AddComment 评论
// @Summary 发表评论
// @Tags 评论
// @Accept json
// @Produce json
// @Param postId path string true "帖子ID"
// @Param request body commentRequest true "评论内容"
// @Success 201 {object} response.Response{data=model.PostDetail}
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/user/comment/{postId} [post]
func (h *Handler) AddComment(c *gin.Context) {
	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, graph.ErrEmptyComment)
		return
	}
	detail, err := h.commentService.Add(c.Request.Context(), middleware.CurrentUserID(c), c.Param("postId"), req.Text)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "comment added", detail)
}

// LikeComment 评论点赞/取消
// @Summary 切换评论点赞
// @Tags 评论
// @Produce json
// @Param commentId path string true "评论ID"
// @Success 200 {object} response.Response{data=service.CommentLikeResult}
// @Failure 404 {object} response.Response
// @Router /api/user/likeComment/{commentId} [get]
func (h *Handler) LikeComment(c *gin.Context) {
	res, err := h.commentService.ToggleLike(c.Request.Context(), middleware.CurrentUserID(c), c.Param("commentId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}
