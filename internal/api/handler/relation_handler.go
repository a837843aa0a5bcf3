package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/social-graph/internal/api/middleware"
	"github.com/d60-Lab/social-graph/pkg/response"
)

// Follow 关注
// @Summary 关注用户
// @Tags 关系链
// @Produce json
// @Param followedId path string true "被关注用户ID"
// @Success 200 {object} response.Response{data=service.FollowResult}
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/user/follow/{followedId} [post]
func (h *Handler) Follow(c *gin.Context) {
	res, err := h.relService.Follow(c.Request.Context(), middleware.CurrentUserID(c), c.Param("followedId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithMessage(c, "user followed", res)
}

// Unfollow 取消关注
// @Summary 取消关注
// @Tags 关系链
// @Produce json
// @Param followedId path string true "被关注用户ID"
// @Success 200 {object} response.Response{data=service.FollowResult}
// @Failure 404 {object} response.Response
// @Router /api/user/unfollow/{followedId} [post]
func (h *Handler) Unfollow(c *gin.Context) {
	res, err := h.relService.Unfollow(c.Request.Context(), middleware.CurrentUserID(c), c.Param("followedId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithMessage(c, "user unfollowed", res)
}

// MyFollowings 我关注的人
// @Summary 查询关注列表
// @Tags 关系链
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页数量" default(10)
// @Success 200 {object} response.Response{data=service.IDPage}
// @Router /api/user/myFollowings [get]
func (h *Handler) MyFollowings(c *gin.Context) {
	page, pageSize := pageQuery(c, "page_size")
	res, err := h.relService.ListFollowing(c.Request.Context(), middleware.CurrentUserID(c), page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

// MyFollowers 我的粉丝
// @Summary 查询粉丝列表
// @Tags 关系链
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页数量" default(10)
// @Success 200 {object} response.Response{data=service.IDPage}
// @Router /api/user/myFollowers [get]
func (h *Handler) MyFollowers(c *gin.Context) {
	page, pageSize := pageQuery(c, "page_size")
	res, err := h.relService.ListFollowers(c.Request.Context(), middleware.CurrentUserID(c), page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}
