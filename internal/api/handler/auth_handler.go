package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/social-graph/internal/service"
	"github.com/d60-Lab/social-graph/pkg/response"
)

type registerRequest struct {
	Username    string `json:"username" binding:"required"`
	PhoneNumber string `json:"phoneNumber" binding:"required,phone"`
	Password    string `json:"password" binding:"required"`
}

type loginRequest struct {
	PhoneNumber string `json:"phoneNumber" binding:"required,phone"`
	Password    string `json:"password" binding:"required"`
}

// Register 注册
// @Summary 注册
// @Tags 用户
// @Accept json
// @Produce json
// @Param request body registerRequest true "注册信息"
// @Success 201 {object} response.Response{data=service.AuthResult}
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /api/user/register [post]
func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err, "please fill all the required fields"))
		return
	}
	res, err := h.authService.Register(c.Request.Context(), service.RegisterInput{
		Username:    req.Username,
		PhoneNumber: req.PhoneNumber,
		Password:    req.Password,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	h.setSessionCookie(c, res.Token, h.authService.SessionTTL())
	response.Created(c, "registered", res)
}

// Login 登录
// @Summary 登录
// @Tags 用户
// @Accept json
// @Produce json
// @Param request body loginRequest true "登录信息"
// @Success 200 {object} response.Response{data=service.AuthResult}
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /api/user/login [post]
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err, "please provide phone number and password"))
		return
	}
	res, err := h.authService.Login(c.Request.Context(), req.PhoneNumber, req.Password)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.setSessionCookie(c, res.Token, h.authService.SessionTTL())
	response.Success(c, res)
}

// Logout 使会话 cookie 过期；服务端无状态
// @Summary 登出
// @Tags 用户
// @Produce json
// @Success 200 {object} response.Response
// @Router /api/user/logout [get]
func (h *Handler) Logout(c *gin.Context) {
	h.clearSessionCookie(c)
	response.SuccessWithMessage(c, "successfully logged out", nil)
}
