package public

import (
	"github.com/tavolo-next/internal/http/response"
	"github.com/tavolo-next/internal/models"
	"github.com/tavolo-next/internal/service"

	"github.com/gin-gonic/gin"
)

// UserRegisterRequest 注册请求
type UserRegisterRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Name     string `json:"name"`
}

// UserLoginRequest 登录请求
type UserLoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UserUpdateProfileRequest 更新资料请求
type UserUpdateProfileRequest struct {
	Name string `json:"name" binding:"required"`
}

// UserChangePasswordRequest 修改密码请求
type UserChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

func userAuthPayload(user *models.User, token string, expiresAt int64) gin.H {
	return gin.H{
		"user":       user,
		"token":      token,
		"expires_at": expiresAt,
	}
}

// UserRegister 用户注册
func (h *Handler) UserRegister(c *gin.Context) {
	var req UserRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数无效", err)
		return
	}

	user, token, expiresAt, err := h.UserAuthService.Register(req.Email, req.Password, req.Name)
	if err != nil {
		respondWithMappedError(c, err, authCommonErrorRules, response.CodeInternal, "注册失败")
		return
	}
	response.Success(c, userAuthPayload(user, token, expiresAt.Unix()))
}

// UserLogin 用户登录
func (h *Handler) UserLogin(c *gin.Context) {
	var req UserLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数无效", err)
		return
	}

	user, token, expiresAt, err := h.UserAuthService.Login(req.Email, req.Password)
	if err != nil {
		respondWithMappedError(c, err, authCommonErrorRules, response.CodeInternal, "登录失败")
		return
	}
	response.Success(c, userAuthPayload(user, token, expiresAt.Unix()))
}

// UserMe 当前登录用户信息
func (h *Handler) UserMe(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	user, err := h.UserAuthService.GetUserByID(userID)
	if err != nil {
		respondWithMappedError(c, err, authCommonErrorRules, response.CodeInternal, "获取用户信息失败")
		return
	}
	response.Success(c, user)
}

// UserUpdateProfile 更新用户资料
func (h *Handler) UserUpdateProfile(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	var req UserUpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数无效", err)
		return
	}

	user, err := h.UserAuthService.UpdateProfile(userID, req.Name)
	if err != nil {
		respondWithMappedError(c, err, concatMappedHandlerErrors(authCommonErrorRules, []mappedHandlerError{
			{target: service.ErrInvalidInput, code: response.CodeBadRequest, msg: service.ErrInvalidInput.Error()},
		}), response.CodeInternal, "更新资料失败")
		return
	}
	response.Success(c, user)
}

// UserChangePassword 修改登录密码
func (h *Handler) UserChangePassword(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	var req UserChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数无效", err)
		return
	}

	if err := h.UserAuthService.ChangePassword(userID, req.OldPassword, req.NewPassword); err != nil {
		respondWithMappedError(c, err, authCommonErrorRules, response.CodeInternal, "修改密码失败")
		return
	}
	response.Success(c, gin.H{"changed": true})
}
