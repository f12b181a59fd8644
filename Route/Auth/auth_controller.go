package Auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/LJCaballero/Diario/database"
	"github.com/LJCaballero/Diario/service/Auth"
)

// respondError 根据错误类别映射HTTP状态码
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	kind := "internal"

	var appErr *database.AppError
	if errors.As(err, &appErr) {
		kind = string(appErr.Kind)
		switch appErr.Kind {
		case database.ErrKindValidation:
			status = http.StatusBadRequest
		case database.ErrKindNotFound:
			status = http.StatusNotFound
		case database.ErrKindForbidden:
			status = http.StatusForbidden
		}
	}

	c.JSON(status, gin.H{
		"error": err.Error(),
		"kind":  kind,
	})
}

// Register 用户注册
func Register(c *gin.Context) {
	var req database.RegisterRequest

	// 绑定请求数据
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "请求参数错误: " + err.Error(),
			"kind":  "validation",
		})
		return
	}

	// 创建用户
	user, err := Auth.GlobalUserService.CreateUser(req)
	if err != nil {
		respondError(c, err)
		return
	}

	// 生成JWT令牌
	token, err := Auth.GenerateToken(user.ID, user.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "生成令牌失败",
			"kind":  "internal",
		})
		return
	}

	c.SetCookie("access_token", token, 3600*24, "/", "", false, true)

	c.JSON(http.StatusOK, database.LoginResponse{
		Message: "注册成功",
		Token:   token,
		User:    toUserResponse(user),
	})
}

// Login 用户登录
func Login(c *gin.Context) {
	var req database.LoginRequest

	// 绑定请求数据
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "请求参数错误: " + err.Error(),
			"kind":  "validation",
		})
		return
	}

	// 获取用户
	user, err := Auth.GlobalUserService.GetUserByEmail(req.Email)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "邮箱或密码错误",
			"kind":  "validation",
		})
		return
	}

	// 验证密码
	if !Auth.VerifyPassword(req.Password, user.PasswordHash) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "邮箱或密码错误",
			"kind":  "validation",
		})
		return
	}

	// 生成JWT令牌
	token, err := Auth.GenerateToken(user.ID, user.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "生成令牌失败",
			"kind":  "internal",
		})
		return
	}

	// 设置Cookie
	c.SetCookie("access_token", token, 3600*24, "/", "", false, true)

	// 返回响应
	c.JSON(http.StatusOK, database.LoginResponse{
		Message: "登录成功",
		Token:   token,
		User:    toUserResponse(user),
	})
}

// Logout 用户登出，仅清除Cookie，令牌到期前仍然有效
func Logout(c *gin.Context) {
	c.SetCookie("access_token", "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{
		"message": "登出成功",
	})
}

// GetProfile 获取当前用户资料
func GetProfile(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "用户未认证",
			"kind":  "auth",
		})
		return
	}

	user, err := Auth.GlobalUserService.GetUserByID(userID.(uint))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toUserResponse(user))
}

// UpdateProfile 更新昵称与昵称可见性
func UpdateProfile(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "用户未认证",
			"kind":  "auth",
		})
		return
	}

	var req database.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "请求参数错误: " + err.Error(),
			"kind":  "validation",
		})
		return
	}

	if err := Auth.GlobalUserService.UpdateProfile(userID.(uint), req); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "资料更新成功",
	})
}

// GetProfileStats 获取当前用户的笔记统计
func GetProfileStats(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "用户未认证",
			"kind":  "auth",
		})
		return
	}

	stats, err := Auth.GlobalUserService.GetUserStats(userID.(uint))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

func toUserResponse(user *database.User) database.UserResponse {
	return database.UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		Aka:       user.Aka,
		AkaPublic: user.AkaPublic,
		CreatedAt: user.CreatedAt,
	}
}
