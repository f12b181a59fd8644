package database

import (
	"time"

	"gorm.io/gorm"
)

// User 用户数据存储结构
type User struct {
	gorm.Model
	ID           uint   `gorm:"primaryKey"`
	Email        string `gorm:"uniqueIndex;not null;size:100"`
	PasswordHash string `gorm:"not null;size:255"`
	Aka          string `gorm:"size:40;default:''"` // 可选的公开昵称
	AkaPublic    bool   // 昵称是否对外展示，缺省值在注册时写入；不能用default标签，gorm会跳过零值false
	LastLogin    time.Time
}

// RegisterRequest 注册时候的请求结构体
type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email,max=100"`
	Password  string `json:"password" binding:"required,min=6,max=100"`
	Aka       string `json:"aka" binding:"omitempty,max=40"`
	AkaPublic *bool  `json:"aka_public"` // 缺省为 true
}

// LoginRequest 登录请求结构体
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UpdateProfileRequest 更新资料请求结构体
type UpdateProfileRequest struct {
	Aka       string `json:"aka" binding:"omitempty,max=40"`
	AkaPublic bool   `json:"aka_public"`
}

// UserResponse 用户响应结构体
type UserResponse struct {
	ID        uint      `json:"id"`
	Email     string    `json:"email"`
	Aka       string    `json:"aka"`
	AkaPublic bool      `json:"aka_public"`
	CreatedAt time.Time `json:"created_at"`
}

// LoginResponse 登录响应结构体
type LoginResponse struct {
	Message string       `json:"message"`
	Token   string       `json:"token"`
	User    UserResponse `json:"user"`
}

// ProfileStatsResponse 用户统计响应结构体
type ProfileStatsResponse struct {
	TotalNotes   int64     `json:"total_notes"`
	PublicNotes  int64     `json:"public_notes"`
	PrivateNotes int64     `json:"private_notes"`
	RegisteredAt time.Time `json:"registered_at"`
}
