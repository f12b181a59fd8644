package database

import (
	"time"

	"gorm.io/gorm"
)

// Note 笔记数据存储结构
type Note struct {
	gorm.Model
	UserID      uint   `gorm:"index;not null" json:"user_id"`
	Title       string `gorm:"size:100;not null" json:"title"`
	Text        string `gorm:"type:text;not null" json:"text"`
	CategoryID  uint   `gorm:"index;not null" json:"category_id"`
	IsPublic    bool   `gorm:"default:false" json:"is_public"`
	IsAnonymous bool   `gorm:"default:false" json:"is_anonymous"` // 仅公开笔记有意义
	ImageURL    string `gorm:"size:255" json:"image_url"`
}

// CreateNoteRequest 创建笔记请求结构体
type CreateNoteRequest struct {
	Title       string `json:"title" binding:"required,max=100"`
	Text        string `json:"text" binding:"required,max=5000"`
	CategoryID  uint   `json:"category_id" binding:"required"`
	IsPublic    bool   `json:"is_public"`
	IsAnonymous bool   `json:"is_anonymous"`
}

// UpdateNoteRequest 更新笔记请求结构体
type UpdateNoteRequest struct {
	Title       string `json:"title" binding:"required,max=100"`
	Text        string `json:"text" binding:"required,max=5000"`
	CategoryID  uint   `json:"category_id" binding:"required"`
	IsPublic    bool   `json:"is_public"`
	IsAnonymous bool   `json:"is_anonymous"`
}

// NoteResponse 笔记响应结构体（私有读取路径，附带分类名）
type NoteResponse struct {
	ID           uint      `json:"id"`
	Title        string    `json:"title"`
	Text         string    `json:"text"`
	CategoryID   uint      `json:"category_id"`
	CategoryName string    `json:"category_name"`
	IsPublic     bool      `json:"is_public"`
	IsAnonymous  bool      `json:"is_anonymous"`
	ImageURL     string    `json:"image_url"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// PublicNoteResponse 公开墙笔记响应结构体
// display_author 由作者展示解析器计算，匿名笔记不携带作者身份
type PublicNoteResponse struct {
	ID            uint      `json:"id"`
	Title         string    `json:"title"`
	Text          string    `json:"text"`
	CategoryName  string    `json:"category_name"`
	ImageURL      string    `json:"image_url"`
	IsAnonymous   bool      `json:"is_anonymous"`
	DisplayAuthor string    `json:"display_author"`
	Likes         int64     `json:"likes"`
	Dislikes      int64     `json:"dislikes"`
	UserRating    *int      `json:"user_rating"` // 未登录或未评价时为 null
	CreatedAt     time.Time `json:"created_at"`
}

// PublicNoteFilter 公开墙查询过滤条件
type PublicNoteFilter struct {
	Author   string // 对邮箱或昵称做大小写不敏感的子串匹配
	DateFrom string // YYYY-MM-DD，按创建日期闭区间（含端点）过滤
	DateTo   string
}
