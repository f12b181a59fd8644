package database

import "time"

// NoteComment 笔记评论，按创建时间升序的追加日志
// 不使用软删除：作者删除即永久删除
type NoteComment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	NoteID    uint      `gorm:"index;not null" json:"note_id"`
	UserID    uint      `gorm:"not null" json:"user_id"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// AddCommentRequest 发表评论请求结构体
type AddCommentRequest struct {
	Text string `json:"text" binding:"required,min=1,max=1000"`
}

// CommentResponse 评论响应结构体，display_author 由作者展示解析器计算
type CommentResponse struct {
	ID            uint      `json:"id"`
	Text          string    `json:"text"`
	UserID        uint      `json:"user_id"`
	DisplayAuthor string    `json:"display_author"`
	CreatedAt     time.Time `json:"created_at"`
}
