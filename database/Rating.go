package database

import "time"

// NoteRating 笔记评价记录（点赞/点踩）
// 唯一键: note_id + user_id，同一用户对同一笔记重复评价走覆盖写入
// 不使用软删除：软删除行会占住唯一索引，导致重新评价时冲突
type NoteRating struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	NoteID    uint      `gorm:"not null;uniqueIndex:uk_note_user,priority:1" json:"note_id"`
	UserID    uint      `gorm:"not null;uniqueIndex:uk_note_user,priority:2" json:"user_id"`
	Rating    int       `gorm:"not null" json:"rating"` // 1=点赞, -1=点踩
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RateRequest 评价请求结构体
type RateRequest struct {
	Rating int `json:"rating" binding:"required,oneof=1 -1"`
}

// RatingSummary 笔记评价聚合结果，读取时实时统计，不做缓存
type RatingSummary struct {
	Likes    int64 `json:"likes"`
	Dislikes int64 `json:"dislikes"`
}
