package database

import "time"

// Category 笔记分类，独立实体，笔记通过 category_id 引用
// 不使用软删除：分类名唯一索引与软删除记录会冲突
type Category struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"uniqueIndex;not null;size:50" json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// CategoryRequest 创建/更新分类请求结构体
type CategoryRequest struct {
	Name string `json:"name" binding:"required,max=50"`
}
