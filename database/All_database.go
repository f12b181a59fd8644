package database

import (
	"fmt"
	"log"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

var (
	DB  *gorm.DB
	err error
)

// 默认分类，首次启动时写入
var defaultCategories = []string{"Personal", "Trabajo", "Ideas", "Otros"}

func InitDB(path string) error {
	DB, err = gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return fmt.Errorf("数据库连接失败: %w", err)
	}

	// 自动迁移表结构
	err = DB.AutoMigrate(
		&User{},
		&Category{},
		&Note{},
		&NoteRating{},
		&NoteComment{},
	)
	if err != nil {
		return fmt.Errorf("数据库迁移失败: %w", err)
	}

	if err = seedDefaultCategories(DB); err != nil {
		return fmt.Errorf("初始化默认分类失败: %w", err)
	}

	log.Println("数据库连接成功")
	return nil
}

// seedDefaultCategories 写入默认分类，已存在则跳过
func seedDefaultCategories(db *gorm.DB) error {
	for _, name := range defaultCategories {
		var category Category
		result := db.Where("name = ?", name).First(&category)
		if result.Error == nil {
			continue
		}
		if result.Error != gorm.ErrRecordNotFound {
			return result.Error
		}
		if err := db.Create(&Category{Name: name}).Error; err != nil {
			return err
		}
	}
	return nil
}
