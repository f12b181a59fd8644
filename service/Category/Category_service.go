package Category

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/LJCaballero/Diario/database"
)

// 分类列表缓存键与过期时间
const categoryListCacheKey = "cache:categories"
const categoryListCacheTTL = 10 * time.Minute

type CategoryServiceInterface interface {
	GetAllCategories() ([]database.Category, error)
	CreateCategory(name string) (*database.Category, error)
	UpdateCategory(id uint, name string) error
	DeleteCategory(id uint) error
}

// GlobalCategoryService 全局CategoryService实例
var GlobalCategoryService CategoryServiceInterface

type CategoryService struct {
	db *gorm.DB
}

func NewCategoryService(db *gorm.DB) (CategoryServiceInterface, error) {

	if db == nil {
		return nil, errors.New("数据库连接不能为空")
	}

	service := &CategoryService{db}
	GlobalCategoryService = service
	return service, nil
}

// GetAllCategories 获取所有分类，优先读Redis缓存，降级模式下直接查库
func (s *CategoryService) GetAllCategories() ([]database.Category, error) {
	if rdb := database.GetRedis(); rdb != nil {
		ctx := context.Background()
		cached, err := rdb.Get(ctx, categoryListCacheKey).Result()
		if err == nil {
			var categories []database.Category
			if jsonErr := json.Unmarshal([]byte(cached), &categories); jsonErr == nil {
				return categories, nil
			}
		}
	}

	var categories []database.Category
	if err := s.db.Order("id ASC").Find(&categories).Error; err != nil {
		return nil, err
	}

	s.cacheCategories(categories)
	return categories, nil
}

// cacheCategories 写入分类列表缓存，失败仅记录日志
func (s *CategoryService) cacheCategories(categories []database.Category) {
	rdb := database.GetRedis()
	if rdb == nil {
		return
	}
	data, err := json.Marshal(categories)
	if err != nil {
		return
	}
	ctx := context.Background()
	if err := rdb.Set(ctx, categoryListCacheKey, data, categoryListCacheTTL).Err(); err != nil {
		log.Printf("写入分类缓存失败: %v", err)
	}
}

// invalidateCache 分类变更后清除缓存
func (s *CategoryService) invalidateCache() {
	rdb := database.GetRedis()
	if rdb == nil {
		return
	}
	ctx := context.Background()
	if err := rdb.Del(ctx, categoryListCacheKey).Err(); err != nil {
		log.Printf("清除分类缓存失败: %v", err)
	}
}

// CreateCategory 创建分类
func (s *CategoryService) CreateCategory(name string) (*database.Category, error) {
	if name == "" {
		return nil, database.NewValidationError("分类名不能为空")
	}
	if len([]rune(name)) > 50 {
		return nil, database.NewValidationError("分类名过长（最多50个字符）")
	}

	var existing database.Category
	err := s.db.Where("name = ?", name).First(&existing).Error
	if err == nil {
		return nil, database.NewValidationError("分类已存在")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	category := &database.Category{Name: name}
	if err := s.db.Create(category).Error; err != nil {
		return nil, err
	}

	s.invalidateCache()
	return category, nil
}

// UpdateCategory 更新分类名
func (s *CategoryService) UpdateCategory(id uint, name string) error {
	if name == "" {
		return database.NewValidationError("分类名不能为空")
	}
	if len([]rune(name)) > 50 {
		return database.NewValidationError("分类名过长（最多50个字符）")
	}

	result := s.db.Model(&database.Category{}).Where("id = ?", id).Update("name", name)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return database.NewNotFoundError("分类不存在")
	}

	s.invalidateCache()
	return nil
}

// DeleteCategory 删除分类
// 仍有笔记引用该分类时拒绝删除，避免产生悬空的 category_id
func (s *CategoryService) DeleteCategory(id uint) error {
	var category database.Category
	if err := s.db.First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return database.NewNotFoundError("分类不存在")
		}
		return err
	}

	var count int64
	if err := s.db.Model(&database.Note{}).
		Where("category_id = ?", id).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return database.NewValidationError("该分类下仍有笔记，无法删除")
	}

	if err := s.db.Delete(&database.Category{}, id).Error; err != nil {
		return err
	}

	s.invalidateCache()
	return nil
}
