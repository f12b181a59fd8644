package Note

import (
	"errors"
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/LJCaballero/Diario/database"
)

// 图片上传限制：2MB，仅常见图片格式
const maxImageSize = 2 * 1024 * 1024

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

type ImageServiceInterface interface {
	ValidateImage(fileHeader *multipart.FileHeader) error
	BuildImageName(originalName string) string
	AttachImage(noteID, userID uint, imageURL string) error
	DetachImage(noteID, userID uint) error
}

// GlobalImageService 全局ImageService实例
var GlobalImageService ImageServiceInterface

type ImageService struct {
	db        *gorm.DB
	uploadDir string
}

func NewImageService(db *gorm.DB, uploadDir string) (ImageServiceInterface, error) {

	if db == nil {
		return nil, errors.New("数据库连接不能为空")
	}

	service := &ImageService{db: db, uploadDir: uploadDir}
	GlobalImageService = service
	return service, nil
}

// ValidateImage 校验上传图片的大小和类型
func (s *ImageService) ValidateImage(fileHeader *multipart.FileHeader) error {
	if fileHeader.Size > maxImageSize {
		return database.NewValidationError("图片过大（最大2MB）")
	}
	contentType := fileHeader.Header.Get("Content-Type")
	if !allowedImageTypes[contentType] {
		return database.NewValidationError("只允许上传图片（jpg, png, gif, webp）")
	}
	return nil
}

// BuildImageName 生成存储文件名，保留原始扩展名
// UUID命名，并发上传不会撞名
func (s *ImageService) BuildImageName(originalName string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	return fmt.Sprintf("%s%s", uuid.NewString(), ext)
}

// AttachImage 把图片引用写到笔记上，覆盖旧引用
func (s *ImageService) AttachImage(noteID, userID uint, imageURL string) error {
	result := s.db.Model(&database.Note{}).
		Where("id = ? AND user_id = ?", noteID, userID).
		Update("image_url", imageURL)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return database.NewNotFoundError("笔记不存在")
	}
	return nil
}

// DetachImage 清除笔记的图片引用并尽力删除物理文件
// 物理删除失败不回滚也不报错，引用已清除即视为成功
func (s *ImageService) DetachImage(noteID, userID uint) error {
	var note database.Note
	err := s.db.Where("id = ? AND user_id = ?", noteID, userID).
		First(&note).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return database.NewNotFoundError("图片不存在")
		}
		return err
	}
	if note.ImageURL == "" {
		return database.NewNotFoundError("图片不存在")
	}

	imageURL := note.ImageURL
	if err := s.db.Model(&note).Update("image_url", "").Error; err != nil {
		return err
	}

	// 尽力而为地删除物理文件
	filename := filepath.Base(imageURL)
	_ = os.Remove(filepath.Join(s.uploadDir, filename))

	return nil
}
