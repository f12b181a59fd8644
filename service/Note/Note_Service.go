package Note

import (
	"errors"

	"gorm.io/gorm"

	"github.com/LJCaballero/Diario/database"
)

type NoteServiceInterface interface {
	CreateNote(userID uint, req database.CreateNoteRequest) (*database.Note, error)
	UpdateNote(userID uint, id uint, req database.UpdateNoteRequest) error
	DeleteNote(userID uint, id uint) error
	GetNoteByID(userID uint, id uint) (*database.NoteResponse, error)
	GetAllNotes(userID uint) ([]database.NoteResponse, error)
}

// GlobalNoteService 全局NoteService实例
var GlobalNoteService NoteServiceInterface

type NoteService struct {
	db *gorm.DB
}

func NewNoteService(db *gorm.DB) (NoteServiceInterface, error) {

	if db == nil {
		return nil, errors.New("数据库连接不能为空")
	}

	service := &NoteService{db}
	GlobalNoteService = service
	return service, nil
}

// noteWithCategory 私有读取路径的联表扫描结构
type noteWithCategory struct {
	database.Note
	CategoryName string
}

// validateNoteFields 校验标题/正文长度并确认分类存在
func (s *NoteService) validateNoteFields(title, text string, categoryID uint) error {
	if title == "" || text == "" || categoryID == 0 {
		return database.NewValidationError("缺少必填字段")
	}
	if len([]rune(title)) > 100 {
		return database.NewValidationError("标题过长（最多100个字符）")
	}
	if len([]rune(text)) > 5000 {
		return database.NewValidationError("正文过长（最多5000个字符）")
	}

	var category database.Category
	if err := s.db.First(&category, categoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return database.NewNotFoundError("分类不存在")
		}
		return err
	}
	return nil
}

// CreateNote 创建笔记
// 私有笔记的匿名标记会被强制清除，匿名只对公开展示有意义
func (s *NoteService) CreateNote(userID uint, req database.CreateNoteRequest) (*database.Note, error) {
	if err := s.validateNoteFields(req.Title, req.Text, req.CategoryID); err != nil {
		return nil, err
	}

	isAnonymous := req.IsAnonymous
	if !req.IsPublic {
		isAnonymous = false
	}

	note := &database.Note{
		UserID:      userID,
		Title:       req.Title,
		Text:        req.Text,
		CategoryID:  req.CategoryID,
		IsPublic:    req.IsPublic,
		IsAnonymous: isAnonymous,
	}
	if err := s.db.Create(note).Error; err != nil {
		return nil, err
	}
	return note, nil
}

// UpdateNote 更新笔记，仅所有者可操作
func (s *NoteService) UpdateNote(userID uint, id uint, req database.UpdateNoteRequest) error {
	if err := s.validateNoteFields(req.Title, req.Text, req.CategoryID); err != nil {
		return err
	}

	isAnonymous := req.IsAnonymous
	if !req.IsPublic {
		isAnonymous = false
	}

	result := s.db.Model(&database.Note{}).
		Where("user_id = ? AND id = ?", userID, id).
		Updates(map[string]interface{}{
			"title":        req.Title,
			"text":         req.Text,
			"category_id":  req.CategoryID,
			"is_public":    req.IsPublic,
			"is_anonymous": isAnonymous,
		})

	if result.Error != nil {
		return result.Error
	}

	// 影响行数为 0 说明笔记不存在或不属于当前用户
	if result.RowsAffected == 0 {
		return database.NewNotFoundError("笔记不存在")
	}

	return nil
}

// DeleteNote 删除笔记，并在同一事务内级联删除其全部评价和评论
func (s *NoteService) DeleteNote(userID uint, id uint) error {
	var note database.Note
	err := s.db.Where("user_id = ? AND id = ?", userID, id).First(&note).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return database.NewNotFoundError("笔记不存在")
		}
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("note_id = ?", note.ID).
			Delete(&database.NoteRating{}).Error; err != nil {
			return err
		}
		if err := tx.Where("note_id = ?", note.ID).
			Delete(&database.NoteComment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&note).Error
	})
}

// GetNoteByID 根据ID获取笔记，私有读取仅限所有者
func (s *NoteService) GetNoteByID(userID uint, id uint) (*database.NoteResponse, error) {
	var row noteWithCategory
	result := s.db.Model(&database.Note{}).
		Select("notes.*, categories.name AS category_name").
		Joins("LEFT JOIN categories ON categories.id = notes.category_id").
		Where("notes.user_id = ? AND notes.id = ?", userID, id).
		Limit(1).
		Find(&row)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, database.NewNotFoundError("笔记不存在")
	}

	resp := toNoteResponse(row)
	return &resp, nil
}

// GetAllNotes 获取当前用户的所有笔记，按创建时间倒序
func (s *NoteService) GetAllNotes(userID uint) ([]database.NoteResponse, error) {
	var rows []noteWithCategory
	err := s.db.Model(&database.Note{}).
		Select("notes.*, categories.name AS category_name").
		Joins("LEFT JOIN categories ON categories.id = notes.category_id").
		Where("notes.user_id = ?", userID).
		Order("notes.created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	responses := make([]database.NoteResponse, 0, len(rows))
	for _, row := range rows {
		responses = append(responses, toNoteResponse(row))
	}
	return responses, nil
}

func toNoteResponse(row noteWithCategory) database.NoteResponse {
	return database.NoteResponse{
		ID:           row.ID,
		Title:        row.Title,
		Text:         row.Text,
		CategoryID:   row.CategoryID,
		CategoryName: row.CategoryName,
		IsPublic:     row.IsPublic,
		IsAnonymous:  row.IsAnonymous,
		ImageURL:     row.ImageURL,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}
}
