package Note

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/LJCaballero/Diario/database"
)

type RatingServiceInterface interface {
	RateNote(noteID, userID uint, rating int) error
	UnrateNote(noteID, userID uint) error
	GetRatingSummary(noteID uint) (*database.RatingSummary, error)
	GetUserRating(noteID, userID uint) (*int, error)
}

// GlobalRatingService 全局RatingService实例
var GlobalRatingService RatingServiceInterface

type RatingService struct {
	db *gorm.DB
}

func NewRatingService(db *gorm.DB) (RatingServiceInterface, error) {

	if db == nil {
		return nil, errors.New("数据库连接不能为空")
	}

	service := &RatingService{db}
	GlobalRatingService = service
	return service, nil
}

// requirePublicNote 确认笔记存在且公开，否则一律报不存在
func requirePublicNote(db *gorm.DB, noteID uint) error {
	var note database.Note
	err := db.Select("id").
		Where("id = ? AND is_public = ?", noteID, true).
		First(&note).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return database.NewNotFoundError("笔记不存在或未公开")
		}
		return err
	}
	return nil
}

// RateNote 对公开笔记评价（1=点赞, -1=点踩）
// 同一 (note, user) 的重复评价为原子覆盖写入，最终值是最后一次提交的值
func (s *RatingService) RateNote(noteID, userID uint, rating int) error {
	if rating != 1 && rating != -1 {
		return database.NewValidationError("rating 必须为 1（点赞）或 -1（点踩）")
	}

	if err := requirePublicNote(s.db, noteID); err != nil {
		return err
	}

	entry := database.NoteRating{
		NoteID: noteID,
		UserID: userID,
		Rating: rating,
	}
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "note_id"}, {Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"rating", "updated_at"}),
	}).Create(&entry).Error
}

// UnrateNote 取消评价，幂等：不存在时也不报错
func (s *RatingService) UnrateNote(noteID, userID uint) error {
	return s.db.Where("note_id = ? AND user_id = ?", noteID, userID).
		Delete(&database.NoteRating{}).Error
}

// GetRatingSummary 实时统计点赞/点踩数量，不走缓存
func (s *RatingService) GetRatingSummary(noteID uint) (*database.RatingSummary, error) {
	var summary database.RatingSummary
	err := s.db.Model(&database.NoteRating{}).
		Where("note_id = ? AND rating = ?", noteID, 1).
		Count(&summary.Likes).Error
	if err != nil {
		return nil, err
	}
	err = s.db.Model(&database.NoteRating{}).
		Where("note_id = ? AND rating = ?", noteID, -1).
		Count(&summary.Dislikes).Error
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

// GetUserRating 查询用户对笔记的当前评价，未评价返回 nil
func (s *RatingService) GetUserRating(noteID, userID uint) (*int, error) {
	var entry database.NoteRating
	err := s.db.Where("note_id = ? AND user_id = ?", noteID, userID).
		First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &entry.Rating, nil
}
