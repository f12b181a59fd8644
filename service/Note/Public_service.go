package Note

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/LJCaballero/Diario/database"
)

type PublicNoteServiceInterface interface {
	ListPublicNotes(filter database.PublicNoteFilter, viewerID *uint) ([]database.PublicNoteResponse, error)
	GetPublicNoteByID(id uint, viewerID *uint) (*database.PublicNoteResponse, error)
}

// GlobalPublicNoteService 全局PublicNoteService实例
var GlobalPublicNoteService PublicNoteServiceInterface

type PublicNoteService struct {
	db *gorm.DB
}

func NewPublicNoteService(db *gorm.DB) (PublicNoteServiceInterface, error) {

	if db == nil {
		return nil, errors.New("数据库连接不能为空")
	}

	service := &PublicNoteService{db}
	GlobalPublicNoteService = service
	return service, nil
}

// publicNoteRow 公开墙联表扫描结构
// likes/dislikes 用关联子查询实时统计
type publicNoteRow struct {
	ID           uint
	Title        string
	Text         string
	ImageURL     string
	IsAnonymous  bool
	CreatedAt    time.Time
	CategoryName string
	UserEmail    string
	UserAka      string
	AkaPublic    bool
	Likes        int64
	Dislikes     int64
}

// publicNoteQuery 公开笔记基础查询
// 走 Table 而不是 Model，软删除条件需要手动补上
func (s *PublicNoteService) publicNoteQuery() *gorm.DB {
	return s.db.Table("notes").
		Select(`notes.id, notes.title, notes.text, notes.image_url, notes.is_anonymous, notes.created_at,
			categories.name AS category_name,
			users.email AS user_email, users.aka AS user_aka, users.aka_public AS aka_public,
			(SELECT COUNT(*) FROM note_ratings WHERE note_ratings.note_id = notes.id AND note_ratings.rating = 1) AS likes,
			(SELECT COUNT(*) FROM note_ratings WHERE note_ratings.note_id = notes.id AND note_ratings.rating = -1) AS dislikes`).
		Joins("LEFT JOIN categories ON categories.id = notes.category_id").
		Joins("LEFT JOIN users ON users.id = notes.user_id").
		Where("notes.deleted_at IS NULL").
		Where("notes.is_public = ?", true)
}

// ListPublicNotes 获取公开墙笔记列表，按创建时间倒序
// author 过滤对邮箱和昵称做大小写不敏感的子串匹配，日期过滤为含端点的闭区间
func (s *PublicNoteService) ListPublicNotes(filter database.PublicNoteFilter, viewerID *uint) ([]database.PublicNoteResponse, error) {
	query := s.publicNoteQuery()

	if filter.Author != "" {
		pattern := "%" + strings.ToLower(filter.Author) + "%"
		query = query.Where("(LOWER(users.email) LIKE ? OR LOWER(users.aka) LIKE ?)", pattern, pattern)
	}
	if filter.DateFrom != "" {
		query = query.Where("date(notes.created_at) >= ?", filter.DateFrom)
	}
	if filter.DateTo != "" {
		query = query.Where("date(notes.created_at) <= ?", filter.DateTo)
	}

	var rows []publicNoteRow
	if err := query.Order("notes.created_at DESC").Scan(&rows).Error; err != nil {
		return nil, err
	}

	// 登录用户附带其对每条笔记的评价
	ratings, err := s.viewerRatings(rows, viewerID)
	if err != nil {
		return nil, err
	}

	responses := make([]database.PublicNoteResponse, 0, len(rows))
	for _, row := range rows {
		responses = append(responses, toPublicNoteResponse(row, ratings[row.ID]))
	}
	return responses, nil
}

// GetPublicNoteByID 获取单条公开笔记，未公开与不存在不作区分
func (s *PublicNoteService) GetPublicNoteByID(id uint, viewerID *uint) (*database.PublicNoteResponse, error) {
	var row publicNoteRow
	result := s.publicNoteQuery().
		Where("notes.id = ?", id).
		Limit(1).
		Scan(&row)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, database.NewNotFoundError("笔记不存在")
	}

	var userRating *int
	if viewerID != nil {
		rating, err := s.userRating(row.ID, *viewerID)
		if err != nil {
			return nil, err
		}
		userRating = rating
	}

	resp := toPublicNoteResponse(row, userRating)
	return &resp, nil
}

// viewerRatings 批量查询登录用户对一组笔记的评价
func (s *PublicNoteService) viewerRatings(rows []publicNoteRow, viewerID *uint) (map[uint]*int, error) {
	ratings := make(map[uint]*int)
	if viewerID == nil || len(rows) == 0 {
		return ratings, nil
	}

	noteIDs := make([]uint, 0, len(rows))
	for _, row := range rows {
		noteIDs = append(noteIDs, row.ID)
	}

	var entries []database.NoteRating
	err := s.db.Where("user_id = ? AND note_id IN ?", *viewerID, noteIDs).
		Find(&entries).Error
	if err != nil {
		return nil, err
	}

	for i := range entries {
		ratings[entries[i].NoteID] = &entries[i].Rating
	}
	return ratings, nil
}

func (s *PublicNoteService) userRating(noteID, userID uint) (*int, error) {
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

func toPublicNoteResponse(row publicNoteRow, userRating *int) database.PublicNoteResponse {
	return database.PublicNoteResponse{
		ID:            row.ID,
		Title:         row.Title,
		Text:          row.Text,
		CategoryName:  row.CategoryName,
		ImageURL:      row.ImageURL,
		IsAnonymous:   row.IsAnonymous,
		DisplayAuthor: ResolveDisplayAuthor(row.IsAnonymous, row.UserAka, row.AkaPublic, row.UserEmail),
		Likes:         row.Likes,
		Dislikes:      row.Dislikes,
		UserRating:    userRating,
		CreatedAt:     row.CreatedAt,
	}
}
