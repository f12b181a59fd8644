package Note

import (
	"errors"

	"gorm.io/gorm"

	"github.com/LJCaballero/Diario/database"
)

type CommentServiceInterface interface {
	AddComment(noteID, userID uint, text string) (*database.NoteComment, error)
	ListComments(noteID uint) ([]database.CommentResponse, error)
	DeleteComment(noteID, commentID, requesterID uint) error
}

// GlobalCommentService 全局CommentService实例
var GlobalCommentService CommentServiceInterface

type CommentService struct {
	db *gorm.DB
}

func NewCommentService(db *gorm.DB) (CommentServiceInterface, error) {

	if db == nil {
		return nil, errors.New("数据库连接不能为空")
	}

	service := &CommentService{db}
	GlobalCommentService = service
	return service, nil
}

// AddComment 对公开笔记发表评论，时间戳由服务端写入
func (s *CommentService) AddComment(noteID, userID uint, text string) (*database.NoteComment, error) {
	if n := len([]rune(text)); n < 1 || n > 1000 {
		return nil, database.NewValidationError("评论长度必须在1到1000个字符之间")
	}

	if err := requirePublicNote(s.db, noteID); err != nil {
		return nil, err
	}

	comment := &database.NoteComment{
		NoteID: noteID,
		UserID: userID,
		Text:   text,
	}
	if err := s.db.Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

// ListComments 按创建时间升序列出笔记的全部评论
// 评论本身没有匿名标记，作者展示只取决于昵称可见性
func (s *CommentService) ListComments(noteID uint) ([]database.CommentResponse, error) {
	var rows []struct {
		database.NoteComment
		UserEmail string
		UserAka   string
		AkaPublic bool
	}
	err := s.db.Model(&database.NoteComment{}).
		Select(`note_comments.*,
			users.email AS user_email, users.aka AS user_aka, users.aka_public AS aka_public`).
		Joins("LEFT JOIN users ON users.id = note_comments.user_id").
		Where("note_comments.note_id = ?", noteID).
		Order("note_comments.created_at ASC, note_comments.id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	comments := make([]database.CommentResponse, 0, len(rows))
	for _, row := range rows {
		comments = append(comments, database.CommentResponse{
			ID:            row.ID,
			Text:          row.Text,
			UserID:        row.UserID,
			DisplayAuthor: ResolveDisplayAuthor(false, row.UserAka, row.AkaPublic, row.UserEmail),
			CreatedAt:     row.CreatedAt,
		})
	}
	return comments, nil
}

// DeleteComment 删除评论，仅评论作者本人可操作
func (s *CommentService) DeleteComment(noteID, commentID, requesterID uint) error {
	var comment database.NoteComment
	err := s.db.Where("id = ? AND note_id = ?", commentID, noteID).
		First(&comment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return database.NewNotFoundError("评论不存在")
		}
		return err
	}

	if comment.UserID != requesterID {
		return database.NewForbiddenError("只能删除自己的评论")
	}

	return s.db.Delete(&comment).Error
}
