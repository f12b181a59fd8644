package Auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/LJCaballero/Diario/database"
)

// GlobalUserService 全局 UserService 实例
var GlobalUserService UserService

// UserService 用户服务接口
type UserService interface {
	CreateUser(req database.RegisterRequest) (*database.User, error)
	GetUserByEmail(email string) (*database.User, error)
	GetUserByID(id uint) (*database.User, error)

	// UpdateProfile 更新昵称及昵称可见性（用户唯一可变更的资料项）
	UpdateProfile(userID uint, req database.UpdateProfileRequest) error

	// GetUserStats 用户笔记统计（总数/公开/私有/注册时间）
	GetUserStats(userID uint) (*database.ProfileStatsResponse, error)
}

// 用户服务实现
type userService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) (UserService, error) {

	if db == nil {
		return nil, errors.New("数据库连接不能为空")
	}

	userService := &userService{db}
	GlobalUserService = userService
	return userService, nil
}

// CreateUser 创建用户
func (s *userService) CreateUser(req database.RegisterRequest) (*database.User, error) {
	var existingUser database.User
	err := s.db.Where("email = ?", req.Email).First(&existingUser).Error
	if err == nil {
		return nil, database.NewValidationError("该邮箱已注册")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashedPassword, err := HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	// aka_public 缺省为 true
	akaPublic := true
	if req.AkaPublic != nil {
		akaPublic = *req.AkaPublic
	}

	user := &database.User{
		Email:        req.Email,
		PasswordHash: hashedPassword,
		Aka:          req.Aka,
		AkaPublic:    akaPublic,
	}
	err = s.db.Create(user).Error
	if err != nil {
		return nil, err
	}

	return user, nil
}

// GetUserByEmail 根据邮箱获取用户
func (s *userService) GetUserByEmail(email string) (*database.User, error) {
	var user database.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, database.NewNotFoundError("用户不存在")
		}
		return nil, err
	}
	return &user, nil
}

// GetUserByID 根据ID获取用户
func (s *userService) GetUserByID(id uint) (*database.User, error) {
	var user database.User
	err := s.db.First(&user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, database.NewNotFoundError("用户不存在")
		}
		return nil, err
	}
	return &user, nil
}

// UpdateProfile 更新用户昵称与昵称可见性
func (s *userService) UpdateProfile(userID uint, req database.UpdateProfileRequest) error {
	if len([]rune(req.Aka)) > 40 {
		return database.NewValidationError("昵称过长（最多40个字符）")
	}

	result := s.db.Model(&database.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"aka":        req.Aka,
			"aka_public": req.AkaPublic,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return database.NewNotFoundError("用户不存在")
	}
	return nil
}

// GetUserStats 统计用户的笔记数量和注册时间
func (s *userService) GetUserStats(userID uint) (*database.ProfileStatsResponse, error) {
	user, err := s.GetUserByID(userID)
	if err != nil {
		return nil, err
	}

	stats := &database.ProfileStatsResponse{
		RegisteredAt: user.CreatedAt,
	}

	if err := s.db.Model(&database.Note{}).
		Where("user_id = ?", userID).
		Count(&stats.TotalNotes).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&database.Note{}).
		Where("user_id = ? AND is_public = ?", userID, true).
		Count(&stats.PublicNotes).Error; err != nil {
		return nil, err
	}
	stats.PrivateNotes = stats.TotalNotes - stats.PublicNotes

	return stats, nil
}

// HashPassword 将密码哈希化
func HashPassword(password string) (string, error) {
	if len(password) > 72 {
		password = password[:72]
	}
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// VerifyPassword 验证哈希密码
func VerifyPassword(password, hash string) bool {
	if len(password) > 72 {
		password = password[:72]
	}
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
