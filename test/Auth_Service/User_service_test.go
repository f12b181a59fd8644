package Auth_Service

import (
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/LJCaballero/Diario/Config"
	"github.com/LJCaballero/Diario/database"
	"github.com/LJCaballero/Diario/service/Auth"
)

// setupTokenConfig 注入令牌签名所需的全局配置
func setupTokenConfig(t *testing.T) {
	t.Helper()
	Config.Cfg.SecretKey = "test-secret"
	Config.Cfg.TokenExpiry = 60
}

// setupTestDB 创建测试数据库（使用 SQLite 内存数据库）
func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("无法创建测试数据库: %v", err)
	}

	// 自动迁移所有表
	err = db.AutoMigrate(&database.User{}, &database.Category{}, &database.Note{})
	if err != nil {
		t.Fatalf("数据库迁移失败: %v", err)
	}

	return db
}

// setupUserService 创建用户服务实例
func setupUserService(t *testing.T) (Auth.UserService, *gorm.DB) {
	db := setupTestDB(t)
	service, err := Auth.NewUserService(db)
	if err != nil {
		t.Fatalf("创建用户服务失败: %v", err)
	}
	return service, db
}

// TestCreateUser 测试创建用户
func TestCreateUser(t *testing.T) {
	service, db := setupUserService(t)

	akaPublic := false

	tests := []struct {
		name        string
		request     database.RegisterRequest
		wantErr     bool
		errContains string
	}{
		{
			name: "成功创建用户",
			request: database.RegisterRequest{
				Email:    "test@example.com",
				Password: "password123",
				Aka:      "Nova",
			},
			wantErr: false,
		},
		{
			name: "邮箱已存在",
			request: database.RegisterRequest{
				Email:    "test@example.com", // 与上面重复
				Password: "password456",
			},
			wantErr:     true,
			errContains: "该邮箱已注册",
		},
		{
			name: "显式关闭昵称可见性",
			request: database.RegisterRequest{
				Email:     "test2@example.com",
				Password:  "password123",
				Aka:       "Shadow",
				AkaPublic: &akaPublic,
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := service.CreateUser(tt.request)

			if tt.wantErr {
				if err == nil {
					t.Errorf("CreateUser() 期望返回错误，但没有")
					return
				}
				if tt.errContains != "" && !strings.Contains(err.Error(), tt.errContains) {
					t.Errorf("错误消息不包含期望的字符串: 得到 %v, 期望包含 %v", err.Error(), tt.errContains)
				}
				return
			}

			if err != nil {
				t.Errorf("CreateUser() 意外返回错误: %v", err)
				return
			}

			if user == nil {
				t.Fatal("返回的用户为 nil")
			}
			if user.Email != tt.request.Email {
				t.Errorf("邮箱不匹配: 得到 %v, 期望 %v", user.Email, tt.request.Email)
			}
			if user.PasswordHash == tt.request.Password {
				t.Error("密码没有被哈希化")
			}
			if !Auth.VerifyPassword(tt.request.Password, user.PasswordHash) {
				t.Error("密码哈希验证失败")
			}
			if tt.request.AkaPublic == nil && !user.AkaPublic {
				t.Error("aka_public 缺省时应为 true")
			}
			if tt.request.AkaPublic != nil && user.AkaPublic != *tt.request.AkaPublic {
				t.Errorf("aka_public 不匹配: 得到 %v, 期望 %v", user.AkaPublic, *tt.request.AkaPublic)
			}

			// 落库的值也要一致，显式的 false 不能被默认值覆盖
			var stored database.User
			if err := db.First(&stored, user.ID).Error; err != nil {
				t.Fatalf("读取落库用户失败: %v", err)
			}
			if stored.AkaPublic != user.AkaPublic {
				t.Errorf("落库的 aka_public 不匹配: 得到 %v, 期望 %v", stored.AkaPublic, user.AkaPublic)
			}
		})
	}
}

// TestUpdateProfile 测试更新昵称资料
func TestUpdateProfile(t *testing.T) {
	service, _ := setupUserService(t)

	user, err := service.CreateUser(database.RegisterRequest{
		Email:    "profile@example.com",
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("创建测试用户失败: %v", err)
	}

	tests := []struct {
		name        string
		userID      uint
		request     database.UpdateProfileRequest
		wantErr     bool
		errContains string
	}{
		{
			name:    "成功更新昵称",
			userID:  user.ID,
			request: database.UpdateProfileRequest{Aka: "Nova", AkaPublic: true},
			wantErr: false,
		},
		{
			name:    "清空昵称",
			userID:  user.ID,
			request: database.UpdateProfileRequest{Aka: "", AkaPublic: false},
			wantErr: false,
		},
		{
			// 按字符数而不是字节数计长
			name:    "40个多字节字符的昵称",
			userID:  user.ID,
			request: database.UpdateProfileRequest{Aka: strings.Repeat("名", 40), AkaPublic: true},
			wantErr: false,
		},
		{
			name:        "昵称过长",
			userID:      user.ID,
			request:     database.UpdateProfileRequest{Aka: strings.Repeat("名", 41), AkaPublic: true},
			wantErr:     true,
			errContains: "昵称过长",
		},
		{
			name:        "用户不存在",
			userID:      99999,
			request:     database.UpdateProfileRequest{Aka: "Ghost", AkaPublic: true},
			wantErr:     true,
			errContains: "用户不存在",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := service.UpdateProfile(tt.userID, tt.request)

			if tt.wantErr {
				if err == nil {
					t.Errorf("UpdateProfile() 期望返回错误，但没有")
					return
				}
				if tt.errContains != "" && !strings.Contains(err.Error(), tt.errContains) {
					t.Errorf("错误消息不匹配: 得到 %v", err.Error())
				}
				return
			}

			if err != nil {
				t.Errorf("UpdateProfile() 意外返回错误: %v", err)
				return
			}

			updated, err := service.GetUserByID(tt.userID)
			if err != nil {
				t.Fatalf("读取更新后的用户失败: %v", err)
			}
			if updated.Aka != tt.request.Aka {
				t.Errorf("昵称不匹配: 得到 %v, 期望 %v", updated.Aka, tt.request.Aka)
			}
			if updated.AkaPublic != tt.request.AkaPublic {
				t.Errorf("aka_public 不匹配: 得到 %v, 期望 %v", updated.AkaPublic, tt.request.AkaPublic)
			}
		})
	}
}

// TestGetUserStats 测试用户笔记统计
func TestGetUserStats(t *testing.T) {
	service, db := setupUserService(t)

	user, err := service.CreateUser(database.RegisterRequest{
		Email:    "stats@example.com",
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("创建测试用户失败: %v", err)
	}

	category := database.Category{Name: "Personal"}
	if err := db.Create(&category).Error; err != nil {
		t.Fatalf("创建测试分类失败: %v", err)
	}

	// 2条公开 + 1条私有
	notes := []database.Note{
		{UserID: user.ID, Title: "公开笔记1", Text: "内容", CategoryID: category.ID, IsPublic: true},
		{UserID: user.ID, Title: "公开笔记2", Text: "内容", CategoryID: category.ID, IsPublic: true},
		{UserID: user.ID, Title: "私有笔记", Text: "内容", CategoryID: category.ID, IsPublic: false},
	}
	for i := range notes {
		if err := db.Create(&notes[i]).Error; err != nil {
			t.Fatalf("创建测试笔记失败: %v", err)
		}
	}

	stats, err := service.GetUserStats(user.ID)
	if err != nil {
		t.Fatalf("GetUserStats() 意外返回错误: %v", err)
	}

	if stats.TotalNotes != 3 {
		t.Errorf("笔记总数不匹配: 得到 %v, 期望 3", stats.TotalNotes)
	}
	if stats.PublicNotes != 2 {
		t.Errorf("公开笔记数不匹配: 得到 %v, 期望 2", stats.PublicNotes)
	}
	if stats.PrivateNotes != 1 {
		t.Errorf("私有笔记数不匹配: 得到 %v, 期望 1", stats.PrivateNotes)
	}
	if !stats.RegisteredAt.Equal(user.CreatedAt) {
		t.Errorf("注册时间不匹配: 得到 %v, 期望 %v", stats.RegisteredAt, user.CreatedAt)
	}

	// 不存在的用户
	if _, err := service.GetUserStats(99999); err == nil {
		t.Error("不存在的用户应返回错误")
	}
}

// TestTokenRoundTrip 测试令牌生成与验证
func TestTokenRoundTrip(t *testing.T) {
	// GenerateToken 依赖全局配置的密钥
	setupTokenConfig(t)

	token, err := Auth.GenerateToken(42, "token@example.com")
	if err != nil {
		t.Fatalf("生成令牌失败: %v", err)
	}

	claims, err := Auth.ValidateToken(token)
	if err != nil {
		t.Fatalf("验证令牌失败: %v", err)
	}

	if claims.UserID != 42 {
		t.Errorf("用户ID不匹配: 得到 %v, 期望 42", claims.UserID)
	}
	if claims.Email != "token@example.com" {
		t.Errorf("邮箱不匹配: 得到 %v", claims.Email)
	}

	// 被篡改的令牌应验证失败
	if _, err := Auth.ValidateToken(token + "x"); err == nil {
		t.Error("被篡改的令牌应验证失败")
	}
}
