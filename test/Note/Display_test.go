package Note

import (
	"testing"

	"github.com/LJCaballero/Diario/database"
	"github.com/LJCaballero/Diario/service/Note"
)

// TestResolveDisplayAuthor 测试作者展示解析器的优先级
func TestResolveDisplayAuthor(t *testing.T) {
	tests := []struct {
		name        string
		isAnonymous bool
		aka         string
		akaPublic   bool
		email       string
		want        string
	}{
		{
			name:        "匿名优先于一切",
			isAnonymous: true,
			aka:         "Nova",
			akaPublic:   true,
			email:       "a@example.com",
			want:        "Anonymous",
		},
		{
			name:      "昵称公开时显示昵称",
			aka:       "Nova",
			akaPublic: true,
			email:     "a@example.com",
			want:      "Nova",
		},
		{
			name:      "昵称不公开时回落到邮箱",
			aka:       "Nova",
			akaPublic: false,
			email:     "a@example.com",
			want:      "a@example.com",
		},
		{
			name:      "昵称为空时回落到邮箱",
			aka:       "",
			akaPublic: true,
			email:     "a@example.com",
			want:      "a@example.com",
		},
		{
			name:        "匿名时不受昵称设置影响",
			isAnonymous: true,
			aka:         "",
			akaPublic:   false,
			email:       "a@example.com",
			want:        "Anonymous",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Note.ResolveDisplayAuthor(tt.isAnonymous, tt.aka, tt.akaPublic, tt.email)
			if got != tt.want {
				t.Errorf("ResolveDisplayAuthor() = %v, 期望 %v", got, tt.want)
			}
		})
	}
}

// TestDisplayAuthorConsistency 测试列表、详情、评论三个路径的作者展示一致
func TestDisplayAuthorConsistency(t *testing.T) {
	db := setupNoteTestDB(t)

	publicService, err := Note.NewPublicNoteService(db)
	if err != nil {
		t.Fatalf("创建公开墙服务失败: %v", err)
	}
	commentService, err := Note.NewCommentService(db)
	if err != nil {
		t.Fatalf("创建评论服务失败: %v", err)
	}

	author := createTestUser(t, db, "author@example.com", "Nova", true)
	category := createTestCategory(t, db, "Personal")

	note := database.Note{
		UserID:     author.ID,
		Title:      "公开笔记",
		Text:       "内容",
		CategoryID: category.ID,
		IsPublic:   true,
	}
	if err := db.Create(&note).Error; err != nil {
		t.Fatalf("创建测试笔记失败: %v", err)
	}

	if _, err := commentService.AddComment(note.ID, author.ID, "自己的评论"); err != nil {
		t.Fatalf("发表评论失败: %v", err)
	}

	// 同一份 (aka, aka_public, email, anonymous) 在三个路径必须解析出同一字符串
	want := Note.ResolveDisplayAuthor(false, author.Aka, author.AkaPublic, author.Email)

	list, err := publicService.ListPublicNotes(database.PublicNoteFilter{}, nil)
	if err != nil {
		t.Fatalf("查询公开列表失败: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("公开列表数量不匹配: 得到 %v", len(list))
	}
	if list[0].DisplayAuthor != want {
		t.Errorf("列表路径展示不一致: 得到 %v, 期望 %v", list[0].DisplayAuthor, want)
	}

	detail, err := publicService.GetPublicNoteByID(note.ID, nil)
	if err != nil {
		t.Fatalf("查询公开详情失败: %v", err)
	}
	if detail.DisplayAuthor != want {
		t.Errorf("详情路径展示不一致: 得到 %v, 期望 %v", detail.DisplayAuthor, want)
	}

	comments, err := commentService.ListComments(note.ID)
	if err != nil {
		t.Fatalf("查询评论列表失败: %v", err)
	}
	if len(comments) != 1 {
		t.Fatalf("评论数量不匹配: 得到 %v", len(comments))
	}
	if comments[0].DisplayAuthor != want {
		t.Errorf("评论路径展示不一致: 得到 %v, 期望 %v", comments[0].DisplayAuthor, want)
	}
}
