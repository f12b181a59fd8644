package main

import (
	"log"

	"github.com/LJCaballero/Diario/Config"
	"github.com/LJCaballero/Diario/Route"
	"github.com/LJCaballero/Diario/database"
	"github.com/LJCaballero/Diario/service/Auth"
	"github.com/LJCaballero/Diario/service/Category"
	"github.com/LJCaballero/Diario/service/Note"
)

func main() {

	// 初始化配置
	if err := Config.InitConfig(); err != nil {
		log.Fatalf("配置初始化失败: %v", err)
	}

	// 初始化数据库
	if err := database.InitDB(Config.Cfg.DatabasePath); err != nil {
		log.Fatalf("数据库初始化失败: %v", err)
	}

	// 初始化Redis（失败进入降级模式，不阻塞启动）
	if err := database.InitRedis(Config.Cfg.RedisAddr, Config.Cfg.RedisPass, Config.Cfg.RedisDB); err != nil {
		log.Fatalf("Redis初始化失败: %v", err)
	}

	// 初始化各服务（数据库已初始化后）
	if _, err := Auth.NewUserService(database.DB); err != nil {
		log.Fatalf("初始化用户服务失败: %v", err)
	}
	if _, err := Category.NewCategoryService(database.DB); err != nil {
		log.Fatalf("初始化分类服务失败: %v", err)
	}
	if _, err := Note.NewNoteService(database.DB); err != nil {
		log.Fatalf("初始化笔记服务失败: %v", err)
	}
	if _, err := Note.NewPublicNoteService(database.DB); err != nil {
		log.Fatalf("初始化公开墙服务失败: %v", err)
	}
	if _, err := Note.NewRatingService(database.DB); err != nil {
		log.Fatalf("初始化评价服务失败: %v", err)
	}
	if _, err := Note.NewCommentService(database.DB); err != nil {
		log.Fatalf("初始化评论服务失败: %v", err)
	}
	if _, err := Note.NewImageService(database.DB, Config.Cfg.UploadDir); err != nil {
		log.Fatalf("初始化图片服务失败: %v", err)
	}

	// 启动路由
	log.Println("服务器启动中...")
	Route.AuthRoute()
}
