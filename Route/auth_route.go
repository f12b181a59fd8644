package Route

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/LJCaballero/Diario/Config"
	RouteAuth "github.com/LJCaballero/Diario/Route/Auth"
	RouteCategory "github.com/LJCaballero/Diario/Route/Category"
	RouteNote "github.com/LJCaballero/Diario/Route/Note"
	RoutePublic "github.com/LJCaballero/Diario/Route/Public"
)

func AuthRoute() {
	r := gin.Default()

	// 配置CORS
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:8080", "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           120 * time.Hour,
		AllowOriginFunc: func(origin string) bool {
			// 在生产环境中可以动态验证来源
			return true
		},
	}))

	// 上传图片的静态文件服务
	r.Static("/uploads", "./"+Config.Cfg.UploadDir)

	// API 路由
	api := r.Group("/api")

	// 公开路由
	api.POST("/register", RouteAuth.Register)
	api.POST("/login", RouteAuth.Login)
	api.POST("/logout", RouteAuth.Logout)

	// 需要认证的路由
	auth := api.Group("/")
	auth.Use(RouteAuth.AuthMiddleware())

	// 用户相关
	{
		auth.GET("/profile", RouteAuth.GetProfile)
		auth.PUT("/profile", RouteAuth.UpdateProfile)
		auth.GET("/profile/stats", RouteAuth.GetProfileStats)
	}

	// 分类 / 笔记 / 公开墙
	RouteCategory.RegisterCategoryRoutes(api)
	RouteNote.RegisterNoteRoutes(api)
	RoutePublic.RegisterPublicRoutes(api)

	// 前端路由 - 支持SPA
	r.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api") {
			c.JSON(http.StatusNotFound, gin.H{"error": "API not found"})
			return
		}

		// 返回前端应用
		c.File("./web/index.html")
	})

	// 启动服务器
	if err := r.Run(":" + Config.Cfg.ServerPort); err != nil {
		log.Fatalf("服务器启动失败: %v", err)
	}
}
