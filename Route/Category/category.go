package Category

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/LJCaballero/Diario/database"
	RouteAuth "github.com/LJCaballero/Diario/Route/Auth"
	"github.com/LJCaballero/Diario/service/Category"
)

// RegisterCategoryRoutes 设置分类路由
func RegisterCategoryRoutes(api *gin.RouterGroup) {
	api.GET("/categories", GetCategories)

	auth := api.Group("/categories")
	auth.Use(RouteAuth.AuthMiddleware())
	{
		auth.POST("", CreateCategory)
		auth.PUT("/:id", UpdateCategory)
		auth.DELETE("/:id", DeleteCategory)
	}
}

// respondError 根据错误类别映射HTTP状态码
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	kind := "internal"

	var appErr *database.AppError
	if errors.As(err, &appErr) {
		kind = string(appErr.Kind)
		switch appErr.Kind {
		case database.ErrKindValidation:
			status = http.StatusBadRequest
		case database.ErrKindNotFound:
			status = http.StatusNotFound
		case database.ErrKindForbidden:
			status = http.StatusForbidden
		}
	}

	c.JSON(status, gin.H{
		"error": err.Error(),
		"kind":  kind,
	})
}

// GetCategories 获取所有分类
func GetCategories(c *gin.Context) {
	categories, err := Category.GlobalCategoryService.GetAllCategories()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "获取分类失败",
			"kind":  "internal",
		})
		return
	}
	c.JSON(http.StatusOK, categories)
}

// CreateCategory 创建分类
func CreateCategory(c *gin.Context) {
	var req database.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "请求参数错误: " + err.Error(),
			"kind":  "validation",
		})
		return
	}

	category, err := Category.GlobalCategoryService.CreateCategory(req.Name)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, category)
}

// UpdateCategory 更新分类
func UpdateCategory(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "无效的ID",
			"kind":  "validation",
		})
		return
	}

	var req database.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "请求参数错误: " + err.Error(),
			"kind":  "validation",
		})
		return
	}

	if err := Category.GlobalCategoryService.UpdateCategory(uint(id), req.Name); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "分类更新成功",
	})
}

// DeleteCategory 删除分类，被笔记引用时拒绝
func DeleteCategory(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "无效的ID",
			"kind":  "validation",
		})
		return
	}

	if err := Category.GlobalCategoryService.DeleteCategory(uint(id)); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "分类删除成功",
	})
}
