package Note

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/LJCaballero/Diario/Config"
	"github.com/LJCaballero/Diario/database"
	RouteAuth "github.com/LJCaballero/Diario/Route/Auth"
	"github.com/LJCaballero/Diario/service/Note"
)

// RegisterNoteRoutes 设置笔记路由（全部需要认证）
func RegisterNoteRoutes(api *gin.RouterGroup) {
	notes := api.Group("/notes")
	notes.Use(RouteAuth.AuthMiddleware())
	{
		notes.GET("", GetNotes)
		notes.GET("/:id", GetNoteByID)
		notes.POST("", CreateNote)
		notes.PUT("/:id", UpdateNote)
		notes.DELETE("/:id", DeleteNote)
		notes.POST("/:id/image", UploadNoteImage)
		notes.DELETE("/:id/image", DeleteNoteImage)
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

// GetNotes 获取当前用户的所有笔记
func GetNotes(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "用户未认证",
			"kind":  "auth",
		})
		return
	}

	notes, err := Note.GlobalNoteService.GetAllNotes(userID.(uint))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, notes)
}

// GetNoteByID 获取单条笔记（仅所有者）
func GetNoteByID(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "用户未认证",
			"kind":  "auth",
		})
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "无效的ID",
			"kind":  "validation",
		})
		return
	}

	note, err := Note.GlobalNoteService.GetNoteByID(userID.(uint), uint(id))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, note)
}

// CreateNote 创建笔记
func CreateNote(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "用户未认证",
			"kind":  "auth",
		})
		return
	}

	var req database.CreateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "参数错误: " + err.Error(),
			"kind":  "validation",
		})
		return
	}

	note, err := Note.GlobalNoteService.CreateNote(userID.(uint), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "创建成功",
		"id":      note.ID,
	})
}

// UpdateNote 更新笔记
func UpdateNote(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "用户未认证",
			"kind":  "auth",
		})
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "无效的ID",
			"kind":  "validation",
		})
		return
	}

	var req database.UpdateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "参数错误: " + err.Error(),
			"kind":  "validation",
		})
		return
	}

	if err := Note.GlobalNoteService.UpdateNote(userID.(uint), uint(id), req); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "笔记更新成功",
	})
}

// DeleteNote 删除笔记（级联删除评价和评论）
func DeleteNote(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "用户未认证",
			"kind":  "auth",
		})
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "无效的ID",
			"kind":  "validation",
		})
		return
	}

	if err := Note.GlobalNoteService.DeleteNote(userID.(uint), uint(id)); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "笔记删除成功",
	})
}

// UploadNoteImage 上传笔记图片
func UploadNoteImage(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "用户未认证",
			"kind":  "auth",
		})
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "无效的ID",
			"kind":  "validation",
		})
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "未上传图片",
			"kind":  "validation",
		})
		return
	}

	if err := Note.GlobalImageService.ValidateImage(fileHeader); err != nil {
		respondError(c, err)
		return
	}

	filename := Note.GlobalImageService.BuildImageName(fileHeader.Filename)
	imageURL := "/uploads/" + filename
	dst := filepath.Join(Config.Cfg.UploadDir, filename)

	if err := os.MkdirAll(Config.Cfg.UploadDir, 0o755); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "保存图片失败",
			"kind":  "internal",
		})
		return
	}
	if err := c.SaveUploadedFile(fileHeader, dst); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "保存图片失败",
			"kind":  "internal",
		})
		return
	}

	if err := Note.GlobalImageService.AttachImage(uint(id), userID.(uint), imageURL); err != nil {
		// 笔记不存在或不属于当前用户，回收刚写入的文件
		_ = os.Remove(dst)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"imageUrl": imageURL,
	})
}

// DeleteNoteImage 删除笔记图片，物理文件删除失败不影响结果
func DeleteNoteImage(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "用户未认证",
			"kind":  "auth",
		})
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "无效的ID",
			"kind":  "validation",
		})
		return
	}

	if err := Note.GlobalImageService.DetachImage(uint(id), userID.(uint)); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "图片删除成功",
	})
}
