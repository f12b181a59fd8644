package Public

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/LJCaballero/Diario/database"
	RouteAuth "github.com/LJCaballero/Diario/Route/Auth"
	"github.com/LJCaballero/Diario/service/Note"
)

// RegisterPublicRoutes 设置公开墙路由
// 读取端点可选认证（登录后附带 user_rating），写入端点必须认证
func RegisterPublicRoutes(api *gin.RouterGroup) {
	public := api.Group("/public")
	{
		public.GET("", RouteAuth.OptionalAuthMiddleware(), GetPublicNotes)
		public.GET("/:id", RouteAuth.OptionalAuthMiddleware(), GetPublicNoteByID)
		public.GET("/:id/comments", RouteAuth.OptionalAuthMiddleware(), GetComments)

		public.POST("/:id/rate", RouteAuth.AuthMiddleware(), RateNote)
		public.DELETE("/:id/rate", RouteAuth.AuthMiddleware(), UnrateNote)
		public.POST("/:id/comments", RouteAuth.AuthMiddleware(), AddComment)
		public.DELETE("/:id/comments/:commentId", RouteAuth.AuthMiddleware(), DeleteComment)
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

// viewerID 可选认证场景下获取当前用户ID，未登录返回 nil
func viewerID(c *gin.Context) *uint {
	value, exists := c.Get("user_id")
	if !exists {
		return nil
	}
	id := value.(uint)
	return &id
}

// GetPublicNotes 获取公开墙笔记列表，支持作者与日期过滤
func GetPublicNotes(c *gin.Context) {
	filter := database.PublicNoteFilter{
		Author:   c.Query("author"),
		DateFrom: c.Query("date_from"),
		DateTo:   c.Query("date_to"),
	}

	notes, err := Note.GlobalPublicNoteService.ListPublicNotes(filter, viewerID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, notes)
}

// GetPublicNoteByID 获取单条公开笔记
func GetPublicNoteByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "无效的ID",
			"kind":  "validation",
		})
		return
	}

	note, err := Note.GlobalPublicNoteService.GetPublicNoteByID(uint(id), viewerID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, note)
}

// RateNote 对公开笔记点赞/点踩（覆盖式写入）
func RateNote(c *gin.Context) {
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

	var req database.RateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "rating 必须为 1（点赞）或 -1（点踩）",
			"kind":  "validation",
		})
		return
	}

	if err := Note.GlobalRatingService.RateNote(uint(id), userID.(uint), req.Rating); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "评价已保存",
		"rating":  req.Rating,
	})
}

// UnrateNote 取消评价（幂等）
func UnrateNote(c *gin.Context) {
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

	if err := Note.GlobalRatingService.UnrateNote(uint(id), userID.(uint)); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "评价已取消",
	})
}

// GetComments 获取公开笔记的评论列表，按创建时间升序
func GetComments(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "无效的ID",
			"kind":  "validation",
		})
		return
	}

	comments, err := Note.GlobalCommentService.ListComments(uint(id))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, comments)
}

// AddComment 对公开笔记发表评论
func AddComment(c *gin.Context) {
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

	var req database.AddCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "评论长度必须在1到1000个字符之间",
			"kind":  "validation",
		})
		return
	}

	comment, err := Note.GlobalCommentService.AddComment(uint(id), userID.(uint), req.Text)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":      comment.ID,
		"text":    comment.Text,
		"user_id": comment.UserID,
	})
}

// DeleteComment 删除评论，仅评论作者可操作
func DeleteComment(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "用户未认证",
			"kind":  "auth",
		})
		return
	}

	noteID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "无效的ID",
			"kind":  "validation",
		})
		return
	}

	commentID, err := strconv.ParseUint(c.Param("commentId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "无效的ID",
			"kind":  "validation",
		})
		return
	}

	if err := Note.GlobalCommentService.DeleteComment(uint(noteID), uint(commentID), userID.(uint)); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "评论删除成功",
	})
}
