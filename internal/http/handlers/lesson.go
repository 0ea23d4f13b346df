package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/courseforge-backend/internal/http/response"
	"github.com/yungbote/courseforge-backend/internal/platform/logger"
	"github.com/yungbote/courseforge-backend/internal/services"
)

type LessonHandler struct {
	log           *logger.Logger
	lessonService services.LessonService
}

func NewLessonHandler(log *logger.Logger, lessonService services.LessonService) *LessonHandler {
	return &LessonHandler{log: log.With("handler", "LessonHandler"), lessonService: lessonService}
}

// POST /api/lessons
func (h *LessonHandler) CreateLesson(c *gin.Context) {
	var req services.CreateLessonInput
	if err := bindJSON(c, &req); err != nil {
		response.RespondError(c, err)
		return
	}
	lesson, err := h.lessonService.Create(c.Request.Context(), nil, req)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"lesson": lesson})
}

// GET /api/lessons/:id
func (h *LessonHandler) GetLesson(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	lesson, err := h.lessonService.Get(c.Request.Context(), nil, id)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"lesson": lesson})
}

// PUT /api/lessons/:id
func (h *LessonHandler) UpdateLesson(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	var req services.UpdateLessonInput
	if err := bindJSON(c, &req); err != nil {
		response.RespondError(c, err)
		return
	}
	lesson, err := h.lessonService.Update(c.Request.Context(), nil, id, req)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"lesson": lesson})
}

// DELETE /api/lessons/:id
func (h *LessonHandler) DeleteLesson(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	if err := h.lessonService.Delete(c.Request.Context(), nil, id); err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondMessage(c, "Lesson deleted successfully")
}
