package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/courseforge-backend/internal/http/response"
	"github.com/yungbote/courseforge-backend/internal/platform/logger"
	"github.com/yungbote/courseforge-backend/internal/services"
)

type ModuleHandler struct {
	log           *logger.Logger
	moduleService services.ModuleService
	lessonService services.LessonService
}

func NewModuleHandler(log *logger.Logger, moduleService services.ModuleService, lessonService services.LessonService) *ModuleHandler {
	return &ModuleHandler{
		log:           log.With("handler", "ModuleHandler"),
		moduleService: moduleService,
		lessonService: lessonService,
	}
}

// POST /api/modules
func (h *ModuleHandler) CreateModule(c *gin.Context) {
	var req services.CreateModuleInput
	if err := bindJSON(c, &req); err != nil {
		response.RespondError(c, err)
		return
	}
	module, err := h.moduleService.Create(c.Request.Context(), nil, req)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"module": module})
}

// GET /api/modules/:id
func (h *ModuleHandler) GetModule(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	module, err := h.moduleService.Get(c.Request.Context(), nil, id)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"module": module})
}

// PUT /api/modules/:id
func (h *ModuleHandler) UpdateModule(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	var req services.UpdateModuleInput
	if err := bindJSON(c, &req); err != nil {
		response.RespondError(c, err)
		return
	}
	module, err := h.moduleService.Update(c.Request.Context(), nil, id, req)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"module": module})
}

// DELETE /api/modules/:id
func (h *ModuleHandler) DeleteModule(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	if err := h.moduleService.Delete(c.Request.Context(), nil, id); err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondMessage(c, "Module deleted successfully")
}

// GET /api/modules/:id/lessons
func (h *ModuleHandler) ListModuleLessons(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	lessons, err := h.lessonService.ListForModule(c.Request.Context(), nil, id)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"lessons": lessons})
}
