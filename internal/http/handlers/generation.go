package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/courseforge-backend/internal/http/response"
	"github.com/yungbote/courseforge-backend/internal/platform/logger"
	"github.com/yungbote/courseforge-backend/internal/services"
)

type GenerationHandler struct {
	log        *logger.Logger
	generation services.GenerationService
}

func NewGenerationHandler(log *logger.Logger, generation services.GenerationService) *GenerationHandler {
	return &GenerationHandler{log: log.With("handler", "GenerationHandler"), generation: generation}
}

// POST /api/modules/generate
func (h *GenerationHandler) GenerateModules(c *gin.Context) {
	var req services.ModuleStructureParams
	if err := bindJSON(c, &req); err != nil {
		response.RespondError(c, err)
		return
	}
	drafts, err := h.generation.GenerateModuleStructure(c.Request.Context(), req)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"modules": drafts})
}

// POST /api/lessons/generate
func (h *GenerationHandler) GenerateLesson(c *gin.Context) {
	var req services.LessonParams
	if err := bindJSON(c, &req); err != nil {
		response.RespondError(c, err)
		return
	}
	draft, err := h.generation.GenerateLesson(c.Request.Context(), req)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"lesson": draft})
}
