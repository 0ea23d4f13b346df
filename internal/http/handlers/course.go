package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/courseforge-backend/internal/http/response"
	"github.com/yungbote/courseforge-backend/internal/platform/logger"
	"github.com/yungbote/courseforge-backend/internal/services"
)

type CourseHandler struct {
	log           *logger.Logger
	courseService services.CourseService
	moduleService services.ModuleService
}

func NewCourseHandler(log *logger.Logger, courseService services.CourseService, moduleService services.ModuleService) *CourseHandler {
	return &CourseHandler{
		log:           log.With("handler", "CourseHandler"),
		courseService: courseService,
		moduleService: moduleService,
	}
}

// GET /api/courses
func (h *CourseHandler) ListMyCourses(c *gin.Context) {
	courses, err := h.courseService.ListMine(c.Request.Context(), nil)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"courses": courses})
}

// POST /api/courses
func (h *CourseHandler) CreateCourse(c *gin.Context) {
	var req services.CreateCourseInput
	if err := bindJSON(c, &req); err != nil {
		response.RespondError(c, err)
		return
	}
	course, err := h.courseService.Create(c.Request.Context(), nil, req)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"course": course})
}

// GET /api/courses/:id
func (h *CourseHandler) GetCourse(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	course, err := h.courseService.Get(c.Request.Context(), nil, id)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"course": course})
}

// PUT /api/courses/:id
func (h *CourseHandler) UpdateCourse(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	var req services.UpdateCourseInput
	if err := bindJSON(c, &req); err != nil {
		response.RespondError(c, err)
		return
	}
	course, err := h.courseService.Update(c.Request.Context(), nil, id, req)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"course": course})
}

// DELETE /api/courses/:id
func (h *CourseHandler) DeleteCourse(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	if err := h.courseService.Delete(c.Request.Context(), nil, id); err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondMessage(c, "Course deleted successfully")
}

// GET /api/courses/:id/modules
func (h *CourseHandler) ListCourseModules(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	modules, err := h.moduleService.ListForCourse(c.Request.Context(), nil, id)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"modules": modules})
}
