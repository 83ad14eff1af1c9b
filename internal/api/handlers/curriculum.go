package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Spok95/educenter-api/internal/apperr"
	"github.com/Spok95/educenter-api/internal/ctxutil"
	"github.com/Spok95/educenter-api/internal/db"
	"github.com/Spok95/educenter-api/internal/models"
	"github.com/Spok95/educenter-api/internal/schedule"
)

// ——— курсы ———

type courseRequest struct {
	Name string `json:"name" binding:"required"`
}

func (h *Handler) ListCourses(c *gin.Context) {
	ctx, cancel := ctxutil.WithDBTimeout(c.Request.Context())
	defer cancel()

	courses, err := db.ListCourses(ctx, h.DB)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, courses)
}

func (h *Handler) CreateCourse(c *gin.Context) {
	var req courseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, apperr.Validation("name is required"))
		return
	}
	ctx, cancel := ctxutil.WithDBTimeout(c.Request.Context())
	defer cancel()

	id, err := db.CreateCourse(ctx, h.DB, req.Name)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, models.Course{ID: id, Name: req.Name})
}

func (h *Handler) GetCourse(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.fail(c, err)
		return
	}
	ctx, cancel := ctxutil.WithDBTimeout(c.Request.Context())
	defer cancel()

	course, err := db.GetCourseByID(ctx, h.DB, id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, course)
}

func (h *Handler) UpdateCourse(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.fail(c, err)
		return
	}
	var req courseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, apperr.Validation("name is required"))
		return
	}
	ctx, cancel := ctxutil.WithDBTimeout(c.Request.Context())
	defer cancel()

	if err := db.UpdateCourse(ctx, h.DB, id, req.Name); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, models.Course{ID: id, Name: req.Name})
}

func (h *Handler) DeleteCourse(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.fail(c, err)
		return
	}
	ctx, cancel := ctxutil.WithDBTimeout(c.Request.Context())
	defer cancel()

	if err := db.DeleteCourse(ctx, h.DB, id); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ——— модули ———

type moduleRequest struct {
	Name     string `json:"name" binding:"required"`
	CourseID int64  `json:"course" binding:"required"`
}

func (h *Handler) ListModules(c *gin.Context) {
	ctx, cancel := ctxutil.WithDBTimeout(c.Request.Context())
	defer cancel()

	modules, err := db.ListModules(ctx, h.DB)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, modules)
}

func (h *Handler) CreateModule(c *gin.Context) {
	var req moduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, apperr.Validation("name and course are required"))
		return
	}
	ctx, cancel := ctxutil.WithDBTimeout(c.Request.Context())
	defer cancel()

	// курс должен существовать
	if _, err := db.GetCourseByID(ctx, h.DB, req.CourseID); err != nil {
		h.fail(c, err)
		return
	}
	m := &models.Module{Name: req.Name, CourseID: req.CourseID}
	id, err := db.CreateModule(ctx, h.DB, m)
	if err != nil {
		h.fail(c, err)
		return
	}
	m.ID = id
	c.JSON(http.StatusCreated, m)
}

func (h *Handler) GetModule(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.fail(c, err)
		return
	}
	ctx, cancel := ctxutil.WithDBTimeout(c.Request.Context())
	defer cancel()

	m, err := db.GetModuleByID(ctx, h.DB, id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}

func (h *Handler) UpdateModule(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.fail(c, err)
		return
	}
	var req moduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, apperr.Validation("name and course are required"))
		return
	}
	ctx, cancel := ctxutil.WithDBTimeout(c.Request.Context())
	defer cancel()

	if _, err := db.GetCourseByID(ctx, h.DB, req.CourseID); err != nil {
		h.fail(c, err)
		return
	}
	m := &models.Module{ID: id, Name: req.Name, CourseID: req.CourseID}
	if err := db.UpdateModule(ctx, h.DB, m); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}

func (h *Handler) DeleteModule(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.fail(c, err)
		return
	}
	ctx, cancel := ctxutil.WithDBTimeout(c.Request.Context())
	defer cancel()

	if err := db.DeleteModule(ctx, h.DB, id); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ——— темы ———

type topicRequest struct {
	Name     string `json:"name" binding:"required"`
	Status   string `json:"status"`
	ModuleID int64  `json:"module" binding:"required"`
}

func (h *Handler) ListTopics(c *gin.Context) {
	ctx, cancel := ctxutil.WithDBTimeout(c.Request.Context())
	defer cancel()

	topics, err := db.ListTopics(ctx, h.DB)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, topics)
}

func (h *Handler) CreateTopic(c *gin.Context) {
	var req topicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, apperr.Validation("name and module are required"))
		return
	}
	status := models.TopicInactive
	if req.Status != "" {
		parsed, ok := models.ParseTopicStatus(req.Status)
		if !ok {
			h.fail(c, apperr.Validation("invalid status"))
			return
		}
		status = parsed
	}

	ctx, cancel := ctxutil.WithDBTimeout(c.Request.Context())
	defer cancel()

	if _, err := db.GetModuleByID(ctx, h.DB, req.ModuleID); err != nil {
		h.fail(c, err)
		return
	}
	t := &models.Topic{Name: req.Name, Status: status, ModuleID: req.ModuleID}
	id, err := db.CreateTopic(ctx, h.DB, t)
	if err != nil {
		h.fail(c, err)
		return
	}
	t.ID = id
	c.JSON(http.StatusCreated, t)
}

func (h *Handler) GetTopic(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.fail(c, err)
		return
	}
	ctx, cancel := ctxutil.WithDBTimeout(c.Request.Context())
	defer cancel()

	t, err := db.GetTopicByID(ctx, h.DB, id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

func (h *Handler) UpdateTopic(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.fail(c, err)
		return
	}
	var req topicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, apperr.Validation("name and module are required"))
		return
	}
	status, ok := models.ParseTopicStatus(req.Status)
	if !ok {
		h.fail(c, apperr.Validation("invalid status"))
		return
	}

	ctx, cancel := ctxutil.WithDBTimeout(c.Request.Context())
	defer cancel()

	if _, err := db.GetModuleByID(ctx, h.DB, req.ModuleID); err != nil {
		h.fail(c, err)
		return
	}
	t := &models.Topic{ID: id, Name: req.Name, Status: status, ModuleID: req.ModuleID}
	if err := db.UpdateTopic(ctx, h.DB, t); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

func (h *Handler) DeleteTopic(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.fail(c, err)
		return
	}
	ctx, cancel := ctxutil.WithDBTimeout(c.Request.Context())
	defer cancel()

	if err := db.DeleteTopic(ctx, h.DB, id); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ——— группы ———

type groupRequest struct {
	Name      string   `json:"name" binding:"required"`
	CourseID  int64    `json:"course" binding:"required"`
	TeacherID int64    `json:"teacher" binding:"required"`
	Days      []string `json:"days" binding:"required"`
	StartDate string   `json:"start_date" binding:"required"`
	EndDate   string   `json:"end_date" binding:"required"`
	Students  []int64  `json:"students"`
}

type groupResponse struct {
	ID        int64    `json:"id"`
	Name      string   `json:"name"`
	CourseID  int64    `json:"course"`
	TeacherID int64    `json:"teacher"`
	Days      []string `json:"days"`
	StartDate string   `json:"start_date"`
	EndDate   string   `json:"end_date"`
	Students  []int64  `json:"students"`
}

func toGroupResponse(g *models.Group) groupResponse {
	return groupResponse{
		ID:        g.ID,
		Name:      g.Name,
		CourseID:  g.CourseID,
		TeacherID: g.TeacherID,
		Days:      g.Days,
		StartDate: schedule.FormatDate(g.StartDate),
		EndDate:   schedule.FormatDate(g.EndDate),
		Students:  g.StudentIDs,
	}
}

func (h *Handler) groupFromRequest(c *gin.Context, req *groupRequest) (*models.Group, error) {
	start, err := schedule.ParseDate(req.StartDate)
	if err != nil {
		return nil, apperr.Validation("invalid date format, use dd.mm.yyyy")
	}
	end, err := schedule.ParseDate(req.EndDate)
	if err != nil {
		return nil, apperr.Validation("invalid date format, use dd.mm.yyyy")
	}
	if start.After(end) {
		return nil, apperr.Validation("start_date must not be after end_date")
	}

	ctx, cancel := ctxutil.WithDBTimeout(c.Request.Context())
	defer cancel()

	if _, err := db.GetCourseByID(ctx, h.DB, req.CourseID); err != nil {
		return nil, err
	}
	if _, err := db.GetUserByIDAndRole(ctx, h.DB, req.TeacherID, models.Teacher); err != nil {
		return nil, err
	}

	return &models.Group{
		Name:       req.Name,
		CourseID:   req.CourseID,
		TeacherID:  req.TeacherID,
		StartDate:  start,
		EndDate:    end,
		Days:       req.Days,
		StudentIDs: req.Students,
	}, nil
}

func (h *Handler) ListGroups(c *gin.Context) {
	ctx, cancel := ctxutil.WithDBTimeout(c.Request.Context())
	defer cancel()

	groups, err := db.ListGroups(ctx, h.DB)
	if err != nil {
		h.fail(c, err)
		return
	}
	out := make([]groupResponse, 0, len(groups))
	for i := range groups {
		out = append(out, toGroupResponse(&groups[i]))
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) CreateGroup(c *gin.Context) {
	var req groupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, apperr.Validation("name, course, teacher, days, start_date and end_date are required"))
		return
	}
	g, err := h.groupFromRequest(c, &req)
	if err != nil {
		h.fail(c, err)
		return
	}

	ctx, cancel := ctxutil.WithDBTimeout(c.Request.Context())
	defer cancel()

	id, err := db.CreateGroup(ctx, h.DB, g)
	if err != nil {
		h.fail(c, err)
		return
	}
	created, err := db.GetGroupByID(ctx, h.DB, id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, toGroupResponse(created))
}

func (h *Handler) GetGroup(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.fail(c, err)
		return
	}
	ctx, cancel := ctxutil.WithDBTimeout(c.Request.Context())
	defer cancel()

	g, err := db.GetGroupByID(ctx, h.DB, id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toGroupResponse(g))
}

func (h *Handler) UpdateGroup(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.fail(c, err)
		return
	}
	var req groupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, apperr.Validation("name, course, teacher, days, start_date and end_date are required"))
		return
	}
	g, err := h.groupFromRequest(c, &req)
	if err != nil {
		h.fail(c, err)
		return
	}
	g.ID = id

	ctx, cancel := ctxutil.WithDBTimeout(c.Request.Context())
	defer cancel()

	if err := db.UpdateGroup(ctx, h.DB, g); err != nil {
		h.fail(c, err)
		return
	}
	updated, err := db.GetGroupByID(ctx, h.DB, id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toGroupResponse(updated))
}

func (h *Handler) DeleteGroup(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.fail(c, err)
		return
	}
	ctx, cancel := ctxutil.WithDBTimeout(c.Request.Context())
	defer cancel()

	if err := db.DeleteGroup(ctx, h.DB, id); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
