package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Spok95/educenter-api/internal/ctxutil"
	"github.com/Spok95/educenter-api/internal/db"
	"github.com/Spok95/educenter-api/internal/models"
)

// StudentDashboard — курсы по группам ученика.
func (h *Handler) StudentDashboard(c *gin.Context) {
	student, err := currentUser(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	ctx, cancel := ctxutil.WithDBTimeout(c.Request.Context())
	defer cancel()

	groups, err := db.ListGroupsByStudent(ctx, h.DB, student.ID)
	if err != nil {
		h.fail(c, err)
		return
	}

	seen := make(map[int64]bool)
	courses := make([]models.Course, 0, len(groups))
	for _, g := range groups {
		if seen[g.CourseID] {
			continue
		}
		seen[g.CourseID] = true
		course, err := db.GetCourseByID(ctx, h.DB, g.CourseID)
		if err != nil {
			h.fail(c, err)
			return
		}
		courses = append(courses, *course)
	}
	c.JSON(http.StatusOK, courses)
}

func (h *Handler) StudentCourseModules(c *gin.Context) {
	courseID, err := pathID(c, "id")
	if err != nil {
		h.fail(c, err)
		return
	}
	ctx, cancel := ctxutil.WithDBTimeout(c.Request.Context())
	defer cancel()

	modules, err := db.ListModulesByCourse(ctx, h.DB, courseID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, modules)
}

// StudentModuleTopics — активные темы модуля, видимые через членство в
// группах (не через "первую группу курса").
func (h *Handler) StudentModuleTopics(c *gin.Context) {
	student, err := currentUser(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	moduleID, err := pathID(c, "id")
	if err != nil {
		h.fail(c, err)
		return
	}
	ctx, cancel := ctxutil.WithDBTimeout(c.Request.Context())
	defer cancel()

	topics, err := db.ListActiveTopicsForStudent(ctx, h.DB, moduleID, student.ID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, topics)
}
