package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Spok95/educenter-api/internal/apperr"
	"github.com/Spok95/educenter-api/internal/ctxutil"
	"github.com/Spok95/educenter-api/internal/db"
	"github.com/Spok95/educenter-api/internal/models"
)

func (h *Handler) TeacherDashboard(c *gin.Context) {
	teacher, err := currentUser(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	ctx, cancel := ctxutil.WithDBTimeout(c.Request.Context())
	defer cancel()

	groups, err := db.ListGroupsByTeacher(ctx, h.DB, teacher.ID)
	if err != nil {
		h.fail(c, err)
		return
	}
	out := make([]groupResponse, 0, len(groups))
	for i := range groups {
		out = append(out, toGroupResponse(&groups[i]))
	}
	c.JSON(http.StatusOK, gin.H{
		"full_name":   teacher.FullName,
		"group_count": len(groups),
		"groups":      out,
	})
}

// teacherModule проверяет пару (группа своя, модуль из курса группы).
func (h *Handler) teacherModule(c *gin.Context) (*models.Module, error) {
	teacher, err := currentUser(c)
	if err != nil {
		return nil, err
	}
	groupID, err := pathID(c, "groupId")
	if err != nil {
		return nil, err
	}
	moduleID, err := pathID(c, "moduleId")
	if err != nil {
		return nil, err
	}

	ctx, cancel := ctxutil.WithDBTimeout(c.Request.Context())
	defer cancel()

	group, err := db.GetGroupForTeacher(ctx, h.DB, groupID, teacher.ID)
	if err != nil {
		return nil, err
	}
	module, err := db.GetModuleByID(ctx, h.DB, moduleID)
	if err != nil {
		return nil, err
	}
	if module.CourseID != group.CourseID {
		return nil, apperr.NotFound("module not found")
	}
	return module, nil
}

func (h *Handler) TeacherListTopics(c *gin.Context) {
	module, err := h.teacherModule(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	ctx, cancel := ctxutil.WithDBTimeout(c.Request.Context())
	defer cancel()

	topics, err := db.ListTopicsByModule(ctx, h.DB, module.ID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, topics)
}

type setTopicStatusRequest struct {
	TopicID int64  `json:"topic_id" binding:"required"`
	Status  string `json:"status" binding:"required"`
}

func (h *Handler) TeacherSetTopicStatus(c *gin.Context) {
	module, err := h.teacherModule(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	var req setTopicStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, apperr.Validation("topic_id and status are required"))
		return
	}
	status, ok := models.ParseTopicStatus(req.Status)
	if !ok {
		h.fail(c, apperr.Validation("invalid status"))
		return
	}

	ctx, cancel := ctxutil.WithDBTimeout(c.Request.Context())
	defer cancel()

	if err := db.SetTopicStatus(ctx, h.DB, req.TopicID, module.ID, status); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}
