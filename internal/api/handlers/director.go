package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Spok95/educenter-api/internal/apperr"
	"github.com/Spok95/educenter-api/internal/auth"
	"github.com/Spok95/educenter-api/internal/ctxutil"
	"github.com/Spok95/educenter-api/internal/db"
	"github.com/Spok95/educenter-api/internal/models"
)

func (h *Handler) DirectorDashboard(c *gin.Context) {
	ctx, cancel := ctxutil.WithDBTimeout(c.Request.Context())
	defer cancel()

	counts := gin.H{}
	for name, fn := range map[string]func() (int, error){
		"teachers": func() (int, error) { return db.CountUsersByRole(ctx, h.DB, models.Teacher) },
		"students": func() (int, error) { return db.CountUsersByRole(ctx, h.DB, models.Student) },
		"courses":  func() (int, error) { return db.CountCourses(ctx, h.DB) },
		"modules":  func() (int, error) { return db.CountModules(ctx, h.DB) },
		"topics":   func() (int, error) { return db.CountTopics(ctx, h.DB) },
		"groups":   func() (int, error) { return db.CountGroups(ctx, h.DB) },
	} {
		n, err := fn()
		if err != nil {
			h.fail(c, err)
			return
		}
		counts[name] = n
	}
	c.JSON(http.StatusOK, counts)
}

// ——— учётные записи: общий CRUD для учеников и учителей ———

type userCreateRequest struct {
	Phone    string  `json:"phone" binding:"required"`
	FullName string  `json:"full_name" binding:"required"`
	Password string  `json:"password" binding:"required"`
	Age      *int    `json:"age"`
	Gender   *string `json:"gender"`
}

type userUpdateRequest struct {
	Phone    *string `json:"phone"`
	FullName *string `json:"full_name"`
	Password *string `json:"password"`
	Age      *int    `json:"age"`
	Gender   *string `json:"gender"`
	IsActive *bool   `json:"is_active"`
}

func (h *Handler) listUsers(c *gin.Context, role models.Role) {
	ctx, cancel := ctxutil.WithDBTimeout(c.Request.Context())
	defer cancel()

	users, err := db.ListUsersByRole(ctx, h.DB, role)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *Handler) createUser(c *gin.Context, role models.Role) {
	var req userCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, apperr.Validation("phone, full_name and password are required"))
		return
	}
	if req.Gender != nil && *req.Gender != "male" && *req.Gender != "female" {
		h.fail(c, apperr.Validation("invalid gender"))
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		h.fail(c, err)
		return
	}
	u := &models.User{
		Phone:        req.Phone,
		FullName:     req.FullName,
		PasswordHash: hash,
		Role:         role, // роль задаётся маршрутом, из тела не читается
		Age:          req.Age,
		Gender:       req.Gender,
		IsActive:     true,
	}

	ctx, cancel := ctxutil.WithDBTimeout(c.Request.Context())
	defer cancel()

	id, err := db.CreateUser(ctx, h.DB, u)
	if err != nil {
		h.fail(c, err)
		return
	}
	u.ID = id
	c.JSON(http.StatusCreated, u)
}

func (h *Handler) getUser(c *gin.Context, role models.Role) {
	id, err := pathID(c, "id")
	if err != nil {
		h.fail(c, err)
		return
	}
	ctx, cancel := ctxutil.WithDBTimeout(c.Request.Context())
	defer cancel()

	u, err := db.GetUserByIDAndRole(ctx, h.DB, id, role)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

func (h *Handler) updateUser(c *gin.Context, role models.Role) {
	id, err := pathID(c, "id")
	if err != nil {
		h.fail(c, err)
		return
	}
	var req userUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, apperr.Validation("invalid request body"))
		return
	}

	ctx, cancel := ctxutil.WithDBTimeout(c.Request.Context())
	defer cancel()

	u, err := db.GetUserByIDAndRole(ctx, h.DB, id, role)
	if err != nil {
		h.fail(c, err)
		return
	}
	if req.Phone != nil {
		u.Phone = *req.Phone
	}
	if req.FullName != nil {
		u.FullName = *req.FullName
	}
	if req.Password != nil {
		hash, err := auth.HashPassword(*req.Password)
		if err != nil {
			h.fail(c, err)
			return
		}
		u.PasswordHash = hash
	}
	if req.Age != nil {
		u.Age = req.Age
	}
	if req.Gender != nil {
		if *req.Gender != "male" && *req.Gender != "female" {
			h.fail(c, apperr.Validation("invalid gender"))
			return
		}
		u.Gender = req.Gender
	}
	if req.IsActive != nil {
		u.IsActive = *req.IsActive
	}

	if err := db.UpdateUser(ctx, h.DB, u); err != nil {
		h.fail(c, err)
		return
	}
	h.Users.Invalidate(c.Request.Context(), u.ID)
	c.JSON(http.StatusOK, u)
}

func (h *Handler) deleteUser(c *gin.Context, role models.Role) {
	id, err := pathID(c, "id")
	if err != nil {
		h.fail(c, err)
		return
	}
	ctx, cancel := ctxutil.WithDBTimeout(c.Request.Context())
	defer cancel()

	if err := db.DeleteUser(ctx, h.DB, id, role); err != nil {
		h.fail(c, err)
		return
	}
	h.Users.Invalidate(c.Request.Context(), id)
	c.Status(http.StatusNoContent)
}

func (h *Handler) ListTeachers(c *gin.Context)   { h.listUsers(c, models.Teacher) }
func (h *Handler) CreateTeacher(c *gin.Context)  { h.createUser(c, models.Teacher) }
func (h *Handler) GetTeacher(c *gin.Context)     { h.getUser(c, models.Teacher) }
func (h *Handler) UpdateTeacher(c *gin.Context)  { h.updateUser(c, models.Teacher) }
func (h *Handler) DeleteTeacher(c *gin.Context)  { h.deleteUser(c, models.Teacher) }
func (h *Handler) ListStudents(c *gin.Context)   { h.listUsers(c, models.Student) }
func (h *Handler) CreateStudent(c *gin.Context)  { h.createUser(c, models.Student) }
func (h *Handler) GetStudent(c *gin.Context)     { h.getUser(c, models.Student) }
func (h *Handler) UpdateStudent(c *gin.Context)  { h.updateUser(c, models.Student) }
func (h *Handler) DeleteStudent(c *gin.Context)  { h.deleteUser(c, models.Student) }
