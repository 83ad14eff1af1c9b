// Package api — HTTP-транспорт: маршруты, middleware, сервер.
package api

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Spok95/educenter-api/internal/api/handlers"
	"github.com/Spok95/educenter-api/internal/auth"
	"github.com/Spok95/educenter-api/internal/cache"
	"github.com/Spok95/educenter-api/internal/config"
	"github.com/Spok95/educenter-api/internal/metrics"
	"github.com/Spok95/educenter-api/internal/models"
)

type Server struct {
	srv *http.Server
}

// NewRouter собирает gin-движок: служебные эндпоинты без авторизации,
// всё остальное за auth-middleware и ролевыми гейтами по группам маршрутов.
func NewRouter(cfg *config.Config, database *sql.DB, log *zap.Logger, tokens *auth.TokenManager, users *cache.Users) *gin.Engine {
	if cfg.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(Recovery(log), RequestMetrics(), RequestLog(log))

	r.GET("/healthz", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 800*time.Millisecond)
		defer cancel()
		t0 := time.Now()
		if err := database.PingContext(ctx); err != nil {
			c.String(http.StatusServiceUnavailable, "db not ok: "+err.Error())
			return
		}
		metrics.ObserveDBPing(time.Since(t0))
		c.String(http.StatusOK, "ok")
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	h := handlers.New(database, log, tokens, users)

	r.POST("/login", h.Login)

	authed := r.Group("", RequireAuth(tokens, database, users))

	director := authed.Group("/director", RequireRoles(models.Director))
	{
		director.GET("/dashboard", h.DirectorDashboard)

		director.GET("/teachers", h.ListTeachers)
		director.POST("/teachers", h.CreateTeacher)
		director.GET("/teachers/:id", h.GetTeacher)
		director.PUT("/teachers/:id", h.UpdateTeacher)
		director.DELETE("/teachers/:id", h.DeleteTeacher)

		director.GET("/students", h.ListStudents)
		director.POST("/students", h.CreateStudent)
		director.GET("/students/:id", h.GetStudent)
		director.PUT("/students/:id", h.UpdateStudent)
		director.DELETE("/students/:id", h.DeleteStudent)

		director.GET("/courses", h.ListCourses)
		director.POST("/courses", h.CreateCourse)
		director.GET("/courses/:id", h.GetCourse)
		director.PUT("/courses/:id", h.UpdateCourse)
		director.DELETE("/courses/:id", h.DeleteCourse)

		director.GET("/modules", h.ListModules)
		director.POST("/modules", h.CreateModule)
		director.GET("/modules/:id", h.GetModule)
		director.PUT("/modules/:id", h.UpdateModule)
		director.DELETE("/modules/:id", h.DeleteModule)

		director.GET("/topics", h.ListTopics)
		director.POST("/topics", h.CreateTopic)
		director.GET("/topics/:id", h.GetTopic)
		director.PUT("/topics/:id", h.UpdateTopic)
		director.DELETE("/topics/:id", h.DeleteTopic)

		director.GET("/groups", h.ListGroups)
		director.POST("/groups", h.CreateGroup)
		director.GET("/groups/:id", h.GetGroup)
		director.PUT("/groups/:id", h.UpdateGroup)
		director.DELETE("/groups/:id", h.DeleteGroup)
	}

	teacher := authed.Group("/teacher", RequireRoles(models.Teacher))
	{
		teacher.GET("/dashboard", h.TeacherDashboard)
		teacher.GET("/group/:groupId/attendance", h.AttendanceMatrix)
		teacher.POST("/group/:groupId/attendance", h.RecordAttendance)
		teacher.GET("/group/:groupId/attendance/export", h.ExportAttendance)
		teacher.GET("/group/:groupId/module/:moduleId/topics", h.TeacherListTopics)
		teacher.POST("/group/:groupId/module/:moduleId/topics", h.TeacherSetTopicStatus)
	}

	student := authed.Group("/student", RequireRoles(models.Student))
	{
		student.GET("/dashboard", h.StudentDashboard)
		student.GET("/course/:id/modules", h.StudentCourseModules)
		student.GET("/module/:id/topics", h.StudentModuleTopics)
	}

	authed.POST("/coin_add", RequireRoles(models.Director, models.Teacher), h.AddCoins)
	authed.GET("/coins", RequireRoles(models.Director, models.Teacher), h.ListCoinBalances)

	authed.POST("/products", RequireRoles(models.Director), h.CreateProduct)
	authed.GET("/products", h.ListProducts)

	authed.POST("/orders", RequireRoles(models.Student), h.CreateOrder)
	authed.GET("/orders", h.ListOrders)

	return r
}

// StartHTTP запускает сервер и гасит его по отмене контекста.
func StartHTTP(ctx context.Context, addr string, handler http.Handler, log *zap.Logger) *Server {
	srv := &http.Server{Addr: addr, Handler: handler}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("http server", zap.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		shCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = srv.Shutdown(shCtx)
	}()

	return &Server{srv: srv}
}
