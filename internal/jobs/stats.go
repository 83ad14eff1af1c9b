package jobs

import (
	"context"
	"database/sql"

	"github.com/Spok95/educenter-api/internal/db"
	"github.com/Spok95/educenter-api/internal/metrics"
	"github.com/Spok95/educenter-api/internal/models"
)

// EntityStats обновляет gauge-метрики по количеству сущностей —
// то же, что отдаёт директорский дашборд, но для Prometheus.
func EntityStats(database *sql.DB) Job {
	return func(ctx context.Context) error {
		for kind, fn := range map[string]func(context.Context, *sql.DB) (int, error){
			"teachers": func(ctx context.Context, d *sql.DB) (int, error) {
				return db.CountUsersByRole(ctx, d, models.Teacher)
			},
			"students": func(ctx context.Context, d *sql.DB) (int, error) {
				return db.CountUsersByRole(ctx, d, models.Student)
			},
			"courses": db.CountCourses,
			"modules": db.CountModules,
			"topics":  db.CountTopics,
			"groups":  db.CountGroups,
		} {
			n, err := fn(ctx, database)
			if err != nil {
				return err
			}
			metrics.Entities.WithLabelValues(kind).Set(float64(n))
		}
		return nil
	}
}
