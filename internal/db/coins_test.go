//go:build testutil
// +build testutil

package db_test

import (
	"context"
	"sync"
	"testing"

	"github.com/Spok95/educenter-api/internal/apperr"
	"github.com/Spok95/educenter-api/internal/db"
	"github.com/Spok95/educenter-api/internal/models"
	"github.com/Spok95/educenter-api/internal/testutil/testdb"
)

func TestAddCoins(t *testing.T) {
	h, err := testdb.Start(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	defer h.Close()
	ctx := context.Background()

	studentID := mustSeedUser(t, h.DB, "Ученик", models.Student)

	balance, err := db.AddCoins(ctx, h.DB, studentID, 40)
	if err != nil {
		t.Fatal(err)
	}
	if balance != 40 {
		t.Fatalf("ожидали баланс 40, получили %d", balance)
	}

	balance, err = db.AddCoins(ctx, h.DB, studentID, 10)
	if err != nil {
		t.Fatal(err)
	}
	if balance != 50 {
		t.Fatalf("ожидали баланс 50, получили %d", balance)
	}
}

func TestAddCoins_NegativeAmount(t *testing.T) {
	h, err := testdb.Start(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	defer h.Close()
	ctx := context.Background()

	studentID := mustSeedUser(t, h.DB, "Ученик", models.Student)
	if _, err := db.AddCoins(ctx, h.DB, studentID, 30); err != nil {
		t.Fatal(err)
	}

	_, err = db.AddCoins(ctx, h.DB, studentID, -5)
	if k, ok := apperr.KindOf(err); !ok || k != apperr.KindValidation {
		t.Fatalf("отрицательная сумма должна давать ошибку валидации, получили %v", err)
	}
	if got := mustCoins(t, h.DB, studentID); got != 30 {
		t.Fatalf("баланс не должен меняться при ошибке, получили %d", got)
	}
}

func TestAddCoins_NotStudent(t *testing.T) {
	h, err := testdb.Start(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	defer h.Close()
	ctx := context.Background()

	teacherID := mustSeedUser(t, h.DB, "Учитель", models.Teacher)
	_, err = db.AddCoins(ctx, h.DB, teacherID, 10)
	if k, ok := apperr.KindOf(err); !ok || k != apperr.KindNotFound {
		t.Fatalf("начисление не ученику должно давать not found, получили %v", err)
	}
}

func TestAddCoins_Parallel(t *testing.T) {
	h, err := testdb.Start(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	defer h.Close()
	ctx := context.Background()

	studentID := mustSeedUser(t, h.DB, "Ученик", models.Student)

	const workers = 20
	wg := sync.WaitGroup{}
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := db.AddCoins(ctx, h.DB, studentID, 3); err != nil {
				t.Error(err)
			}
		}()
	}
	wg.Wait()

	if got := mustCoins(t, h.DB, studentID); got != workers*3 {
		t.Fatalf("параллельные начисления должны суммироваться: ожидали %d, получили %d", workers*3, got)
	}
}
