//go:build testutil
// +build testutil

package db_test

import (
	"context"
	"database/sql"
	"sync"
	"testing"

	"github.com/Spok95/educenter-api/internal/apperr"
	"github.com/Spok95/educenter-api/internal/db"
	"github.com/Spok95/educenter-api/internal/models"
	"github.com/Spok95/educenter-api/internal/testutil/testdb"
)

func mustSeedProduct(t *testing.T, database *sql.DB, addedBy int64, price int) int64 {
	t.Helper()
	p := &models.Product{Name: "Блокнот", Price: price, AddedBy: addedBy}
	if err := db.CreateProduct(context.Background(), database, p); err != nil {
		t.Fatal(err)
	}
	return p.ID
}

func TestPurchase(t *testing.T) {
	h, err := testdb.Start(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	defer h.Close()
	ctx := context.Background()

	directorID := mustSeedUser(t, h.DB, "Директор", models.Director)
	studentID := mustSeedUser(t, h.DB, "Ученик", models.Student)
	productID := mustSeedProduct(t, h.DB, directorID, 80)

	if _, err := db.AddCoins(ctx, h.DB, studentID, 100); err != nil {
		t.Fatal(err)
	}

	order, err := db.Purchase(ctx, h.DB, studentID, productID)
	if err != nil {
		t.Fatal(err)
	}
	if order.ProductID != productID || order.StudentID != studentID {
		t.Fatalf("заказ привязан не к тем записям: %+v", order)
	}
	if got := mustCoins(t, h.DB, studentID); got != 20 {
		t.Fatalf("после покупки ожидали баланс 20, получили %d", got)
	}

	orders, err := db.ListOrdersByStudent(ctx, h.DB, studentID)
	if err != nil {
		t.Fatal(err)
	}
	if len(orders) != 1 {
		t.Fatalf("ожидали один заказ, получили %d", len(orders))
	}
}

func TestPurchase_InsufficientCoins(t *testing.T) {
	h, err := testdb.Start(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	defer h.Close()
	ctx := context.Background()

	directorID := mustSeedUser(t, h.DB, "Директор", models.Director)
	studentID := mustSeedUser(t, h.DB, "Ученик", models.Student)
	productID := mustSeedProduct(t, h.DB, directorID, 80)

	if _, err := db.AddCoins(ctx, h.DB, studentID, 50); err != nil {
		t.Fatal(err)
	}

	_, err = db.Purchase(ctx, h.DB, studentID, productID)
	if k, ok := apperr.KindOf(err); !ok || k != apperr.KindValidation {
		t.Fatalf("нехватка монет должна давать ошибку валидации, получили %v", err)
	}
	if got := mustCoins(t, h.DB, studentID); got != 50 {
		t.Fatalf("баланс не должен меняться при отказе, получили %d", got)
	}
	orders, err := db.ListOrdersByStudent(ctx, h.DB, studentID)
	if err != nil {
		t.Fatal(err)
	}
	if len(orders) != 0 {
		t.Fatalf("заказ не должен создаваться при отказе, получили %d", len(orders))
	}
}

func TestPurchase_UnknownProduct(t *testing.T) {
	h, err := testdb.Start(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	defer h.Close()
	ctx := context.Background()

	studentID := mustSeedUser(t, h.DB, "Ученик", models.Student)
	_, err = db.Purchase(ctx, h.DB, studentID, 99999)
	if k, ok := apperr.KindOf(err); !ok || k != apperr.KindNotFound {
		t.Fatalf("неизвестный товар должен давать not found, получили %v", err)
	}
}

// Два одновременных заказа на общий баланс, которого хватает только на один.
func TestPurchase_ParallelOverdraw(t *testing.T) {
	h, err := testdb.Start(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	defer h.Close()
	ctx := context.Background()

	directorID := mustSeedUser(t, h.DB, "Директор", models.Director)
	studentID := mustSeedUser(t, h.DB, "Ученик", models.Student)
	productID := mustSeedProduct(t, h.DB, directorID, 80)

	if _, err := db.AddCoins(ctx, h.DB, studentID, 100); err != nil {
		t.Fatal(err)
	}

	const attempts = 10
	var okCount int
	var mu sync.Mutex
	wg := sync.WaitGroup{}
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := db.Purchase(ctx, h.DB, studentID, productID); err == nil {
				mu.Lock()
				okCount++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if okCount != 1 {
		t.Fatalf("при балансе 100 и цене 80 должна пройти ровно одна покупка, прошло %d", okCount)
	}
	if got := mustCoins(t, h.DB, studentID); got != 20 {
		t.Fatalf("ожидали баланс 20 после гонки, получили %d", got)
	}
	orders, err := db.ListOrdersByStudent(ctx, h.DB, studentID)
	if err != nil {
		t.Fatal(err)
	}
	if len(orders) != 1 {
		t.Fatalf("должен существовать ровно один заказ, получили %d", len(orders))
	}
}
