package db

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Spok95/educenter-api/internal/apperr"
	"github.com/Spok95/educenter-api/internal/models"
)

func CreateProduct(ctx context.Context, database *sql.DB, p *models.Product) error {
	return database.QueryRowContext(ctx, `
INSERT INTO products (name, description, price, added_by)
VALUES ($1, $2, $3, $4)
RETURNING id, created_at`,
		p.Name, p.Description, p.Price, p.AddedBy).Scan(&p.ID, &p.CreatedAt)
}

func GetProductByID(ctx context.Context, database *sql.DB, id int64) (*models.Product, error) {
	var p models.Product
	err := database.QueryRowContext(ctx, `
SELECT id, name, description, price, added_by, created_at
FROM products WHERE id = $1`, id).
		Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.AddedBy, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("product not found")
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func ListProducts(ctx context.Context, database *sql.DB) ([]models.Product, error) {
	rows, err := database.QueryContext(ctx, `
SELECT id, name, description, price, added_by, created_at
FROM products ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []models.Product
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.AddedBy, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
