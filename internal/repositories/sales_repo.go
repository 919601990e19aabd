package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"retailpulse/internal/models"
)

type SalesRepository interface {
	Create(ctx context.Context, sale *models.Sale) error
	List(ctx context.Context, limit, offset int) ([]*models.Sale, error)
	ListByProduct(ctx context.Context, productID uuid.UUID) ([]*models.Sale, error)
	// ListByDateRange returns sales with date_sold in [start, end], oldest first, so the dashboard trend reads chronologically.
	ListByDateRange(ctx context.Context, start, end time.Time) ([]*models.Sale, error)
	ListAll(ctx context.Context) ([]*models.Sale, error)
}

const (
	saleColumns = `id, product_id, sales_price, quantity_sold, date_sold, created_at`

	insertSaleQuery = `
		INSERT INTO sales (id, product_id, sales_price, quantity_sold, date_sold, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING created_at`

	listSalesQuery = `SELECT ` + saleColumns + ` FROM sales ORDER BY created_at DESC, id LIMIT $1 OFFSET $2`

	listSalesByProductQuery = `SELECT ` + saleColumns + ` FROM sales WHERE product_id = $1 ORDER BY date_sold DESC, id`

	listSalesByDateRangeQuery = `SELECT ` + saleColumns + ` FROM sales WHERE date_sold >= $1 AND date_sold <= $2 ORDER BY date_sold ASC, id`

	listAllSalesQuery = `SELECT ` + saleColumns + ` FROM sales ORDER BY date_sold DESC, id`
)

type salesRepo struct {
	db Database
}

func NewSalesRepo(db Database) SalesRepository {
	return &salesRepo{db: db}
}

func (r *salesRepo) Create(ctx context.Context, sale *models.Sale) error {
	err := r.db.QueryRow(ctx, insertSaleQuery,
		sale.ID, sale.ProductID, sale.SalesPrice, sale.QuantitySold, sale.DateSold,
	).Scan(&sale.CreatedAt)
	return mapError("insert sale", err)
}

func (r *salesRepo) List(ctx context.Context, limit, offset int) ([]*models.Sale, error) {
	rows, err := r.db.Query(ctx, listSalesQuery, limit, offset)
	if err != nil {
		return nil, mapError("list sales", err)
	}
	return collectSales(rows)
}

func (r *salesRepo) ListByProduct(ctx context.Context, productID uuid.UUID) ([]*models.Sale, error) {
	rows, err := r.db.Query(ctx, listSalesByProductQuery, productID)
	if err != nil {
		return nil, mapError("list sales by product", err)
	}
	return collectSales(rows)
}

func (r *salesRepo) ListByDateRange(ctx context.Context, start, end time.Time) ([]*models.Sale, error) {
	rows, err := r.db.Query(ctx, listSalesByDateRangeQuery, start, end)
	if err != nil {
		return nil, mapError("list sales by date range", err)
	}
	return collectSales(rows)
}

func (r *salesRepo) ListAll(ctx context.Context) ([]*models.Sale, error) {
	rows, err := r.db.Query(ctx, listAllSalesQuery)
	if err != nil {
		return nil, mapError("list all sales", err)
	}
	return collectSales(rows)
}

func collectSales(rows pgx.Rows) ([]*models.Sale, error) {
	defer rows.Close()

	sales := []*models.Sale{}
	for rows.Next() {
		s := &models.Sale{}
		if err := rows.Scan(&s.ID, &s.ProductID, &s.SalesPrice, &s.QuantitySold, &s.DateSold, &s.CreatedAt); err != nil {
			return nil, mapError("scan sale", err)
		}
		sales = append(sales, s)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError("iterate sales", err)
	}
	return sales, nil
}
