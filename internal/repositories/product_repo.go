package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"retailpulse/internal/models"
)

type ProductRepository interface {
	Create(ctx context.Context, product *models.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	GetBySKU(ctx context.Context, sku string) (*models.Product, error)
	Update(ctx context.Context, product *models.Product) error
	List(ctx context.Context, limit, offset int) ([]*models.Product, error)
	ListAll(ctx context.Context) ([]*models.Product, error)
}

const (
	productColumns = `id, sku, name, description, created_at, updated_at`

	insertProductQuery = `
		INSERT INTO products (id, sku, name, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING created_at, updated_at`

	selectProductByIDQuery = `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	selectProductBySKUQuery = `SELECT ` + productColumns + ` FROM products WHERE sku = $1`

	updateProductQuery = `
		UPDATE products
		SET name = $1, description = $2, updated_at = NOW()
		WHERE id = $3
		RETURNING updated_at`

	listProductsQuery = `SELECT ` + productColumns + ` FROM products ORDER BY created_at DESC, id LIMIT $1 OFFSET $2`

	listAllProductsQuery = `SELECT ` + productColumns + ` FROM products ORDER BY created_at DESC, id`
)

type productRepo struct {
	db Database
}

func NewProductRepo(db Database) ProductRepository {
	return &productRepo{db: db}
}

func (r *productRepo) Create(ctx context.Context, product *models.Product) error {
	err := r.db.QueryRow(ctx, insertProductQuery, product.ID, product.SKU, product.Name, product.Description).
		Scan(&product.CreatedAt, &product.UpdatedAt)
	return mapError("insert product", err)
}

func (r *productRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	product, err := scanProduct(r.db.QueryRow(ctx, selectProductByIDQuery, id))
	if err != nil {
		return nil, mapError("get product", err)
	}
	return product, nil
}

func (r *productRepo) GetBySKU(ctx context.Context, sku string) (*models.Product, error) {
	product, err := scanProduct(r.db.QueryRow(ctx, selectProductBySKUQuery, sku))
	if err != nil {
		return nil, mapError("get product by sku", err)
	}
	return product, nil
}

func (r *productRepo) Update(ctx context.Context, product *models.Product) error {
	err := r.db.QueryRow(ctx, updateProductQuery, product.Name, product.Description, product.ID).
		Scan(&product.UpdatedAt)
	return mapError("update product", err)
}

func (r *productRepo) List(ctx context.Context, limit, offset int) ([]*models.Product, error) {
	rows, err := r.db.Query(ctx, listProductsQuery, limit, offset)
	if err != nil {
		return nil, mapError("list products", err)
	}
	return collectProducts(rows)
}

func (r *productRepo) ListAll(ctx context.Context) ([]*models.Product, error) {
	rows, err := r.db.Query(ctx, listAllProductsQuery)
	if err != nil {
		return nil, mapError("list all products", err)
	}
	return collectProducts(rows)
}

func scanProduct(row pgx.Row) (*models.Product, error) {
	p := &models.Product{}
	if err := row.Scan(&p.ID, &p.SKU, &p.Name, &p.Description, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return p, nil
}

func collectProducts(rows pgx.Rows) ([]*models.Product, error) {
	defer rows.Close()

	products := []*models.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, mapError("scan product", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError("iterate products", err)
	}
	return products, nil
}
