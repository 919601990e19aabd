package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"retailpulse/internal/models"
)

type InventoryRepository interface {
	Create(ctx context.Context, entry *models.InventoryEntry) error
	List(ctx context.Context, limit, offset int) ([]*models.InventoryEntry, error)
	ListByProduct(ctx context.Context, productID uuid.UUID) ([]*models.InventoryEntry, error)
	ListAll(ctx context.Context) ([]*models.InventoryEntry, error)
}

const (
	inventoryColumns = `id, product_id, purchase_price, quantity_received, date_purchased, grn_number, created_at`

	insertInventoryEntryQuery = `
		INSERT INTO inventory_entries (id, product_id, purchase_price, quantity_received, date_purchased, grn_number, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING created_at`

	listInventoryEntriesQuery = `SELECT ` + inventoryColumns + ` FROM inventory_entries ORDER BY created_at DESC, id LIMIT $1 OFFSET $2`

	listInventoryByProductQuery = `SELECT ` + inventoryColumns + ` FROM inventory_entries WHERE product_id = $1 ORDER BY created_at DESC, id`

	listAllInventoryEntriesQuery = `SELECT ` + inventoryColumns + ` FROM inventory_entries ORDER BY created_at DESC, id`
)

type inventoryRepo struct {
	db Database
}

func NewInventoryRepo(db Database) InventoryRepository {
	return &inventoryRepo{db: db}
}

func (r *inventoryRepo) Create(ctx context.Context, entry *models.InventoryEntry) error {
	err := r.db.QueryRow(ctx, insertInventoryEntryQuery,
		entry.ID, entry.ProductID, entry.PurchasePrice, entry.QuantityReceived, entry.DatePurchased, entry.GRNNumber,
	).Scan(&entry.CreatedAt)
	return mapError("insert inventory entry", err)
}

func (r *inventoryRepo) List(ctx context.Context, limit, offset int) ([]*models.InventoryEntry, error) {
	rows, err := r.db.Query(ctx, listInventoryEntriesQuery, limit, offset)
	if err != nil {
		return nil, mapError("list inventory entries", err)
	}
	return collectInventoryEntries(rows)
}

func (r *inventoryRepo) ListByProduct(ctx context.Context, productID uuid.UUID) ([]*models.InventoryEntry, error) {
	rows, err := r.db.Query(ctx, listInventoryByProductQuery, productID)
	if err != nil {
		return nil, mapError("list inventory entries by product", err)
	}
	return collectInventoryEntries(rows)
}

func (r *inventoryRepo) ListAll(ctx context.Context) ([]*models.InventoryEntry, error) {
	rows, err := r.db.Query(ctx, listAllInventoryEntriesQuery)
	if err != nil {
		return nil, mapError("list all inventory entries", err)
	}
	return collectInventoryEntries(rows)
}

func collectInventoryEntries(rows pgx.Rows) ([]*models.InventoryEntry, error) {
	defer rows.Close()

	entries := []*models.InventoryEntry{}
	for rows.Next() {
		e := &models.InventoryEntry{}
		if err := rows.Scan(&e.ID, &e.ProductID, &e.PurchasePrice, &e.QuantityReceived, &e.DatePurchased, &e.GRNNumber, &e.CreatedAt); err != nil {
			return nil, mapError("scan inventory entry", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError("iterate inventory entries", err)
	}
	return entries, nil
}
