package product

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"
)

type PostgresRepository struct {
	db *sql.DB
}

const (
	productColumns = `id, name, price, original_price, image_front, image_back, image_detail,
		anime, category, sizes, is_new, discount, is_active, created_at, updated_at`

	getProductByIDQuery = `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	insertProductQuery  = `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
	`
	updateProductQuery = `
		UPDATE products
		SET name = $1,
			price = $2,
			original_price = $3,
			image_front = $4,
			image_back = $5,
			image_detail = $6,
			anime = $7,
			category = $8,
			sizes = $9,
			is_new = $10,
			discount = $11,
			is_active = $12,
			updated_at = $13
		WHERE id = $14
	`
	deleteProductQuery = `DELETE FROM products WHERE id = $1`
)

var orderByClause = map[string]string{
	SortPriceLow:  "price ASC",
	SortPriceHigh: "price DESC",
	SortName:      "name ASC",
	SortAnime:     "anime ASC",
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// buildListQuery turns a Filter into a parameterised SELECT.
func buildListQuery(f Filter) (string, []any) {
	where := []string{"is_active = TRUE"}
	args := []any{}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		n := len(args)
		where = append(where, fmt.Sprintf("(name ILIKE $%d OR anime ILIKE $%d OR category ILIKE $%d)", n, n, n))
	}
	if f.Anime != "" {
		args = append(args, f.Anime)
		where = append(where, fmt.Sprintf("anime = $%d", len(args)))
	}
	if f.Category != "" {
		args = append(args, f.Category)
		where = append(where, fmt.Sprintf("category = $%d", len(args)))
	}
	if f.IsNew {
		where = append(where, "is_new = TRUE")
	}
	if f.OnSale {
		where = append(where, "(discount > 0 OR original_price > price)")
	}
	order, ok := orderByClause[f.Sort]
	if !ok {
		order = "created_at ASC"
	}
	limit := f.Limit
	if limit <= 0 || limit > MaxListLimit {
		limit = MaxListLimit
	}
	args = append(args, limit)
	q := fmt.Sprintf("SELECT %s FROM products WHERE %s ORDER BY %s LIMIT $%d",
		productColumns, strings.Join(where, " AND "), order, len(args))
	return q, args
}

func (r *PostgresRepository) List(ctx context.Context, f Filter) ([]Product, error) {
	q, args := buildListQuery(f)
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (Product, error) {
	p, err := scanProduct(r.db.QueryRowContext(ctx, getProductByIDQuery, id))
	if errors.Is(err, sql.ErrNoRows) {
		return Product{}, ErrNotFound
	}
	return p, err
}

func (r *PostgresRepository) Create(ctx context.Context, p Product) (Product, error) {
	if _, err := r.db.ExecContext(ctx, insertProductQuery, insertArgs(p)...); err != nil {
		return Product{}, err
	}
	return p, nil
}

func (r *PostgresRepository) Update(ctx context.Context, p Product) (Product, error) {
	result, err := r.db.ExecContext(ctx, updateProductQuery,
		p.Name,
		p.Price,
		p.OriginalPrice,
		p.Images.Front,
		p.Images.Back,
		p.Images.Detail,
		p.Anime,
		p.Category,
		pq.Array(p.Sizes),
		p.IsNew,
		p.Discount,
		p.IsActive,
		p.UpdatedAt,
		p.ID,
	)
	if err != nil {
		return Product{}, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return Product{}, err
	}
	if affected == 0 {
		return Product{}, ErrNotFound
	}
	return p, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, deleteProductQuery, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Reset deletes all products and inserts the provided list in a single transaction.
func (r *PostgresRepository) Reset(ctx context.Context, products []Product) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, `DELETE FROM products`); err != nil {
		return err
	}
	for _, p := range products {
		if _, err := tx.ExecContext(ctx, insertProductQuery, insertArgs(p)...); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func insertArgs(p Product) []any {
	return []any{
		p.ID,
		p.Name,
		p.Price,
		p.OriginalPrice,
		p.Images.Front,
		p.Images.Back,
		p.Images.Detail,
		p.Anime,
		p.Category,
		pq.Array(p.Sizes),
		p.IsNew,
		p.Discount,
		p.IsActive,
		p.CreatedAt,
		p.UpdatedAt,
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(scanner rowScanner) (Product, error) {
	p := Product{}
	var (
		orig                sql.NullFloat64
		front, back, detail sql.NullString
		sizes               pq.StringArray
	)
	if err := scanner.Scan(
		&p.ID,
		&p.Name,
		&p.Price,
		&orig,
		&front,
		&back,
		&detail,
		&p.Anime,
		&p.Category,
		&sizes,
		&p.IsNew,
		&p.Discount,
		&p.IsActive,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return Product{}, err
	}
	if orig.Valid {
		p.OriginalPrice = &orig.Float64
	}
	if front.Valid {
		p.Images.Front = &front.String
	}
	if back.Valid {
		p.Images.Back = &back.String
	}
	if detail.Valid {
		p.Images.Detail = &detail.String
	}
	p.Sizes = []string(sizes)
	if p.Sizes == nil {
		p.Sizes = []string{}
	}
	return p, nil
}
