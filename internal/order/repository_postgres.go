package order

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
)

// uniqueViolation is the Postgres SQLSTATE for unique_violation.
const uniqueViolation = "23505"

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const (
	orderColumns = `id, order_no, order_type, customer, items, totals, status, version, created_at, updated_at`

	insertOrderQuery = `INSERT INTO orders (` + orderColumns + `)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`
	getOrderQuery          = `SELECT ` + orderColumns + ` FROM orders WHERE order_no = $1`
	countByStatusQuery     = `SELECT status, COUNT(*) FROM orders GROUP BY status`
	updateOrderStatusQuery = `UPDATE orders
		SET status = $1, version = version + 1, updated_at = $2
		WHERE order_no = $3 AND version = $4
		RETURNING ` + orderColumns
)

func (r *PostgresRepository) Create(ctx context.Context, ord Order) error {
	customer, err := json.Marshal(ord.Customer)
	if err != nil {
		return err
	}
	items, err := json.Marshal(ord.Items)
	if err != nil {
		return err
	}
	totals, err := json.Marshal(ord.Totals)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, insertOrderQuery,
		ord.ID, ord.OrderNo, ord.OrderType, customer, items, totals,
		string(ord.Status), ord.Version, ord.CreatedAt, ord.UpdatedAt)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return ErrDuplicateOrderNo
	}
	return err
}

func (r *PostgresRepository) GetByOrderNo(ctx context.Context, orderNo string) (Order, error) {
	ord, err := scanOrder(r.db.QueryRowContext(ctx, getOrderQuery, orderNo))
	if errors.Is(err, sql.ErrNoRows) {
		return Order{}, ErrNotFound
	}
	return ord, err
}

func buildOrderListQuery(f ListFilter) (string, []any) {
	f = f.normalized()
	where := []string{}
	args := []any{}
	if f.Status != "" {
		args = append(args, string(f.Status))
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		n := len(args)
		where = append(where, fmt.Sprintf("(order_no ILIKE $%d OR customer->>'fullName' ILIKE $%d OR customer->>'phone' ILIKE $%d)", n, n, n))
	}
	q := `SELECT ` + orderColumns + ` FROM orders`
	if len(where) > 0 {
		q += ` WHERE ` + strings.Join(where, " AND ")
	}
	args = append(args, f.Limit)
	q += fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d`, len(args))
	return q, args
}

func (r *PostgresRepository) List(ctx context.Context, f ListFilter) ([]Order, error) {
	q, args := buildOrderListQuery(f)
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]Order, 0)
	for rows.Next() {
		ord, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, ord)
	}
	return orders, rows.Err()
}

func (r *PostgresRepository) CountByStatus(ctx context.Context) (map[Status]int, error) {
	rows, err := r.db.QueryContext(ctx, countByStatusQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := map[Status]int{}
	for rows.Next() {
		var (
			status string
			n      int
		)
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		counts[Status(status)] = n
	}
	return counts, rows.Err()
}

func (r *PostgresRepository) UpdateStatus(ctx context.Context, orderNo string, expectedVersion int, status Status, at time.Time) (Order, error) {
	ord, err := scanOrder(r.db.QueryRowContext(ctx, updateOrderStatusQuery, string(status), at, orderNo, expectedVersion))
	if errors.Is(err, sql.ErrNoRows) {
		// either the order is missing or someone else bumped the version
		if _, getErr := r.GetByOrderNo(ctx, orderNo); getErr != nil {
			return Order{}, getErr
		}
		return Order{}, ErrVersionConflict
	}
	return ord, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(scanner rowScanner) (Order, error) {
	var (
		ord                     Order
		status                  string
		customer, items, totals []byte
	)
	if err := scanner.Scan(
		&ord.ID,
		&ord.OrderNo,
		&ord.OrderType,
		&customer,
		&items,
		&totals,
		&status,
		&ord.Version,
		&ord.CreatedAt,
		&ord.UpdatedAt,
	); err != nil {
		return Order{}, err
	}
	ord.Status = Status(status)
	if err := json.Unmarshal(customer, &ord.Customer); err != nil {
		return Order{}, fmt.Errorf("decode customer: %w", err)
	}
	if err := json.Unmarshal(items, &ord.Items); err != nil {
		return Order{}, fmt.Errorf("decode items: %w", err)
	}
	if err := json.Unmarshal(totals, &ord.Totals); err != nil {
		return Order{}, fmt.Errorf("decode totals: %w", err)
	}
	return ord, nil
}
