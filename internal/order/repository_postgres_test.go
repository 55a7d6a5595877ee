package order

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
)

var orderRowColumns = []string{"id", "order_no", "order_type", "customer", "items", "totals", "status", "version", "created_at", "updated_at"}

func orderRow(rows *sqlmock.Rows, orderNo, status string, version int) *sqlmock.Rows {
	now := time.Now()
	return rows.AddRow("b1", orderNo, "cart",
		[]byte(`{"fullName":"Rahim","phone":"01712345678","address":"a","city":"Dhaka","postalCode":"1"}`),
		[]byte(`[{"name":"Tee","price":17.5,"quantity":2}]`),
		[]byte(`{"itemsCount":2,"subtotal":35,"shipping":80,"total":115}`),
		status, version, now, now)
}

func TestPostgresCreate_DuplicateOrderNo(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectExec("INSERT INTO orders").WillReturnError(&pgconn.PgError{Code: "23505"})
	mock.ExpectExec("INSERT INTO orders").WillReturnError(errors.New("connection reset"))

	if err := repo.Create(context.Background(), Order{OrderNo: "ARXAAAAAA"}); !errors.Is(err, ErrDuplicateOrderNo) {
		t.Fatalf("expected ErrDuplicateOrderNo, got %v", err)
	}
	err = repo.Create(context.Background(), Order{OrderNo: "ARXAAAAAA"})
	if err == nil || errors.Is(err, ErrDuplicateOrderNo) {
		t.Fatalf("expected plain error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPostgresGetByOrderNo(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectQuery("FROM orders WHERE order_no").WithArgs("ARXAAAAAA").
		WillReturnRows(orderRow(sqlmock.NewRows(orderRowColumns), "ARXAAAAAA", "shipped", 4))
	mock.ExpectQuery("FROM orders WHERE order_no").WithArgs("ARXZZZZZZ").
		WillReturnRows(sqlmock.NewRows(orderRowColumns))

	ord, err := repo.GetByOrderNo(context.Background(), "ARXAAAAAA")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ord.Status != StatusShipped || ord.Version != 4 || ord.Customer.FullName != "Rahim" || ord.Totals.Total != 115 {
		t.Fatalf("unexpected order %+v", ord)
	}
	if len(ord.Items) != 1 || ord.Items[0].Quantity != 2 {
		t.Fatalf("unexpected items %+v", ord.Items)
	}
	if _, err := repo.GetByOrderNo(context.Background(), "ARXZZZZZZ"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPostgresUpdateStatus_CompareAndSwap(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)
	at := time.Now()

	// success
	mock.ExpectQuery("UPDATE orders").WithArgs("confirmed", at, "ARXAAAAAA", 1).
		WillReturnRows(orderRow(sqlmock.NewRows(orderRowColumns), "ARXAAAAAA", "confirmed", 2))
	// stale version: no row updated, order exists
	mock.ExpectQuery("UPDATE orders").WithArgs("processing", at, "ARXAAAAAA", 1).
		WillReturnRows(sqlmock.NewRows(orderRowColumns))
	mock.ExpectQuery("FROM orders WHERE order_no").WithArgs("ARXAAAAAA").
		WillReturnRows(orderRow(sqlmock.NewRows(orderRowColumns), "ARXAAAAAA", "confirmed", 2))
	// missing order
	mock.ExpectQuery("UPDATE orders").WithArgs("confirmed", at, "ARXZZZZZZ", 1).
		WillReturnRows(sqlmock.NewRows(orderRowColumns))
	mock.ExpectQuery("FROM orders WHERE order_no").WithArgs("ARXZZZZZZ").
		WillReturnRows(sqlmock.NewRows(orderRowColumns))

	ord, err := repo.UpdateStatus(context.Background(), "ARXAAAAAA", 1, StatusConfirmed, at)
	if err != nil || ord.Version != 2 {
		t.Fatalf("expected version 2, got %+v (%v)", ord, err)
	}
	if _, err := repo.UpdateStatus(context.Background(), "ARXAAAAAA", 1, StatusProcessing, at); !errors.Is(err, ErrVersionConflict) {
		t.Fatalf("expected ErrVersionConflict, got %v", err)
	}
	if _, err := repo.UpdateStatus(context.Background(), "ARXZZZZZZ", 1, StatusConfirmed, at); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPostgresCountByStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectQuery("GROUP BY status").WillReturnRows(
		sqlmock.NewRows([]string{"status", "count"}).AddRow("placed", 3).AddRow("cancelled", 1))

	counts, err := repo.CountByStatus(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if counts[StatusPlaced] != 3 || counts[StatusCancelled] != 1 {
		t.Fatalf("unexpected counts %v", counts)
	}
}

func TestBuildOrderListQuery(t *testing.T) {
	q, args := buildOrderListQuery(ListFilter{Status: StatusPlaced, Search: "0171"})
	if !strings.Contains(q, "status = $1") || !strings.Contains(q, "customer->>'phone' ILIKE $2") {
		t.Fatalf("unexpected query %q", q)
	}
	if !strings.HasSuffix(q, "ORDER BY created_at DESC LIMIT $3") {
		t.Fatalf("expected newest-first ordering, got %q", q)
	}
	if len(args) != 3 || args[2] != DefaultListLimit {
		t.Fatalf("unexpected args %v", args)
	}
}
