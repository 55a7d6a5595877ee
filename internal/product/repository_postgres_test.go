package product

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

var productRowColumns = []string{"id", "name", "price", "original_price", "image_front", "image_back", "image_detail",
	"anime", "category", "sizes", "is_new", "discount", "is_active", "created_at", "updated_at"}

func TestBuildListQuery(t *testing.T) {
	q, args := buildListQuery(Filter{Search: "luffy", Anime: "One Piece", OnSale: true, Sort: SortPriceHigh, Limit: 500})
	for _, want := range []string{
		"is_active = TRUE",
		"(name ILIKE $1 OR anime ILIKE $1 OR category ILIKE $1)",
		"anime = $2",
		"(discount > 0 OR original_price > price)",
		"ORDER BY price DESC",
		"LIMIT $3",
	} {
		if !regexp.MustCompile(regexp.QuoteMeta(want)).MatchString(q) {
			t.Fatalf("query %q missing %q", q, want)
		}
	}
	if len(args) != 3 || args[0] != "%luffy%" || args[2] != MaxListLimit {
		t.Fatalf("unexpected args %v", args)
	}
}

func TestPostgresList(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows(productRowColumns).
		AddRow("3f0a3c58-1d8e-4b4f-9d5e-0f9b0e7f7a01", "Gojo", 29.99, 39.99, "https://cdn/x.jpg", nil, nil,
			"Jujutsu Kaisen", "normal", "{M,L,XL}", true, 25, true, now, now)
	mock.ExpectQuery("SELECT id, name").WithArgs(100).WillReturnRows(rows)

	items, err := repo.List(context.Background(), Filter{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 product, got %d", len(items))
	}
	p := items[0]
	if p.OriginalPrice == nil || *p.OriginalPrice != 39.99 {
		t.Fatalf("unexpected original price %v", p.OriginalPrice)
	}
	if p.Images.Back != nil || p.FrontImage() != "https://cdn/x.jpg" {
		t.Fatalf("unexpected images %+v", p.Images)
	}
	if len(p.Sizes) != 3 || p.Sizes[2] != "XL" {
		t.Fatalf("unexpected sizes %v", p.Sizes)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPostgresGetByID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectQuery("FROM products WHERE id").WithArgs("missing").WillReturnRows(sqlmock.NewRows(productRowColumns))

	if _, err := repo.GetByID(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPostgresUpdateAndDelete_NoRows(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectExec("UPDATE products").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("DELETE FROM products WHERE id").WithArgs("gone").WillReturnResult(sqlmock.NewResult(0, 0))

	if _, err := repo.Update(context.Background(), Product{ID: "gone", Sizes: []string{}}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on update, got %v", err)
	}
	if err := repo.Delete(context.Background(), "gone"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on delete, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPostgresReset_Transaction(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM products").WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec("INSERT INTO products").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO products").WillReturnError(errors.New("boom"))
	mock.ExpectRollback()

	err = repo.Reset(context.Background(), []Product{{ID: "a", Sizes: []string{"M"}}, {ID: "b", Sizes: []string{"L"}}})
	if err == nil {
		t.Fatalf("expected insert failure to abort reset")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
