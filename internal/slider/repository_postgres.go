package slider

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

const (
	sliderColumns = `id, title, description, image, sort_order, is_active, created_at, updated_at`

	listSlidersQuery       = `SELECT ` + sliderColumns + ` FROM sliders ORDER BY sort_order ASC, created_at ASC`
	listActiveSlidersQuery = `SELECT ` + sliderColumns + ` FROM sliders WHERE is_active = TRUE ORDER BY sort_order ASC, created_at ASC`
	getSliderQuery         = `SELECT ` + sliderColumns + ` FROM sliders WHERE id = $1`
	insertSliderQuery      = `INSERT INTO sliders (` + sliderColumns + `) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`
	updateSliderQuery      = `
		UPDATE sliders
		SET title = $1, description = $2, image = $3, sort_order = $4, is_active = $5, updated_at = $6
		WHERE id = $7
	`
	setOrderQuery = `
		UPDATE sliders SET sort_order = $1, updated_at = $2
		WHERE id = $3
		RETURNING ` + sliderColumns
	deleteSliderQuery = `DELETE FROM sliders WHERE id = $1`
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List(ctx context.Context, activeOnly bool) ([]Slider, error) {
	q := listSlidersQuery
	if activeOnly {
		q = listActiveSlidersQuery
	}
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Slider, 0)
	for rows.Next() {
		s, err := scanSlider(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (Slider, error) {
	s, err := scanSlider(r.db.QueryRowContext(ctx, getSliderQuery, id))
	if errors.Is(err, sql.ErrNoRows) {
		return Slider{}, ErrNotFound
	}
	return s, err
}

func (r *PostgresRepository) Create(ctx context.Context, s Slider) (Slider, error) {
	_, err := r.db.ExecContext(ctx, insertSliderQuery,
		s.ID, s.Title, s.Description, s.Image, s.Order, s.IsActive, s.CreatedAt, s.UpdatedAt)
	if err != nil {
		return Slider{}, err
	}
	return s, nil
}

func (r *PostgresRepository) Update(ctx context.Context, s Slider) (Slider, error) {
	res, err := r.db.ExecContext(ctx, updateSliderQuery,
		s.Title, s.Description, s.Image, s.Order, s.IsActive, s.UpdatedAt, s.ID)
	if err != nil {
		return Slider{}, err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return Slider{}, ErrNotFound
	}
	return s, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, deleteSliderQuery, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) SetOrder(ctx context.Context, id string, order int, at time.Time) (Slider, error) {
	s, err := scanSlider(r.db.QueryRowContext(ctx, setOrderQuery, order, at, id))
	if errors.Is(err, sql.ErrNoRows) {
		return Slider{}, ErrNotFound
	}
	return s, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSlider(scanner rowScanner) (Slider, error) {
	var (
		s    Slider
		desc sql.NullString
	)
	if err := scanner.Scan(&s.ID, &s.Title, &desc, &s.Image, &s.Order, &s.IsActive, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return Slider{}, err
	}
	if desc.Valid {
		s.Description = &desc.String
	}
	return s, nil
}
