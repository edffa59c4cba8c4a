package field

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, f *Field) error
	GetByID(ctx context.Context, id string) (*Field, error)
	List(ctx context.Context, filter Filter) ([]*Field, int, error)
	Update(ctx context.Context, f *Field) error
	Delete(ctx context.Context, id string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, f *Field) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.fields").
		Columns("name", "sport_type", "description", "capacity", "price_per_hour", "image_path", "status").
		Values(f.Name, f.SportType, f.Description, f.Capacity, f.PricePerHour, f.ImagePath, f.Status).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create field query failed: %w", err)
	}

	return r.pool.QueryRow(ctx, query, args...).
		Scan(&f.ID, &f.CreatedAt, &f.UpdatedAt)
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Field, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(
		"id", "name", "sport_type", "description", "capacity",
		"price_per_hour", "image_path", "status", "created_at", "updated_at",
	).
		From("public.fields").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get field query failed: %w", err)
	}

	row := r.pool.QueryRow(ctx, query, args...)

	var f Field
	if err := row.Scan(
		&f.ID, &f.Name, &f.SportType, &f.Description, &f.Capacity,
		&f.PricePerHour, &f.ImagePath, &f.Status, &f.CreatedAt, &f.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get field failed: %w", err)
	}
	return &f, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Field, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"id", "name", "sport_type", "description", "capacity",
		"price_per_hour", "image_path", "status", "created_at", "updated_at",
		"count(*) OVER() as total_count",
	).
		From("public.fields")

	if filter.SportType != "" {
		query = query.Where(squirrel.Eq{"sport_type": filter.SportType})
	}
	if filter.Status != "" {
		query = query.Where(squirrel.Eq{"status": filter.Status})
	}

	query = query.OrderBy("name ASC")

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	offset := (filter.Page - 1) * filter.PageSize

	query = query.Limit(uint64(filter.PageSize)).Offset(uint64(offset))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list fields query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list fields failed: %w", err)
	}
	defer rows.Close()

	var fields []*Field
	var total int

	for rows.Next() {
		var f Field
		if err := rows.Scan(
			&f.ID, &f.Name, &f.SportType, &f.Description, &f.Capacity,
			&f.PricePerHour, &f.ImagePath, &f.Status, &f.CreatedAt, &f.UpdatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan field failed: %w", err)
		}
		fields = append(fields, &f)
	}

	return fields, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, f *Field) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.fields").
		Set("name", f.Name).
		Set("sport_type", f.SportType).
		Set("description", f.Description).
		Set("capacity", f.Capacity).
		Set("price_per_hour", f.PricePerHour).
		Set("image_path", f.ImagePath).
		Set("status", f.Status).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": f.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update field query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update field failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.fields").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete field query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete field failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
