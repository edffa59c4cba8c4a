package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, b *Booking) error
	GetByID(ctx context.Context, id string) (*Booking, error)
	List(ctx context.Context, filter Filter) ([]*Booking, int, error)

	// ListByFieldDate returns every booking of the field on the given day,
	// ordered by start time. Status filtering is left to the callers so the
	// conflict rules live in one place.
	ListByFieldDate(ctx context.Context, fieldID string, date time.Time) ([]*Booking, error)

	// UpdateStatus transitions a booking from one status to another
	// atomically: the row is only updated when it still holds the expected
	// status, so racing transitions cannot stack.
	UpdateStatus(ctx context.Context, id string, from, to Status) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, b *Booking) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.bookings").
		Columns("user_id", "field_id", "booking_date", "start_minute", "end_minute",
			"hours", "total_price", "status", "note").
		Values(b.UserID, b.FieldID, b.BookingDate, int(b.StartTime), int(b.EndTime),
			b.Hours, b.TotalPrice, b.Status, b.Note).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create booking query failed: %w", err)
	}

	return r.pool.QueryRow(ctx, query, args...).
		Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
}

func bookingSelect() squirrel.SelectBuilder {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	return psql.Select(
		"b.id", "b.user_id", "COALESCE(u.display_name, u.email)", "b.field_id", "f.name",
		"b.booking_date", "b.start_minute", "b.end_minute",
		"b.hours", "b.total_price", "b.status", "b.note", "b.created_at", "b.updated_at",
	).
		From("public.bookings b").
		Join("public.users u ON b.user_id = u.id").
		Join("public.fields f ON b.field_id = f.id")
}

func scanBooking(row pgx.Row, extra ...any) (*Booking, error) {
	var b Booking
	var startMinute, endMinute int

	dest := []any{
		&b.ID, &b.UserID, &b.UserName, &b.FieldID, &b.FieldName,
		&b.BookingDate, &startMinute, &endMinute,
		&b.Hours, &b.TotalPrice, &b.Status, &b.Note, &b.CreatedAt, &b.UpdatedAt,
	}
	dest = append(dest, extra...)

	if err := row.Scan(dest...); err != nil {
		return nil, err
	}

	b.StartTime = TimeOfDay(startMinute)
	b.EndTime = TimeOfDay(endMinute)
	return &b, nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Booking, error) {
	query, args, err := bookingSelect().
		Where(squirrel.Eq{"b.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get booking query failed: %w", err)
	}

	b, err := scanBooking(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get booking failed: %w", err)
	}
	return b, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	query := bookingSelect().
		Column("count(*) OVER() as total_count")

	if filter.UserID != "" {
		query = query.Where(squirrel.Eq{"b.user_id": filter.UserID})
	}
	if filter.FieldID != "" {
		query = query.Where(squirrel.Eq{"b.field_id": filter.FieldID})
	}
	if filter.Status != "" {
		query = query.Where(squirrel.Eq{"b.status": filter.Status})
	}
	if filter.DateFrom != nil {
		query = query.Where(squirrel.GtOrEq{"b.booking_date": filter.DateFrom})
	}
	if filter.DateTo != nil {
		query = query.Where(squirrel.LtOrEq{"b.booking_date": filter.DateTo})
	}

	query = query.OrderBy("b.booking_date DESC", "b.start_minute ASC")

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
		return nil, 0, fmt.Errorf("build list bookings query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list bookings failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	var total int

	for rows.Next() {
		b, err := scanBooking(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("scan booking failed: %w", err)
		}
		bookings = append(bookings, b)
	}

	return bookings, total, nil
}

func (r *pgxRepository) ListByFieldDate(ctx context.Context, fieldID string, date time.Time) ([]*Booking, error) {
	query, args, err := bookingSelect().
		Where(squirrel.Eq{"b.field_id": fieldID}).
		Where(squirrel.Eq{"b.booking_date": date}).
		OrderBy("b.start_minute ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list bookings by day query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list bookings by day failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scan booking failed: %w", err)
		}
		bookings = append(bookings, b)
	}

	return bookings, nil
}

func (r *pgxRepository) UpdateStatus(ctx context.Context, id string, from, to Status) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.bookings").
		Set("status", to).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": from}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update booking status query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update booking status failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		// Row is gone or a concurrent transition got there first.
		return ErrInvalidTransition
	}
	return nil
}
