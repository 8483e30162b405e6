package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound  = errors.New("booking not found")
	ErrSlotTaken = errors.New("time slot is already booked")
)

const (
	uniqueViolation = "23505"
	slotConstraint  = "bookings_slot_uniq"
	refConstraint   = "bookings_reference_key"

	// сколько раз сдвигаем номер заявки при совпадении
	maxReferenceRetries = 5
)

type Repo struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) *Repo { return &Repo{pool: pool} }

const bookingColumns = `id, reference, user_id, name, email, phone, event_type, event_date, time_slot,
		guest_count, location, budget, message, source, status, created_at`

// Create сохраняет заявку и проставляет ID/CreatedAt. Reference и Status
// заполняются по умолчанию, если пустые.
func (r *Repo) Create(ctx context.Context, b *Booking) error {
	if b.Reference == "" {
		b.Reference = NewReference(time.Now())
	}
	if b.Status == "" {
		b.Status = StatusPending
	}
	if b.Source == "" {
		b.Source = SourceWebsite
	}
	return createWithRetry(ctx, b, r.insert)
}

// createWithRetry переводит нарушения уникальности в ошибки домена.
// Совпавший номер заявки сдвигается на миллисекунду и вставка повторяется.
func createWithRetry(ctx context.Context, b *Booking, insert func(context.Context, *Booking) error) error {
	for attempt := 0; ; attempt++ {
		err := insert(ctx, b)
		if err == nil {
			return nil
		}
		var pgErr *pgconn.PgError
		if !errors.As(err, &pgErr) || pgErr.Code != uniqueViolation {
			return fmt.Errorf("insert booking: %w", err)
		}
		switch pgErr.ConstraintName {
		case slotConstraint:
			return ErrSlotTaken
		case refConstraint:
			// две заявки в одну миллисекунду: берём следующий номер
			next, ok := nextReference(b.Reference)
			if ok && attempt < maxReferenceRetries {
				b.Reference = next
				continue
			}
		}
		return fmt.Errorf("insert booking: %w", err)
	}
}

func (r *Repo) insert(ctx context.Context, b *Booking) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO bookings (reference, user_id, name, email, phone, event_type, event_date, time_slot,
		                      guest_count, location, budget, message, source, status)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
		RETURNING id, created_at
	`, b.Reference, b.UserID, b.Name, b.Email, b.Phone, b.EventType, b.EventDate, b.TimeSlot,
		b.GuestCount, b.Location, b.Budget, b.Message, string(b.Source), string(b.Status))
	return row.Scan(&b.ID, &b.CreatedAt)
}

func (r *Repo) GetByReference(ctx context.Context, ref string) (*Booking, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE reference = $1`, ref)
	b, err := scanBooking(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return b, nil
}

// List: все заявки, свежие сверху (для выгрузки админу)
func (r *Repo) List(ctx context.Context) ([]Booking, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+bookingColumns+` FROM bookings ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Booking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *b)
	}
	return out, rows.Err()
}

// TakenSlots: слоты на дату, занятые неотменёнными заявками
func (r *Repo) TakenSlots(ctx context.Context, date time.Time) ([]string, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT DISTINCT time_slot FROM bookings
		WHERE event_date = $1 AND status <> 'cancelled' AND time_slot <> ''
	`, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *Repo) SetStatus(ctx context.Context, ref string, st Status) error {
	tag, err := r.pool.Exec(ctx, `UPDATE bookings SET status = $2 WHERE reference = $1`, ref, string(st))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanBooking(row pgx.Row) (*Booking, error) {
	var b Booking
	var source, status string
	if err := row.Scan(&b.ID, &b.Reference, &b.UserID, &b.Name, &b.Email, &b.Phone, &b.EventType,
		&b.EventDate, &b.TimeSlot, &b.GuestCount, &b.Location, &b.Budget, &b.Message,
		&source, &status, &b.CreatedAt); err != nil {
		return nil, err
	}
	b.Source = Source(source)
	b.Status = Status(status)
	return &b, nil
}
