package users

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) *Repo { return &Repo{pool: pool} }

const userColumns = `id, telegram_id, username, first_name, last_name, phone, role, created_at, updated_at`

func scanUser(row pgx.Row) (*User, error) {
	var u User
	if err := row.Scan(&u.ID, &u.TelegramID, &u.Username, &u.FirstName, &u.LastName, &u.Phone, &u.Role, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByTelegramID возвращает nil, nil если пользователя нет.
func (r *Repo) GetByTelegramID(ctx context.Context, tgID int64) (*User, error) {
	u, err := scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE telegram_id = $1`, tgID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return u, err
}

// UpsertFromTelegram Upsert по Telegram-профилю. Если пользователь уже admin, не понижаем роль.
func (r *Repo) UpsertFromTelegram(ctx context.Context, tg Telegram, role Role) (*User, error) {
	return scanUser(r.pool.QueryRow(ctx, `
		INSERT INTO users (telegram_id, username, first_name, last_name, role)
		VALUES ($1,$2,$3,$4,$5)
		ON CONFLICT (telegram_id)
		DO UPDATE SET
			username   = EXCLUDED.username,
			first_name = EXCLUDED.first_name,
			last_name  = EXCLUDED.last_name,
			role       = CASE WHEN users.role = 'admin' THEN users.role ELSE EXCLUDED.role END,
			updated_at = now()
		RETURNING `+userColumns,
		tg.ID, tg.Username, tg.FirstName, tg.LastName, role))
}

// SetPhone запоминает телефон из заявки, чтобы не спрашивать второй раз.
func (r *Repo) SetPhone(ctx context.Context, tgID int64, phone string) error {
	_, err := r.pool.Exec(ctx, `UPDATE users SET phone = $2, updated_at = now() WHERE telegram_id = $1`, tgID, phone)
	return err
}

func (r *Repo) SetRole(ctx context.Context, tgID int64, role Role) error {
	_, err := r.pool.Exec(ctx, `UPDATE users SET role = $2, updated_at = now() WHERE telegram_id = $1`, tgID, role)
	return err
}

func (r *Repo) ListAdmins(ctx context.Context) ([]User, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+userColumns+` FROM users WHERE role = 'admin' ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *u)
	}
	return out, rows.Err()
}
