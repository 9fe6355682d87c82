package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgconn"
	pgx "github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/AlibekovAA/event-registration/internal/common/db"
	"github.com/AlibekovAA/event-registration/internal/user/domain"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// appendRegistrationSQL inserts nothing when the (user_id, event_name)
// unique constraint already holds the pair.
const appendRegistrationSQL = `INSERT INTO registrations (user_id, event_name, registered_at)
	 VALUES ($1, $2, $3)
	 ON CONFLICT (user_id, event_name) DO NOTHING`

type PgRepository struct {
	pool *pgxpool.Pool
}

func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

func (r *PgRepository) Create(ctx context.Context, user domain.User) error {
	start := time.Now()
	updatedAt := user.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = user.CreatedAt
	}

	_, err := r.pool.Exec(
		ctx,
		`INSERT INTO users (id, name, email, password_hash, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		string(user.ID),
		user.Name,
		user.Email,
		user.PasswordHash,
		user.CreatedAt,
		updatedAt,
	)
	if err != nil {
		if pgErrorCode(err) == pgUniqueViolation {
			db.MeasureQueryDuration("create_user", "users", start)
			return ErrEmailAlreadyExists
		}
		return db.HandleExecError(err, "create_user", "users", start)
	}

	db.MeasureQueryDuration("create_user", "users", start)
	return nil
}

func (r *PgRepository) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	return r.findOne(ctx, "find_user_by_email", `WHERE email = $1`, email)
}

func (r *PgRepository) FindByID(ctx context.Context, id domain.ID) (domain.User, error) {
	return r.findOne(ctx, "find_user_by_id", `WHERE id = $1`, string(id))
}

func (r *PgRepository) findOne(ctx context.Context, operation, where string, arg string) (domain.User, error) {
	start := time.Now()
	row := r.pool.QueryRow(
		ctx,
		`SELECT id, name, email, password_hash, created_at, updated_at FROM users `+where,
		arg,
	)

	var (
		user domain.User
		id   string
	)
	err := row.Scan(&id, &user.Name, &user.Email, &user.PasswordHash, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return domain.User{}, db.HandleQueryError(err, ErrUserNotFound, operation, "users", start)
	}
	db.MeasureQueryDuration(operation, "users", start)
	user.ID = domain.ID(id)

	regs, err := listRegistrations(ctx, r.pool, user.ID)
	if err != nil {
		return domain.User{}, err
	}
	user.Registrations = regs

	return user, nil
}

func (r *PgRepository) AppendRegistration(ctx context.Context, id domain.ID, reg domain.Registration) ([]domain.Registration, error) {
	start := time.Now()

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, db.HandleExecError(err, "begin_append_registration", "registrations", start)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	tag, err := tx.Exec(ctx, appendRegistrationSQL, string(id), reg.EventName, reg.RegisteredAt)
	if err := appendOutcome(tag, err); err != nil {
		if errors.Is(err, ErrUserNotFound) || errors.Is(err, ErrAlreadyRegistered) {
			db.MeasureQueryDuration("append_registration", "registrations", start)
			return nil, err
		}
		return nil, db.HandleExecError(err, "append_registration", "registrations", start)
	}

	if _, err := tx.Exec(ctx, `UPDATE users SET updated_at = $2 WHERE id = $1`, string(id), reg.RegisteredAt); err != nil {
		return nil, db.HandleExecError(err, "touch_user", "users", start)
	}

	regs, err := listRegistrations(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, db.HandleExecError(err, "commit_append_registration", "registrations", start)
	}

	db.MeasureQueryDuration("append_registration", "registrations", start)
	return regs, nil
}

func (r *PgRepository) ListSummaries(ctx context.Context) ([]domain.Summary, error) {
	start := time.Now()
	rows, err := r.pool.Query(
		ctx,
		`SELECT u.id, u.name, u.email, r.event_name, r.registered_at
		 FROM users u
		 LEFT JOIN registrations r ON r.user_id = u.id
		 ORDER BY u.created_at ASC, u.id ASC, r.id ASC`,
	)
	if err != nil {
		return nil, db.HandleQueryError(err, nil, "list_user_summaries", "users", start)
	}
	defer rows.Close()

	summaries := make([]domain.Summary, 0)
	var lastID string
	for rows.Next() {
		var (
			id, name, email string
			eventName       *string
			registeredAt    *time.Time
		)
		if err := rows.Scan(&id, &name, &email, &eventName, &registeredAt); err != nil {
			return nil, fmt.Errorf("failed to scan user summary: %w", err)
		}

		if len(summaries) == 0 || id != lastID {
			summaries = append(summaries, domain.Summary{
				Name:          name,
				Email:         email,
				Registrations: []domain.Registration{},
			})
			lastID = id
		}

		if eventName != nil && registeredAt != nil {
			last := &summaries[len(summaries)-1]
			last.Registrations = append(last.Registrations, domain.Registration{
				EventName:    *eventName,
				RegisteredAt: *registeredAt,
			})
		}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	db.MeasureQueryDuration("list_user_summaries", "users", start)
	return summaries, nil
}

// appendOutcome classifies the result of appendRegistrationSQL. A foreign
// key violation means the user row is gone; zero affected rows means the pair
// was already present.
func appendOutcome(tag pgconn.CommandTag, err error) error {
	if err != nil {
		if pgErrorCode(err) == pgForeignKeyViolation {
			return ErrUserNotFound
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrAlreadyRegistered
	}
	return nil
}

func pgErrorCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

type querier interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
}

func listRegistrations(ctx context.Context, q querier, id domain.ID) ([]domain.Registration, error) {
	start := time.Now()
	rows, err := q.Query(
		ctx,
		`SELECT event_name, registered_at FROM registrations WHERE user_id = $1 ORDER BY id ASC`,
		string(id),
	)
	if err != nil {
		return nil, db.HandleQueryError(err, nil, "list_registrations", "registrations", start)
	}
	defer rows.Close()

	regs := make([]domain.Registration, 0)
	for rows.Next() {
		var reg domain.Registration
		if err := rows.Scan(&reg.EventName, &reg.RegisteredAt); err != nil {
			return nil, fmt.Errorf("failed to scan registration: %w", err)
		}
		regs = append(regs, reg)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	db.MeasureQueryDuration("list_registrations", "registrations", start)
	return regs, nil
}
