package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/Knnivedh/job-rec/internal/database"
	"github.com/Knnivedh/job-rec/internal/domain/user"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

// UserRepository keeps prepared statements on the database/sql view of the
// pool. Call Close when done.
type UserRepository struct {
	stmtCreate     *sql.Stmt
	stmtGetByID    *sql.Stmt
	stmtGetByEmail *sql.Stmt
	stmtExists     *sql.Stmt
}

const userColumns = `id, email, password_hash, full_name, created_at, updated_at`

func NewUserRepository(ctx context.Context, db database.DB) (*UserRepository, error) {
	if db == nil || db.SQLDB() == nil {
		return nil, database.ErrNilDB
	}
	sqldb := db.SQLDB()
	r := &UserRepository{}

	prepare := func(dst **sql.Stmt, query string) error {
		s, err := sqldb.PrepareContext(ctx, query)
		if err != nil {
			return err
		}
		*dst = s
		return nil
	}

	queries := []struct {
		dst   **sql.Stmt
		query string
	}{
		{&r.stmtCreate, `INSERT INTO users (id, email, password_hash, full_name)
			VALUES ($1, $2, $3, $4)
			RETURNING ` + userColumns},
		{&r.stmtGetByID, `SELECT ` + userColumns + ` FROM users WHERE id = $1`},
		{&r.stmtGetByEmail, `SELECT ` + userColumns + ` FROM users WHERE email = $1`},
		{&r.stmtExists, `SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)`},
	}
	for _, q := range queries {
		if err := prepare(q.dst, q.query); err != nil {
			_ = r.Close()
			return nil, err
		}
	}
	return r, nil
}

func (r *UserRepository) Close() error {
	var firstErr error
	for _, s := range []*sql.Stmt{r.stmtCreate, r.stmtGetByID, r.stmtGetByEmail, r.stmtExists} {
		if s == nil {
			continue
		}
		if err := s.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (r *UserRepository) Create(ctx context.Context, u user.User) (user.User, error) {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	row := r.stmtCreate.QueryRowContext(ctx, u.ID, normalizeEmail(u.Email), u.PasswordHash, u.FullName)
	created, err := scanUser(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return user.User{}, user.ErrEmailTaken
		}
		return user.User{}, err
	}
	return created, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (user.User, error) {
	return scanUser(r.stmtGetByID.QueryRowContext(ctx, id))
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (user.User, error) {
	return scanUser(r.stmtGetByEmail.QueryRowContext(ctx, normalizeEmail(email)))
}

func (r *UserRepository) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	if err := r.stmtExists.QueryRowContext(ctx, id).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func scanUser(row database.Row) (user.User, error) {
	var u user.User
	if err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.FullName, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, err
	}
	return u, nil
}

var _ user.Repository = (*UserRepository)(nil)
