package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/elprofecharles/registration-api/internal/domain/entity"
	"github.com/elprofecharles/registration-api/internal/domain/repository"
)

const uniqueViolation = "23505"

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

const userColumns = `id, full_name, document_id, phone, email, profession, city,
	department, academic_level, consent_given, registered_at, last_seen_at, is_active`

func scanUser(row pgx.Row) (*entity.User, error) {
	u := &entity.User{}
	if err := row.Scan(&u.ID, &u.FullName, &u.DocumentID, &u.Phone, &u.Email,
		&u.Profession, &u.City, &u.Department, &u.AcademicLevel, &u.ConsentGiven,
		&u.RegisteredAt, &u.LastSeenAt, &u.IsActive); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

// mapUniqueViolation translates unique-index violations into the domain
// duplicate sentinels so the insert itself closes the check-then-act race
// with a concurrent registration.
func mapUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != uniqueViolation {
		return err
	}
	switch pgErr.ConstraintName {
	case "users_document_id_key":
		return repository.ErrDuplicateDocumentID
	case "users_email_key":
		return repository.ErrDuplicateEmail
	}
	return err
}

func (r *UserRepository) Create(u *entity.User) error {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (full_name, document_id, phone, email, profession, city,
			department, academic_level, consent_given)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, registered_at, last_seen_at, is_active
	`, u.FullName, u.DocumentID, u.Phone, u.Email, u.Profession, u.City,
		u.Department, u.AcademicLevel, u.ConsentGiven)

	if err := row.Scan(&u.ID, &u.RegisteredAt, &u.LastSeenAt, &u.IsActive); err != nil {
		return mapUniqueViolation(err)
	}
	return nil
}

func (r *UserRepository) GetByID(id string) (*entity.User, error) {
	return scanUser(r.pool.QueryRow(context.Background(), `
		SELECT `+userColumns+` FROM users WHERE id = $1
	`, id))
}

func (r *UserRepository) GetByDocumentID(documentID string) (*entity.User, error) {
	return scanUser(r.pool.QueryRow(context.Background(), `
		SELECT `+userColumns+` FROM users WHERE document_id = $1
	`, documentID))
}

func (r *UserRepository) GetByEmail(email string) (*entity.User, error) {
	return scanUser(r.pool.QueryRow(context.Background(), `
		SELECT `+userColumns+` FROM users WHERE email = $1
	`, email))
}

func (r *UserRepository) FindByDocumentOrEmail(documentID, email string) (*entity.User, error) {
	return scanUser(r.pool.QueryRow(context.Background(), `
		SELECT `+userColumns+` FROM users WHERE document_id = $1 OR email = $2
		ORDER BY (document_id = $1) DESC
		LIMIT 1
	`, documentID, email))
}

func (r *UserRepository) Update(u *entity.User) error {
	res, err := r.pool.Exec(context.Background(), `
		UPDATE users
		SET full_name = $1, phone = $2, email = $3, profession = $4
		WHERE id = $5
	`, u.FullName, u.Phone, u.Email, u.Profession, u.ID)
	if err != nil {
		return mapUniqueViolation(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *UserRepository) TouchLastSeen(id string) error {
	res, err := r.pool.Exec(context.Background(), `
		UPDATE users SET last_seen_at = now() WHERE id = $1
	`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *UserRepository) Deactivate(id string) error {
	res, err := r.pool.Exec(context.Background(), `
		UPDATE users SET is_active = FALSE WHERE id = $1
	`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *UserRepository) CountActive() (int64, error) {
	var n int64
	err := r.pool.QueryRow(context.Background(), `
		SELECT count(*) FROM users WHERE is_active
	`).Scan(&n)
	return n, err
}

func (r *UserRepository) CountRegisteredSince(t time.Time) (int64, error) {
	var n int64
	err := r.pool.QueryRow(context.Background(), `
		SELECT count(*) FROM users WHERE registered_at >= $1
	`, t).Scan(&n)
	return n, err
}

var _ repository.UserRepository = (*UserRepository)(nil)
