package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/carbonsaathi/carbonsaathi-api/internal/domain/entity"
	"github.com/carbonsaathi/carbonsaathi-api/internal/domain/repository"
)

const pgUniqueViolation = "23505"

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

// Create persists u and fills in the store-assigned id and creation time.
// The unique index on email is the authority on duplicates: a violation maps
// to ErrEmailTaken even when a prior existence check already passed.
func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (first_name, last_name, email, role, password_hash,
			company_name, company_size, company_industry, main_goal, heard_from, agree_terms)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at
	`, u.FirstName, u.LastName, u.Email, u.Role, u.Password,
		u.Company.Name, u.Company.Size, u.Company.Industry, u.MainGoal, u.HeardFrom, u.AgreeTerms)

	if err := row.Scan(&u.ID, &u.CreatedAt); err != nil {
		if isUniqueViolation(err) {
			return repository.ErrEmailTaken
		}
		return err
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return r.getBy(ctx, `WHERE id = $1`, id)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.getBy(ctx, `WHERE email = $1`, entity.NormalizeEmail(email))
}

func (r *UserRepository) getBy(ctx context.Context, where string, arg any) (*entity.User, error) {
	u := &entity.User{}
	row := r.pool.QueryRow(ctx, `
		SELECT id, first_name, last_name, email, role, password_hash,
			company_name, company_size, company_industry, main_goal, heard_from, agree_terms, created_at
		FROM users `+where, arg)

	if err := row.Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.Role, &u.Password,
		&u.Company.Name, &u.Company.Size, &u.Company.Industry, &u.MainGoal, &u.HeardFrom,
		&u.AgreeTerms, &u.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

func isUniqueViolation(err error) bool {
	var pge *pgconn.PgError
	if errors.As(err, &pge) {
		return pge.Code == pgUniqueViolation
	}
	return false
}

var _ repository.UserRepository = (*UserRepository)(nil)
