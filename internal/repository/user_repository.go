package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Freeeeeet/bridal_booking/internal/model"
	"github.com/Freeeeeet/bridal_booking/internal/repository/base"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrEmailExists возвращается когда email уже занят другим пользователем
var ErrEmailExists = errors.New("email already exists")

type UserRepository struct {
	*base.Repository
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{Repository: base.NewRepository(pool)}
}

// Create создаёт нового пользователя
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	query := `
		INSERT INTO users (username, email, password_hash, phone)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := r.QueryRow(
		ctx, query,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.Phone,
	).Scan(&user.ID, &user.CreatedAt)

	if err != nil {
		// Гонку двух одновременных регистраций решает
		// уникальное ограничение на email
		if base.IsUniqueViolation(err) {
			return ErrEmailExists
		}
		return fmt.Errorf("create user: %w", err)
	}

	return nil
}

// GetByEmail получает пользователя по email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `
		SELECT id, username, email, password_hash, phone, created_at
		FROM users
		WHERE email = $1
	`

	var user model.User
	err := r.QueryRow(ctx, query, email).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.Phone,
		&user.CreatedAt,
	)

	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil // Пользователь не найден
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}

	return &user, nil
}
