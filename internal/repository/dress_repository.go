package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/bridal_booking/internal/model"
	"github.com/Freeeeeet/bridal_booking/internal/repository/base"
	"github.com/jackc/pgx/v5/pgxpool"
)

type DressRepository struct {
	*base.Repository
}

func NewDressRepository(pool *pgxpool.Pool) *DressRepository {
	return &DressRepository{Repository: base.NewRepository(pool)}
}

// GetAll получает все платья каталога
func (r *DressRepository) GetAll(ctx context.Context) ([]*model.Dress, error) {
	query := `
		SELECT id, name, style, price, description, image, created_at
		FROM dresses
		ORDER BY id
	`

	rows, err := r.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("get dresses: %w", err)
	}
	defer rows.Close()

	var dresses []*model.Dress
	for rows.Next() {
		var dress model.Dress
		err := rows.Scan(
			&dress.ID,
			&dress.Name,
			&dress.Style,
			&dress.Price,
			&dress.Description,
			&dress.Image,
			&dress.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan dress: %w", err)
		}
		dresses = append(dresses, &dress)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate dresses: %w", err)
	}

	return dresses, nil
}

// GetByID получает платье по ID
func (r *DressRepository) GetByID(ctx context.Context, id int64) (*model.Dress, error) {
	query := `
		SELECT id, name, style, price, description, image, created_at
		FROM dresses
		WHERE id = $1
	`

	var dress model.Dress
	err := r.QueryRow(ctx, query, id).Scan(
		&dress.ID,
		&dress.Name,
		&dress.Style,
		&dress.Price,
		&dress.Description,
		&dress.Image,
		&dress.CreatedAt,
	)

	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil // Платье не найдено
		}
		return nil, fmt.Errorf("get dress by id: %w", err)
	}

	return &dress, nil
}
