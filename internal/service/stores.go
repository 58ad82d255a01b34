package service

import (
	"context"

	"github.com/Freeeeeet/bridal_booking/internal/model"
)

// Интерфейсы хранилищ. Реализации на pgx живут в internal/repository,
// сервисы зависят только от контрактов

type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	GetByEmail(ctx context.Context, email string) (*model.User, error)
}

type DressStore interface {
	GetAll(ctx context.Context) ([]*model.Dress, error)
	GetByID(ctx context.Context, id int64) (*model.Dress, error)
}

type BookingStore interface {
	Create(ctx context.Context, booking *model.Booking) error
	SlotOccupied(ctx context.Context, date, slot string) (bool, error)
	GetByID(ctx context.Context, id int64) (*model.Booking, error)
	GetByUserID(ctx context.Context, userID int64) ([]*model.Booking, error)
	CancelByOwner(ctx context.Context, id, userID int64) (*model.Booking, error)
	ConfirmPending(ctx context.Context, id int64) (*model.Booking, error)
}
