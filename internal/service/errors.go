package service

import "errors"

// Ошибки уровня сервисов. Транспорт переводит их в HTTP статусы,
// всё остальное считается ошибкой хранилища и уходит клиенту как 500
var (
	ErrValidation = errors.New("missing or malformed required fields")

	ErrEmailTaken = errors.New("email already registered")

	// Одно сообщение для несуществующего email и неверного пароля -
	// нельзя дать понять какой из двух случаев произошёл
	ErrInvalidCredentials = errors.New("invalid email or password")

	// Просроченный и подделанный токен снаружи неразличимы
	ErrInvalidToken = errors.New("invalid token")

	// Используется и для чужих бронирований, чтобы не раскрывать их существование
	ErrNotFound = errors.New("not found")

	ErrSlotTaken = errors.New("slot already booked")

	ErrNotPending = errors.New("booking is not pending")
)
