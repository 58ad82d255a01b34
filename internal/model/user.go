package model

import "time"

type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Хэш никогда не отдаём наружу
	Phone        string    `json:"phone"`
	CreatedAt    time.Time `json:"created_at"`
}
