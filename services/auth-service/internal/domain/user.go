package domain

import "time"

type User struct {
	ID           string    `gorm:"primaryKey"`
	Username     string    `gorm:"uniqueIndex"`
	PasswordHash string
	CreatedAt    time.Time
}
