package models

import (
	"time"
)

type User struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Username     string `gorm:"unique;not null"          json:"username"`
	Email        string `gorm:"unique;not null"          json:"email"`
	PasswordHash string `gorm:"not null"                 json:"-"`
}

type Task struct {
	ID          uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	Title       string     `gorm:"size:100;not null"        json:"title"`
	Description *string    `gorm:"size:1000"                json:"description,omitempty"`
	Deadline    *time.Time `json:"deadline,omitempty"`
	Priority    int        `gorm:"default:0"                json:"priority"`
	Done        bool       `gorm:"default:false"            json:"done"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	OwnerID     uint       `gorm:"index;not null"           json:"owner_id"`
	Owner       *User      `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}
