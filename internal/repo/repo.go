package repo

import (
	"errors"

	"gorm.io/gorm"
)

var (
	ErrUserAlreadyExists = errors.New("user with this username or email already exists")
	ErrUserNotFound      = errors.New("user not found")
	ErrTaskNotFound      = errors.New("task not found")
)

type GormRepo struct {
	DB *gorm.DB
}
