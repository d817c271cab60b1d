package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

func RegisterUser(
	name string,
	email string,
	password string,
	passwordHasher PasswordHasher,
	now time.Time,
) (User, error) {
	passwordHash, err := passwordHasher.HashPassword(password)
	if err != nil {
		return User{}, err
	}

	return User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    now,
	}, nil
}

func (u *User) Authenticate(password string, passwordHasher PasswordHasher) error {
	if err := passwordHasher.Verify(u.PasswordHash, password); err != nil {
		return fmt.Errorf("authentication failed: %s", err.Error())
	}

	return nil
}
