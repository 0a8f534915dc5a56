// Package auth implements registration and credential verification on top of
// a storage.Provider. Passwords are stored only as bcrypt hashes.
package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"prodhub/internal/models"
	"prodhub/internal/storage"
	"prodhub/internal/validation"
)

// HashPassword returns the bcrypt hash of a plaintext password.
func HashPassword(password string) ([]byte, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	return hash, nil
}

// Register validates the fields, hashes the password and creates the user.
// A username or email collision surfaces as storage.ErrDuplicate.
func Register(store storage.Provider, username, email, password string) (models.User, error) {
	if err := validation.Username(username); err != nil {
		return models.User{}, err
	}
	if err := validation.Email(email); err != nil {
		return models.User{}, err
	}
	if err := validation.Password(password); err != nil {
		return models.User{}, err
	}

	hash, err := HashPassword(password)
	if err != nil {
		return models.User{}, err
	}

	return store.CreateUser(username, email, hash)
}

// Authenticate verifies a username/password pair. The failure is uniform:
// an unknown username and a wrong password both return
// storage.ErrInvalidCredentials so callers cannot probe for accounts.
func Authenticate(store storage.Provider, username, password string) (models.User, error) {
	user, err := store.GetUserByUsername(username)
	if err != nil {
		return models.User{}, err
	}
	if user == nil {
		// Burn a comparison anyway so the timing of the two failure paths
		// stays close.
		_ = bcrypt.CompareHashAndPassword([]byte("$2a$10$0000000000000000000000uGZwE1Zy0S1sxasTn9vXMC40cOZJGO6"), []byte(password))
		return models.User{}, storage.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return models.User{}, storage.ErrInvalidCredentials
		}
		return models.User{}, err
	}

	return *user, nil
}
