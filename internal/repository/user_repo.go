package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"parkhub/internal/db"
)

type UserRepository struct {
	DB *sql.DB
}

func NewUserRepository(database *sql.DB) *UserRepository {
	return &UserRepository{DB: database}
}

func (r *UserRepository) CreateUser(email, phone, passwordHash, role string) (*db.User, error) {
	var user db.User
	query := `
		INSERT INTO users (email, phone, password_hash, role, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id, email, phone, role, created_at`
	err := r.DB.QueryRow(query, email, phone, passwordHash, role).
		Scan(&user.ID, &user.Email, &user.Phone, &user.Role, &user.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("error inserting user: %w", err)
	}
	user.PasswordHash = passwordHash
	return &user, nil
}

// GetByEmail returns nil without error when no user matches.
func (r *UserRepository) GetByEmail(email string) (*db.User, error) {
	var user db.User
	query := `SELECT id, email, phone, password_hash, role, created_at FROM users WHERE email = $1`
	err := r.DB.QueryRow(query, email).
		Scan(&user.ID, &user.Email, &user.Phone, &user.PasswordHash, &user.Role, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error querying user by email: %w", err)
	}
	return &user, nil
}

func (r *UserRepository) GetByID(id int) (*db.User, error) {
	var user db.User
	query := `SELECT id, email, phone, password_hash, role, created_at FROM users WHERE id = $1`
	err := r.DB.QueryRow(query, id).
		Scan(&user.ID, &user.Email, &user.Phone, &user.PasswordHash, &user.Role, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error querying user by id: %w", err)
	}
	return &user, nil
}
