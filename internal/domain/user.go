package domain

import (
	"strings"
	"time"
)

type UserStatus string

const (
	UserStatusPending  UserStatus = "PENDING"
	UserStatusVerified UserStatus = "VERIFIED"
	UserStatusBlocked  UserStatus = "BLOCKED"
)

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

type User struct {
	ID           int64      `dynamodbav:"user_id"`
	Email        string     `dynamodbav:"email"`
	EmailKey     string     `dynamodbav:"email_key"`
	PasswordHash string     `dynamodbav:"password_hash"`
	FullName     string     `dynamodbav:"full_name"`
	Balance      Money      `dynamodbav:"balance"`
	Admin        bool       `dynamodbav:"admin"`
	Status       UserStatus `dynamodbav:"status"`
	Birthdate    *time.Time `dynamodbav:"birthdate"`
	AuthProvider string     `dynamodbav:"auth_provider"` // "local" | "google"
	GoogleSub    string     `dynamodbav:"google_sub,omitempty"`
	CreatedAt    time.Time  `dynamodbav:"created_at"`
	UpdatedAt    time.Time  `dynamodbav:"updated_at"`
}

// Role returns the JWT role for u.
func (u *User) Role() string {
	if u.Admin {
		return RoleAdmin
	}
	return RoleUser
}

// EmailKey is the case-insensitive lookup form of an e-mail address. The
// address itself is stored as entered.
func EmailKey(email string) string { return strings.ToLower(strings.TrimSpace(email)) }
