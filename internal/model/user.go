package model

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// User roles
const (
	RoleUser     = "user"
	RoleEmployer = "employer"
	RoleAdmin    = "admin"
)

// User represents an account stored in the database. The password is only
// ever stored as a bcrypt hash and never serialized.
type User struct {
	ID                  uint       `json:"id" gorm:"primaryKey"`
	Name                string     `json:"name" gorm:"type:varchar(100)"`
	Email               string     `json:"email" gorm:"type:varchar(100);uniqueIndex"`
	Role                string     `json:"role" gorm:"type:varchar(20);default:user"`
	Password            string     `json:"-" gorm:"type:varchar(255)"`
	CreatedAt           time.Time  `json:"created_at"`
	ResetPasswordToken  string     `json:"-" gorm:"type:varchar(64);index"`
	ResetPasswordExpire *time.Time `json:"-"`
}

// ValidRole reports whether role is one of the known roles.
func ValidRole(role string) bool {
	switch role {
	case RoleUser, RoleEmployer, RoleAdmin:
		return true
	}
	return false
}

// SetPassword hashes and stores the given plaintext password.
func (u *User) SetPassword(plain string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashed)
	return nil
}

// ComparePassword checks a plaintext password against the stored hash.
func (u *User) ComparePassword(plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(plain)) == nil
}

// GenerateResetToken creates a password reset token, stores its sha256 hash
// plus a 30 minute expiry on the user, and returns the raw token.
func (u *User) GenerateResetToken() (string, error) {
	buf := make([]byte, 20)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	raw := hex.EncodeToString(buf)

	u.ResetPasswordToken = HashResetToken(raw)
	expire := time.Now().Add(30 * time.Minute)
	u.ResetPasswordExpire = &expire

	return raw, nil
}

// HashResetToken returns the sha256 hex digest stored for a raw reset token.
func HashResetToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
