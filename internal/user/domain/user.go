package domain

import (
	"strconv"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	sharedBus "github.com/davicafu/gymlab/internal/shared/infra/platform/bus"
)

// Roles del personal (filterByRole).
const (
	RoleAdmin        = "admin"
	RoleReceptionist = "receptionist"
	RoleTrainer      = "trainer"
)

const (
	passwordCost      = 12
	minPasswordLength = 8
)

// User es un miembro del personal con acceso a la consola.
type User struct {
	ID           int64      `json:"id"`
	Names        string     `json:"names"`
	Username     string     `json:"username"`
	Email        string     `json:"email"`
	Role         string     `json:"role"`
	PasswordHash string     `json:"-"`
	CreatedBy    int64      `json:"createdBy"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
	DeletedAt    *time.Time `json:"deletedAt"`
}

func (u *User) PartitionKey() string {
	return strconv.FormatInt(u.ID, 10)
}

func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleReceptionist || role == RoleTrainer
}

func (u *User) Validate() error {
	if strings.TrimSpace(u.Names) == "" || strings.TrimSpace(u.Username) == "" {
		return ErrInvalidUser
	}
	if !ValidRole(u.Role) {
		return ErrInvalidUser
	}
	return nil
}

// SetPassword guarda el hash bcrypt de la contraseña.
func (u *User) SetPassword(plaintext string) error {
	if len(plaintext) < minPasswordLength {
		return ErrWeakPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), passwordCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

// CheckPassword devuelve ErrInvalidCredentials si la contraseña no coincide.
func (u *User) CheckPassword(plaintext string) error {
	if u.PasswordHash == "" {
		return ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(plaintext)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}

// Claims es lo que viaja dentro del token de sesión.
type Claims struct {
	UserID    int64
	Role      string
	TokenID   string
	ExpiresAt time.Time
}

var _ sharedBus.Keyer = (*User)(nil)
