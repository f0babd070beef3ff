package models

import (
	"context"
	"strings"
	"time"

	"github.com/ambershealthcare/placements_backend/utils"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type User struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Email     string    `gorm:"size:255;not null;unique" json:"email"`
	Password  string    `gorm:"size:255;not null" json:"-"`
	Role      UserRole  `gorm:"size:20;not null" json:"role"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

type NewUser struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role" binding:"required"`
}

type AuthResult struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// RegisterUser creates a candidate or employer account. The role is
// immutable after creation; admin cannot be self-registered.
func RegisterUser(ctx context.Context, db *gorm.DB, input *NewUser) (*AuthResult, error) {
	role, err := ParseUserRole(input.Role)
	if err != nil {
		return nil, err
	}
	if role == UserRoleAdmin {
		return nil, utils.NewValidationError("invalid role %q", input.Role)
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	if !utils.IsValidEmail(email) {
		return nil, utils.NewValidationError("invalid email address")
	}

	hashedPassword, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := User{
		Email:    email,
		Password: string(hashedPassword),
		Role:     role,
	}
	if err := db.WithContext(ctx).Create(&user).Error; err != nil {
		if utils.IsDuplicateKeyErr(err) {
			return nil, utils.ErrorConflict
		}
		return nil, err
	}

	token, err := utils.JwtGenerate(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: &user}, nil
}

func LoginUser(ctx context.Context, db *gorm.DB, email string, password string) (*AuthResult, error) {
	var user User
	err := db.WithContext(ctx).Where("email = ?", strings.ToLower(strings.TrimSpace(email))).Take(&user).Error
	if err != nil {
		return nil, utils.ErrorUnauthorized
	}

	if err := utils.ComparePassword(user.Password, password); err != nil {
		if err == bcrypt.ErrMismatchedHashAndPassword {
			return nil, utils.ErrorUnauthorized
		}
		return nil, err
	}

	token, err := utils.JwtGenerate(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: &user}, nil
}

func GetUser(ctx context.Context, db *gorm.DB, id string) (*User, error) {
	var result User
	if err := db.WithContext(ctx).Where("id = ?", id).Take(&result).Error; err != nil {
		return nil, utils.ErrorRecordNotFound
	}
	return &result, nil
}
