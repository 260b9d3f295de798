package repositories

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/deva-prakash-j/lurniq-api/domain"
)

// UserRepositoryImpl implements domain.UserRepository using GORM
type UserRepositoryImpl struct {
	db *gorm.DB
}

// DBUser represents the database model for User (with GORM tags)
type DBUser struct {
	ID             uint      `gorm:"primaryKey"`
	Email          string    `gorm:"uniqueIndex;size:255;not null"`
	PasswordHash   string    `gorm:"column:password"`
	FirstName      string    `gorm:"size:128"`
	LastName       string    `gorm:"size:128"`
	ProfilePicture string    `gorm:"size:512"`
	Role           string    `gorm:"index;size:32"`
	Provider       string    `gorm:"size:32;index:idx_provider_subject"`
	ProviderID     string    `gorm:"size:255;index:idx_provider_subject"`
	EmailVerified  bool      `gorm:"index"`
	CreatedAt      time.Time `gorm:"index"`
	UpdatedAt      time.Time
}

// TableName returns the table name for GORM
func (DBUser) TableName() string {
	return "users"
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) domain.UserRepository {
	return &UserRepositoryImpl{db: db}
}

// Create implements domain.UserRepository
func (r *UserRepositoryImpl) Create(ctx context.Context, user *domain.User) error {
	dbUser := r.domainToDB(user)
	if err := dbFromContext(ctx, r.db).Create(dbUser).Error; err != nil {
		return err
	}
	user.ID = dbUser.ID
	user.CreatedAt = dbUser.CreatedAt
	user.UpdatedAt = dbUser.UpdatedAt
	return nil
}

// FindByEmail implements domain.UserRepository. Emails compare
// case-insensitively but are stored as submitted.
func (r *UserRepositoryImpl) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var dbUser DBUser
	err := dbFromContext(ctx, r.db).Where("LOWER(email) = ?", strings.ToLower(email)).First(&dbUser).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbUser), nil
}

// FindByID implements domain.UserRepository
func (r *UserRepositoryImpl) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	var dbUser DBUser
	err := dbFromContext(ctx, r.db).Where("id = ?", id).First(&dbUser).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbUser), nil
}

// FindByProvider implements domain.UserRepository
func (r *UserRepositoryImpl) FindByProvider(ctx context.Context, provider domain.AuthProvider, providerID string) (*domain.User, error) {
	var dbUser DBUser
	err := dbFromContext(ctx, r.db).
		Where("provider = ? AND provider_id = ?", string(provider), providerID).
		First(&dbUser).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbUser), nil
}

// ExistsByEmail implements domain.UserRepository
func (r *UserRepositoryImpl) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := dbFromContext(ctx, r.db).Model(&DBUser{}).
		Where("LOWER(email) = ?", strings.ToLower(email)).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Update implements domain.UserRepository
func (r *UserRepositoryImpl) Update(ctx context.Context, user *domain.User) error {
	dbUser := r.domainToDB(user)
	return dbFromContext(ctx, r.db).Save(dbUser).Error
}

// MarkEmailVerified implements domain.UserRepository
func (r *UserRepositoryImpl) MarkEmailVerified(ctx context.Context, userID uint) error {
	return dbFromContext(ctx, r.db).Model(&DBUser{}).
		Where("id = ?", userID).
		Update("email_verified", true).Error
}

// UpdatePassword implements domain.UserRepository
func (r *UserRepositoryImpl) UpdatePassword(ctx context.Context, userID uint, passwordHash string) error {
	return dbFromContext(ctx, r.db).Model(&DBUser{}).
		Where("id = ?", userID).
		Update("password", passwordHash).Error
}

func (r *UserRepositoryImpl) domainToDB(user *domain.User) *DBUser {
	return &DBUser{
		ID:             user.ID,
		Email:          user.Email,
		PasswordHash:   user.PasswordHash,
		FirstName:      user.FirstName,
		LastName:       user.LastName,
		ProfilePicture: user.ProfilePicture,
		Role:           string(user.Role),
		Provider:       string(user.Provider),
		ProviderID:     user.ProviderID,
		EmailVerified:  user.EmailVerified,
	}
}

func (r *UserRepositoryImpl) dbToDomain(dbUser *DBUser) *domain.User {
	return &domain.User{
		ID:             dbUser.ID,
		Email:          dbUser.Email,
		PasswordHash:   dbUser.PasswordHash,
		FirstName:      dbUser.FirstName,
		LastName:       dbUser.LastName,
		ProfilePicture: dbUser.ProfilePicture,
		Role:           domain.Role(dbUser.Role),
		Provider:       domain.AuthProvider(dbUser.Provider),
		ProviderID:     dbUser.ProviderID,
		EmailVerified:  dbUser.EmailVerified,
		CreatedAt:      dbUser.CreatedAt,
		UpdatedAt:      dbUser.UpdatedAt,
	}
}
