package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/deva-prakash-j/lurniq-api/domain"
)

// SingleUseTokenRepositoryImpl implements domain.SingleUseTokenRepository
// using GORM. Replace and Consume run inside database transactions; the
// used flag is claimed with a guarded UPDATE so concurrent redeemers race on
// the row and exactly one wins.
type SingleUseTokenRepositoryImpl struct {
	db *gorm.DB
}

// DBSingleUseToken represents the database model for SingleUseToken
type DBSingleUseToken struct {
	ID        uint      `gorm:"primaryKey"`
	Secret    string    `gorm:"column:token;uniqueIndex;size:64;not null"`
	Purpose   string    `gorm:"size:32;index:idx_user_purpose;not null"`
	UserID    uint      `gorm:"index:idx_user_purpose;not null"`
	CreatedAt time.Time `gorm:"index"`
	ExpiresAt time.Time `gorm:"index;not null"`
	Used      bool      `gorm:"not null;default:false"`
	UsedAt    *time.Time
}

// TableName returns the table name for GORM
func (DBSingleUseToken) TableName() string {
	return "single_use_tokens"
}

// NewSingleUseTokenRepository creates a new single-use token repository
func NewSingleUseTokenRepository(db *gorm.DB) domain.SingleUseTokenRepository {
	return &SingleUseTokenRepositoryImpl{db: db}
}

// Replace implements domain.SingleUseTokenRepository. Delete-before-insert in
// one transaction keeps at most one outstanding token per (user, purpose).
func (r *SingleUseTokenRepositoryImpl) Replace(ctx context.Context, token *domain.SingleUseToken) error {
	return dbFromContext(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("user_id = ? AND purpose = ?", token.UserID, string(token.Purpose)).
			Delete(&DBSingleUseToken{}).Error; err != nil {
			return err
		}

		dbToken := r.domainToDB(token)
		if err := tx.Create(dbToken).Error; err != nil {
			return err
		}
		token.ID = dbToken.ID
		token.CreatedAt = dbToken.CreatedAt
		return nil
	})
}

// FindBySecret implements domain.SingleUseTokenRepository
func (r *SingleUseTokenRepositoryImpl) FindBySecret(ctx context.Context, secret string, purpose domain.TokenPurpose) (*domain.SingleUseToken, error) {
	var dbToken DBSingleUseToken
	err := dbFromContext(ctx, r.db).
		Where("token = ? AND purpose = ?", secret, string(purpose)).
		First(&dbToken).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrTokenNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbToken), nil
}

// Consume implements domain.SingleUseTokenRepository. The guarded UPDATE on
// used=false is the linearization point: of N concurrent calls with the same
// secret exactly one observes RowsAffected==1 and runs the effect; the rest
// fail ErrTokenAlreadyUsed and the transaction rolls back any partial work.
func (r *SingleUseTokenRepositoryImpl) Consume(ctx context.Context, secret string, purpose domain.TokenPurpose, now time.Time, effect func(txCtx context.Context, token *domain.SingleUseToken) error) (*domain.SingleUseToken, error) {
	var consumed *domain.SingleUseToken

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var dbToken DBSingleUseToken
		if err := tx.
			Where("token = ? AND purpose = ?", secret, string(purpose)).
			First(&dbToken).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return domain.ErrTokenNotFound
			}
			return err
		}

		if dbToken.Used {
			return domain.ErrTokenAlreadyUsed
		}
		if !now.Before(dbToken.ExpiresAt) {
			return domain.ErrTokenExpired
		}

		res := tx.Model(&DBSingleUseToken{}).
			Where("id = ? AND used = ?", dbToken.ID, false).
			Updates(map[string]interface{}{"used": true, "used_at": now})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrTokenAlreadyUsed
		}

		dbToken.Used = true
		dbToken.UsedAt = &now
		consumed = r.dbToDomain(&dbToken)

		if effect != nil {
			if err := effect(ContextWithTx(ctx, tx), consumed); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return consumed, nil
}

// HasOutstanding implements domain.SingleUseTokenRepository
func (r *SingleUseTokenRepositoryImpl) HasOutstanding(ctx context.Context, userID uint, purpose domain.TokenPurpose, now time.Time) (bool, error) {
	var count int64
	err := dbFromContext(ctx, r.db).Model(&DBSingleUseToken{}).
		Where("user_id = ? AND purpose = ? AND used = ? AND expires_at > ?",
			userID, string(purpose), false, now).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// DeleteExpired implements domain.SingleUseTokenRepository. Only rows whose
// expiry predates the cutoff are removed, so the sweep can never race a
// still-redeemable token.
func (r *SingleUseTokenRepositoryImpl) DeleteExpired(ctx context.Context, cutoff time.Time) (int64, error) {
	res := dbFromContext(ctx, r.db).
		Where("expires_at < ?", cutoff).
		Delete(&DBSingleUseToken{})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

func (r *SingleUseTokenRepositoryImpl) domainToDB(token *domain.SingleUseToken) *DBSingleUseToken {
	return &DBSingleUseToken{
		ID:        token.ID,
		Secret:    token.Secret,
		Purpose:   string(token.Purpose),
		UserID:    token.UserID,
		ExpiresAt: token.ExpiresAt,
		Used:      token.Used,
		UsedAt:    token.UsedAt,
	}
}

func (r *SingleUseTokenRepositoryImpl) dbToDomain(dbToken *DBSingleUseToken) *domain.SingleUseToken {
	return &domain.SingleUseToken{
		ID:        dbToken.ID,
		Secret:    dbToken.Secret,
		Purpose:   domain.TokenPurpose(dbToken.Purpose),
		UserID:    dbToken.UserID,
		CreatedAt: dbToken.CreatedAt,
		ExpiresAt: dbToken.ExpiresAt,
		Used:      dbToken.Used,
		UsedAt:    dbToken.UsedAt,
	}
}
