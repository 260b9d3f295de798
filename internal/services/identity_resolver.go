package services

import (
	"context"
	"fmt"

	"github.com/deva-prakash-j/lurniq-api/domain"
)

// IdentityResolverImpl implements domain.IdentityResolver. Email is the sole
// linking key: a local account and a federated account sharing an email merge
// into one record.
type IdentityResolverImpl struct {
	userRepo domain.UserRepository
}

// NewIdentityResolver creates a new identity resolver
func NewIdentityResolver(userRepo domain.UserRepository) domain.IdentityResolver {
	return &IdentityResolverImpl{userRepo: userRepo}
}

// ResolveOAuthUser implements domain.IdentityResolver. The profile arrives
// already verified by the provider, so the email counts as verified here.
func (r *IdentityResolverImpl) ResolveOAuthUser(ctx context.Context, profile *domain.OAuthProfile, provider domain.AuthProvider) (*domain.User, error) {
	existing, err := r.userRepo.FindByEmail(ctx, profile.Email)
	if err == nil {
		existing.FirstName = profile.FirstName
		existing.LastName = profile.LastName
		existing.ProfilePicture = profile.Picture
		existing.EmailVerified = true
		if err := r.userRepo.Update(ctx, existing); err != nil {
			return nil, fmt.Errorf("failed to update user profile: %w", err)
		}
		return existing, nil
	}
	if err != domain.ErrUserNotFound {
		return nil, err
	}

	user := &domain.User{
		Email:          profile.Email,
		FirstName:      profile.FirstName,
		LastName:       profile.LastName,
		ProfilePicture: profile.Picture,
		Role:           domain.RoleUser,
		Provider:       provider,
		ProviderID:     profile.Subject,
		EmailVerified:  true,
	}
	if err := r.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create federated user: %w", err)
	}
	return user, nil
}
