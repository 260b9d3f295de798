package auth

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/deva-prakash-j/lurniq-api/domain"
)

// JWTServiceImpl implements domain.TokenService with a single symmetric
// signing key. Validation is fully stateless: signature plus expiry, no
// server-side lookup.
type JWTServiceImpl struct {
	secretKey       []byte
	issuer          string
	accessTokenTTL  time.Duration
	refreshTokenTTL time.Duration
	clock           domain.Clock
}

// NewJWTService creates a new JWT service
func NewJWTService(secretKey, issuer string, accessTTL, refreshTTL time.Duration, clock domain.Clock) domain.TokenService {
	return &JWTServiceImpl{
		secretKey:       []byte(secretKey),
		issuer:          issuer,
		accessTokenTTL:  accessTTL,
		refreshTokenTTL: refreshTTL,
		clock:           clock,
	}
}

// generateJTI creates a unique JWT ID
func (j *JWTServiceImpl) generateJTI() string {
	bytes := make([]byte, 16)
	rand.Read(bytes)
	return hex.EncodeToString(bytes)
}

// GenerateAccessToken implements domain.TokenService
func (j *JWTServiceImpl) GenerateAccessToken(email string, role domain.Role) (string, error) {
	return j.generate(email, role, domain.KindAccess, j.accessTokenTTL)
}

// GenerateRefreshToken implements domain.TokenService
func (j *JWTServiceImpl) GenerateRefreshToken(email string, role domain.Role) (string, error) {
	return j.generate(email, role, domain.KindRefresh, j.refreshTokenTTL)
}

func (j *JWTServiceImpl) generate(email string, role domain.Role, kind domain.TokenKind, ttl time.Duration) (string, error) {
	now := j.clock.Now()
	claims := jwt.MapClaims{
		"sub":  email,
		"role": string(role),
		"kind": string(kind),
		"iss":  j.issuer,
		"iat":  now.Unix(),
		"exp":  now.Add(ttl).Unix(),
		"jti":  j.generateJTI(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.secretKey)
}

// ValidateToken implements domain.TokenService. Signature integrity is
// checked before expiry so that forged tokens never reach the expiry path.
func (j *JWTServiceImpl) ValidateToken(tokenString string) (*domain.TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domain.ErrTokenMalformed
		}
		return j.secretKey, nil
	}, jwt.WithoutClaimsValidation())

	if err != nil {
		if errors.Is(err, jwt.ErrTokenMalformed) {
			return nil, domain.ErrTokenMalformed
		}
		return nil, domain.ErrTokenInvalid
	}
	if !token.Valid {
		return nil, domain.ErrTokenInvalid
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, domain.ErrTokenMalformed
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return nil, domain.ErrTokenMalformed
	}
	role, ok := claims["role"].(string)
	if !ok {
		return nil, domain.ErrTokenMalformed
	}
	kind, ok := claims["kind"].(string)
	if !ok {
		return nil, domain.ErrTokenMalformed
	}
	iat, ok := claims["iat"].(float64)
	if !ok {
		return nil, domain.ErrTokenMalformed
	}
	exp, ok := claims["exp"].(float64)
	if !ok {
		return nil, domain.ErrTokenMalformed
	}

	if !j.clock.Now().Before(time.Unix(int64(exp), 0)) {
		return nil, domain.ErrTokenExpired
	}

	return &domain.TokenClaims{
		Subject:   sub,
		Role:      domain.Role(role),
		Kind:      domain.TokenKind(kind),
		IssuedAt:  int64(iat),
		ExpiresAt: int64(exp),
	}, nil
}

// ExtractSubject implements domain.TokenService. The signature is NOT
// verified; the result is only usable for pre-validation lookups.
func (j *JWTServiceImpl) ExtractSubject(tokenString string) (string, error) {
	token, _, err := jwt.NewParser().ParseUnverified(tokenString, jwt.MapClaims{})
	if err != nil {
		return "", domain.ErrTokenMalformed
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", domain.ErrTokenMalformed
	}
	sub, ok := claims["sub"].(string)
	if !ok {
		return "", domain.ErrTokenMalformed
	}
	return sub, nil
}
