package token

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/davicafu/gymlab/internal/user/domain"
)

const issuer = "gymlab"

type claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// JWTIssuer firma tokens HS256 con un secreto compartido.
type JWTIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewJWTIssuer(secret string, ttl time.Duration) *JWTIssuer {
	return &JWTIssuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (i *JWTIssuer) Issue(u *domain.User) (string, domain.Claims, error) {
	now := i.now()
	c := claims{
		Role: u.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   strconv.FormatInt(u.ID, 10),
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(i.secret)
	if err != nil {
		return "", domain.Claims{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, toDomain(c, u.ID), nil
}

func (i *JWTIssuer) Parse(token string) (domain.Claims, error) {
	var c claims
	_, err := jwt.ParseWithClaims(token, &c,
		func(*jwt.Token) (interface{}, error) { return i.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		return domain.Claims{}, fmt.Errorf("%w: %v", domain.ErrInvalidToken, err)
	}

	userID, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil || userID <= 0 || c.ID == "" {
		return domain.Claims{}, domain.ErrInvalidToken
	}
	return toDomain(c, userID), nil
}

func toDomain(c claims, userID int64) domain.Claims {
	return domain.Claims{
		UserID:    userID,
		Role:      c.Role,
		TokenID:   c.ID,
		ExpiresAt: c.ExpiresAt.Time,
	}
}

var _ domain.TokenIssuer = (*JWTIssuer)(nil)
