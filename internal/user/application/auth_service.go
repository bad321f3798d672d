package application

import (
	"context"
	"errors"
	"math"
	"time"

	"go.uber.org/zap"

	sharedCache "github.com/davicafu/gymlab/internal/shared/infra/platform/cache"
	"github.com/davicafu/gymlab/internal/user/domain"
)

// AuthService emite y revoca tokens de sesión. La revocación se guarda en la
// caché hasta que el token caduca.
type AuthService struct {
	repo   domain.UserRepository
	tokens domain.TokenIssuer
	cache  sharedCache.Cache
	log    *zap.Logger
	now    func() time.Time
}

func NewAuthService(repo domain.UserRepository, tokens domain.TokenIssuer, cache sharedCache.Cache, log *zap.Logger) *AuthService {
	return &AuthService{repo: repo, tokens: tokens, cache: cache, log: log, now: time.Now}
}

// Login devuelve ErrInvalidCredentials tanto si el usuario no existe como si
// la contraseña no coincide.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	u, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}
	if err := u.CheckPassword(password); err != nil {
		s.log.Info("Login fallido", zap.String("username", username))
		return "", nil, err
	}

	token, _, err := s.tokens.Issue(u)
	if err != nil {
		return "", nil, err
	}
	s.log.Info("Login", zap.Int64("user_id", u.ID))
	return token, u, nil
}

// Authenticate valida el token y comprueba que no se haya cerrado la sesión.
func (s *AuthService) Authenticate(ctx context.Context, token string) (domain.Claims, error) {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return domain.Claims{}, err
	}
	if s.cache != nil {
		var revoked bool
		hit, err := s.cache.Get(ctx, domain.RevokedKey(claims.TokenID), &revoked)
		if err != nil {
			s.log.Warn("Revocation lookup failed", zap.Error(err))
		}
		if hit && revoked {
			return domain.Claims{}, domain.ErrTokenRevoked
		}
	}
	return claims, nil
}

// Logout revoca el token. Cerrar un token ya cerrado no es un error.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return err
	}
	if s.cache == nil {
		return nil
	}

	ttl := int(math.Ceil(claims.ExpiresAt.Sub(s.now()).Seconds()))
	if ttl <= 0 {
		return nil
	}
	if err := s.cache.Set(ctx, domain.RevokedKey(claims.TokenID), true, ttl); err != nil {
		return err
	}
	s.log.Info("Logout", zap.Int64("user_id", claims.UserID))
	return nil
}
