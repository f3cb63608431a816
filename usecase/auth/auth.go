package auth

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/swolemates/backend/domain"
	"github.com/swolemates/backend/repository"
)

// Credentials is what a successful login or refresh hands back: the redis
// session record and a signed bearer token the middleware accepts.
type Credentials struct {
	Session *domain.Session `json:"session"`
	Token   string          `json:"token"`
}

type UseCase struct {
	users    repository.UserRepository
	sessions repository.SessionRepository
	secret   []byte
	issuer   string
	logger   *zap.Logger
}

func New(users repository.UserRepository, sessions repository.SessionRepository, secret, issuer string, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		users:    users,
		sessions: sessions,
		secret:   []byte(secret),
		issuer:   issuer,
		logger:   logger,
	}
}

// Login opens a session for a registered user and mints the matching JWT.
// Credential verification happens upstream; this layer only validates
// existence and issues the session record plus token.
func (uc *UseCase) Login(ctx context.Context, userID string, ttl time.Duration) (*Credentials, error) {
	if userID == "" {
		return nil, domain.ErrInvalidPayload
	}
	if _, err := uc.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	now := time.Now()
	session := &domain.Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
	if err := uc.sessions.Save(ctx, session); err != nil {
		return nil, err
	}

	token, err := uc.signToken(userID, session.ExpiresAt)
	if err != nil {
		return nil, err
	}

	uc.logger.Info("session opened", zap.String("user_id", userID))
	return &Credentials{Session: session, Token: token}, nil
}

// Refresh extends an existing, unexpired session and re-issues the token
// with the new expiry.
func (uc *UseCase) Refresh(ctx context.Context, sessionID string, ttl time.Duration) (*Credentials, error) {
	session, err := uc.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.IsExpired(time.Now()) {
		return nil, domain.ErrSessionNotFound
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	session.ExpiresAt = time.Now().Add(ttl)
	if err := uc.sessions.Save(ctx, session); err != nil {
		return nil, err
	}

	token, err := uc.signToken(session.UserID, session.ExpiresAt)
	if err != nil {
		return nil, err
	}
	return &Credentials{Session: session, Token: token}, nil
}

// Logout removes the session.
func (uc *UseCase) Logout(ctx context.Context, sessionID string) error {
	return uc.sessions.Delete(ctx, sessionID)
}

func (uc *UseCase) signToken(userID string, expiresAt time.Time) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"exp":     expiresAt.Unix(),
		"iat":     time.Now().Unix(),
	}
	if uc.issuer != "" {
		claims["iss"] = uc.issuer
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(uc.secret)
	if err != nil {
		return "", domain.WrapError(domain.ErrCodeInternal, "failed to sign token", err)
	}
	return signed, nil
}
