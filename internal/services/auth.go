package services

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/transferdesk/advising-backend/internal/apierr"
	"github.com/transferdesk/advising-backend/internal/logger"
	"github.com/transferdesk/advising-backend/internal/repos"
	"github.com/transferdesk/advising-backend/internal/requestdata"
	"github.com/transferdesk/advising-backend/internal/sessions"
	"github.com/transferdesk/advising-backend/internal/types"
)

type AuthService interface {
	Register(ctx context.Context, tx *gorm.DB, email, password, role string) (*types.User, error)
	Login(ctx context.Context, email, password string) (string, *types.User, error)
	Logout(ctx context.Context) error
	// SetContextFromToken validates the bearer token against its redis
	// session and injects the request identity into the context.
	SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
}

type accessClaims struct {
	Role      string `json:"role"`
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

type authService struct {
	db           *gorm.DB
	log          *logger.Logger
	userRepo     repos.UserRepo
	sessionStore sessions.Store
	jwtSecretKey string
	accessTTL    time.Duration
}

func NewAuthService(
	db *gorm.DB,
	baseLog *logger.Logger,
	userRepo repos.UserRepo,
	sessionStore sessions.Store,
	jwtSecretKey string,
	accessTTL time.Duration,
) AuthService {
	return &authService{
		db:           db,
		log:          baseLog.With("service", "AuthService"),
		userRepo:     userRepo,
		sessionStore: sessionStore,
		jwtSecretKey: jwtSecretKey,
		accessTTL:    accessTTL,
	}
}

func (s *authService) Register(ctx context.Context, tx *gorm.DB, email, password, role string) (*types.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, apierr.InvalidInput("invalid email")
	}
	if password == "" {
		return nil, apierr.InvalidInput("a password is required")
	}
	if role != requestdata.RoleAdmin && role != requestdata.RoleAdvisor {
		return nil, apierr.InvalidInput("role must be admin or advisor")
	}

	exists, err := s.userRepo.EmailExists(ctx, tx, email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if exists {
		return nil, apierr.InvalidInput("email is already in use")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user := &types.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(hashed),
		Role:         role,
	}
	if _, err := s.userRepo.Create(ctx, tx, []*types.User{user}); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	s.log.Info("Registered user", "user_id", user.ID, "role", role)
	return user, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (string, *types.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if _, err := mail.ParseAddress(email); err != nil {
		return "", nil, apierr.InvalidInput("invalid email")
	}

	users, err := s.userRepo.GetByEmails(ctx, nil, []string{email})
	if err != nil {
		return "", nil, fmt.Errorf("load user: %w", err)
	}
	if len(users) == 0 {
		return "", nil, apierr.Unauthorized("invalid credentials")
	}
	user := users[0]
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, apierr.Unauthorized("invalid credentials")
	}

	sessionID, err := s.sessionStore.Create(ctx, user.ID, user.Role)
	if err != nil {
		return "", nil, err
	}
	token, err := s.mintAccessToken(user, sessionID)
	if err != nil {
		return "", nil, err
	}
	s.log.Info("User logged in", "user_id", user.ID, "session_id", sessionID)
	return token, user, nil
}

func (s *authService) Logout(ctx context.Context) error {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.SessionID == "" {
		return apierr.Unauthorized("not authenticated")
	}
	if err := s.sessionStore.Delete(ctx, rd.SessionID); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	return nil
}

func (s *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
	claims := &accessClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(s.jwtSecretKey), nil
	})
	if err != nil || !token.Valid {
		return ctx, apierr.Unauthorized("invalid token")
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return ctx, apierr.Unauthorized("invalid token subject")
	}

	sess, err := s.sessionStore.Get(ctx, claims.SessionID)
	if err != nil {
		return ctx, err
	}
	if sess.UserID != userID {
		return ctx, apierr.Unauthorized("session does not match token")
	}

	return requestdata.WithRequestData(ctx, &requestdata.RequestData{
		UserID:    userID,
		Role:      sess.Role,
		SessionID: claims.SessionID,
	}), nil
}

func (s *authService) mintAccessToken(user *types.User, sessionID string) (string, error) {
	now := time.Now()
	claims := accessClaims{
		Role:      user.Role,
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.jwtSecretKey))
	if err != nil {
		return "", fmt.Errorf("sign access token: %w", err)
	}
	return signed, nil
}
