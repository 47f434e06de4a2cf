package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"order-service/internal/domain"
	"order-service/internal/repository"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
)

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

type AuthService struct {
	users      repository.UserRepository
	secret     []byte
	method     jwt.SigningMethod
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewAuthService(users repository.UserRepository, secret, algorithm string, accessTTL, refreshTTL time.Duration) (*AuthService, error) {
	method := jwt.GetSigningMethod(algorithm)
	if method == nil {
		return nil, fmt.Errorf("unknown signing algorithm %q", algorithm)
	}
	return &AuthService{
		users:      users,
		secret:     []byte(secret),
		method:     method,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}, nil
}

func (s *AuthService) Register(ctx context.Context, email, password string) (*domain.User, error) {
	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{Email: email, HashedPassword: string(hash)}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return user, nil
}

// Login verifies the credentials and issues an access+refresh token pair.
// The same error covers unknown email and wrong password.
func (s *AuthService) Login(ctx context.Context, email, password string) (*TokenPair, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}

	access, err := s.signToken(user.Email, s.accessTTL)
	if err != nil {
		return nil, err
	}
	refresh, err := s.signToken(user.Email, s.refreshTTL)
	if err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh, TokenType: "bearer"}, nil
}

// Refresh issues a new access token from a valid refresh token. The
// refresh token itself is returned unchanged.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	email, err := s.subject(refreshToken)
	if err != nil {
		return nil, ErrInvalidToken
	}

	access, err := s.signToken(email, s.accessTTL)
	if err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: access, RefreshToken: refreshToken, TokenType: "bearer"}, nil
}

// CurrentUser resolves the user behind an access token.
func (s *AuthService) CurrentUser(ctx context.Context, token string) (*domain.User, error) {
	email, err := s.subject(token)
	if err != nil {
		return nil, ErrInvalidToken
	}
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidToken
	}
	return user, nil
}

func (s *AuthService) signToken(email string, ttl time.Duration) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   email,
		ExpiresAt: jwt.NewNumericDate(time.Now().UTC().Add(ttl)),
	}
	return jwt.NewWithClaims(s.method, claims).SignedString(s.secret)
}

func (s *AuthService) subject(token string) (string, error) {
	parsed, err := jwt.Parse(token,
		func(t *jwt.Token) (any, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{s.method.Alg()}),
	)
	if err != nil || !parsed.Valid {
		return "", ErrInvalidToken
	}
	sub, err := parsed.Claims.GetSubject()
	if err != nil || sub == "" {
		return "", ErrInvalidToken
	}
	return sub, nil
}
