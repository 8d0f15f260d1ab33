// Package auth implements email/password accounts and opaque bearer tokens
// backed by Postgres.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
	ErrWeakPassword       = errors.New("password must be at least 6 characters")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

const pgUniqueViolation = "23505"

type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type Session struct {
	Token     string    `json:"access_token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      User      `json:"user"`
}

type Service struct {
	db  *pgxpool.Pool
	log *slog.Logger
	ttl time.Duration
}

func NewService(pool *pgxpool.Pool, logger *slog.Logger, ttl time.Duration) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if ttl <= 0 {
		ttl = 30 * 24 * time.Hour
	}
	return &Service{db: pool, log: logger, ttl: ttl}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates the account and logs it in, returning a fresh session.
func (s *Service) Register(ctx context.Context, email, password, name string) (Session, error) {
	email = normalizeEmail(email)
	name = strings.TrimSpace(name)
	if email == "" || !strings.Contains(email, "@") {
		return Session{}, ErrInvalidCredentials
	}
	if len(password) < 6 {
		return Session{}, ErrWeakPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return Session{}, fmt.Errorf("hash password: %w", err)
	}

	var userID string
	err = s.db.QueryRow(ctx, `
		INSERT INTO users (id, email, name, password_hash, created_at)
		VALUES ($1, $2, $3, $4, now())
		RETURNING id
	`, uuid.NewString(), email, name, string(hash)).Scan(&userID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return Session{}, ErrEmailTaken
		}
		return Session{}, fmt.Errorf("insert user: %w", err)
	}

	s.log.Info("user registered", "user_id", userID)
	return s.createSession(ctx, User{ID: userID, Email: email, Name: name})
}

// Login verifies the password and returns a fresh session.
func (s *Service) Login(ctx context.Context, email, password string) (Session, error) {
	email = normalizeEmail(email)

	var (
		user User
		hash string
	)
	err := s.db.QueryRow(ctx, `
		SELECT id, email, name, password_hash FROM users WHERE email = $1
	`, email).Scan(&user.ID, &user.Email, &user.Name, &hash)
	if errors.Is(err, pgx.ErrNoRows) {
		// Burn a comparison anyway so a missing account costs the same as a
		// wrong password.
		_ = bcrypt.CompareHashAndPassword([]byte("$2a$10$000000000000000000000u"), []byte(password))
		return Session{}, ErrInvalidCredentials
	}
	if err != nil {
		return Session{}, fmt.Errorf("lookup user: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return Session{}, ErrInvalidCredentials
	}
	return s.createSession(ctx, user)
}

// Verify resolves a bearer token to its user. Expired and unknown tokens both
// come back as ErrInvalidToken.
func (s *Service) Verify(ctx context.Context, token string) (User, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return User{}, ErrInvalidToken
	}
	var (
		user      User
		expiresAt time.Time
	)
	err := s.db.QueryRow(ctx, `
		SELECT u.id, u.email, u.name, s.expires_at
		FROM sessions s
		JOIN users u ON u.id = s.user_id
		WHERE s.token = $1
	`, token).Scan(&user.ID, &user.Email, &user.Name, &expiresAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, ErrInvalidToken
	}
	if err != nil {
		return User{}, fmt.Errorf("lookup session: %w", err)
	}
	if time.Now().After(expiresAt) {
		_, _ = s.db.Exec(ctx, `DELETE FROM sessions WHERE token = $1`, token)
		return User{}, ErrInvalidToken
	}
	return user, nil
}

// EnsureUser upserts an account with the given credentials and returns its
// id. The seeder uses it for the admin account.
func (s *Service) EnsureUser(ctx context.Context, email, password string) (string, error) {
	email = normalizeEmail(email)
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	var userID string
	err = s.db.QueryRow(ctx, `
		INSERT INTO users (id, email, password_hash, created_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (email) DO UPDATE SET password_hash = EXCLUDED.password_hash
		RETURNING id
	`, uuid.NewString(), email, string(hash)).Scan(&userID)
	if err != nil {
		return "", fmt.Errorf("upsert user: %w", err)
	}
	return userID, nil
}

func (s *Service) createSession(ctx context.Context, user User) (Session, error) {
	sess := Session{
		Token:     uuid.NewString(),
		ExpiresAt: time.Now().Add(s.ttl),
		User:      user,
	}
	_, err := s.db.Exec(ctx, `
		INSERT INTO sessions (token, user_id, expires_at, created_at)
		VALUES ($1, $2, $3, now())
	`, sess.Token, user.ID, sess.ExpiresAt)
	if err != nil {
		return Session{}, fmt.Errorf("insert session: %w", err)
	}
	return sess, nil
}
