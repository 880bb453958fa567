package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/MarkRamington/silvanum-ink-terminal/internal/api/metrics"
	"github.com/MarkRamington/silvanum-ink-terminal/internal/core/domain"
	"github.com/MarkRamington/silvanum-ink-terminal/internal/core/ports"
)

const (
	sessionKeyPrefix  = "session:"
	defaultSessionTTL = 30 * 24 * time.Hour
)

// SessionStore implements ports.SessionProvider. The issued token is a
// signed HS256 JWT carrying the session user id (sub) and a session id
// (jti); the session id keys a Redis record whose presence makes the token
// live. Deleting the record revokes the token, and the TTL slides on every
// resume or lookup so an active terminal never expires mid-shift.
// Session records carry no personal data.
type SessionStore struct {
	client *redis.Client
	secret []byte
	ttl    time.Duration
}

// NewSessionStore creates a SessionStore wrapping the given Redis client.
func NewSessionStore(client *redis.Client, secret string, ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &SessionStore{client: client, secret: []byte(secret), ttl: ttl}
}

// CreateOrResume resumes priorToken when it still refers to a live session;
// otherwise it mints a fresh session with a new session user id. An invalid
// or revoked prior token is not an error, just a reason to start over.
func (s *SessionStore) CreateOrResume(ctx context.Context, priorToken string) (ports.SessionHandle, error) {
	if priorToken != "" {
		if sid, suid, err := s.parse(priorToken); err == nil {
			live, err := s.client.Expire(ctx, s.key(sid), s.ttl).Result()
			if err != nil {
				return ports.SessionHandle{}, fmt.Errorf("resume session: %w", err)
			}
			if live {
				metrics.SessionsTotal.WithLabelValues("resumed").Inc()
				return ports.SessionHandle{Token: priorToken, SessionUserID: suid}, nil
			}
		}
	}

	suid := uuid.NewString()
	sid := uuid.NewString()
	token, err := s.sign(sid, suid)
	if err != nil {
		return ports.SessionHandle{}, fmt.Errorf("sign session token: %w", err)
	}
	if err := s.client.Set(ctx, s.key(sid), suid, s.ttl).Err(); err != nil {
		return ports.SessionHandle{}, fmt.Errorf("store session: %w", err)
	}

	metrics.SessionsTotal.WithLabelValues("issued").Inc()
	return ports.SessionHandle{Token: token, SessionUserID: suid}, nil
}

// Invalidate revokes the session behind token. A token that no longer
// parses refers to nothing to revoke, so it is a no-op.
func (s *SessionStore) Invalidate(ctx context.Context, token string) error {
	sid, _, err := s.parse(token)
	if err != nil {
		return nil
	}
	if err := s.client.Del(ctx, s.key(sid)).Err(); err != nil {
		return fmt.Errorf("invalidate session: %w", err)
	}
	return nil
}

// Lookup returns the session user id for a live token. Bad signature,
// malformed claims, and a revoked or expired record all look the same to
// the caller: domain.ErrNotAuthenticated.
func (s *SessionStore) Lookup(ctx context.Context, token string) (string, error) {
	sid, suid, err := s.parse(token)
	if err != nil {
		return "", domain.ErrNotAuthenticated
	}

	live, err := s.client.Expire(ctx, s.key(sid), s.ttl).Result()
	if err != nil {
		return "", fmt.Errorf("lookup session: %w", err)
	}
	if !live {
		return "", domain.ErrNotAuthenticated
	}
	return suid, nil
}

func (s *SessionStore) key(sid string) string {
	return sessionKeyPrefix + sid
}

func (s *SessionStore) sign(sid, suid string) (string, error) {
	claims := jwt.MapClaims{
		"sub": suid,
		"jti": sid,
		"iat": time.Now().Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.secret)
}

// parse validates the token signature and extracts (session id, session
// user id). Expiry lives in Redis, not in the token, so no exp claim is
// required.
func (s *SessionStore) parse(token string) (sid, suid string, err error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil {
		return "", "", fmt.Errorf("parse session token: %w", err)
	}
	if !tkn.Valid {
		return "", "", jwt.ErrTokenInvalidClaims
	}

	sid, _ = claims["jti"].(string)
	suid, _ = claims["sub"].(string)
	if sid == "" || suid == "" {
		return "", "", jwt.ErrTokenInvalidClaims
	}
	return sid, suid, nil
}
