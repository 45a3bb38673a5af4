package otp

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix = "OTP_"

	minCode = 100000
	maxCode = 999999
)

var ErrInvalidCode = errors.New("invalid or expired otp")

// stores one-time password reset codes in Redis with an expiry
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

// creates a new OTP store
func NewStore(client *redis.Client, ttl time.Duration) *Store {
	return &Store{client: client, ttl: ttl}
}

// returns a uniformly random 6-digit code
func Generate() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(maxCode-minCode+1))
	if err != nil {
		return "", fmt.Errorf("failed to generate otp: %w", err)
	}

	return strconv.FormatInt(n.Int64()+minCode, 10), nil
}

// generates a code for email, replacing any previous one
func (s *Store) Issue(ctx context.Context, email string) (string, error) {
	code, err := Generate()
	if err != nil {
		return "", err
	}

	if err := s.client.Set(ctx, key(email), code, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("failed to store otp: %w", err)
	}

	return code, nil
}

// checks code against the stored one and deletes it on success,
// so each code can be used once
func (s *Store) Consume(ctx context.Context, email, code string) error {
	k := key(email)

	stored, err := s.client.Get(ctx, k).Result()
	if errors.Is(err, redis.Nil) {
		return ErrInvalidCode
	}
	if err != nil {
		return fmt.Errorf("failed to read otp: %w", err)
	}

	if subtle.ConstantTimeCompare([]byte(stored), []byte(strings.TrimSpace(code))) != 1 {
		return ErrInvalidCode
	}

	deleted, err := s.client.Del(ctx, k).Result()
	if err != nil {
		return fmt.Errorf("failed to delete otp: %w", err)
	}

	// lost a race with a concurrent reset using the same code
	if deleted == 0 {
		return ErrInvalidCode
	}

	return nil
}

func key(email string) string {
	return keyPrefix + strings.ToLower(strings.TrimSpace(email))
}
