package infra

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/redis/go-redis/v9"
)

const otpKeyPrefix = "otp:"

// OTPStore keeps one-time codes in Redis with a TTL. Codes are single use:
// verification deletes the key atomically with the comparison.
type OTPStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewOTPStore(rdb *redis.Client, ttl time.Duration) *OTPStore {
	return &OTPStore{rdb: rdb, ttl: ttl}
}

// GenerateCode returns a 6-digit code from crypto/rand.
func GenerateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// Store saves the code for a phone number or email address.
func (s *OTPStore) Store(ctx context.Context, target, code string) error {
	return s.rdb.Set(ctx, otpKeyPrefix+target, code, s.ttl).Err()
}

// verifyScript compares and deletes in one round trip so a code cannot be
// replayed between GET and DEL.
var verifyScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	redis.call("DEL", KEYS[1])
	return 1
end
return 0
`)

// Verify checks the code and consumes it on success.
func (s *OTPStore) Verify(ctx context.Context, target, code string) (bool, error) {
	res, err := verifyScript.Run(ctx, s.rdb, []string{otpKeyPrefix + target}, code).Int()
	if err != nil {
		return false, err
	}
	return res == 1, nil
}

// TTL exposes the configured expiry for response messages.
func (s *OTPStore) TTL() time.Duration { return s.ttl }
