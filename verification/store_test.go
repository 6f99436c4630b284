package verification

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestStore(now *time.Time) *MemoryStore {
	s := NewMemoryStore()
	s.now = func() time.Time { return *now }
	return s
}

func TestVerifyMatchingCode(t *testing.T) {
	now := time.Now()
	s := newTestStore(&now)

	s.Set("13812345678", "123456")

	assert.True(t, s.Verify("13812345678", "123456"))
}

func TestVerifyWrongCode(t *testing.T) {
	now := time.Now()
	s := newTestStore(&now)

	s.Set("13812345678", "123456")

	assert.False(t, s.Verify("13812345678", "654321"))
	// A wrong attempt does not consume the code.
	assert.True(t, s.Verify("13812345678", "123456"))
}

func TestVerifyUnknownPhone(t *testing.T) {
	now := time.Now()
	s := newTestStore(&now)

	assert.False(t, s.Verify("13812345678", "123456"))
}

func TestCodeIsSingleUse(t *testing.T) {
	now := time.Now()
	s := newTestStore(&now)

	s.Set("13812345678", "123456")

	assert.True(t, s.Verify("13812345678", "123456"))
	assert.False(t, s.Verify("13812345678", "123456"))
}

func TestCodeExpiresAfterTTL(t *testing.T) {
	now := time.Now()
	s := newTestStore(&now)

	s.Set("13812345678", "123456")
	now = now.Add(CodeTTL + time.Second)

	assert.False(t, s.Verify("13812345678", "123456"))
}

func TestCodeValidJustBeforeTTL(t *testing.T) {
	now := time.Now()
	s := newTestStore(&now)

	s.Set("13812345678", "123456")
	now = now.Add(CodeTTL - time.Second)

	assert.True(t, s.Verify("13812345678", "123456"))
}

func TestSetReplacesPreviousCode(t *testing.T) {
	now := time.Now()
	s := newTestStore(&now)

	s.Set("13812345678", "111111")
	s.Set("13812345678", "222222")

	assert.False(t, s.Verify("13812345678", "111111"))
	assert.True(t, s.Verify("13812345678", "222222"))
}

func TestSetSweepsExpiredEntries(t *testing.T) {
	now := time.Now()
	s := newTestStore(&now)

	s.Set("13800000001", "111111")
	now = now.Add(CodeTTL + time.Minute)
	s.Set("13800000002", "222222")

	s.mu.Lock()
	_, stale := s.codes["13800000001"]
	s.mu.Unlock()
	assert.False(t, stale)
}

func TestDelete(t *testing.T) {
	now := time.Now()
	s := newTestStore(&now)

	s.Set("13812345678", "123456")
	s.Delete("13812345678")

	assert.False(t, s.Verify("13812345678", "123456"))
}

func TestGenerateCodeFormat(t *testing.T) {
	pattern := regexp.MustCompile(`^\d{6}$`)
	for i := 0; i < 100; i++ {
		assert.Regexp(t, pattern, GenerateCode())
	}
}
