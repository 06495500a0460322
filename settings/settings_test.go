package settings

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewSettings(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "")
	t.Setenv("JWT_SECRET", "legacy-secret")
	t.Setenv("JWT_EXPIRATION", "2h")
	t.Setenv("CONNECTION", "mongodb://legacy")
	t.Setenv("MONGO_CONNECTION", "")
	t.Setenv("RATE_LIMIT", "0")

	s := newSettings()
	assert.Equal(t, "legacy-secret", s.JWT_SECRET_KEY)
	assert.Equal(t, 2*time.Hour, s.JWT_EXPIRATION)
	assert.Equal(t, "mongodb://legacy", s.MONGO_CONNECTION)
	assert.Equal(t, 0, s.RATE_LIMIT)
	assert.Equal(t, 9200, s.ELS_PORT)
}
