package session

import (
	"go.uber.org/zap"

	"course-manager-client/internal/logging"
	"course-manager-client/internal/storage"
)

// Credentials reads the bearer token from storage on every call; nothing is
// cached between requests.
type Credentials struct {
	storage storage.Storage
	log     *zap.Logger
}

func NewCredentials(st storage.Storage, logger *zap.Logger) *Credentials {
	return &Credentials{storage: st, log: logging.OrNop(logger)}
}

func (c *Credentials) CurrentToken() (string, bool) {
	token, ok, err := c.storage.Read(TokenKey)
	if err != nil {
		c.log.Warn("reading token failed", zap.Error(err))
		return "", false
	}
	if !ok || token == "" {
		return "", false
	}
	return token, true
}
