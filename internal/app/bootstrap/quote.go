package bootstrap

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	appconfig "github.com/wolfman30/window-quote/internal/config"
	"github.com/wolfman30/window-quote/internal/quoteform"
	"github.com/wolfman30/window-quote/pkg/logging"
)

// BuildDefinition loads FORM_DEFINITION_PATH or the built-in window form.
func BuildDefinition(cfg *appconfig.Config) (*quoteform.Definition, error) {
	def, err := quoteform.LoadDefinitionFile(cfg.FormDefinitionPath)
	if err != nil {
		return nil, fmt.Errorf("bootstrap: form definition: %w", err)
	}
	return def, nil
}

// BuildSessionStore picks the session backend named by SESSION_STORE. A redis
// store needs a client; without one it is an error rather than a silent
// downgrade, since sessions would not survive across instances.
func BuildSessionStore(ctx context.Context, cfg *appconfig.Config, def *quoteform.Definition, redisClient *redis.Client, logger *logging.Logger) (quoteform.Store, error) {
	if logger == nil {
		logger = logging.Default()
	}
	switch cfg.SessionStore {
	case "", appconfig.SessionStoreMemory:
		logger.Info("quote sessions kept in memory", "ttl", cfg.SessionTTL.String())
		return quoteform.NewMemoryStore(def, cfg.SessionTTL), nil
	case appconfig.SessionStoreRedis:
		if redisClient == nil {
			return nil, fmt.Errorf("bootstrap: SESSION_STORE=redis but redis is not available")
		}
		logger.Info("quote sessions kept in redis", "addr", cfg.RedisAddr, "ttl", cfg.SessionTTL.String())
		return quoteform.NewRedisStore(redisClient, def, cfg.SessionTTL), nil
	default:
		return nil, fmt.Errorf("bootstrap: unknown SESSION_STORE %q", cfg.SessionStore)
	}
}
