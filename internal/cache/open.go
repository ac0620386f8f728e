package cache

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/funfan0517/MediaPublishPlatform/internal/config"
)

// Backend kinds accepted by storage.local and storage.session.
const (
	KindFile   = "file"
	KindMemory = "memory"
	KindSQLite = "sqlite"
	KindRedis  = "redis"
)

// OpenBackend builds the backend of the given kind for scope.
func OpenBackend(kind string, scope Scope, cfg config.StorageConfig) (Backend, error) {
	switch kind {
	case KindFile:
		return NewFileBackend(ScopeDir(scope)), nil
	case KindMemory:
		return NewMemoryBackend(cfg.Memory.Size, cfg.Memory.TTL), nil
	case KindSQLite:
		return NewSQLiteBackend(cfg.SQLite.Path, scope)
	case KindRedis:
		r := cfg.Redis
		return NewRedisBackend(r.Addr, r.Password, r.DB, r.Prefix, scope)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", kind)
	}
}

// Open returns the store for scope using the backend configured for it.
func Open(scope Scope, cfg config.StorageConfig, logger *zap.Logger) (*Store, error) {
	kind := cfg.Local
	if scope == Session {
		kind = cfg.Session
	}
	backend, err := OpenBackend(kind, scope, cfg)
	if err != nil {
		return nil, fmt.Errorf("opening %s storage: %w", scope, err)
	}
	if logger != nil {
		logger.Debug("opened storage", zap.String("scope", string(scope)), zap.String("backend", kind))
	}
	return NewStore(scope, backend, logger), nil
}
