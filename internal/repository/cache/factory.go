package cache

import (
	"fmt"

	"github.com/mapgrid/tilefetch/pkg/logger"
)

// New creates a cache backend by name.
func New(backend, sqlitePath, filesystemDir string, redisCfg RedisConfig, l logger.Logger) (TileCache, error) {
	switch backend {
	case "map":
		l.Info("using in-memory map cache")
		return NewMapCache(), nil
	case "redis":
		l.Info("using redis cache", "addr", redisCfg.Addr)
		return NewRedisCache(redisCfg)
	case "sqlite":
		return NewSQLiteCache(sqlitePath, l)
	case "filesystem":
		l.Info("using filesystem cache", "dir", filesystemDir)
		return NewFilesystemCache(filesystemDir), nil
	case "disabled":
		l.Info("cache disabled")
		return NewNoopCache(), nil
	default:
		return nil, fmt.Errorf("unknown cache backend: %s (supported: map, redis, sqlite, filesystem, disabled)", backend)
	}
}
