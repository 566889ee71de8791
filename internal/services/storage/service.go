package storage

import (
	"context"
	"errors"
	"time"

	"github.com/phambaophuc/image-analyzer/internal/config"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

var ErrPreviewNotFound = errors.New("preview not found")

// Preview is an uploaded image held between the file choice and the
// submission that uses it.
type Preview struct {
	Filename    string
	ContentType string
	Data        []byte
}

// PreviewStore keeps previews until they are released or expire.
type PreviewStore interface {
	Put(ctx context.Context, id string, preview *Preview, ttl time.Duration) error
	Get(ctx context.Context, id string) (*Preview, error)
	Delete(ctx context.Context, id string) error
	Ping(ctx context.Context) error
	Name() string
}

type StorageService struct {
	store  PreviewStore
	ttl    time.Duration
	logger *zap.Logger
}

// NewStorageService uses Redis when an address is configured and an
// in-process store otherwise.
func NewStorageService(cfg *config.Config, logger *zap.Logger) *StorageService {
	var store PreviewStore
	if cfg.Redis.Addr != "" {
		store = NewRedisStore(redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}))
	} else {
		store = NewMemoryStore()
	}

	return NewStorageServiceWithStore(store, cfg.Preview.TTL, logger)
}

func NewStorageServiceWithStore(store PreviewStore, ttl time.Duration, logger *zap.Logger) *StorageService {
	return &StorageService{
		store:  store,
		ttl:    ttl,
		logger: logger,
	}
}

func (s *StorageService) Close() error {
	if closer, ok := s.store.(interface{ Close() error }); ok {
		return closer.Close()
	}
	return nil
}
