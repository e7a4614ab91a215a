package monitor

import (
	"context"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	redislib "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/daydone/backend/internal/infrastructure/kv"
)

// Monitor periodically probes the configured storage backends and caches the
// result for the health endpoint. Pass nil for backends that are not wired.
type Monitor struct {
	bolt  *kv.Store
	pg    *pgxpool.Pool
	redis *redislib.Client

	status   Status
	mu       sync.RWMutex
	interval time.Duration
	stopCh   chan struct{}
	logger   *zap.Logger
}

func New(bolt *kv.Store, pg *pgxpool.Pool, redis *redislib.Client, interval time.Duration, logger *zap.Logger) *Monitor {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Monitor{
		bolt:     bolt,
		pg:       pg,
		redis:    redis,
		interval: interval,
		stopCh:   make(chan struct{}),
		logger:   logger,
	}
}

func (m *Monitor) Start() {
	go m.loop()
}

func (m *Monitor) Stop() {
	close(m.stopCh)
}

func (m *Monitor) GetStatus() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status
}

func (m *Monitor) loop() {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.refresh()
	for {
		select {
		case <-ticker.C:
			m.refresh()
		case <-m.stopCh:
			return
		}
	}
}

func (m *Monitor) refresh() {
	status := Status{
		Bolt:       true,
		PostgreSQL: true,
		Redis:      true,
		LastCheck:  time.Now(),
	}

	if m.bolt != nil {
		count, err := m.bolt.Size(kv.BucketTodos)
		if err != nil {
			m.logger.Warn("bolt store unreachable", zap.Error(err))
			status.Bolt = false
		} else {
			status.TodoCount = count
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if m.pg != nil {
		if err := m.pg.Ping(ctx); err != nil {
			m.logger.Warn("postgres unreachable", zap.Error(err))
			status.PostgreSQL = false
		}
	}
	if m.redis != nil {
		if err := m.redis.Ping(ctx).Err(); err != nil {
			m.logger.Warn("redis unreachable", zap.Error(err))
			status.Redis = false
		}
	}

	m.mu.Lock()
	m.status = status
	m.mu.Unlock()
}
