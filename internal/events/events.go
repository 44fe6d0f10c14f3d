// File: internal/events/events.go
package events

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"taskboard/internal/cache"
	"taskboard/internal/logger"
	"taskboard/internal/model"
	"taskboard/internal/worker"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// ChannelTasks 為任務事件的 Redis 頻道名稱
const ChannelTasks = "taskboard:tasks"

// 測試替換點
var (
	subscribeChannel = func(ps *redis.PubSub) <-chan *redis.Message { return ps.Channel() }
	pubsubClose      = func(ps *redis.PubSub) error { return ps.Close() }
)

// Bus 定義任務事件的發佈與訂閱介面
type Bus interface {
	Publish(ctx context.Context, ev model.TaskEvent)
	Subscribe(ctx context.Context) (<-chan model.TaskEvent, func())
}

// RedisBus 以 Redis pub/sub 廣播任務事件，
// 發佈透過 worker pool 非同步執行，不阻塞請求
type RedisBus struct {
	rdb  cache.Cache
	pool worker.Pool
}

// NewRedisBus 建立 RedisBus
func NewRedisBus(rdb cache.Cache, pool worker.Pool) *RedisBus {
	return &RedisBus{rdb: rdb, pool: pool}
}

// Publish 補齊事件 ID 與時間後交由 worker pool 發佈
func (b *RedisBus) Publish(ctx context.Context, ev model.TaskEvent) {
	if ev.ID == "" {
		ev.ID = uuid.NewString()
	}
	if ev.At.IsZero() {
		ev.At = time.Now().UTC()
	}
	payload, err := json.Marshal(ev)
	if err != nil {
		logger.Audit.Error("marshal task event failed",
			zap.String("type", ev.Type),
			zap.Int("task_id", ev.TaskID),
			zap.Error(err),
		)
		return
	}
	b.pool.Submit(func() {
		// 請求的 context 此時可能已結束，發佈使用獨立 context
		if err := b.rdb.Publish(context.Background(), ChannelTasks, payload).Err(); err != nil {
			logger.Audit.Error("publish task event failed",
				zap.String("type", ev.Type),
				zap.Int("task_id", ev.TaskID),
				zap.Error(err),
			)
			return
		}
		logger.Audit.Info("task event published",
			zap.String("id", ev.ID),
			zap.String("type", ev.Type),
			zap.Int("task_id", ev.TaskID),
			zap.Int("actor_id", ev.ActorID),
		)
	})
}

// Subscribe 訂閱任務事件頻道，回傳事件通道與取消函式,
// context 結束或呼叫取消函式後通道會關閉
func (b *RedisBus) Subscribe(ctx context.Context) (<-chan model.TaskEvent, func()) {
	ps := b.rdb.Subscribe(ctx, ChannelTasks)
	msgs := subscribeChannel(ps)
	out := make(chan model.TaskEvent)
	done := make(chan struct{})

	go func() {
		defer close(out)
		for {
			select {
			case <-done:
				return
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				var ev model.TaskEvent
				if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
					continue
				}
				select {
				case out <- ev:
				case <-done:
					return
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			close(done)
			_ = pubsubClose(ps)
		})
	}
	return out, cancel
}
