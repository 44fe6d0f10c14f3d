package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"taskboard/internal/cache"
	"taskboard/internal/model"
	"taskboard/internal/worker"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func restore() {
	subscribeChannel = func(ps *redis.PubSub) <-chan *redis.Message { return ps.Channel() }
	pubsubClose = func(ps *redis.PubSub) error { return ps.Close() }
}

// syncPool 讓提交的工作同步執行，方便驗證發佈結果
type syncPool struct{}

func (syncPool) Submit(t worker.Task) { t() }
func (syncPool) Stop()                {}

func TestRedisBusPublish(t *testing.T) {
	t.Run("fills id and timestamp", func(t *testing.T) {
		var gotChannel string
		var gotPayload []byte
		rdb := &cache.FakeCache{
			PublishFn: func(_ context.Context, channel string, message any) *redis.IntCmd {
				gotChannel = channel
				gotPayload = message.([]byte)
				return redis.NewIntResult(1, nil)
			},
		}
		bus := NewRedisBus(rdb, syncPool{})
		bus.Publish(context.Background(), model.TaskEvent{
			Type:    model.EventTaskMoved,
			TaskID:  7,
			Status:  model.StatusDoing,
			ActorID: 3,
		})

		require.Equal(t, ChannelTasks, gotChannel)
		var ev model.TaskEvent
		require.NoError(t, json.Unmarshal(gotPayload, &ev))
		require.NotEmpty(t, ev.ID)
		require.False(t, ev.At.IsZero())
		require.Equal(t, model.EventTaskMoved, ev.Type)
		require.Equal(t, 7, ev.TaskID)
	})

	t.Run("publish error does not panic", func(t *testing.T) {
		rdb := &cache.FakeCache{
			PublishFn: func(context.Context, string, any) *redis.IntCmd {
				return redis.NewIntResult(0, errors.New("redis down"))
			},
		}
		bus := NewRedisBus(rdb, syncPool{})
		bus.Publish(context.Background(), model.TaskEvent{Type: model.EventTaskDeleted, TaskID: 1})
	})
}

func TestRedisBusSubscribe(t *testing.T) {
	t.Cleanup(restore)

	msgs := make(chan *redis.Message, 2)
	closed := 0
	subscribeChannel = func(*redis.PubSub) <-chan *redis.Message { return msgs }
	pubsubClose = func(*redis.PubSub) error { closed++; return nil }

	rdb := &cache.FakeCache{
		SubscribeFn: func(context.Context, ...string) *redis.PubSub { return &redis.PubSub{} },
	}
	bus := NewRedisBus(rdb, syncPool{})

	out, cancel := bus.Subscribe(context.Background())

	payload, _ := json.Marshal(model.TaskEvent{ID: "e1", Type: model.EventTaskCreated, TaskID: 9})
	msgs <- &redis.Message{Payload: "not json"}
	msgs <- &redis.Message{Payload: string(payload)}

	select {
	case ev := <-out:
		require.Equal(t, "e1", ev.ID)
		require.Equal(t, 9, ev.TaskID)
	case <-time.After(time.Second):
		t.Fatal("no event received")
	}

	cancel()
	cancel() // 重複取消應該安全
	require.Equal(t, 1, closed)

	select {
	case _, ok := <-out:
		require.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("channel not closed")
	}
}
