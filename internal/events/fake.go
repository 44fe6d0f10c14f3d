// File: internal/events/fake.go
package events

import (
	"context"
	"sync"

	"taskboard/internal/model"
)

// FakeBus 記錄發佈的事件供測試驗證
type FakeBus struct {
	mu     sync.Mutex
	events []model.TaskEvent

	SubscribeFn func(ctx context.Context) (<-chan model.TaskEvent, func())
}

// Publish 記錄事件
func (f *FakeBus) Publish(_ context.Context, ev model.TaskEvent) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, ev)
}

// Published 回傳目前已記錄的事件
func (f *FakeBus) Published() []model.TaskEvent {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]model.TaskEvent, len(f.events))
	copy(out, f.events)
	return out
}

// Subscribe 執行 Fake 設定或 panic
func (f *FakeBus) Subscribe(ctx context.Context) (<-chan model.TaskEvent, func()) {
	if f.SubscribeFn != nil {
		return f.SubscribeFn(ctx)
	}
	panic("unexpected Subscribe")
}
