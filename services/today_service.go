package services

import (
	"context"
	"log/slog"
	"no-regret/contract"
	"no-regret/domain"
	"no-regret/domain/event"
	"no-regret/storage"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

// TodayService keeps the to-do list of the current day.
// The list starts over as soon as the stored day is not today anymore.
type TodayService struct {
	mu   sync.Mutex
	log  *slog.Logger
	kv   contract.KeyValueStore
	sink contract.EventSink
	now  func() time.Time
	data domain.TodayData
}

func NewTodayService(log *slog.Logger, kv contract.KeyValueStore, sink contract.EventSink, now func() time.Time) *TodayService {
	if now == nil {
		now = time.Now
	}
	return &TodayService{log: log, kv: kv, sink: sink, now: now, data: domain.NewTodayData(now())}
}

func (t *TodayService) Load(ctx context.Context) domain.TodayData {
	fresh := domain.NewTodayData(t.now())

	var stored domain.TodayData
	ok := storage.LoadJSON(ctx, t.kv, t.log, storage.TodayKey, &stored)
	switch {
	case !ok:
		stored = fresh
	case stored.Date != fresh.Date:
		t.log.Debug("Stored plans belong to another day, starting over", "stored", stored.Date, "today", fresh.Date)
		stored = fresh
	case stored.Items == nil:
		stored.Items = []domain.Plan{}
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.data = stored
	return t.snapshot()
}

// Add appends a plan with the default category. Blank titles are ignored.
func (t *TodayService) Add(ctx context.Context, title string) (domain.Plan, bool) {
	if strings.TrimSpace(title) == "" {
		return domain.Plan{}, false
	}
	plan := domain.Plan{
		ID:       uuid.NewString(),
		Title:    title,
		Done:     false,
		Category: domain.DefaultCategory,
	}

	t.mu.Lock()
	t.rollover()
	t.data.Items = append(t.data.Items, plan)
	data := t.save(ctx)
	t.mu.Unlock()

	t.emit(ctx, data)
	return plan, true
}

// Toggle flips the done flag of the plan. It reports false for an unknown id.
func (t *TodayService) Toggle(ctx context.Context, id string) bool {
	t.mu.Lock()
	t.rollover()
	_, index, found := lo.FindIndexOf(t.data.Items, func(p domain.Plan) bool { return p.ID == id })
	if !found {
		t.mu.Unlock()
		return false
	}
	t.data.Items[index].Done = !t.data.Items[index].Done
	data := t.save(ctx)
	t.mu.Unlock()

	t.emit(ctx, data)
	return true
}

func (t *TodayService) Data() domain.TodayData {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.snapshot()
}

// rollover starts a fresh list when the day changed since the last load.
func (t *TodayService) rollover() {
	if today := domain.DayKey(t.now()); t.data.Date != today {
		t.data = domain.NewTodayData(t.now())
	}
}

func (t *TodayService) save(ctx context.Context) domain.TodayData {
	if err := storage.SaveJSON(ctx, t.kv, storage.TodayKey, t.data); err != nil {
		t.log.Error("Failed to persist plans", "error", err)
	}
	return t.snapshot()
}

func (t *TodayService) snapshot() domain.TodayData {
	return domain.TodayData{Date: t.data.Date, Items: append([]domain.Plan{}, t.data.Items...)}
}

func (t *TodayService) emit(ctx context.Context, data domain.TodayData) {
	if t.sink == nil {
		return
	}
	if err := t.sink.Consume(ctx, event.PlansChanged{Data: data}); err != nil {
		t.log.Warn("Event sink failed", "error", err)
	}
}
