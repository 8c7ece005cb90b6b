package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"SportEvents/internal/model"
	"SportEvents/internal/repository"

	"github.com/google/uuid"
)

// fakeRepo 内存版 EventRepository，记录调用次数并可按 ID 注入更新失败
type fakeRepo struct {
	mu     sync.Mutex
	events map[string]*model.SportEvent

	updateErr map[string]error
	findErr   error

	creates, updates, deletes int
	aggregateCalls            int
}

func newFakeRepo(events ...*model.SportEvent) *fakeRepo {
	r := &fakeRepo{events: map[string]*model.SportEvent{}, updateErr: map[string]error{}}
	for _, e := range events {
		cp := *e
		r.events[e.ID] = &cp
	}
	return r
}

func (r *fakeRepo) Create(_ context.Context, event *model.SportEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	cp := *event
	r.events[event.ID] = &cp
	r.creates++
	return nil
}

func (r *fakeRepo) FindByID(_ context.Context, id string) (*model.SportEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findErr != nil {
		return nil, r.findErr
	}
	e, ok := r.events[id]
	if !ok {
		return nil, repository.ErrEventNotFound
	}
	cp := *e
	return &cp, nil
}

func (r *fakeRepo) Find(_ context.Context, c repository.EventCriteria) ([]*model.SportEvent, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []*model.SportEvent
	for _, e := range r.events {
		if c.Status != "" && e.Status != c.Status {
			continue
		}
		if c.Sport != "" && e.Sport != c.Sport {
			continue
		}
		cp := *e
		matched = append(matched, &cp)
	}
	sort.Slice(matched, func(i, j int) bool {
		if c.SortDirection == model.SortDesc {
			return matched[i].StartTime.After(matched[j].StartTime)
		}
		return matched[i].StartTime.Before(matched[j].StartTime)
	})
	total := int64(len(matched))
	if c.Offset >= len(matched) {
		return []*model.SportEvent{}, total, nil
	}
	end := c.Offset + c.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[c.Offset:end], total, nil
}

func (r *fakeRepo) Update(_ context.Context, event *model.SportEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.updateErr[event.ID]; err != nil {
		return err
	}
	cp := *event
	r.events[event.ID] = &cp
	r.updates++
	return nil
}

func (r *fakeRepo) Delete(_ context.Context, event *model.SportEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.events, event.ID)
	r.deletes++
	return nil
}

func (r *fakeRepo) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.aggregateCalls++
	return int64(len(r.events)), nil
}

func (r *fakeRepo) CountBySport(_ context.Context) ([]model.SportCount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.aggregateCalls++
	counts := map[model.SportType]int64{}
	for _, e := range r.events {
		counts[e.Sport]++
	}
	var out []model.SportCount
	for _, s := range model.SportTypes {
		if n := counts[s]; n > 0 {
			out = append(out, model.SportCount{Sport: s, Count: n})
		}
	}
	return out, nil
}

func (r *fakeRepo) CountByStatus(_ context.Context) ([]model.StatusCount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.aggregateCalls++
	counts := map[model.EventStatus]int64{}
	for _, e := range r.events {
		counts[e.Status]++
	}
	var out []model.StatusCount
	for _, s := range model.EventStatuses {
		if n := counts[s]; n > 0 {
			out = append(out, model.StatusCount{Status: s, Count: n})
		}
	}
	return out, nil
}

func (r *fakeRepo) ListActiveFinishedBefore(_ context.Context, now time.Time) ([]*model.SportEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.SportEvent
	for _, e := range r.events {
		if e.Status == model.StatusActive && e.FinishTime.Before(now) {
			cp := *e
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeRepo) get(id string) *model.SportEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.events[id]
}

// cacheOp 记录一次缓存操作
type cacheOp struct {
	Op  string
	Key string
}

// recordingCache 内存缓存，按顺序记录每次 get/set/del
type recordingCache struct {
	mu     sync.Mutex
	values map[string]any
	ops    []cacheOp
}

func newRecordingCache() *recordingCache {
	return &recordingCache{values: map[string]any{}}
}

func (c *recordingCache) Get(_ context.Context, key string) (any, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ops = append(c.ops, cacheOp{"get", key})
	v, ok := c.values[key]
	return v, ok, nil
}

func (c *recordingCache) Set(_ context.Context, key string, value any, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ops = append(c.ops, cacheOp{"set", key})
	c.values[key] = value
	return nil
}

func (c *recordingCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ops = append(c.ops, cacheOp{"del", key})
	delete(c.values, key)
	return nil
}

func (c *recordingCache) recorded() []cacheOp {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]cacheOp(nil), c.ops...)
}

func (c *recordingCache) count(op string) int {
	n := 0
	for _, o := range c.recorded() {
		if o.Op == op {
			n++
		}
	}
	return n
}
