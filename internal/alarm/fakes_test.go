package alarm

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/morningcall/internal/notify"
)

// fakeRegistry 记录全部登记/取消调用，并支持注入失败。
type fakeRegistry struct {
	mu sync.Mutex

	granted       bool
	permissionErr error

	// failFrom > 0 时，第 failFrom 次（含）之后的 Schedule 调用失败；
	// failUntil > 0 时失败区间止于该次调用（含）
	failFrom      int
	failUntil     int
	scheduleCalls int

	scheduled map[string]scheduledEntry
	nextID    int
	dismissed int
}

type scheduledEntry struct {
	trigger notify.Trigger
	payload notify.Payload
}

func newFakeRegistry() *fakeRegistry {
	return &fakeRegistry{granted: true, scheduled: make(map[string]scheduledEntry)}
}

func (f *fakeRegistry) RequestPermission() (bool, error) {
	return f.granted, f.permissionErr
}

func (f *fakeRegistry) Schedule(trigger notify.Trigger, payload notify.Payload) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.scheduleCalls++
	if f.failFrom > 0 && f.scheduleCalls >= f.failFrom &&
		(f.failUntil == 0 || f.scheduleCalls <= f.failUntil) {
		return "", errors.New("registration rejected")
	}

	f.nextID++
	id := fmt.Sprintf("trigger-%d", f.nextID)
	f.scheduled[id] = scheduledEntry{trigger: trigger, payload: payload}
	return id, nil
}

func (f *fakeRegistry) Cancel(id string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.scheduled, id)
}

func (f *fakeRegistry) CancelAll() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.scheduled = make(map[string]scheduledEntry)
}

func (f *fakeRegistry) DismissAll() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.dismissed++
}

func (f *fakeRegistry) liveIDs() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	ids := make([]string, 0, len(f.scheduled))
	for id := range f.scheduled {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (f *fakeRegistry) entry(id string) (scheduledEntry, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	entry, ok := f.scheduled[id]
	return entry, ok
}

// fakeAudio 记录播放与停止调用。
type fakeAudio struct {
	mu        sync.Mutex
	playKeys  []string
	playRing  []time.Duration
	stopCalls int
	playErr   error
	stopErr   error
}

func (f *fakeAudio) PlayLooping(key string, ringFor time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.playKeys = append(f.playKeys, key)
	f.playRing = append(f.playRing, ringFor)
	return f.playErr
}

func (f *fakeAudio) Stop() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stopCalls++
	return f.stopErr
}
