package alarm

import (
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
)

func fixedNow() time.Time {
	return time.Date(2024, 5, 17, 6, 0, 0, 0, time.Local)
}

func TestSchedulerAttachesPayload(t *testing.T) {
	registry := newFakeRegistry()
	scheduler := NewScheduler(registry, zap.NewNop())
	scheduler.now = fixedNow

	record := AlarmRecord{
		ID:           "a1",
		SelectedTime: AlarmTime{Hours: 7, Minutes: 30},
		SelectedDays: []DayOfWeek{Monday, Wednesday},
		LabelValue:   "수요 스터디",
		SoundValue:   "bell.wav",
	}

	ids, err := scheduler.Schedule(record)
	if err != nil {
		t.Fatalf("Schedule returned error: %v", err)
	}
	if len(ids) != 2 {
		t.Fatalf("expected 2 trigger ids, got %d", len(ids))
	}

	for _, id := range ids {
		entry, ok := registry.entry(id)
		if !ok {
			t.Fatalf("trigger %s not registered", id)
		}
		if entry.payload.AlarmID != "a1" || entry.payload.SoundValue != "bell.wav" || entry.payload.LabelValue != "수요 스터디" {
			t.Fatalf("unexpected payload: %+v", entry.payload)
		}
	}
}

func TestSchedulerRollsBackPartialRegistration(t *testing.T) {
	registry := newFakeRegistry()
	registry.failFrom = 3
	scheduler := NewScheduler(registry, zap.NewNop())
	scheduler.now = fixedNow

	record := AlarmRecord{
		ID:           "a1",
		SelectedTime: AlarmTime{Hours: 7, Minutes: 0},
		SelectedDays: []DayOfWeek{Monday, Wednesday, Friday},
	}

	_, err := scheduler.Schedule(record)
	if err == nil {
		t.Fatal("expected error when registration fails mid-sequence")
	}

	var schedulingErr *SchedulingError
	if !errors.As(err, &schedulingErr) {
		t.Fatalf("expected SchedulingError, got %T", err)
	}
	if schedulingErr.AlarmID != "a1" {
		t.Fatalf("unexpected alarm id: %s", schedulingErr.AlarmID)
	}

	// 已登记的前两个触发器必须被回滚，不留孤儿
	if live := registry.liveIDs(); len(live) != 0 {
		t.Fatalf("expected no live triggers after rollback, got %v", live)
	}
}

func TestSchedulerCancelMissingIDIsSafe(t *testing.T) {
	registry := newFakeRegistry()
	scheduler := NewScheduler(registry, zap.NewNop())

	// 不存在的 id 不应 panic 或影响其它触发器
	scheduler.Cancel([]string{"missing-1", "missing-2"})
}
