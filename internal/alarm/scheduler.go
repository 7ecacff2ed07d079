package alarm

import (
	"time"

	"github.com/morningcall/internal/notify"
	"go.uber.org/zap"
)

// Scheduler 负责把一条闹钟记录落实为平台通知，或撤销它们。
// 所有调用方共同维持的不变式：同一闹钟 id 任何时刻至多存在一组
// 在册触发器，重新调度前必须先取消旧的 NotificationIDs。
type Scheduler struct {
	registry notify.Registry
	logger   *zap.Logger

	// now 可注入以便测试固定时间
	now func() time.Time
}

// NewScheduler 构造 Scheduler。
func NewScheduler(registry notify.Registry, logger *zap.Logger) *Scheduler {
	return &Scheduler{registry: registry, logger: logger, now: time.Now}
}

// Schedule 为记录计算触发器并逐个登记，返回与触发器同序的 id 列表。
// 任一登记失败时，本次调用已登记的触发器会先被取消再返回错误，
// 避免留下孤儿触发器。
func (s *Scheduler) Schedule(record AlarmRecord) ([]string, error) {
	triggers := ComputeTriggers(record.SelectedTime, record.SelectedDays, s.now())
	payload := notify.Payload{
		AlarmID:    record.ID,
		SoundValue: record.SoundValue,
		LabelValue: record.LabelValue,
	}

	ids := make([]string, 0, len(triggers))
	for _, trigger := range triggers {
		id, err := s.registry.Schedule(trigger, payload)
		if err != nil {
			s.Cancel(ids)
			return nil, &SchedulingError{AlarmID: record.ID, Err: err}
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// Cancel 尽力取消每个触发器 id，不存在或已触发的 id 不视为错误。
func (s *Scheduler) Cancel(ids []string) {
	for _, id := range ids {
		s.registry.Cancel(id)
	}
	if len(ids) > 0 {
		s.logger.Debug("cancelled notifications", zap.Int("count", len(ids)))
	}
}
