package alarm

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/morningcall/internal/notify"
	"go.uber.org/zap"
)

// SoundResolver 在创建/编辑时把铃声键解析为带扩展名的完整文件名，
// 避免响铃热路径上的目录扫描。
type SoundResolver interface {
	Resolve(key string) (string, bool)
}

// Service 是闹钟的唯一写入方，组合 Store、触发器计算与 Scheduler，
// 保证持久化状态与平台通知队列一致。
// 操作预期由 UI 串行调用，内部不提供针对同一 id 的互斥。
type Service struct {
	store     *Store
	scheduler *Scheduler
	registry  notify.Registry
	sounds    SoundResolver
	logger    *zap.Logger

	// now 可注入以便测试固定时间
	now func() time.Time
}

// NewService 构造 Service。sounds 可为 nil，此时铃声键原样保存。
func NewService(store *Store, scheduler *Scheduler, registry notify.Registry, sounds SoundResolver, logger *zap.Logger) *Service {
	return &Service{
		store:     store,
		scheduler: scheduler,
		registry:  registry,
		sounds:    sounds,
		logger:    logger,
		now:       time.Now,
	}
}

// List 返回全部闹钟。读取失败时降级为空集合。
func (s *Service) List() ([]AlarmRecord, error) {
	records, err := s.store.List()
	if err != nil {
		s.logger.Error("load alarms failed, degrading to empty list", zap.Error(err))
		return []AlarmRecord{}, nil
	}
	return records, nil
}

// Get 按 id 返回闹钟。
func (s *Service) Get(id string) (*AlarmRecord, error) {
	records := s.loadOrEmpty()
	for i := range records {
		if records[i].ID == id {
			record := records[i]
			return &record, nil
		}
	}
	return nil, ErrAlarmNotFound
}

// Create 新建闹钟：分配 id、登记触发器、整体写回。
// 权限被拒绝时在任何持久化之前返回 ErrPermissionDenied，
// 不会留下半成品记录。
func (s *Service) Create(input AlarmInput) (*AlarmRecord, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	if err := s.ensurePermission(); err != nil {
		return nil, err
	}

	records := s.loadOrEmpty()

	record := AlarmRecord{
		ID:        uuid.New().String(),
		CreatedAt: s.now(),
	}
	s.applyInput(&record, input)

	ids, err := s.scheduler.Schedule(record)
	if err != nil {
		return nil, err
	}
	record.IsActive = true
	record.NotificationIDs = ids

	records = append(records, record)
	if err := s.store.ReplaceAll(records); err != nil {
		// 已登记但无法持久化的触发器必须撤销，否则成为孤儿
		s.scheduler.Cancel(ids)
		return nil, err
	}

	s.logger.Info("alarm created",
		zap.String("id", record.ID),
		zap.String("time", record.SelectedTime.String()),
		zap.Int("triggers", len(ids)))
	return &record, nil
}

// Update 编辑闹钟：除 ID/CreatedAt 外的字段全部由 input 重新推导。
// 活动中的闹钟先取消旧触发器再重新登记；
// 非活动闹钟只更新字段，不做任何调度。
func (s *Service) Update(id string, input AlarmInput) (*AlarmRecord, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	records := s.loadOrEmpty()
	idx := indexOf(records, id)
	if idx < 0 {
		return nil, ErrAlarmNotFound
	}

	record := records[idx]
	s.applyInput(&record, input)

	if !records[idx].IsActive {
		record.IsActive = false
		record.NotificationIDs = []string{}
		records[idx] = record
		if err := s.store.ReplaceAll(records); err != nil {
			return nil, err
		}
		return &record, nil
	}

	s.scheduler.Cancel(records[idx].NotificationIDs)

	ids, err := s.scheduler.Schedule(record)
	if err != nil {
		// 调度失败时记录落到非活动态，而不是声称持有不存在的触发器
		record.IsActive = false
		record.NotificationIDs = []string{}
		records[idx] = record
		if saveErr := s.store.ReplaceAll(records); saveErr != nil {
			s.logger.Error("deactivate after scheduling failure not persisted", zap.Error(saveErr))
		}
		return nil, err
	}
	record.IsActive = true
	record.NotificationIDs = ids

	records[idx] = record
	if err := s.store.ReplaceAll(records); err != nil {
		s.scheduler.Cancel(ids)
		return nil, err
	}

	s.logger.Info("alarm updated", zap.String("id", id), zap.Int("triggers", len(ids)))
	return &record, nil
}

// Toggle 切换启用状态。目标状态与当前一致时为安全的空操作。
func (s *Service) Toggle(id string, active bool) error {
	records := s.loadOrEmpty()
	idx := indexOf(records, id)
	if idx < 0 {
		return ErrAlarmNotFound
	}

	record := records[idx]
	if record.IsActive == active {
		return nil
	}

	if active {
		ids, err := s.scheduler.Schedule(record)
		if err != nil {
			return err
		}
		record.IsActive = true
		record.NotificationIDs = ids
		records[idx] = record
		if err := s.store.ReplaceAll(records); err != nil {
			s.scheduler.Cancel(ids)
			return err
		}
	} else {
		s.scheduler.Cancel(record.NotificationIDs)
		record.IsActive = false
		record.NotificationIDs = []string{}
		records[idx] = record
		if err := s.store.ReplaceAll(records); err != nil {
			return err
		}
	}

	s.logger.Info("alarm toggled", zap.String("id", id), zap.Bool("active", active))
	return nil
}

// Delete 取消触发器并移除记录。id 不存在时静默成功。
func (s *Service) Delete(id string) error {
	records := s.loadOrEmpty()
	idx := indexOf(records, id)
	if idx < 0 {
		return nil
	}

	s.scheduler.Cancel(records[idx].NotificationIDs)
	records = append(records[:idx], records[idx+1:]...)
	if err := s.store.ReplaceAll(records); err != nil {
		return err
	}

	s.logger.Info("alarm deleted", zap.String("id", id))
	return nil
}

// Restore 在每次启动时把持久化状态与平台通知队列对账。
// 流程：权限检查 → 无条件清空全部在册触发器 → 逐条重新登记活动闹钟
// （已过期的一次性闹钟改为停用，单条失败只停用该条）→ 一次性写回。
// 连续调用多次除首次的修正外不产生额外可见副作用。
func (s *Service) Restore() error {
	granted, err := s.registry.RequestPermission()
	if err != nil || !granted {
		s.logger.Warn("notification permission unavailable, leaving alarms untouched", zap.Error(err))
		return nil
	}

	// 清空上一个进程生命周期可能遗留的触发器，避免重复响铃
	s.registry.CancelAll()

	records := s.loadOrEmpty()
	now := s.now()

	for i := range records {
		record := &records[i]
		if !record.IsActive {
			continue
		}

		// 时间已过的一次性闹钟停用，不得在未来悄悄再次响起
		if len(record.SelectedDays) == 0 && !record.SelectedTime.OccurrenceOn(now).After(now) {
			record.IsActive = false
			record.NotificationIDs = []string{}
			s.logger.Info("expired one-shot alarm deactivated", zap.String("id", record.ID))
			continue
		}

		ids, err := s.scheduler.Schedule(*record)
		if err != nil {
			// 单条失败不阻断其余记录的恢复
			s.logger.Error("restore scheduling failed, deactivating alarm",
				zap.String("id", record.ID), zap.Error(err))
			record.IsActive = false
			record.NotificationIDs = []string{}
			continue
		}
		record.NotificationIDs = ids
	}

	if err := s.store.ReplaceAll(records); err != nil {
		return err
	}

	s.logger.Info("alarms restored", zap.Int("count", len(records)))
	return nil
}

// NextOccurrence 计算一条闹钟下一次响铃的时刻，用于列表展示。
// 已无下一次（过期的一次性闹钟或非活动记录）时返回 nil。
func (s *Service) NextOccurrence(record AlarmRecord, now time.Time) *time.Time {
	if !record.IsActive {
		return nil
	}

	days := NormalizeDays(record.SelectedDays)
	if len(days) == 0 {
		next := record.SelectedTime.OccurrenceOn(now)
		if next.After(now) {
			return &next
		}
		return nil
	}

	selected := make(map[time.Weekday]bool, len(days))
	for _, d := range days {
		selected[time.Weekday(d.WeekdayNumber()-1)] = true
	}
	for offset := 0; offset <= 7; offset++ {
		day := now.AddDate(0, 0, offset)
		if !selected[day.Weekday()] {
			continue
		}
		candidate := record.SelectedTime.OccurrenceOn(day)
		if candidate.After(now) {
			return &candidate
		}
	}
	return nil
}

func (s *Service) ensurePermission() error {
	granted, err := s.registry.RequestPermission()
	if err != nil {
		return fmt.Errorf("request notification permission: %w", err)
	}
	if !granted {
		return ErrPermissionDenied
	}
	return nil
}

// applyInput 重新推导除 ID/CreatedAt 外的全部字段。
func (s *Service) applyInput(record *AlarmRecord, input AlarmInput) {
	record.SelectedTime = input.SelectedTime
	record.SelectedDays = NormalizeDays(input.SelectedDays)

	label := strings.TrimSpace(input.LabelValue)
	if label == "" {
		label = DefaultLabel
	}
	record.LabelValue = label

	record.SoundValue = s.resolveSound(input.SoundValue)

	if input.SnoozeValue == SnoozeOn {
		record.SnoozeValue = SnoozeOn
	} else {
		record.SnoozeValue = SnoozeOff
	}
}

// resolveSound 在保存时把铃声键固化为带扩展名的文件名。
// 无法解析时保留原值，由播放端回退处理。
func (s *Service) resolveSound(key string) string {
	key = strings.TrimSpace(key)
	if key == "" || s.sounds == nil {
		return key
	}
	if resolved, ok := s.sounds.Resolve(key); ok {
		return resolved
	}
	return key
}

func (s *Service) loadOrEmpty() []AlarmRecord {
	records, err := s.store.List()
	if err != nil {
		s.logger.Error("load alarms failed, degrading to empty list", zap.Error(err))
	}
	return records
}

func validateInput(input AlarmInput) error {
	if !input.SelectedTime.Valid() {
		return ErrInvalidTime
	}
	for _, d := range input.SelectedDays {
		if !d.Valid() {
			return ErrInvalidDay
		}
	}
	return nil
}

func indexOf(records []AlarmRecord, id string) int {
	for i := range records {
		if records[i].ID == id {
			return i
		}
	}
	return -1
}
