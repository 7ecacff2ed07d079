package notify

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Local 是进程内的通知注册表实现。
// 登记的触发器由 Run 的运行循环按秒检查并触发；
// 一次性触发器触发后即移除，每周触发器触发后顺延到下一周。
type Local struct {
	mu        sync.Mutex
	allowed   bool
	pending   map[string]*pendingNotification
	presented map[string]Payload
	handler   FiredHandler
	logger    *zap.Logger

	// now 可注入以便测试固定时间
	now func() time.Time
}

type pendingNotification struct {
	id       string
	trigger  Trigger
	payload  Payload
	nextFire time.Time
}

// NewLocal 创建本地注册表。allowed 为权限策略（设备本地默认放行）。
func NewLocal(allowed bool, logger *zap.Logger) *Local {
	return &Local{
		allowed:   allowed,
		pending:   make(map[string]*pendingNotification),
		presented: make(map[string]Payload),
		logger:    logger,
		now:       time.Now,
	}
}

// SetFiredHandler 注册触发回调，必须在 Run 之前调用。
func (l *Local) SetFiredHandler(h FiredHandler) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.handler = h
}

// RequestPermission 返回权限策略结果。
func (l *Local) RequestPermission() (bool, error) {
	return l.allowed, nil
}

// Schedule 登记一条通知并返回其不透明 id。
func (l *Local) Schedule(trigger Trigger, payload Payload) (string, error) {
	if !l.allowed {
		return "", ErrPermissionNotGranted
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	id := uuid.New().String()
	l.pending[id] = &pendingNotification{
		id:       id,
		trigger:  trigger,
		payload:  payload,
		nextFire: nextFireTime(trigger, l.now()),
	}
	return id, nil
}

// Cancel 取消一条通知，id 不存在时静默返回。
func (l *Local) Cancel(id string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.pending, id)
}

// CancelAll 清空全部待触发通知。
func (l *Local) CancelAll() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.pending = make(map[string]*pendingNotification)
}

// DismissAll 关闭所有已展示的通知。
func (l *Local) DismissAll() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.presented = make(map[string]Payload)
}

// ScheduledIDs 返回当前待触发通知的 id 快照，按字典序排序。
func (l *Local) ScheduledIDs() []string {
	l.mu.Lock()
	defer l.mu.Unlock()

	ids := make([]string, 0, len(l.pending))
	for id := range l.pending {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Run 启动运行循环，直到 ctx 结束。
func (l *Local) Run(ctx context.Context) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			l.fireDue(l.now())
		}
	}
}

// fireDue 触发所有到期的通知，回调在锁外执行。
func (l *Local) fireDue(now time.Time) {
	l.mu.Lock()

	var due []*pendingNotification
	for _, p := range l.pending {
		if !p.nextFire.After(now) {
			due = append(due, p)
		}
	}
	for _, p := range due {
		if p.trigger.Repeats {
			p.nextFire = p.nextFire.AddDate(0, 0, 7)
		} else {
			delete(l.pending, p.id)
		}
		l.presented[p.id] = p.payload
	}
	handler := l.handler
	l.mu.Unlock()

	for _, p := range due {
		if l.logger != nil {
			l.logger.Info("notification fired",
				zap.String("id", p.id),
				zap.String("alarm_id", p.payload.AlarmID))
		}
		if handler != nil {
			handler(p.payload)
		}
	}
}

// nextFireTime 计算触发器在 now 之后的首次触发时间。
// 每周触发器按设备本地时区求下一个目标星期的整分时刻。
func nextFireTime(trigger Trigger, now time.Time) time.Time {
	if !trigger.Repeats {
		return trigger.FireAt
	}

	target := time.Weekday(trigger.Weekday - 1)
	candidate := time.Date(now.Year(), now.Month(), now.Day(),
		trigger.Hour, trigger.Minute, 0, 0, now.Location())
	daysAhead := (int(target) - int(now.Weekday()) + 7) % 7
	candidate = candidate.AddDate(0, 0, daysAhead)
	if !candidate.After(now) {
		candidate = candidate.AddDate(0, 0, 7)
	}
	return candidate
}
