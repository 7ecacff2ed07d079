package alarm

import (
	"time"

	"github.com/morningcall/internal/notify"
	"go.uber.org/zap"
)

// 通知响应动作标识。
const (
	ActionStop    = "stop"
	ActionSnooze  = "snooze"
	ActionDefault = "default"
)

// AudioPlayer 是响铃音频播放的抽象。
// 实现保证任意时刻至多一个循环播放，且手动 Stop 必须无条件
// 清掉待生效的自动停止定时器。
type AudioPlayer interface {
	PlayLooping(key string, ringFor time.Duration) error
	Stop() error
}

// Responder 把触发/点按的通知事件分发为具体动作：
// 停止响铃、稍后提醒、或默认（等同停止）。
// 音频侧任何失败都只记录日志并吞掉，静音失败不能连累前台进程，
// 用户总可以再按一次。
type Responder struct {
	registry    notify.Registry
	audio       AudioPlayer
	snoozeAfter time.Duration
	ringFor     time.Duration
	logger      *zap.Logger

	// now 可注入以便测试固定时间
	now func() time.Time
}

// NewResponder 构造 Responder。
func NewResponder(registry notify.Registry, audio AudioPlayer, snoozeAfter, ringFor time.Duration, logger *zap.Logger) *Responder {
	return &Responder{
		registry:    registry,
		audio:       audio,
		snoozeAfter: snoozeAfter,
		ringFor:     ringFor,
		logger:      logger,
		now:         time.Now,
	}
}

// HandleFired 在通知触发时循环播放对应铃声，超时后自动停止。
func (r *Responder) HandleFired(payload notify.Payload) {
	r.logger.Info("alarm fired",
		zap.String("alarm_id", payload.AlarmID),
		zap.String("sound", payload.SoundValue),
		zap.Bool("snooze", payload.IsSnooze))

	if err := r.audio.PlayLooping(payload.SoundValue, r.ringFor); err != nil {
		r.logger.Error("play alarm sound failed", zap.Error(err))
	}
}

// HandleAction 处理用户对通知的响应。
func (r *Responder) HandleAction(action string, payload notify.Payload) {
	switch action {
	case ActionSnooze:
		r.stopRinging()
		r.snooze(payload)
	case ActionStop, ActionDefault:
		r.stopRinging()
	default:
		r.logger.Warn("unknown notification action", zap.String("action", action))
		r.stopRinging()
	}
}

// stopRinging 停止当前播放并关闭已展示的通知。
func (r *Responder) stopRinging() {
	if err := r.audio.Stop(); err != nil {
		r.logger.Error("stop alarm sound failed", zap.Error(err))
	}
	r.registry.DismissAll()
}

// snooze 登记一条 N 分钟后的一次性通知，携带原有标签。
func (r *Responder) snooze(payload notify.Payload) {
	fireAt := r.now().Add(r.snoozeAfter)
	payload.IsSnooze = true

	if _, err := r.registry.Schedule(notify.Trigger{
		FireAt: fireAt,
		Hour:   fireAt.Hour(),
		Minute: fireAt.Minute(),
	}, payload); err != nil {
		r.logger.Error("schedule snooze failed",
			zap.String("alarm_id", payload.AlarmID), zap.Error(err))
		return
	}

	r.logger.Info("alarm snoozed",
		zap.String("alarm_id", payload.AlarmID),
		zap.Time("fire_at", fireAt))
}
