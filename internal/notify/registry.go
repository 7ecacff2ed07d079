package notify

import (
	"errors"
	"time"
)

// Trigger 描述一次通知的触发方式：绝对时间的一次性触发，
// 或按星期重复的每周触发。Weekday 采用 1=周日..7=周六 的编号，
// 与触发器计算方一致。
type Trigger struct {
	FireAt  time.Time `json:"fireAt,omitempty"`
	Weekday int       `json:"weekday,omitempty"`
	Hour    int       `json:"hour"`
	Minute  int       `json:"minute"`
	Repeats bool      `json:"repeats"`
}

// Payload 随通知一同登记，触发后原样回传给事件处理方，
// 用于把响铃事件路由回对应的闹钟。
type Payload struct {
	AlarmID    string `json:"alarmId"`
	SoundValue string `json:"soundValue"`
	LabelValue string `json:"labelValue"`
	IsSnooze   bool   `json:"isSnooze,omitempty"`
}

// ErrPermissionNotGranted 在未获授权时拒绝登记通知。
var ErrPermissionNotGranted = errors.New("notification permission not granted")

// Registry 是平台通知注册表的抽象。
// Cancel 对不存在或已触发的 id 不视为错误。
type Registry interface {
	RequestPermission() (bool, error)
	Schedule(trigger Trigger, payload Payload) (string, error)
	Cancel(id string)
	CancelAll()
	DismissAll()
}

// FiredHandler 在通知触发时被调用，可能来自运行循环的 goroutine。
type FiredHandler func(payload Payload)
