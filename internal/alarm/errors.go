package alarm

import (
	"errors"
	"fmt"
)

var (
	// ErrAlarmNotFound 在指定闹钟不存在时返回
	ErrAlarmNotFound = errors.New("alarm not found")
	// ErrPermissionDenied 在通知权限被拒绝时返回，操作在任何持久化之前中止
	ErrPermissionDenied = errors.New("notification permission denied")
	// ErrInvalidTime 在钟表时间超出范围时返回
	ErrInvalidTime = errors.New("invalid alarm time")
	// ErrInvalidDay 在星期取值非法时返回
	ErrInvalidDay = errors.New("invalid day of week")
)

// SchedulingError 包装平台登记失败。返回前，本次调用已登记的
// 触发器会被回滚取消，不留孤儿。
type SchedulingError struct {
	AlarmID string
	Err     error
}

func (e *SchedulingError) Error() string {
	return fmt.Sprintf("schedule alarm %s: %v", e.AlarmID, e.Err)
}

func (e *SchedulingError) Unwrap() error {
	return e.Err
}

// StorageError 包装底层存储的读写失败。
// 读取失败时调用方降级为空集合而不是崩溃。
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
