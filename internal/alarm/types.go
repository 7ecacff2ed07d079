package alarm

import (
	"fmt"
	"time"
)

// AlarmTime 表示一天内的钟表时间，不携带日期与时区，
// 触发时始终按设备本地时间解释。
type AlarmTime struct {
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
}

// Valid 校验取值范围。
func (t AlarmTime) Valid() bool {
	return t.Hours >= 0 && t.Hours <= 23 && t.Minutes >= 0 && t.Minutes <= 59
}

// OccurrenceOn 返回 day 所在日期上的本次钟表时间，秒和纳秒归零。
func (t AlarmTime) OccurrenceOn(day time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), t.Hours, t.Minutes, 0, 0, day.Location())
}

func (t AlarmTime) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hours, t.Minutes)
}

// DayOfWeek 表示重复闹钟的星期选项。
type DayOfWeek string

const (
	Sunday    DayOfWeek = "sunday"
	Monday    DayOfWeek = "monday"
	Tuesday   DayOfWeek = "tuesday"
	Wednesday DayOfWeek = "wednesday"
	Thursday  DayOfWeek = "thursday"
	Friday    DayOfWeek = "friday"
	Saturday  DayOfWeek = "saturday"
)

// DaysInOrder 是规范化后的星期顺序（周日起始）。
var DaysInOrder = []DayOfWeek{Sunday, Monday, Tuesday, Wednesday, Thursday, Friday, Saturday}

// WeekdayNumber 返回平台每周触发器使用的星期编号（1=周日..7=周六）。
func (d DayOfWeek) WeekdayNumber() int {
	for i, day := range DaysInOrder {
		if day == d {
			return i + 1
		}
	}
	return 0
}

// Valid 判断是否为已知星期值。
func (d DayOfWeek) Valid() bool {
	return d.WeekdayNumber() != 0
}

// NormalizeDays 去重并按规范顺序返回星期集合。
// 两次传入相同集合（无论顺序）得到相同结果，是触发器计算确定性的前提。
func NormalizeDays(days []DayOfWeek) []DayOfWeek {
	selected := make(map[DayOfWeek]bool, len(days))
	for _, d := range days {
		selected[d] = true
	}

	result := make([]DayOfWeek, 0, len(selected))
	for _, d := range DaysInOrder {
		if selected[d] {
			result = append(result, d)
		}
	}
	return result
}

const (
	// SnoozeOn / SnoozeOff 是稍后提醒开关的枚举值。
	SnoozeOn  = "on"
	SnoozeOff = "off"

	// DefaultLabel 是未命名闹钟的占位名称。
	DefaultLabel = "알람"
)

// AlarmInput 定义创建/编辑闹钟时可配置的字段。
type AlarmInput struct {
	SelectedTime AlarmTime   `json:"selectedTime"`
	SelectedDays []DayOfWeek `json:"selectedDays"`
	LabelValue   string      `json:"labelValue"`
	SoundValue   string      `json:"soundValue"`
	SnoozeValue  string      `json:"snoozeValue"`
}

// AlarmRecord 是持久化的闹钟实体。
// SelectedDays 为空表示一次性闹钟；IsActive 为真时
// NotificationIDs 恰好包含 max(1, len(SelectedDays)) 个触发器 id，
// 为假时恒为空。
type AlarmRecord struct {
	ID              string      `json:"id"`
	SelectedTime    AlarmTime   `json:"selectedTime"`
	SelectedDays    []DayOfWeek `json:"selectedDays"`
	LabelValue      string      `json:"labelValue"`
	SoundValue      string      `json:"soundValue"`
	SnoozeValue     string      `json:"snoozeValue"`
	IsActive        bool        `json:"isActive"`
	NotificationIDs []string    `json:"notificationIds"`
	CreatedAt       time.Time   `json:"createdAt"`
}

// RepeatValue 返回由 SelectedDays 即时推导的重复标签。
// 标签不落盘，杜绝缓存副本与实际选择不一致的问题。
func (r AlarmRecord) RepeatValue() string {
	return RepeatLabel(r.SelectedDays)
}

// RepeatLabel 把星期集合转换为展示用的重复标签。
func RepeatLabel(days []DayOfWeek) string {
	normalized := NormalizeDays(days)

	switch {
	case len(normalized) == 0:
		return "없음"
	case len(normalized) == 7:
		return "매일"
	case isWeekdays(normalized):
		return "주중 (월~금)"
	case isWeekend(normalized):
		return "주말 (토~일)"
	default:
		return fmt.Sprintf("%d일 선택됨", len(normalized))
	}
}

func isWeekdays(normalized []DayOfWeek) bool {
	if len(normalized) != 5 {
		return false
	}
	for _, d := range normalized {
		if d == Sunday || d == Saturday {
			return false
		}
	}
	return true
}

func isWeekend(normalized []DayOfWeek) bool {
	return len(normalized) == 2 && normalized[0] == Sunday && normalized[1] == Saturday
}
