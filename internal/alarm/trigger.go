package alarm

import (
	"time"

	"github.com/morningcall/internal/notify"
)

// ComputeTriggers 把闹钟时间与星期集合映射为平台触发器描述。
//
// 星期集合为空时产生一个绝对时间的一次性触发器：若今天的该时刻
// 仍严格晚于 now 则取今天，否则顺延一天；秒与亚秒一律归零，
// 保证在整分边界响铃。
//
// 星期集合非空时为每个选中的星期产生一个每周触发器，
// 编号 1=周日..7=周六。
//
// 入参相同则输出相同（星期按规范顺序），这是恢复流程幂等的前提。
func ComputeTriggers(t AlarmTime, days []DayOfWeek, now time.Time) []notify.Trigger {
	normalized := NormalizeDays(days)

	if len(normalized) == 0 {
		fireAt := t.OccurrenceOn(now)
		if !fireAt.After(now) {
			fireAt = fireAt.AddDate(0, 0, 1)
		}
		return []notify.Trigger{{
			FireAt: fireAt,
			Hour:   t.Hours,
			Minute: t.Minutes,
		}}
	}

	triggers := make([]notify.Trigger, 0, len(normalized))
	for _, day := range normalized {
		triggers = append(triggers, notify.Trigger{
			Weekday: day.WeekdayNumber(),
			Hour:    t.Hours,
			Minute:  t.Minutes,
			Repeats: true,
		})
	}
	return triggers
}
