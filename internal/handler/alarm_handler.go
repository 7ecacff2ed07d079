package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/morningcall/internal/alarm"
)

// alarmResponse 是闹钟的对外视图，repeatValue 由 selectedDays 即时推导。
type alarmResponse struct {
	ID              string            `json:"id"`
	SelectedTime    alarm.AlarmTime   `json:"selectedTime"`
	SelectedDays    []alarm.DayOfWeek `json:"selectedDays"`
	RepeatValue     string            `json:"repeatValue"`
	LabelValue      string            `json:"labelValue"`
	SoundValue      string            `json:"soundValue"`
	SnoozeValue     string            `json:"snoozeValue"`
	IsActive        bool              `json:"isActive"`
	NotificationIDs []string          `json:"notificationIds"`
	CreatedAt       time.Time         `json:"createdAt"`
}

func toAlarmResponse(record alarm.AlarmRecord) alarmResponse {
	return alarmResponse{
		ID:              record.ID,
		SelectedTime:    record.SelectedTime,
		SelectedDays:    record.SelectedDays,
		RepeatValue:     record.RepeatValue(),
		LabelValue:      record.LabelValue,
		SoundValue:      record.SoundValue,
		SnoozeValue:     record.SnoozeValue,
		IsActive:        record.IsActive,
		NotificationIDs: record.NotificationIDs,
		CreatedAt:       record.CreatedAt,
	}
}

// GetAlarms 返回全部闹钟。
func (a *API) GetAlarms(c *gin.Context) {
	records, err := a.alarms.List()
	if err != nil {
		respondAlarmError(c, err)
		return
	}

	responses := make([]alarmResponse, 0, len(records))
	for _, record := range records {
		responses = append(responses, toAlarmResponse(record))
	}
	c.JSON(http.StatusOK, gin.H{"alarms": responses})
}

// CreateAlarm 新建闹钟。
func (a *API) CreateAlarm(c *gin.Context) {
	var input alarm.AlarmInput
	if !bindJSON(c, &input, "잘못된 알람 설정입니다") {
		return
	}

	record, err := a.alarms.Create(input)
	if err != nil {
		respondAlarmError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toAlarmResponse(*record))
}

// UpdateAlarm 编辑闹钟。
func (a *API) UpdateAlarm(c *gin.Context) {
	var input alarm.AlarmInput
	if !bindJSON(c, &input, "잘못된 알람 설정입니다") {
		return
	}

	record, err := a.alarms.Update(c.Param("id"), input)
	if err != nil {
		respondAlarmError(c, err)
		return
	}
	c.JSON(http.StatusOK, toAlarmResponse(*record))
}

// DeleteAlarm 删除闹钟，id 不存在时同样返回成功。
func (a *API) DeleteAlarm(c *gin.Context) {
	if err := a.alarms.Delete(c.Param("id")); err != nil {
		respondAlarmError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ToggleAlarm 切换闹钟启用状态。
func (a *API) ToggleAlarm(c *gin.Context) {
	var body struct {
		Active *bool `json:"active" binding:"required"`
	}
	if !bindJSON(c, &body, "잘못된 요청입니다") {
		return
	}

	if err := a.alarms.Toggle(c.Param("id"), *body.Active); err != nil {
		respondAlarmError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetNextOccurrences 返回每条活动闹钟的下一次响铃时刻，供列表展示。
func (a *API) GetNextOccurrences(c *gin.Context) {
	records, err := a.alarms.List()
	if err != nil {
		respondAlarmError(c, err)
		return
	}

	now := time.Now()
	type nextEntry struct {
		ID   string     `json:"id"`
		Next *time.Time `json:"next"`
	}
	entries := make([]nextEntry, 0, len(records))
	for _, record := range records {
		entries = append(entries, nextEntry{
			ID:   record.ID,
			Next: a.alarms.NextOccurrence(record, now),
		})
	}
	c.JSON(http.StatusOK, gin.H{"occurrences": entries})
}
