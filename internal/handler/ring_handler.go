package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/morningcall/internal/alarm"
	"github.com/morningcall/internal/notify"
)

// ringRequest 携带通知回传的负载，由正在响铃的客户端提交。
type ringRequest struct {
	AlarmID    string `json:"alarmId"`
	SoundValue string `json:"soundValue"`
	LabelValue string `json:"labelValue"`
}

func (r ringRequest) payload() notify.Payload {
	return notify.Payload{
		AlarmID:    r.AlarmID,
		SoundValue: r.SoundValue,
		LabelValue: r.LabelValue,
	}
}

// StopRing 停止当前响铃。
func (a *API) StopRing(c *gin.Context) {
	var body ringRequest
	if !bindJSON(c, &body, "잘못된 요청입니다") {
		return
	}

	a.responder.HandleAction(alarm.ActionStop, body.payload())
	c.Status(http.StatusNoContent)
}

// SnoozeRing 停止当前响铃并在固定间隔后再次提醒。
func (a *API) SnoozeRing(c *gin.Context) {
	var body ringRequest
	if !bindJSON(c, &body, "잘못된 요청입니다") {
		return
	}

	a.responder.HandleAction(alarm.ActionSnooze, body.payload())
	c.Status(http.StatusNoContent)
}
