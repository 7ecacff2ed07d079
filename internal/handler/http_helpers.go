package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/morningcall/internal/alarm"
)

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

func bindJSON(c *gin.Context, dst interface{}, message string) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		respondError(c, http.StatusBadRequest, message)
		return false
	}
	return true
}

// respondAlarmError 把服务层错误映射为 HTTP 状态与用户可读的提示。
// 失败时 UI 保持原状态不变，提示语沿用应用内文案。
func respondAlarmError(c *gin.Context, err error) {
	var schedulingErr *alarm.SchedulingError
	var storageErr *alarm.StorageError

	switch {
	case errors.Is(err, alarm.ErrAlarmNotFound):
		respondError(c, http.StatusNotFound, "알람을 찾을 수 없습니다")
	case errors.Is(err, alarm.ErrPermissionDenied):
		respondError(c, http.StatusForbidden, "알림 권한이 필요합니다")
	case errors.Is(err, alarm.ErrInvalidTime), errors.Is(err, alarm.ErrInvalidDay):
		respondError(c, http.StatusBadRequest, "잘못된 알람 설정입니다")
	case errors.As(err, &schedulingErr):
		respondError(c, http.StatusBadGateway, "알람을 설정할 수 없습니다")
	case errors.As(err, &storageErr):
		respondError(c, http.StatusInternalServerError, "알람을 저장할 수 없습니다")
	default:
		respondError(c, http.StatusInternalServerError, "요청을 처리할 수 없습니다")
	}
}
