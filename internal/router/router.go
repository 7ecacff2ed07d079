package router

import (
	"github.com/gin-gonic/gin"
	"github.com/morningcall/internal/handler"
)

// SetupRouter 配置 Gin 引擎和路由。
// memoURLPath/memoDir 用于语音备忘录对象的静态下载。
func SetupRouter(api *handler.API, memoURLPath, memoDir string) *gin.Engine {
	r := gin.Default()

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	// 语音备忘录对象的静态下载
	r.Static(memoURLPath, memoDir)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/alarms", api.GetAlarms)
		apiGroup.POST("/alarms", api.CreateAlarm)
		apiGroup.PUT("/alarms/:id", api.UpdateAlarm)
		apiGroup.DELETE("/alarms/:id", api.DeleteAlarm)
		apiGroup.POST("/alarms/:id/toggle", api.ToggleAlarm)
		apiGroup.GET("/alarms/next", api.GetNextOccurrences)

		apiGroup.POST("/ring/stop", api.StopRing)
		apiGroup.POST("/ring/snooze", api.SnoozeRing)

		apiGroup.GET("/sounds", api.GetSounds)
		apiGroup.POST("/sounds/:key/preview", api.PreviewSound)

		apiGroup.POST("/memos", api.UploadMemo)
		apiGroup.GET("/memos", api.GetMemos)
		apiGroup.DELETE("/memos/:name", api.DeleteMemo)
		apiGroup.POST("/memos/:name/download", api.DownloadMemo)
	}

	return r
}
