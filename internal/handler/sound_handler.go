package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetSounds 返回铃声库中全部可选的铃声文件名。
func (a *API) GetSounds(c *gin.Context) {
	names, err := a.sounds.List()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "사운드 목록을 불러올 수 없습니다")
		return
	}
	c.JSON(http.StatusOK, gin.H{"sounds": names})
}

// PreviewSound 短暂试听一段铃声。
func (a *API) PreviewSound(c *gin.Context) {
	if err := a.previewer.Preview(c.Param("key")); err != nil {
		respondError(c, http.StatusNotFound, "사운드를 재생할 수 없습니다")
		return
	}
	c.Status(http.StatusNoContent)
}
