package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/morningcall/internal/memo"
	"go.uber.org/zap"
)

// UploadMemo 接收一段语音备忘录并保存到对象存储。
func (a *API) UploadMemo(c *gin.Context) {
	file, err := c.FormFile("audio")
	if err != nil {
		respondError(c, http.StatusBadRequest, "업로드할 파일을 찾을 수 없습니다")
		return
	}

	opened, err := file.Open()
	if err != nil {
		respondError(c, http.StatusBadRequest, "파일을 열 수 없습니다")
		return
	}
	defer opened.Close()

	info, err := a.memos.Upload(file.Filename, file.Header.Get("Content-Type"), file.Size, opened)
	if err != nil {
		switch {
		case errors.Is(err, memo.ErrNotAudio):
			respondError(c, http.StatusBadRequest, "오디오 파일만 업로드할 수 있습니다")
		case errors.Is(err, memo.ErrFileTooLarge):
			respondError(c, http.StatusBadRequest, "파일 크기가 너무 큽니다. 최대 2MB까지 업로드 가능합니다")
		default:
			a.logger.Error("memo upload failed", zap.Error(err))
			respondError(c, http.StatusInternalServerError, "업로드에 실패했습니다")
		}
		return
	}
	c.JSON(http.StatusCreated, info)
}

// GetMemos 返回全部语音备忘录。
func (a *API) GetMemos(c *gin.Context) {
	memos, err := a.memos.List()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "목록을 불러올 수 없습니다")
		return
	}
	c.JSON(http.StatusOK, gin.H{"memos": memos})
}

// DeleteMemo 删除一段语音备忘录。
func (a *API) DeleteMemo(c *gin.Context) {
	if err := a.memos.Delete(c.Param("name")); err != nil {
		if errors.Is(err, memo.ErrMemoNotFound) {
			respondError(c, http.StatusNotFound, "메모를 찾을 수 없습니다")
			return
		}
		respondError(c, http.StatusInternalServerError, "삭제에 실패했습니다")
		return
	}
	c.Status(http.StatusNoContent)
}

// DownloadMemo 把备忘录音频导入铃声库，返回可用作闹钟铃声的键。
func (a *API) DownloadMemo(c *gin.Context) {
	soundValue, err := a.memos.DownloadToLibrary(c.Param("name"))
	if err != nil {
		if errors.Is(err, memo.ErrMemoNotFound) {
			respondError(c, http.StatusNotFound, "메모를 찾을 수 없습니다")
			return
		}
		respondError(c, http.StatusInternalServerError, "다운로드에 실패했습니다")
		return
	}
	c.JSON(http.StatusOK, gin.H{"soundValue": soundValue})
}
