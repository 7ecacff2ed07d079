package memo

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/morningcall/internal/db"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// MaxFileSize 是单个语音备忘录的体积上限。
const MaxFileSize = 2 * 1024 * 1024

var (
	// ErrMemoNotFound 在指定备忘录不存在时返回
	ErrMemoNotFound = errors.New("voice memo not found")
	// ErrFileTooLarge 在上传超过体积上限时返回
	ErrFileTooLarge = fmt.Errorf("voice memo exceeds %d bytes", MaxFileSize)
	// ErrNotAudio 在上传内容不是音频时返回
	ErrNotAudio = errors.New("voice memo must be an audio file")
)

// SoundImporter 把备忘录音频导入铃声库，使其可被选为闹钟铃声。
type SoundImporter interface {
	Import(name string, r io.Reader) error
}

// MemoInfo 是对外返回的备忘录视图。
type MemoInfo struct {
	Name        string    `json:"name"`
	OriginName  string    `json:"originName"`
	ContentType string    `json:"contentType"`
	Size        int64     `json:"size"`
	URL         string    `json:"url"`
	UploadedAt  time.Time `json:"uploadedAt"`
}

// Service 处理语音备忘录的上传、列表、删除与下载入库，
// 对象内容交给 Storage，元数据落在数据库。
type Service struct {
	db      *gorm.DB
	storage Storage
	sounds  SoundImporter
	logger  *zap.Logger
}

// NewService 构造 Service。sounds 可为 nil，此时下载入库不可用。
func NewService(gdb *gorm.DB, storage Storage, sounds SoundImporter, logger *zap.Logger) *Service {
	return &Service{db: gdb, storage: storage, sounds: sounds, logger: logger}
}

// Upload 校验并保存一段语音备忘录。
func (s *Service) Upload(originName, contentType string, size int64, r io.Reader) (*MemoInfo, error) {
	if !strings.HasPrefix(contentType, "audio/") {
		return nil, ErrNotAudio
	}
	if size > MaxFileSize {
		return nil, ErrFileTooLarge
	}

	ext := strings.ToLower(filepath.Ext(originName))
	if ext == "" {
		ext = ".mp3"
	}
	name := fmt.Sprintf("%s-%s%s", time.Now().Format("20060102"), uuid.New().String(), ext)

	// 再用 LimitReader 兜底，表单申报的 size 不可信
	if err := s.storage.Upload(name, io.LimitReader(r, MaxFileSize+1)); err != nil {
		return nil, err
	}

	record := db.VoiceMemo{
		Name:        name,
		OriginName:  originName,
		ContentType: contentType,
		Size:        size,
	}
	if err := s.db.Create(&record).Error; err != nil {
		if delErr := s.storage.Delete(name); delErr != nil {
			s.logger.Warn("orphan memo object cleanup failed", zap.Error(delErr))
		}
		return nil, fmt.Errorf("create memo record: %w", err)
	}

	s.logger.Info("voice memo uploaded",
		zap.String("name", name), zap.Int64("size", size))
	return s.info(record), nil
}

// List 返回全部备忘录，按上传时间倒序。
func (s *Service) List() ([]MemoInfo, error) {
	var records []db.VoiceMemo
	if err := s.db.Order("created_at DESC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("list memos: %w", err)
	}

	memos := make([]MemoInfo, 0, len(records))
	for _, record := range records {
		memos = append(memos, *s.info(record))
	}
	return memos, nil
}

// Delete 删除备忘录对象与元数据。
func (s *Service) Delete(name string) error {
	record, err := s.find(name)
	if err != nil {
		return err
	}

	if err := s.storage.Delete(name); err != nil {
		// 对象删除失败只记录，元数据照常清理，下次上传不会受阻
		s.logger.Warn("delete memo object failed", zap.String("name", name), zap.Error(err))
	}
	if err := s.db.Unscoped().Delete(&db.VoiceMemo{}, record.ID).Error; err != nil {
		return fmt.Errorf("delete memo record: %w", err)
	}

	s.logger.Info("voice memo deleted", zap.String("name", name))
	return nil
}

// DownloadToLibrary 把备忘录音频复制进铃声库，
// 返回可直接用作 soundValue 的铃声文件名。
func (s *Service) DownloadToLibrary(name string) (string, error) {
	if s.sounds == nil {
		return "", errors.New("sound library not configured")
	}

	record, err := s.find(name)
	if err != nil {
		return "", err
	}

	object, err := s.storage.Open(record.Name)
	if err != nil {
		return "", err
	}
	defer object.Close()

	if err := s.sounds.Import(record.Name, object); err != nil {
		return "", err
	}

	s.logger.Info("voice memo imported as alarm sound", zap.String("name", record.Name))
	return record.Name, nil
}

func (s *Service) find(name string) (*db.VoiceMemo, error) {
	var record db.VoiceMemo
	if err := s.db.Where("name = ?", name).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemoNotFound
		}
		return nil, fmt.Errorf("find memo: %w", err)
	}
	return &record, nil
}

func (s *Service) info(record db.VoiceMemo) *MemoInfo {
	return &MemoInfo{
		Name:        record.Name,
		OriginName:  record.OriginName,
		ContentType: record.ContentType,
		Size:        record.Size,
		URL:         s.storage.PublicURL(record.Name),
		UploadedAt:  record.CreatedAt,
	}
}
