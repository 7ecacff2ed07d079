package alarm

import (
	"encoding/json"
	"errors"

	"github.com/morningcall/internal/db"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store 独占持久化的闹钟集合，仅提供整体读写。
// 所有写入都来自同一个进程内的 Service 实例，
// 因此按约定采用单一的读-改-写，不提供并发写保护。
type Store struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewStore 构造 Store。
func NewStore(gdb *gorm.DB, logger *zap.Logger) *Store {
	return &Store{db: gdb, logger: logger}
}

// List 读取全部闹钟记录。
// 键不存在视为空集合；负载损坏或存储不可用时返回空集合与 StorageError，
// 由调用方决定降级方式。
func (s *Store) List() ([]AlarmRecord, error) {
	var setting db.Setting
	err := s.db.Where("key = ?", db.SettingKeyAlarms).First(&setting).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return []AlarmRecord{}, nil
	}
	if err != nil {
		return []AlarmRecord{}, &StorageError{Op: "load alarms", Err: err}
	}

	var records []AlarmRecord
	if err := json.Unmarshal([]byte(setting.Value), &records); err != nil {
		s.logger.Error("alarm payload corrupt, treating as empty", zap.Error(err))
		return []AlarmRecord{}, &StorageError{Op: "decode alarms", Err: err}
	}
	if records == nil {
		records = []AlarmRecord{}
	}
	return records, nil
}

// ReplaceAll 以整体覆盖方式写入闹钟集合。
func (s *Store) ReplaceAll(records []AlarmRecord) error {
	if records == nil {
		records = []AlarmRecord{}
	}

	payload, err := json.Marshal(records)
	if err != nil {
		return &StorageError{Op: "encode alarms", Err: err}
	}

	err = s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&db.Setting{Key: db.SettingKeyAlarms, Value: string(payload)}).Error
	if err != nil {
		return &StorageError{Op: "save alarms", Err: err}
	}
	return nil
}
