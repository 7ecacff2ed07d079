package db

import "gorm.io/gorm"

// Setting 存储设备本地的键值对状态。
// 闹钟集合以 JSON 数组整体写入 SettingKeyAlarms 对应的行，
// 读-改-写始终针对整个集合进行。
type Setting struct {
	gorm.Model
	Key   string `gorm:"size:100;uniqueIndex;not null"`
	Value string `gorm:"type:text"`
}

// TableName 自定义表名以保持命名一致。
func (Setting) TableName() string {
	return "settings"
}

const (
	// SettingKeyAlarms 表示持久化的闹钟集合。
	SettingKeyAlarms = "alarms"
)
