package db

import "gorm.io/gorm"

// VoiceMemo 记录已上传语音备忘录的元数据。
// 音频内容本身由对象存储保管，这里只保存文件名与属性，
// 便于列表展示与删除时的一致性校验。
type VoiceMemo struct {
	gorm.Model
	Name        string `gorm:"size:255;uniqueIndex;not null"`
	OriginName  string `gorm:"size:255"`
	ContentType string `gorm:"size:100"`
	Size        int64
}

// TableName 自定义表名以保持命名一致。
func (VoiceMemo) TableName() string {
	return "voice_memos"
}
