package model

import "time"

// SaveRow 是 MySQL 主档行，整档 JSON 存在 payload 列。
type SaveRow struct {
	SaveId        string    `gorm:"column:save_id;type:varchar(64);primaryKey;not null;" json:"save_id"`
	ManagerName   string    `gorm:"column:manager_name;type:varchar(100);not null;" json:"manager_name"`
	TeamName      string    `gorm:"column:team_name;type:varchar(100);not null;" json:"team_name"`
	SchemaVersion int       `gorm:"column:schema_version;type:int;not null;" json:"schema_version"`
	SavedAt       time.Time `gorm:"column:saved_at;type:timestamp;not null;" json:"saved_at"`
	Payload       []byte    `gorm:"column:payload;type:longblob;not null;" json:"payload"`
}

func (SaveRow) TableName() string {
	return "game_save"
}

// SaveBackupRow 是 MySQL 滚动备份行。
type SaveBackupRow struct {
	Id            uint64    `gorm:"column:id;primaryKey;autoIncrement;" json:"id"`
	SaveId        string    `gorm:"column:save_id;type:varchar(64);index;not null;" json:"save_id"`
	ManagerName   string    `gorm:"column:manager_name;type:varchar(100);not null;" json:"manager_name"`
	TeamName      string    `gorm:"column:team_name;type:varchar(100);not null;" json:"team_name"`
	SchemaVersion int       `gorm:"column:schema_version;type:int;not null;" json:"schema_version"`
	SavedAt       time.Time `gorm:"column:saved_at;type:timestamp;not null;" json:"saved_at"`
	Payload       []byte    `gorm:"column:payload;type:longblob;not null;" json:"payload"`
}

func (SaveBackupRow) TableName() string {
	return "game_save_backup"
}
