package app

import (
	"context"
	"time"

	"FootballManager/internal/game/domain"
)

// SaveSnapshot 是一份完整存档：创建即可整体落库、读出即可整体恢复。
// SchemaVersion 用于向后兼容校验。
type SaveSnapshot struct {
	SaveId        string
	ManagerName   string
	TeamName      string
	League        *domain.League
	Settings      GameSettings
	SchemaVersion int
	SavedAt       time.Time
}

// GameSettings 是存档内的玩家设置。
type GameSettings struct {
	AutoSave bool
}

const SchemaVersion = 1

// SaveRepo 是存档仓储端口。
//
// 约束：
// - Save 覆盖主档并滚动保留最近 3 份备份
// - Load 找不到存档返回 domain 层无关的 ErrSaveNotFound
// - LoadBackup 返回最近一份备份（主档损坏时的恢复路径）
type SaveRepo interface {
	Save(ctx context.Context, snap *SaveSnapshot) error
	Load(ctx context.Context, saveId string) (*SaveSnapshot, error)
	LoadBackup(ctx context.Context, saveId string) (*SaveSnapshot, error)
	Delete(ctx context.Context, saveId string) error
}

// MaxBackups 是滚动备份份数。
const MaxBackups = 3
