package mysql

import (
	"context"
	"errors"

	"FootballManager/internal/game/app"
	"FootballManager/internal/game/infra/persistence/model"

	"gorm.io/gorm"
)

// SaveRepo 是 MySQL 存档仓储：整档 JSON 落主表，旧主档滚入备份表。
type SaveRepo struct {
	db *gorm.DB
}

func NewSaveRepo(db *gorm.DB) *SaveRepo {
	return &SaveRepo{db: db}
}

func (r *SaveRepo) Save(ctx context.Context, snap *app.SaveSnapshot) error {
	payload, err := model.EncodePayload(snap)
	if err != nil {
		return app.ErrInternalServer.WithData("save_id", snap.SaveId).WithCause(err)
	}

	row := model.SaveRow{
		SaveId:        snap.SaveId,
		ManagerName:   snap.ManagerName,
		TeamName:      snap.TeamName,
		SchemaVersion: snap.SchemaVersion,
		SavedAt:       snap.SavedAt,
		Payload:       payload,
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var prev model.SaveRow
		err := tx.Where("save_id = ?", snap.SaveId).First(&prev).Error
		if err == nil {
			backup := model.SaveBackupRow{
				SaveId:        prev.SaveId,
				ManagerName:   prev.ManagerName,
				TeamName:      prev.TeamName,
				SchemaVersion: prev.SchemaVersion,
				SavedAt:       prev.SavedAt,
				Payload:       prev.Payload,
			}
			if err := tx.Create(&backup).Error; err != nil {
				return app.ErrUnavailable.WithData("save_id", snap.SaveId).WithCause(err)
			}
			if err := trimBackups(tx, snap.SaveId); err != nil {
				return err
			}
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return app.ErrUnavailable.WithData("save_id", snap.SaveId).WithCause(err)
		}

		if err := tx.Save(&row).Error; err != nil {
			return app.ErrUnavailable.WithData("save_id", snap.SaveId).WithCause(err)
		}
		return nil
	})
}

// trimBackups 只保留最近 MaxBackups 份备份。
func trimBackups(tx *gorm.DB, saveId string) error {
	var stale []uint64
	err := tx.Model(&model.SaveBackupRow{}).
		Where("save_id = ?", saveId).
		Order("saved_at DESC").
		Offset(app.MaxBackups).
		Limit(100).
		Pluck("id", &stale).Error
	if err != nil {
		return app.ErrUnavailable.WithData("save_id", saveId).WithCause(err)
	}
	if len(stale) == 0 {
		return nil
	}
	if err := tx.Delete(&model.SaveBackupRow{}, stale).Error; err != nil {
		return app.ErrUnavailable.WithData("save_id", saveId).WithCause(err)
	}
	return nil
}

func (r *SaveRepo) Load(ctx context.Context, saveId string) (*app.SaveSnapshot, error) {
	var row model.SaveRow
	err := r.db.WithContext(ctx).Where("save_id = ?", saveId).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, app.ErrSaveNotFound.WithData("save_id", saveId)
	}
	if err != nil {
		return nil, app.ErrUnavailable.WithData("save_id", saveId).WithCause(err)
	}

	snap, err := model.DecodeSnapshot(row.SaveId, row.ManagerName, row.TeamName, row.SchemaVersion, row.SavedAt, row.Payload)
	if err != nil {
		return nil, app.ErrInternalServer.WithData("save_id", saveId).WithCause(err)
	}
	return snap, nil
}

func (r *SaveRepo) LoadBackup(ctx context.Context, saveId string) (*app.SaveSnapshot, error) {
	var row model.SaveBackupRow
	err := r.db.WithContext(ctx).
		Where("save_id = ?", saveId).
		Order("saved_at DESC").
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, app.ErrSaveNotFound.WithData("save_id", saveId)
	}
	if err != nil {
		return nil, app.ErrUnavailable.WithData("save_id", saveId).WithCause(err)
	}

	snap, err := model.DecodeSnapshot(row.SaveId, row.ManagerName, row.TeamName, row.SchemaVersion, row.SavedAt, row.Payload)
	if err != nil {
		return nil, app.ErrInternalServer.WithData("save_id", saveId).WithCause(err)
	}
	return snap, nil
}

func (r *SaveRepo) Delete(ctx context.Context, saveId string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("save_id = ?", saveId).Delete(&model.SaveRow{}).Error; err != nil {
			return app.ErrUnavailable.WithData("save_id", saveId).WithCause(err)
		}
		if err := tx.Where("save_id = ?", saveId).Delete(&model.SaveBackupRow{}).Error; err != nil {
			return app.ErrUnavailable.WithData("save_id", saveId).WithCause(err)
		}
		return nil
	})
}
