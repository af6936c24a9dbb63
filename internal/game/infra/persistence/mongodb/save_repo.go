package mongodb

import (
	"context"
	"errors"

	"FootballManager/internal/game/app"
	"FootballManager/internal/game/infra/persistence/model"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const (
	saveCollectionName   = "game_save"
	backupCollectionName = "game_save_backup"
)

// SaveRepo 是 MongoDB 存档仓储：主档整档覆盖，旧主档滚入备份集合。
type SaveRepo struct {
	saves   *mongo.Collection
	backups *mongo.Collection
}

func NewSaveRepo(db *mongo.Database) *SaveRepo {
	return &SaveRepo{
		saves:   db.Collection(saveCollectionName),
		backups: db.Collection(backupCollectionName),
	}
}

func (r *SaveRepo) Save(ctx context.Context, snap *app.SaveSnapshot) error {
	payload, err := model.EncodePayload(snap)
	if err != nil {
		return app.ErrInternalServer.WithData("save_id", snap.SaveId).WithCause(err)
	}

	// 旧主档滚入备份
	var prev model.SaveDoc
	err = r.saves.FindOne(ctx, bson.M{"_id": snap.SaveId}).Decode(&prev)
	if err == nil {
		if err := r.pushBackup(ctx, prev); err != nil {
			return err
		}
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return app.ErrUnavailable.WithData("save_id", snap.SaveId).WithCause(err)
	}

	doc := model.SaveDoc{
		SaveId:        snap.SaveId,
		ManagerName:   snap.ManagerName,
		TeamName:      snap.TeamName,
		SchemaVersion: snap.SchemaVersion,
		SavedAt:       snap.SavedAt,
		Payload:       payload,
	}
	_, err = r.saves.ReplaceOne(ctx, bson.M{"_id": doc.SaveId}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return app.ErrUnavailable.WithData("save_id", snap.SaveId).WithCause(err)
	}
	return nil
}

func (r *SaveRepo) pushBackup(ctx context.Context, prev model.SaveDoc) error {
	backup := model.SaveBackupDoc{
		SaveId:        prev.SaveId,
		ManagerName:   prev.ManagerName,
		TeamName:      prev.TeamName,
		SchemaVersion: prev.SchemaVersion,
		SavedAt:       prev.SavedAt,
		Payload:       prev.Payload,
	}
	if _, err := r.backups.InsertOne(ctx, backup); err != nil {
		return app.ErrUnavailable.WithData("save_id", prev.SaveId).WithCause(err)
	}

	// 只保留最近 MaxBackups 份
	cursor, err := r.backups.Find(ctx,
		bson.M{"save_id": prev.SaveId},
		options.Find().SetSort(bson.D{{Key: "saved_at", Value: -1}}).SetSkip(int64(app.MaxBackups)),
	)
	if err != nil {
		return app.ErrUnavailable.WithData("save_id", prev.SaveId).WithCause(err)
	}
	defer cursor.Close(ctx)

	stale := make([]bson.ObjectID, 0)
	for cursor.Next(ctx) {
		var doc model.SaveBackupDoc
		if err := cursor.Decode(&doc); err != nil {
			return app.ErrUnavailable.WithData("save_id", prev.SaveId).WithCause(err)
		}
		stale = append(stale, doc.Id)
	}
	if len(stale) > 0 {
		if _, err := r.backups.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": stale}}); err != nil {
			return app.ErrUnavailable.WithData("save_id", prev.SaveId).WithCause(err)
		}
	}
	return nil
}

func (r *SaveRepo) Load(ctx context.Context, saveId string) (*app.SaveSnapshot, error) {
	var doc model.SaveDoc
	err := r.saves.FindOne(ctx, bson.M{"_id": saveId}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, app.ErrSaveNotFound.WithData("save_id", saveId)
	}
	if err != nil {
		return nil, app.ErrUnavailable.WithData("save_id", saveId).WithCause(err)
	}

	snap, err := model.DecodeSnapshot(doc.SaveId, doc.ManagerName, doc.TeamName, doc.SchemaVersion, doc.SavedAt, doc.Payload)
	if err != nil {
		return nil, app.ErrInternalServer.WithData("save_id", saveId).WithCause(err)
	}
	return snap, nil
}

func (r *SaveRepo) LoadBackup(ctx context.Context, saveId string) (*app.SaveSnapshot, error) {
	var doc model.SaveBackupDoc
	err := r.backups.FindOne(ctx,
		bson.M{"save_id": saveId},
		options.FindOne().SetSort(bson.D{{Key: "saved_at", Value: -1}}),
	).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, app.ErrSaveNotFound.WithData("save_id", saveId)
	}
	if err != nil {
		return nil, app.ErrUnavailable.WithData("save_id", saveId).WithCause(err)
	}

	snap, err := model.DecodeSnapshot(doc.SaveId, doc.ManagerName, doc.TeamName, doc.SchemaVersion, doc.SavedAt, doc.Payload)
	if err != nil {
		return nil, app.ErrInternalServer.WithData("save_id", saveId).WithCause(err)
	}
	return snap, nil
}

func (r *SaveRepo) Delete(ctx context.Context, saveId string) error {
	if _, err := r.saves.DeleteOne(ctx, bson.M{"_id": saveId}); err != nil {
		return app.ErrUnavailable.WithData("save_id", saveId).WithCause(err)
	}
	if _, err := r.backups.DeleteMany(ctx, bson.M{"save_id": saveId}); err != nil {
		return app.ErrUnavailable.WithData("save_id", saveId).WithCause(err)
	}
	return nil
}
