package memory

import (
	"context"
	"sync"

	"FootballManager/internal/game/app"
	"FootballManager/internal/game/infra/persistence/model"
)

// SaveRepo 是内存存档仓储：默认存储后端，也是测试用仓储。
// 存取都走序列化往返，行为与持久化后端一致（不共享对象引用）。
type SaveRepo struct {
	mu    sync.RWMutex
	saves map[string]*storedSave
}

type storedSave struct {
	main    *storedEntry
	backups []*storedEntry // 新备份在前，最多 app.MaxBackups 份
}

type storedEntry struct {
	snap    app.SaveSnapshot
	payload []byte
}

func NewSaveRepo() *SaveRepo {
	return &SaveRepo{saves: make(map[string]*storedSave)}
}

func (r *SaveRepo) Save(ctx context.Context, snap *app.SaveSnapshot) error {
	_ = ctx
	payload, err := model.EncodePayload(snap)
	if err != nil {
		return app.ErrInternalServer.WithData("save_id", snap.SaveId).WithCause(err)
	}
	entry := &storedEntry{snap: *snap, payload: payload}

	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.saves[snap.SaveId]
	if !ok {
		r.saves[snap.SaveId] = &storedSave{main: entry}
		return nil
	}

	if stored.main != nil {
		stored.backups = append([]*storedEntry{stored.main}, stored.backups...)
		if len(stored.backups) > app.MaxBackups {
			stored.backups = stored.backups[:app.MaxBackups]
		}
	}
	stored.main = entry
	return nil
}

func (r *SaveRepo) Load(ctx context.Context, saveId string) (*app.SaveSnapshot, error) {
	_ = ctx
	r.mu.RLock()
	stored, ok := r.saves[saveId]
	r.mu.RUnlock()
	if !ok || stored.main == nil {
		return nil, app.ErrSaveNotFound.WithData("save_id", saveId)
	}
	return decodeEntry(stored.main)
}

func (r *SaveRepo) LoadBackup(ctx context.Context, saveId string) (*app.SaveSnapshot, error) {
	_ = ctx
	r.mu.RLock()
	stored, ok := r.saves[saveId]
	r.mu.RUnlock()
	if !ok || len(stored.backups) == 0 {
		return nil, app.ErrSaveNotFound.WithData("save_id", saveId)
	}
	return decodeEntry(stored.backups[0])
}

func (r *SaveRepo) Delete(ctx context.Context, saveId string) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.saves, saveId)
	return nil
}

func decodeEntry(entry *storedEntry) (*app.SaveSnapshot, error) {
	snap, err := model.DecodeSnapshot(
		entry.snap.SaveId,
		entry.snap.ManagerName,
		entry.snap.TeamName,
		entry.snap.SchemaVersion,
		entry.snap.SavedAt,
		entry.payload,
	)
	if err != nil {
		return nil, app.ErrInternalServer.WithData("save_id", entry.snap.SaveId).WithCause(err)
	}
	return snap, nil
}
