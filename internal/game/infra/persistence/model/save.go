package model

import (
	"encoding/json"
	"time"

	"FootballManager/internal/game/app"
	"FootballManager/internal/game/domain"
)

// SavePayload 是存档的序列化主体：整棵联赛对象树加玩家设置。
type SavePayload struct {
	League   *domain.League   `json:"league"`
	Settings app.GameSettings `json:"settings"`
}

// EncodePayload 把存档主体编码为 JSON。
func EncodePayload(snap *app.SaveSnapshot) ([]byte, error) {
	return json.Marshal(&SavePayload{
		League:   snap.League,
		Settings: snap.Settings,
	})
}

// DecodeSnapshot 从序列化载荷还原存档。
func DecodeSnapshot(saveId, managerName, teamName string, schemaVersion int, savedAt time.Time, payload []byte) (*app.SaveSnapshot, error) {
	var body SavePayload
	if err := json.Unmarshal(payload, &body); err != nil {
		return nil, err
	}
	return &app.SaveSnapshot{
		SaveId:        saveId,
		ManagerName:   managerName,
		TeamName:      teamName,
		League:        body.League,
		Settings:      body.Settings,
		SchemaVersion: schemaVersion,
		SavedAt:       savedAt,
	}, nil
}
