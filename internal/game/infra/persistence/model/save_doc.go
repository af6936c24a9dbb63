package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// SaveDoc 是 MongoDB 主档文档。
type SaveDoc struct {
	SaveId        string    `bson:"_id"`
	ManagerName   string    `bson:"manager_name"`
	TeamName      string    `bson:"team_name"`
	SchemaVersion int       `bson:"schema_version"`
	SavedAt       time.Time `bson:"saved_at"`
	Payload       []byte    `bson:"payload"`
}

// SaveBackupDoc 是 MongoDB 滚动备份文档。
type SaveBackupDoc struct {
	Id            bson.ObjectID `bson:"_id,omitempty"`
	SaveId        string        `bson:"save_id"`
	ManagerName   string        `bson:"manager_name"`
	TeamName      string        `bson:"team_name"`
	SchemaVersion int           `bson:"schema_version"`
	SavedAt       time.Time     `bson:"saved_at"`
	Payload       []byte        `bson:"payload"`
}
