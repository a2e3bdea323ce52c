package repository

import (
	"context"
	"database/sql"
	"time"

	"smartpan"
	"smartpan/internal/repository/db"
)

// InitDB opens/creates the SQLite file and ensures the schema exists.
func InitDB(path string) (*sql.DB, error) {
	return db.InitDB(path)
}

type ReadingRepo interface {
	Record(ctx context.Context, s smartpan.TemperatureSample) error
	Recent(ctx context.Context, limit int) ([]smartpan.Reading, error)
}

type EventRepo interface {
	Append(ctx context.Context, e smartpan.DeviceEvent) error
	List(ctx context.Context, from, to time.Time, typ string) ([]smartpan.DeviceEvent, error)
}

type Repository struct {
	ReadingRepo ReadingRepo
	EventRepo   EventRepo
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		ReadingRepo: NewReadingSQLite(db),
		EventRepo:   NewEventSQLite(db),
	}
}
