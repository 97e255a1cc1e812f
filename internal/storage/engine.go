package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"log"
	"net/url"
	"strings"
	"time"

	"github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// Collection names used by the application.
const (
	CollectionCourses = "courses"
	CollectionUsers   = "users"
)

// Engine is the persistent key-value boundary: named record collections with
// bulk read, upsert by id, and delete by id. All operations may fail; the
// caller owns the failure policy (fall back to seed data on read, log and
// swallow on write).
type Engine interface {
	GetAll(ctx context.Context, collection string) ([]json.RawMessage, error)
	Put(ctx context.Context, collection, id string, record any) error
	Delete(ctx context.Context, collection, id string) error
}

// Record is a single stored document. Collections share one table keyed by
// (collection, id) so that schema upgrades never touch existing rows.
type Record struct {
	Collection string    `gorm:"primaryKey;size:64" json:"collection"`
	ID         string    `gorm:"primaryKey;size:64" json:"id"`
	Data       []byte    `gorm:"type:jsonb" json:"data"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// GormEngine persists records in Postgres through gorm.
type GormEngine struct {
	db *gorm.DB
}

// Open connects to the database, creating it on first use, and runs
// migrations. Fatal on failure: without durable storage there is nothing to
// mirror into.
func Open(dsn string) *GormEngine {
	if err := ensureDatabase(dsn); err != nil {
		log.Fatalf("failed to ensure database: %v", err)
	}

	conn, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := conn.AutoMigrate(&Record{}); err != nil {
		log.Fatalf("database migration failed: %v", err)
	}

	return &GormEngine{db: conn}
}

// NewGormEngine wraps an existing gorm connection.
func NewGormEngine(db *gorm.DB) *GormEngine {
	return &GormEngine{db: db}
}

// GetAll returns every record in the collection.
func (e *GormEngine) GetAll(ctx context.Context, collection string) ([]json.RawMessage, error) {
	var records []Record
	if err := e.db.WithContext(ctx).
		Where("collection = ?", collection).
		Order("id").
		Find(&records).Error; err != nil {
		return nil, err
	}

	out := make([]json.RawMessage, 0, len(records))
	for _, r := range records {
		out = append(out, json.RawMessage(r.Data))
	}
	return out, nil
}

// Put upserts a whole record by id.
func (e *GormEngine) Put(ctx context.Context, collection, id string, record any) error {
	data, err := json.Marshal(record)
	if err != nil {
		return err
	}

	row := Record{
		Collection: collection,
		ID:         id,
		Data:       data,
		UpdatedAt:  time.Now(),
	}

	return e.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "collection"}, {Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
		}).
		Create(&row).Error
}

// Delete removes a record by id. Deleting an absent record is a no-op.
func (e *GormEngine) Delete(ctx context.Context, collection, id string) error {
	return e.db.WithContext(ctx).
		Where("collection = ? AND id = ?", collection, id).
		Delete(&Record{}).Error
}

func ensureDatabase(dsn string) error {
	if !strings.HasPrefix(dsn, "postgres://") && !strings.HasPrefix(dsn, "postgresql://") {
		return nil
	}

	parsed, err := url.Parse(dsn)
	if err != nil {
		return err
	}

	dbName := strings.TrimPrefix(parsed.Path, "/")
	if dbName == "" {
		return nil
	}

	parsed.Path = "/postgres"
	masterDSN := parsed.String()

	sqlDB, err := sql.Open("postgres", masterDSN)
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		return err
	}

	var exists bool
	if err := sqlDB.QueryRow("SELECT EXISTS (SELECT 1 FROM pg_database WHERE datname = $1)", dbName).Scan(&exists); err != nil {
		return err
	}

	if exists {
		return nil
	}

	_, err = sqlDB.Exec("CREATE DATABASE " + pq.QuoteIdentifier(dbName))
	return err
}
