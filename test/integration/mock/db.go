// Package mock provides in-memory test doubles for the integration suite.
package mock

import (
	"database/sql"
	"fmt"
	"sync"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var dbOnce sync.Once
var db *Db

// Db wraps a shared in-memory SQLite database that stands in for PostgreSQL
// during integration tests.
type Db struct {
	DbConn *gorm.DB
	models map[string]any
}

// NewDb returns the shared test database, creating and migrating it on first
// use. The models map is keyed by table name so assertion steps can resolve
// a table back to its model type.
func NewDb(models map[string]any) *Db {
	dbOnce.Do(func() {
		db = open(models)
	})
	return db
}

func open(models map[string]any) *Db {
	dbSQL, err := sql.Open("sqlite", "file::memory:?cache=shared")
	if err != nil {
		panic(err)
	}

	// A single connection keeps every session on the same in-memory database.
	dbSQL.SetMaxOpenConns(1)

	dbConn, err := gorm.Open(sqlite.Dialector{Conn: dbSQL}, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		panic("failed to connect to database: " + err.Error())
	}

	modelList := make([]any, 0, len(models))
	for _, model := range models {
		modelList = append(modelList, model)
	}
	if err := dbConn.AutoMigrate(modelList...); err != nil {
		panic("failed to migrate test database: " + err.Error())
	}

	return &Db{
		DbConn: dbConn,
		models: models,
	}
}

// Reset hard-deletes every row so each scenario starts from an empty
// database.
func (d *Db) Reset() error {
	for _, model := range d.models {
		err := d.DbConn.Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(model).Error
		if err != nil {
			return fmt.Errorf("failed to reset table for model %T: %w", model, err)
		}
	}
	return nil
}

// GetModel resolves a table name to its model type.
func (d *Db) GetModel(table string) (any, bool) {
	model, ok := d.models[table]
	return model, ok
}
