package mock

import (
	"database/sql"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const clearAttempts = 5

var (
	dbOnce sync.Once
	db     *Db
)

// Db is the shared in-memory ledger database of the integration suite.
type Db struct {
	DbConn *gorm.DB
	models map[string]any
	tables []string
}

// NewDb opens the shared in-memory database and migrates the given models, keyed by table name.
// Later calls return the same instance.
func NewDb(name string, models map[string]any) *Db {
	dbOnce.Do(func() {
		db = open(name, models)
	})
	return db
}

func open(name string, models map[string]any) *Db {
	dbSQL, err := sql.Open("sqlite", fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	if err != nil {
		panic(err)
	}
	// a single connection keeps the in-memory database alive and serializes writers
	dbSQL.SetMaxOpenConns(1)

	dbConn, err := gorm.Open(sqlite.Dialector{Conn: dbSQL}, &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		panic("failed to connect to database. err: " + err.Error())
	}

	tables := make([]string, 0, len(models))
	for table := range models {
		tables = append(tables, table)
	}
	sort.Strings(tables)

	mockDb := &Db{DbConn: dbConn, models: models, tables: tables}
	if err := mockDb.migrate(); err != nil {
		panic(fmt.Sprintf("failed to migrate database. err: %s", err.Error()))
	}
	return mockDb
}

// ClearDB empties every table, retrying while another statement holds the lock.
func (d *Db) ClearDB() error {
	var err error
	for attempt := 1; attempt <= clearAttempts; attempt++ {
		if err = d.truncate(); err == nil {
			return nil
		}
		if !strings.Contains(err.Error(), "locked") && !strings.Contains(err.Error(), "busy") {
			return err
		}
		time.Sleep(time.Duration(attempt) * 50 * time.Millisecond)
	}
	return fmt.Errorf("failed to clear database after %d attempts: %w", clearAttempts, err)
}

// GetModel returns the model registered for a table.
func (d *Db) GetModel(table string) (any, bool) {
	model, ok := d.models[table]
	return model, ok
}

func (d *Db) migrate() error {
	for _, table := range d.tables {
		model := d.models[table]
		if err := d.DbConn.AutoMigrate(model); err != nil {
			return fmt.Errorf("migrate %s: %w", table, err)
		}
		if !d.DbConn.Migrator().HasTable(model) {
			return fmt.Errorf("table %s was not created", table)
		}
	}
	return nil
}

func (d *Db) truncate() error {
	return d.DbConn.Transaction(func(tx *gorm.DB) error {
		for _, table := range d.tables {
			if err := tx.Exec("DELETE FROM " + table).Error; err != nil {
				return fmt.Errorf("clear %s: %w", table, err)
			}
		}
		return nil
	})
}
