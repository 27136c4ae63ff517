package mock

import (
	"context"
	"fmt"
	"sync"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/elliotJHarding/transactions/internal/infra/db"
	"github.com/elliotJHarding/transactions/internal/integration/persistence/model"
)

var dbOnce sync.Once
var database *Db

// Db is a shared in-memory SQLite database migrated with the application schema.
type Db struct {
	DbConn *gorm.DB
	models map[string]any
}

// NewDb opens the shared database on first use.
func NewDb() *Db {
	dbOnce.Do(func() {
		database = open()
	})
	return database
}

func open() *Db {
	conn, err := gorm.Open(sqlite.Open("file:transactions?mode=memory&cache=shared"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		panic("failed to connect to database. err: " + err.Error())
	}

	sqlDB, err := conn.DB()
	if err != nil {
		panic(err)
	}
	sqlDB.SetMaxOpenConns(1)

	models := make(map[string]any)
	for _, m := range model.AllModels() {
		stmt := &gorm.Statement{DB: conn}
		if err := stmt.Parse(m); err != nil {
			panic(err)
		}
		models[stmt.Schema.Table] = m
	}

	d := &Db{DbConn: conn, models: models}
	if err := d.ClearDB(); err != nil {
		panic(fmt.Sprintf("failed to clear database. err: %s", err.Error()))
	}
	return d
}

// ClearDB drops and recreates every table, then reseeds the categories.
func (d *Db) ClearDB() error {
	if err := d.DbConn.Migrator().DropTable(model.AllModels()...); err != nil {
		return err
	}
	return db.Migrate(context.Background(), d.DbConn)
}

// GetModel returns the model registered for table.
func (d *Db) GetModel(table string) (any, bool) {
	m, ok := d.models[table]
	return m, ok
}
