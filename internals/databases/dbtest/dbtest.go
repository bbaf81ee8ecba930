// Package dbtest membuka database SQLite in-memory yang sudah dimigrasi untuk test.
package dbtest

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"presensi_backend/internals/configs"
	database "presensi_backend/internals/databases"
)

// Open: satu DB per test (nama acak), ditutup otomatis lewat t.Cleanup.
func Open(t *testing.T) *gorm.DB {
	t.Helper()

	cfg := configs.App{
		DBDriver:     "sqlite",
		DBSQLitePath: "file:" + uuid.NewString() + "?mode=memory&cache=shared",
	}
	dialector, err := database.Dialector(cfg)
	require.NoError(t, err)

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         configs.NewGormLogger().LogMode(gormLogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

// MySQLDryRun: DB mysql mode DryRun (tanpa server) dengan DSN dari database.Dialector.
// Fungsi kedua mengembalikan SQL INSERT terakhir yang dibangun.
func MySQLDryRun(t *testing.T) (*gorm.DB, func() string) {
	t.Helper()

	cfg := configs.App{DBDriver: "mysql", DBUser: "u", DBPassword: "p", DBHost: "127.0.0.1", DBName: "presensi"}
	dialector, err := database.Dialector(cfg)
	require.NoError(t, err)
	md, ok := dialector.(*mysql.Dialector)
	require.True(t, ok)

	db, err := gorm.Open(mysql.New(mysql.Config{
		DSN:                       md.DSN,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		Logger:                 configs.NewGormLogger().LogMode(gormLogger.Silent),
		DryRun:                 true,
		DisableAutomaticPing:   true,
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	var last string
	require.NoError(t, db.Callback().Create().After("gorm:create").Register("dbtest:capture_sql", func(tx *gorm.DB) {
		last = tx.Statement.SQL.String()
	}))
	return db, func() string { return last }
}
