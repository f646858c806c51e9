package migration_test

import (
	"testing"

	"go-tenure/internal/shared/migration"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestUpDown_SQLite(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	n, err := migration.Up(sqlDB, migration.DialectSQLite)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.True(t, db.Migrator().HasTable("employee_records"))

	n, err = migration.Up(sqlDB, migration.DialectSQLite)
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = migration.Down(sqlDB, migration.DialectSQLite, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.False(t, db.Migrator().HasTable("employee_records"))
}
