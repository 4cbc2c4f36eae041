package config

import (
	"context"
	"errors"
	"testing"
	"time"

	"food-ordering-api/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("DB_DRIVER", "")
	t.Setenv("TOKEN_TTL", "")
	t.Setenv("SEED", "")
	t.Setenv("GIN_MODE", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, DriverSQLite, cfg.DBDriver)
	assert.Equal(t, 720*time.Hour, cfg.TokenTTL)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.False(t, cfg.Seed)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("TOKEN_TTL", "2h")
	t.Setenv("GIN_MODE", "")
	t.Setenv("SEED", "true")
	t.Setenv("CORS_ORIGINS", "http://a.test;http://b.test")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 2*time.Hour, cfg.TokenTTL)
	assert.True(t, cfg.Seed)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins)
}

func TestLoadRefusesSeedInRelease(t *testing.T) {
	t.Setenv("GIN_MODE", "release")
	t.Setenv("SEED", "true")

	_, err := Load()
	assert.ErrorContains(t, err, "SEED must be disabled")

	t.Setenv("SEED", "false")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "release", cfg.GinMode)
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	t.Setenv("DB_DRIVER", "oracle")

	_, err := Load()
	assert.ErrorContains(t, err, "unsupported DB_DRIVER")
}

func TestNewLogger(t *testing.T) {
	log, err := NewLogger(&Config{LogLevel: "debug", LogFormat: "json"})
	require.NoError(t, err)
	assert.Equal(t, logrus.DebugLevel, log.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, log.Formatter)

	_, err = NewLogger(&Config{LogLevel: "loud", LogFormat: "json"})
	assert.Error(t, err)
}

func TestOpenDBAndMigrate(t *testing.T) {
	log, _ := test.NewNullLogger()
	db, err := OpenDB(DriverSQLite, ":memory:", log)
	require.NoError(t, err)
	require.NoError(t, Migrate(db))

	assert.True(t, db.Migrator().HasTable("orders"))
	assert.True(t, db.Migrator().HasTable("user_roles"))

	_, err = OpenDB("oracle", "", log)
	assert.Error(t, err)
}

func TestOpenDBLogsThroughLogrus(t *testing.T) {
	log, hook := test.NewNullLogger()
	db, err := OpenDB(DriverSQLite, ":memory:", log)
	require.NoError(t, err)
	require.NoError(t, Migrate(db))

	var role models.Role
	err = db.Where("name = ?", "nobody").First(&role).Error
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.Empty(t, hook.AllEntries())

	err = db.Exec("SELECT * FROM no_such_table").Error
	require.Error(t, err)
	require.NotEmpty(t, hook.AllEntries())
	assert.Contains(t, hook.LastEntry().Message, "no_such_table")
}

func TestPing(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectPing()
	assert.NoError(t, Ping(context.Background(), db))

	mock.ExpectPing().WillReturnError(errors.New("connection refused"))
	assert.ErrorContains(t, Ping(context.Background(), db), "connection refused")

	assert.NoError(t, mock.ExpectationsWereMet())
}
