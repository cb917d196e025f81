package services

import (
	"io"
	"strings"
	"testing"
	"time"

	"review-backend/internal/config"
	"review-backend/internal/database"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a fresh in-memory sqlite database named after the test so
// parallel tests never share state. cache=shared keeps the database alive
// across the pool's connections for the lifetime of the test.
func newTestDB(t *testing.T) *database.Database {
	t.Helper()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := "file:" + name + "?mode=memory&cache=shared&_foreign_keys=on"

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))

	d := database.New(db, config.DatabaseConfig{QueryTimeout: 5 * time.Second})
	t.Cleanup(func() {
		_ = d.Close()
	})
	return d
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:       "test-secret",
		AccessTokenTTL:  time.Hour,
		ConfirmationTTL: time.Hour,
	}
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }
