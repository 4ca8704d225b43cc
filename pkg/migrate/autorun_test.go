package migrate

import (
	"context"
	"fmt"
	"io"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/salesdash-backend/pkg/config"
	"github.com/angelmondragon/salesdash-backend/pkg/db"
	"github.com/angelmondragon/salesdash-backend/pkg/logger"
)

type autorunRecord struct {
	ID   int64 `gorm:"primaryKey"`
	Name string
}

func (autorunRecord) TableName() string { return "autorun_records" }

func autorunConfig(t *testing.T, env string, autoMigrate bool) *config.Config {
	t.Helper()
	return &config.Config{
		App: config.AppConfig{Env: env},
		DB: config.DBConfig{
			Driver: "sqlite",
			DSN:    fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()),
		},
		FeatureFlags: config.FeatureFlagsConfig{AutoMigrate: autoMigrate},
	}
}

func autorunLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "migrate-test", Level: zerolog.Disabled, Output: io.Discard})
}

func TestMaybeRunDevAutoMigratesSqlite(t *testing.T) {
	ctx := context.Background()
	cfg := autorunConfig(t, "dev", true)
	logg := autorunLogger()

	client, err := db.New(ctx, cfg.DB, logg)
	require.NoError(t, err)
	defer client.Close()

	require.NoError(t, MaybeRunDev(ctx, cfg, logg, client, &autorunRecord{}))

	row := autorunRecord{Name: "first"}
	require.NoError(t, client.DB().Create(&row).Error)

	var got autorunRecord
	require.NoError(t, client.DB().First(&got, row.ID).Error)
	require.Equal(t, "first", got.Name)
}

func TestMaybeRunDevSkipsOutsideDev(t *testing.T) {
	ctx := context.Background()
	cfg := autorunConfig(t, "prod", true)
	logg := autorunLogger()

	client, err := db.New(ctx, cfg.DB, logg)
	require.NoError(t, err)
	defer client.Close()

	require.NoError(t, MaybeRunDev(ctx, cfg, logg, client, &autorunRecord{}))
	require.Error(t, client.DB().Create(&autorunRecord{Name: "x"}).Error, "table must not exist")
}
