package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoader_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	require.Equal(t, StorageJSON, cfg.Storage)
	require.Equal(t, "meetings.json", cfg.DataFile)
	require.Equal(t, "warn", cfg.LogLevel)
	require.Equal(t, "text", cfg.LogFormat)
	require.Equal(t, 1, cfg.ReminderHours)
	require.Equal(t, "* * * * *", cfg.ReminderCron)

	loc, err := cfg.Location()
	require.NoError(t, err)
	require.Equal(t, "UTC", loc.String())
}

func TestLoader_FileAndEnvironment(t *testing.T) {
	path := filepath.Join(t.TempDir(), "meetings.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
storage: sqlite
sqlite_dsn: /var/lib/meetings/meetings.db
log_level: debug
timezone: Asia/Tokyo
reminder_hours: 3
`), 0o600))

	t.Setenv("MEETINGS_LOG_LEVEL", "ERROR")
	t.Setenv("MEETINGS_REMINDER_CRON", "*/15 * * * *")

	cfg, err := Load(path)
	require.NoError(t, err)

	require.Equal(t, StorageSQLite, cfg.Storage)
	require.Equal(t, "/var/lib/meetings/meetings.db", cfg.SQLiteDSN)
	require.Equal(t, "error", cfg.LogLevel, "environment should override the file")
	require.Equal(t, "Asia/Tokyo", cfg.Timezone)
	require.Equal(t, 3, cfg.ReminderHours)
	require.Equal(t, "*/15 * * * *", cfg.ReminderCron)
}

func TestLoader_ReportsEveryInvalidKey(t *testing.T) {
	t.Setenv("MEETINGS_STORAGE", "postgres")
	t.Setenv("MEETINGS_LOG_FORMAT", "xml")
	t.Setenv("MEETINGS_TIMEZONE", "Mars/Olympus")
	t.Setenv("MEETINGS_REMINDER_HOURS", "-1")
	t.Setenv("MEETINGS_REMINDER_CRON", "sometimes")

	_, err := Load("")
	require.Error(t, err)
	require.Equal(t, "config: invalid values for: log_format, reminder_cron, reminder_hours, storage, timezone", err.Error())
}

func TestLoader_RequiresTheSelectedBackendLocation(t *testing.T) {
	t.Setenv("MEETINGS_STORAGE", "json")
	t.Setenv("MEETINGS_DATA_FILE", "")

	_, err := Load("")
	require.EqualError(t, err, "config: invalid values for: data_file")
}

func TestLoader_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}
