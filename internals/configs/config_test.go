package configs

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var appKeys = []string{
	"PORT", "REQUEST_TIMEOUT", "DB_DRIVER", "DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME",
	"DB_SSLMODE", "DB_SQLITE_PATH", "APP_TZ_OFFSET", "IMPORT_CHUNK_SIZE", "ORPHAN_POLICY",
	"RUN_SEEDS", "SEED_STAFF_FILE", "CORS_ALLOW_ORIGINS",
}

// clearEnv: envconfig memperlakukan ENV kosong sebagai nilai, jadi key harus benar-benar di-unset.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range appKeys {
		if v, ok := os.LookupEnv(k); ok {
			require.NoError(t, os.Unsetenv(k))
			t.Cleanup(func() { _ = os.Setenv(k, v) })
		}
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, OrphanAllow, cfg.OrphanPolicy)
	assert.Equal(t, 1000, cfg.ImportChunkSize)
	assert.Equal(t, "+05:30", cfg.TZOffset)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
}

func TestLoad_RejectsBadValues(t *testing.T) {
	cases := map[string][2]string{
		"driver":   {"DB_DRIVER", "oracle"},
		"policy":   {"ORPHAN_POLICY", "sometimes"},
		"chunk":    {"IMPORT_CHUNK_SIZE", "0"},
		"offset":   {"APP_TZ_OFFSET", "IST"},
		"duration": {"REQUEST_TIMEOUT", "soon"},
	}
	for name, kv := range cases {
		t.Run(name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(kv[0], kv[1])
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLoad_NormalizesCase(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_DRIVER", " SQLite ")
	t.Setenv("ORPHAN_POLICY", "ENFORCE")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, OrphanEnforce, cfg.OrphanPolicy)
}

func TestParseOffset(t *testing.T) {
	for in, want := range map[string]int{
		"+05:30": 19800,
		"+0530":  19800,
		"-07":    -25200,
		"Z":      0,
		"":       0,
	} {
		loc, err := ParseOffset(in)
		require.NoError(t, err, in)
		_, off := time.Date(2024, 1, 1, 0, 0, 0, 0, loc).Zone()
		assert.Equal(t, want, off, in)
	}

	_, err := ParseOffset("Asia/Kolkata")
	assert.Error(t, err)
}
