package configs

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	gormLogger "gorm.io/gorm/logger"
	"gorm.io/gorm/utils"
)

// Kebijakan untuk event yang staffId-nya belum terdaftar di roster.
const (
	OrphanAllow   = "allow"
	OrphanEnforce = "enforce"
)

// App menampung konfigurasi aplikasi yang di-parse dari ENV.
type App struct {
	Port           string        `envconfig:"PORT" default:"3000"`
	RequestTimeout time.Duration `envconfig:"REQUEST_TIMEOUT" default:"30s"`

	// DB
	DBDriver     string `envconfig:"DB_DRIVER" default:"postgres"`
	DBHost       string `envconfig:"DB_HOST" default:"localhost"`
	DBPort       string `envconfig:"DB_PORT"`
	DBUser       string `envconfig:"DB_USER"`
	DBPassword   string `envconfig:"DB_PASSWORD"`
	DBName       string `envconfig:"DB_NAME" default:"attendance_db"`
	DBSSLMode    string `envconfig:"DB_SSLMODE" default:"require"`
	DBSQLitePath string `envconfig:"DB_SQLITE_PATH" default:"presensi.db"`

	// Attendance
	TZOffset        string `envconfig:"APP_TZ_OFFSET" default:"+05:30"`
	ImportChunkSize int    `envconfig:"IMPORT_CHUNK_SIZE" default:"1000"`
	OrphanPolicy    string `envconfig:"ORPHAN_POLICY" default:"allow"`

	// Seeder
	RunSeeds      bool   `envconfig:"RUN_SEEDS" default:"false"`
	SeedStaffFile string `envconfig:"SEED_STAFF_FILE" default:"internals/seeds/staff/data_staff.json"`

	CorsAllowOrigins string `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:5173"`
}

var (
	Cfg App
	// Location adalah zona waktu tetap untuk semua timestamp wall-clock.
	Location = time.FixedZone("+05:30", 5*3600+30*60)
)

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	if os.Getenv("RAILWAY_ENVIRONMENT") == "" {
		if err := godotenv.Load(); err != nil {
			log.Println("⚠️ .env tidak ditemukan, menggunakan ENV dari sistem")
		} else {
			log.Println("✅ .env file berhasil dimuat!")
		}
	} else {
		log.Println("🚀 Running in Railway, menggunakan ENV dari sistem")
	}

	cfg, err := Load()
	if err != nil {
		log.Fatalf("❌ Konfigurasi tidak valid: %v", err)
	}
	Cfg = cfg

	loc, err := ParseOffset(cfg.TZOffset)
	if err != nil {
		log.Fatalf("❌ APP_TZ_OFFSET tidak valid: %v", err)
	}
	Location = loc

	log.Printf("✅ Config dimuat (driver=%s tz=%s chunk=%d orphan=%s)",
		cfg.DBDriver, cfg.TZOffset, cfg.ImportChunkSize, cfg.OrphanPolicy)
}

// Load membaca ENV ke struct App lalu memvalidasi nilai enum-nya.
func Load() (App, error) {
	var c App
	if err := envconfig.Process("", &c); err != nil {
		return c, err
	}
	c.DBDriver = strings.ToLower(strings.TrimSpace(c.DBDriver))
	switch c.DBDriver {
	case "postgres", "mysql", "sqlite":
	default:
		return c, fmt.Errorf("unknown DB_DRIVER %q", c.DBDriver)
	}
	c.OrphanPolicy = strings.ToLower(strings.TrimSpace(c.OrphanPolicy))
	if c.OrphanPolicy != OrphanAllow && c.OrphanPolicy != OrphanEnforce {
		return c, fmt.Errorf("unknown ORPHAN_POLICY %q", c.OrphanPolicy)
	}
	if c.ImportChunkSize <= 0 {
		return c, fmt.Errorf("IMPORT_CHUNK_SIZE must be positive, got %d", c.ImportChunkSize)
	}
	if _, err := ParseOffset(c.TZOffset); err != nil {
		return c, err
	}
	return c, nil
}

// ParseOffset: "+05:30" / "-0700" / "Z" → *time.Location tetap (tanpa DST).
func ParseOffset(s string) (*time.Location, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "Z") || s == "+00:00" {
		return time.FixedZone("+00:00", 0), nil
	}
	layouts := []string{"-07:00", "-0700", "-07"}
	for _, l := range layouts {
		if t, err := time.Parse(l, s); err == nil {
			_, off := t.Zone()
			return time.FixedZone(t.Format("-07:00"), off), nil
		}
	}
	return nil, fmt.Errorf("invalid utc offset %q", s)
}

// =======================
// GORM LOGGER CUSTOM
// =======================
type GormLogger struct {
	SlowThreshold time.Duration
	LogLevel      gormLogger.LogLevel
}

func NewGormLogger() gormLogger.Interface {
	return &GormLogger{
		SlowThreshold: 200 * time.Millisecond,
		LogLevel:      gormLogger.Warn,
	}
}

func (l *GormLogger) LogMode(level gormLogger.LogLevel) gormLogger.Interface {
	n := *l
	n.LogLevel = level
	return &n
}

func (l *GormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Info {
		log.Printf("[INFO] "+msg, data...)
	}
}

func (l *GormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Warn {
		log.Printf("[WARN] "+msg, data...)
	}
}

func (l *GormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Error {
		log.Printf("[ERROR] "+msg, data...)
	}
}

func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.LogLevel <= gormLogger.Silent {
		return
	}
	elapsed := time.Since(begin)
	sql, rows := fc()
	file := utils.FileWithLineNum()

	switch {
	case err != nil && l.LogLevel >= gormLogger.Error:
		log.Printf("[ERROR] %s | %v | %s | %d rows | %s", file, err, elapsed, rows, sql)
	case elapsed > l.SlowThreshold && l.LogLevel >= gormLogger.Warn:
		log.Printf("[SLOW SQL] %s | %s | %d rows | %s", file, elapsed, rows, sql)
	case l.LogLevel >= gormLogger.Info:
		log.Printf("[QUERY] %s | %s | %d rows | %s", file, elapsed, rows, sql)
	}
}
