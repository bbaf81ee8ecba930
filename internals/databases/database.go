package database

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"presensi_backend/internals/configs"
	logsModel "presensi_backend/internals/features/attendance/logs/model"
	staffModel "presensi_backend/internals/features/staff/staff/model"
)

var DB *gorm.DB

// Dialector memilih driver GORM sesuai DB_DRIVER.
func Dialector(cfg configs.App) (gorm.Dialector, error) {
	switch cfg.DBDriver {
	case "postgres":
		port := cfg.DBPort
		if port == "" {
			port = "5432"
		}
		// statement_timeout sebagai batas waktu di sisi storage
		dsn := fmt.Sprintf(
			"postgres://%s:%s@%s:%s/%s?sslmode=%s&application_name=presensi&options=-c statement_timeout=30000",
			cfg.DBUser, cfg.DBPassword, cfg.DBHost, port, cfg.DBName, cfg.DBSSLMode,
		)
		return postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true, // 👍 cocok untuk PgBouncer (transaction pooling)
		}), nil
	case "mysql":
		port := cfg.DBPort
		if port == "" {
			port = "3306"
		}
		// loc=UTC + parseTime: kolom DATETIME dibaca apa adanya (wall-clock).
		// Tanpa clientFoundRows: RowsAffected = baris yang benar-benar berubah.
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC&timeout=10s",
			cfg.DBUser, cfg.DBPassword, cfg.DBHost, port, cfg.DBName)
		return mysql.Open(dsn), nil
	case "sqlite":
		return sqlite.Open(cfg.DBSQLitePath), nil
	default:
		return nil, fmt.Errorf("unsupported driver %q", cfg.DBDriver)
	}
}

// Open membuka koneksi tanpa menyentuh variabel global (dipakai juga oleh CLI).
func Open(cfg configs.App) (*gorm.DB, error) {
	dialector, err := Dialector(cfg)
	if err != nil {
		return nil, err
	}
	return gorm.Open(dialector, &gorm.Config{
		Logger:         configs.NewGormLogger(),
		TranslateError: true,
	})
}

func ConnectDB() {
	log.Printf("🔌 Koneksi ke database (%s)...", configs.Cfg.DBDriver)

	db, err := Open(configs.Cfg)
	if err != nil {
		log.Fatalf("❌ Gagal konek DB: %v", err)
	}
	DB = db
	log.Println("✅ DB connected.")
}

func TunePool() {
	sqlDB, err := DB.DB()
	if err != nil {
		log.Printf("pool tune err: %v", err)
		return
	}
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxIdleTime(60 * time.Second)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
}

// Migrate membuat/menyesuaikan tabel staff & attendance_logs.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&staffModel.StaffModel{}, &logsModel.AttendanceLogModel{})
}

func WarmUpQueries() {
	go func() {
		time.Sleep(500 * time.Millisecond) // beri waktu server naik
		if err := Ping(); err != nil {
			log.Printf("warm-up ping err: %v", err)
		}
	}()
}

func Ping() error {
	if DB == nil {
		return fmt.Errorf("db not initialised")
	}
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}
