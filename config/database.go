package config

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/vnkhanh/court-survey/database"
	"github.com/vnkhanh/court-survey/logger"
	"github.com/vnkhanh/court-survey/models"
)

var DB *gorm.DB

// PostgresDSN ghép DSN từ cấu hình.
func (s Settings) PostgresDSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		s.DBHost, s.DBUser, s.DBPassword, s.DBName, s.DBPort, s.DBSSLMode, s.DBTimeZone)
}

// SQLiteDSN bật khoá ngoại, nếu không ON DELETE CASCADE không có tác dụng.
func SQLiteDSN(path string) string {
	return "file:" + path + "?_foreign_keys=on"
}

func dialector(s Settings) gorm.Dialector {
	if s.DBDriver == DriverSQLite {
		return sqlite.Open(SQLiteDSN(s.SQLitePath))
	}
	return postgres.Open(s.PostgresDSN())
}

func OpenDB(s Settings) (*gorm.DB, error) {
	return Open(dialector(s), s.LogLevel == "debug")
}

// Open mở kết nối gorm với dialector bất kỳ (test dùng sqlite in-memory).
func Open(d gorm.Dialector, debug bool) (*gorm.DB, error) {
	level := gormlogger.Warn
	if debug {
		level = gormlogger.Info
	}

	db, err := gorm.Open(d, &gorm.Config{
		TranslateError: true,
		// mọi mốc thời gian lưu theo UTC để so sánh khoảng ngày nhất quán
		NowFunc: func() time.Time { return time.Now().UTC() },
		Logger: gormlogger.New(logger.Logger, gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := models.SetupJoinTables(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate áp dụng schema theo chế độ DB_MIGRATE.
func Migrate(db *gorm.DB, s Settings) error {
	switch s.DBMigrate {
	case MigrateNone:
		return nil
	case MigrateSQL:
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		dialect := database.DialectPostgres
		if s.DBDriver == DriverSQLite {
			dialect = database.DialectSQLite
		}
		return database.Migrate(sqlDB, dialect)
	default:
		return models.AutoMigrate(db)
	}
}

// ConnectDB khởi tạo kết nối, migrate bảng và gán DB toàn cục.
func ConnectDB(s Settings) error {
	db, err := OpenDB(s)
	if err != nil {
		return err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)
	sqlDB.SetConnMaxLifetime(2 * time.Hour)

	if err := Migrate(db, s); err != nil {
		sqlDB.Close()
		return fmt.Errorf("migrate (%s): %w", s.DBMigrate, err)
	}

	DB = db
	logger.WithField("driver", s.DBDriver).WithField("migrate", s.DBMigrate).Info("Connected to database & migrated successfully")
	return nil
}
