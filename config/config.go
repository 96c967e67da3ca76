package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	MigrateAuto = "auto" // gorm AutoMigrate
	MigrateSQL  = "sql"  // migration SQL nhúng (golang-migrate)
	MigrateNone = "none"
)

type Settings struct {
	Port string

	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	DBTimeZone string
	SQLitePath string
	DBMigrate  string

	PublicBaseURL string
	MediaRoot     string
	ExportDir     string

	SupabaseURL    string
	SupabaseKey    string
	SupabaseBucket string

	CORSOrigins []string
	LogLevel    string
}

// Cfg là cấu hình đang chạy, được gán trong Load.
var Cfg Settings

// Load đọc .env (nếu có) rồi đọc biến môi trường.
func Load() (Settings, error) {
	// .env không bắt buộc
	_ = godotenv.Load()

	s := Settings{
		Port:           getenv("PORT", "8080"),
		DBDriver:       strings.ToLower(getenv("DB_DRIVER", DriverPostgres)),
		DBHost:         os.Getenv("DB_HOST"),
		DBPort:         getenv("DB_PORT", "5432"),
		DBUser:         os.Getenv("DB_USER"),
		DBPassword:     os.Getenv("DB_PASSWORD"),
		DBName:         os.Getenv("DB_NAME"),
		DBSSLMode:      getenv("DB_SSLMODE", "disable"),
		DBTimeZone:     getenv("DB_TIMEZONE", "UTC"),
		SQLitePath:     getenv("SQLITE_PATH", "court_survey.sqlite"),
		DBMigrate:      strings.ToLower(getenv("DB_MIGRATE", MigrateAuto)),
		PublicBaseURL:  getenv("PUBLIC_BASE_URL", "http://localhost:8080"),
		MediaRoot:      getenv("MEDIA_ROOT", "media"),
		ExportDir:      getenv("EXPORT_DIR", "exports"),
		SupabaseURL:    os.Getenv("SUPABASE_URL"),
		SupabaseKey:    os.Getenv("SUPABASE_KEY"),
		SupabaseBucket: getenv("SUPABASE_BUCKET", "court_survey"),
		CORSOrigins:    splitList(getenv("CORS_ORIGINS", "http://localhost:5173")),
		LogLevel:       getenv("LOG_LEVEL", "info"),
	}

	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	Cfg = s
	return s, nil
}

func (s Settings) Validate() error {
	switch s.DBDriver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("DB_DRIVER không hợp lệ: %q", s.DBDriver)
	}
	switch s.DBMigrate {
	case MigrateAuto, MigrateSQL, MigrateNone:
	default:
		return fmt.Errorf("DB_MIGRATE không hợp lệ: %q", s.DBMigrate)
	}
	if s.DBDriver == DriverPostgres && (s.DBHost == "" || s.DBName == "") {
		return fmt.Errorf("thiếu DB_HOST hoặc DB_NAME cho postgres")
	}
	return nil
}

// UseSupabase trả về true khi đủ thông tin để lưu file lên Supabase Storage.
func (s Settings) UseSupabase() bool {
	return s.SupabaseURL != "" && s.SupabaseKey != ""
}

func getenv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func splitList(raw string) []string {
	var out []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
