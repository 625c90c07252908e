package config

import (
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	App struct {
		Port string `mapstructure:"port"`
		Env  string `mapstructure:"env"`
	} `mapstructure:"app"`
	DB struct {
		DSN             string        `mapstructure:"dsn"`
		MigrationsPath  string        `mapstructure:"migrations_path"`
		MaxConns        int32         `mapstructure:"max_conns"`
		MaxConnIdleTime time.Duration `mapstructure:"max_conn_idle_time"`
	} `mapstructure:"db"`
	Redis struct {
		Addr     string        `mapstructure:"addr"`
		Password string        `mapstructure:"password"`
		CacheTTL time.Duration `mapstructure:"cache_ttl"`
	} `mapstructure:"redis"`
	Kafka struct {
		Brokers []string `mapstructure:"brokers"`
		GroupID string   `mapstructure:"group_id"`
	} `mapstructure:"kafka"`
	Auth struct {
		JWTSecret        string        `mapstructure:"jwt_secret"`
		TokenLifespan    time.Duration `mapstructure:"token_lifespan"`
		RequireForWrites bool          `mapstructure:"require_for_writes"`
	} `mapstructure:"auth"`
	HTTP struct {
		WriteRPS    float64  `mapstructure:"write_rps"`
		WriteBurst  int      `mapstructure:"write_burst"`
		CORSOrigins []string `mapstructure:"cors_origins"`
	} `mapstructure:"http"`
	Web struct {
		Port       string        `mapstructure:"port"`
		APIBaseURL string        `mapstructure:"api_base_url"`
		APIToken   string        `mapstructure:"api_token"`
		Timeout    time.Duration `mapstructure:"timeout"`
	} `mapstructure:"web"`
	Tracing struct {
		Enabled      bool   `mapstructure:"enabled"`
		OTLPEndpoint string `mapstructure:"otlp_endpoint"`
	} `mapstructure:"tracing"`
	Backup struct {
		Dir    string `mapstructure:"dir"`
		Folder string `mapstructure:"folder"`
	} `mapstructure:"backup"`
	// Backups go to Cloudinary when CloudName is set, else to Backup.Dir.
	Cloudinary struct {
		CloudName string `mapstructure:"cloud_name"`
		ApiKey    string `mapstructure:"api_key"`
		ApiSecret string `mapstructure:"api_secret"`
	} `mapstructure:"cloudinary"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.port", "5000")
	v.SetDefault("app.env", "development")
	v.SetDefault("db.migrations_path", "migrations")
	v.SetDefault("db.max_conns", 4)
	v.SetDefault("db.max_conn_idle_time", 5*time.Minute)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.cache_ttl", 10*time.Minute)
	v.SetDefault("kafka.brokers", []string{"localhost:9092"})
	v.SetDefault("kafka.group_id", "portfolio-cache-warmer")
	v.SetDefault("auth.token_lifespan", 24*time.Hour)
	v.SetDefault("auth.require_for_writes", false)
	v.SetDefault("http.write_rps", 2.0)
	v.SetDefault("http.write_burst", 5)
	v.SetDefault("http.cors_origins", []string{"http://localhost:3000", "http://127.0.0.1:3000", "http://localhost:5173"})
	v.SetDefault("web.port", "3000")
	v.SetDefault("web.api_base_url", "http://127.0.0.1:5000")
	v.SetDefault("web.timeout", 10*time.Second)
	v.SetDefault("tracing.enabled", false)
	v.SetDefault("tracing.otlp_endpoint", "localhost:4317")
	v.SetDefault("backup.dir", "backups")
	v.SetDefault("backup.folder", "backups/database")
}

// LoadConfig reads .env and config.yaml from the given directories (the
// working directory when none is given), then lets the environment override.
func LoadConfig(paths ...string) (cfg Config, err error) {
	if len(paths) == 0 {
		paths = []string{"."}
	}

	envFiles := make([]string, 0, len(paths))
	for _, p := range paths {
		envFiles = append(envFiles, filepath.Join(p, ".env"))
	}
	if err = godotenv.Load(envFiles...); err != nil {
		log.Println("warning: .env file not found, use default.")
	}

	v := viper.New()
	setDefaults(v)

	for _, p := range paths {
		v.AddConfigPath(p)
	}
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if err = v.ReadInConfig(); err != nil {
		log.Printf("note: config.yaml not found, read .env only. Error: %v", err)
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.BindEnv("app.port", "APP_PORT")
	v.BindEnv("app.env", "APP_ENV")
	v.BindEnv("db.dsn", "DB_DSN")
	v.BindEnv("db.migrations_path", "MIGRATIONS_PATH")
	v.BindEnv("db.max_conns", "DB_MAX_CONNS")
	v.BindEnv("db.max_conn_idle_time", "DB_MAX_CONN_IDLE_TIME")
	v.BindEnv("redis.addr", "REDIS_ADDR")
	v.BindEnv("redis.password", "REDIS_PASSWORD")
	v.BindEnv("redis.cache_ttl", "CACHE_TTL")
	v.BindEnv("kafka.brokers", "KAFKA_BROKERS")
	v.BindEnv("kafka.group_id", "KAFKA_GROUP_ID")
	v.BindEnv("auth.jwt_secret", "JWT_SECRET")
	v.BindEnv("auth.token_lifespan", "TOKEN_LIFESPAN")
	v.BindEnv("auth.require_for_writes", "AUTH_REQUIRE_FOR_WRITES")
	v.BindEnv("http.write_rps", "HTTP_WRITE_RPS")
	v.BindEnv("http.write_burst", "HTTP_WRITE_BURST")
	v.BindEnv("http.cors_origins", "CORS_ORIGINS")
	v.BindEnv("web.port", "WEB_PORT")
	v.BindEnv("web.api_base_url", "WEB_API_BASE_URL")
	v.BindEnv("web.api_token", "WEB_API_TOKEN")
	v.BindEnv("web.timeout", "WEB_TIMEOUT")
	v.BindEnv("tracing.enabled", "TRACING_ENABLED")
	v.BindEnv("tracing.otlp_endpoint", "TRACING_OTLP_ENDPOINT")
	v.BindEnv("backup.dir", "BACKUP_DIR")
	v.BindEnv("backup.folder", "BACKUP_FOLDER")
	v.BindEnv("cloudinary.cloud_name", "CLOUDINARY_CLOUD_NAME")
	v.BindEnv("cloudinary.api_key", "CLOUDINARY_API_KEY")
	v.BindEnv("cloudinary.api_secret", "CLOUDINARY_API_SECRET")

	err = v.Unmarshal(&cfg)
	return
}
