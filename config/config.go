package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

type Config struct {
	TelegramToken string
	DBDriver      string
	DBPath        string
	AdminIDs      []int64

	// Откуда берутся файлы расписания
	ScheduleDir     string
	SchedulePage    string
	ScheduleBaseURL string
	Extensions      []string
	XLSCharset      string

	LogLevel string
	Timezone string
	// DigestHour - час утренней рассылки для VIP, -1 отключает её
	DigestHour int
}

func Load() *Config {
	// Загружаем .env файл (если существует)
	if err := godotenv.Load(); err != nil {
		log.Info("No .env file found, using system environment variables")
	}

	return &Config{
		TelegramToken:   os.Getenv("TELEGRAM_TOKEN"),
		DBDriver:        getEnv("DB_DRIVER", "sqlite3"),
		DBPath:          getEnv("DB_PATH", "schedule.db"),
		AdminIDs:        parseAdminIDs(os.Getenv("ADMIN_IDS")),
		ScheduleDir:     getEnv("SCHEDULE_DIR", "schedule"),
		SchedulePage:    getEnv("SCHEDULE_PAGE", "https://istu.ru/material/raspisanie-zanyatiy"),
		ScheduleBaseURL: getEnv("SCHEDULE_BASE_URL", "https://istu.ru/"),
		Extensions:      parseList(getEnv("ACCEPTED", ".xls")),
		XLSCharset:      getEnv("XLS_CHARSET", "utf-8"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		Timezone:        getEnv("TIMEZONE", "Europe/Samara"),
		DigestHour:      getEnvInt("DIGEST_HOUR", 7),
	}
}

// SetupLogging выставляет уровень логирования из LOG_LEVEL
func (c *Config) SetupLogging() {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		log.Warnf("Unknown log level %q, using info", c.LogLevel)
		level = log.InfoLevel
	}
	log.SetLevel(level)
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Warnf("%s must be a number, got %q", key, value)
		return defaultValue
	}
	return n
}

// parseList разбирает список через запятую: ".xls, .XLSX" -> [.xls .xlsx]
func parseList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		if part == "" {
			continue
		}
		if !strings.HasPrefix(part, ".") {
			part = "." + part
		}
		out = append(out, part)
	}
	return out
}

func parseAdminIDs(adminIDsStr string) []int64 {
	if adminIDsStr == "" {
		return []int64{}
	}

	ids := strings.Split(adminIDsStr, ",")
	var adminIDs []int64

	for _, idStr := range ids {
		id, err := strconv.ParseInt(strings.TrimSpace(idStr), 10, 64)
		if err == nil {
			adminIDs = append(adminIDs, id)
		}
	}

	return adminIDs
}

// IsAdmin проверяет, является ли пользователь администратором
func (c *Config) IsAdmin(userID int64) bool {
	for _, adminID := range c.AdminIDs {
		if userID == adminID {
			return true
		}
	}
	return false
}
