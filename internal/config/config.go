package config

import (
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type ServerConfig struct {
	Addr          string
	DatabaseURL   string
	Password      string
	PasswordHash  string
	SessionSecret string
	SessionTTL    time.Duration
	LeavesFile    string
	EmployeesFile string
}

var instance *ServerConfig
var once sync.Once

func GetServerConfig() *ServerConfig {
	once.Do(func() {
		instance = &ServerConfig{}

		// A .env file is optional; real environment variables win anyway.
		if err := godotenv.Load(); err != nil {
			logrus.Debugf("no .env file loaded: %s", err.Error())
		}

		instance.Addr = getEnv("ADDR", ":8080")
		instance.DatabaseURL = getEnv("DATABASE_URL", "leave.db")

		instance.Password = getEnv("APP_PASSWORD", "")
		instance.PasswordHash = getEnv("APP_PASSWORD_HASH", "")
		if instance.Password == "" && instance.PasswordHash == "" {
			logrus.Fatal("could not get shared password: set APP_PASSWORD_HASH or APP_PASSWORD")
		}

		instance.SessionSecret = getEnv("SESSION_SECRET", "")
		if instance.SessionSecret == "" {
			logrus.Fatal("could not get session secret: set SESSION_SECRET")
		}

		ttlHours := getEnvAsInt("SESSION_TTL_HOURS", 24)
		instance.SessionTTL = time.Duration(ttlHours) * time.Hour

		instance.LeavesFile = getEnv("LEAVES_FILE", "leaves.json")
		instance.EmployeesFile = getEnv("EMPLOYEES_FILE", "employees.json")
	})

	return instance
}

func getEnv(key string, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}

	return defaultVal
}

func getEnvAsInt(name string, defaultVal int64) int64 {
	valStr := getEnv(name, "")
	if val, err := strconv.Atoi(valStr); err == nil {
		return int64(val)
	}

	return defaultVal
}
