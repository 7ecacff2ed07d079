package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// AppConfig 汇总运行服务所需的基础配置。
type AppConfig struct {
	ListenAddr    string
	Port          string
	DatabasePath  string
	GinMode       string
	SoundDir      string
	MemoDir       string
	MemoURLPath   string
	SnoozeMinutes int
	RingSeconds   int
	NotifyAllowed bool
	LogLevel      string
	LogFormat     string
}

// Load 从环境变量读取应用配置，并为缺失项提供安全的默认值。
func Load() AppConfig {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}

	listenAddr := strings.TrimSpace(os.Getenv("LISTEN_ADDR"))
	if listenAddr == "" {
		listenAddr = fmt.Sprintf(":%s", port)
	}

	databasePath := strings.TrimSpace(os.Getenv("DATABASE_PATH"))
	if databasePath == "" {
		databasePath = "morningcall.db"
	}

	ginMode := strings.TrimSpace(os.Getenv("GIN_MODE"))
	if ginMode == "" {
		ginMode = "release"
	}

	soundDir := strings.TrimSpace(os.Getenv("SOUND_DIR"))
	if soundDir == "" {
		soundDir = "data/sounds"
	}

	memoDir := strings.TrimSpace(os.Getenv("MEMO_DIR"))
	if memoDir == "" {
		memoDir = "data/memos"
	}

	memoURLPath := strings.TrimSpace(os.Getenv("MEMO_URL_PATH"))
	if memoURLPath == "" {
		memoURLPath = "/static/memos"
	}

	logLevel := strings.TrimSpace(os.Getenv("LOG_LEVEL"))
	if logLevel == "" {
		logLevel = "info"
	}

	logFormat := strings.TrimSpace(os.Getenv("LOG_FORMAT"))
	if logFormat == "" {
		logFormat = "console"
	}

	return AppConfig{
		ListenAddr:    listenAddr,
		Port:          port,
		DatabasePath:  databasePath,
		GinMode:       ginMode,
		SoundDir:      soundDir,
		MemoDir:       memoDir,
		MemoURLPath:   memoURLPath,
		SnoozeMinutes: intEnv("SNOOZE_MINUTES", 5),
		RingSeconds:   intEnv("RING_SECONDS", 30),
		NotifyAllowed: boolEnv("NOTIFY_ALLOWED", true),
		LogLevel:      logLevel,
		LogFormat:     logFormat,
	}
}

func intEnv(key string, fallback int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}

func boolEnv(key string, fallback bool) bool {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return fallback
	}
	return value
}
