package core

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Debug    bool
	TestMode bool
	Env      string // DEV (local; default), TEST, QA, PROD
	AppName  string
	Build    string

	Server struct {
		Host string
		Port string
	}

	// DataDir holds the collection documents (students, homework, leaves).
	DataDir string
	// UploadDir is the root of the submission tree and leave images.
	UploadDir string
	// NoticeFile is an optional plain-text update notice shown to students.
	NoticeFile string
	// RetentionDays is the age (in days past deadline) after which swept
	// assignments and their files are removed.
	RetentionDays int

	RollbarToken string
}

func (c *Config) ServerAddress() string {
	return c.Server.Host + ":" + c.Server.Port
}

func NewConfig() *Config {
	conf := viper.New()
	conf.SetTypeByDefaultValue(true)

	// defaults
	conf.SetDefault("debug", true)
	conf.SetDefault("appName", "Kazi")
	conf.SetDefault("serverHost", "")
	conf.SetDefault("serverPort", "8000")
	conf.SetDefault("dataDir", "data")
	conf.SetDefault("uploadDir", "uploads")
	conf.SetDefault("noticeFile", "update_notice.txt")
	conf.SetDefault("retentionDays", 2)
	conf.SetDefault("rollbarToken", "")
	conf.SetDefault("build", "")

	env := os.Getenv("ENV") // DEV (local; default), TEST, QA, PROD
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		conf.SetDefault("testMode", true)
	}
	conf.SetEnvPrefix(env)

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join("config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	conf.AutomaticEnv()

	cfg := &Config{
		Debug:         conf.GetBool("debug"),
		TestMode:      conf.GetBool("testMode"),
		Env:           env,
		AppName:       conf.GetString("appName"),
		Build:         conf.GetString("build"),
		DataDir:       conf.GetString("dataDir"),
		UploadDir:     conf.GetString("uploadDir"),
		NoticeFile:    conf.GetString("noticeFile"),
		RetentionDays: conf.GetInt("retentionDays"),
		RollbarToken:  conf.GetString("rollbarToken"),
	}
	cfg.Server.Host = conf.GetString("serverHost")
	cfg.Server.Port = conf.GetString("serverPort")
	return cfg
}

func (c *Config) RetentionAge() time.Duration {
	return time.Duration(c.RetentionDays) * 24 * time.Hour
}
