package common

import (
	"fmt"
	"os"
	"time"

	"github.com/filedepot/gateway-services/util"
	"github.com/op/go-logging"
	"github.com/spf13/viper"
)

type Config struct {
	BaseWorkingDir string
	BlobBucket     string
	ConfigName     string
	LinkMaxAge     time.Duration
	ListenAddr     string
	LogDir         string
	LogLevel       logging.Level
	MaxUploadSize  int64
	NsqLookupd     string
	NsqURL         string
	RedisDefaultDB int
	RedisPassword  string
	RedisURL       string
	S3Host         string
	S3KeyID        string
	S3SecretKey    string
	S3UseSSL       bool
}

var logLevels = map[string]logging.Level{
	"CRITICAL": logging.CRITICAL,
	"ERROR":    logging.ERROR,
	"WARNING":  logging.WARNING,
	"NOTICE":   logging.NOTICE,
	"INFO":     logging.INFO,
	"DEBUG":    logging.DEBUG,
}

// NewConfig returns a new config based on ENV var DEPOT_SERVICES_CONFIG.
func NewConfig() *Config {
	config := loadConfig()
	config.expandPaths()
	config.applyDefaults()
	config.makeDirs()
	return config
}

func loadConfig() *Config {
	configDir, envName := getEnvVars()
	v := viper.New()
	v.AddConfigPath(configDir)
	v.SetConfigName(".env." + envName)
	v.SetConfigType("env")
	err := v.ReadInConfig()
	if err != nil {
		panic(fmt.Errorf("Fatal error config file: %s \n", err))
	}
	return &Config{
		BaseWorkingDir: v.GetString("BASE_WORKING_DIR"),
		BlobBucket:     v.GetString("BLOB_BUCKET"),
		ConfigName:     envName,
		LinkMaxAge:     v.GetDuration("LINK_MAX_AGE"),
		ListenAddr:     v.GetString("LISTEN_ADDR"),
		LogDir:         v.GetString("LOG_DIR"),
		LogLevel:       logLevels[v.GetString("LOG_LEVEL")],
		MaxUploadSize:  v.GetInt64("MAX_UPLOAD_SIZE"),
		NsqLookupd:     v.GetString("NSQ_LOOKUPD"),
		NsqURL:         v.GetString("NSQ_URL"),
		RedisDefaultDB: v.GetInt("REDIS_DEFAULT_DB"),
		RedisPassword:  v.GetString("REDIS_PASSWORD"),
		RedisURL:       v.GetString("REDIS_URL"),
		S3Host:         v.GetString("S3_HOST"),
		S3KeyID:        v.GetString("S3_KEY"),
		S3SecretKey:    v.GetString("S3_SECRET"),
		S3UseSSL:       v.GetBool("S3_USE_SSL"),
	}
}

func getEnvVars() (string, string) {
	configDir := getRequiredEnvVar("DEPOT_CONFIG_DIR")
	envName := getRequiredEnvVar("DEPOT_SERVICES_CONFIG")
	return configDir, envName
}

func getRequiredEnvVar(varName string) string {
	value := os.Getenv(varName)
	if value == "" {
		panic(fmt.Sprintf("Required env var %s not set", varName))
	}
	return value
}

// Expand ~ to home dir in path settings.
func (c *Config) expandPaths() {
	c.BaseWorkingDir = expandPath(c.BaseWorkingDir)
	c.LogDir = expandPath(c.LogDir)
}

func expandPath(dirName string) string {
	dir, err := util.ExpandTilde(dirName)
	if err != nil {
		panic(err)
	}
	return dir
}

func (c *Config) applyDefaults() {
	if c.LinkMaxAge == 0 {
		// S3 won't sign for longer than 7 days.
		c.LinkMaxAge = 7 * 24 * time.Hour
	}
	if c.ListenAddr == "" {
		c.ListenAddr = ":8080"
	}
	if c.MaxUploadSize == 0 {
		c.MaxUploadSize = 64 << 20
	}
}

func (c *Config) makeDirs() error {
	dirs := []string{
		c.BaseWorkingDir,
		c.LogDir,
	}
	for _, dir := range dirs {
		err := os.MkdirAll(dir, 0755)
		if err != nil {
			panic(err)
		}
	}
	return nil
}
