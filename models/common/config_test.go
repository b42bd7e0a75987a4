package common_test

import (
	"testing"
	"time"

	"github.com/filedepot/gateway-services/models/common"
	"github.com/op/go-logging"
	"github.com/stretchr/testify/assert"
)

func TestNewConfig(t *testing.T) {
	t.Setenv("DEPOT_CONFIG_DIR", "testdata")
	t.Setenv("DEPOT_SERVICES_CONFIG", "test")
	config := common.NewConfig()

	assert.Equal(t, "/tmp/depot-test", config.BaseWorkingDir)
	assert.Equal(t, "depot-files", config.BlobBucket)
	assert.Equal(t, "test", config.ConfigName)
	assert.Equal(t, time.Hour, config.LinkMaxAge)
	assert.Equal(t, "/tmp/depot-test/logs", config.LogDir)
	assert.Equal(t, logging.DEBUG, config.LogLevel)
	assert.Equal(t, "localhost:4161", config.NsqLookupd)
	assert.Equal(t, "http://localhost:4151", config.NsqURL)
	assert.Equal(t, 0, config.RedisDefaultDB)
	assert.Equal(t, "", config.RedisPassword)
	assert.Equal(t, "localhost:6379", config.RedisURL)
	assert.Equal(t, "localhost:9899", config.S3Host)
	assert.Equal(t, "minioadmin", config.S3KeyID)
	assert.Equal(t, "minioadmin", config.S3SecretKey)
	assert.False(t, config.S3UseSSL)
}

func TestConfigDefaults(t *testing.T) {
	t.Setenv("DEPOT_CONFIG_DIR", "testdata")
	t.Setenv("DEPOT_SERVICES_CONFIG", "test")
	config := common.NewConfig()

	// Not set in .env.test, so defaults apply.
	assert.Equal(t, ":8080", config.ListenAddr)
	assert.Equal(t, int64(64<<20), config.MaxUploadSize)
}
