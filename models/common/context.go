package common

import (
	"fmt"

	"github.com/filedepot/gateway-services/network"
	"github.com/filedepot/gateway-services/util/logger"
	"github.com/op/go-logging"
)

// Context bundles the config, logger and store clients every
// component needs. Build it once at startup and pass it down.
type Context struct {
	Config         *Config
	Logger         *logging.Logger
	BlobClient     *network.BlobClient
	EventClient    *network.EventClient
	MetadataClient *network.MetadataClient
}

// NewContext builds a Context from the environment-selected config.
// It panics if any client cannot be initialized; there is no point
// starting a gateway that cannot reach its stores.
func NewContext() *Context {
	config := NewConfig()
	return NewContextFromConfig(config)
}

// NewContextFromConfig builds a Context from an explicit config.
// Tests use this to point the clients at in-process redis and S3
// servers.
func NewContextFromConfig(config *Config) *Context {
	_logger := getLogger(config)
	return &Context{
		Config:         config,
		Logger:         _logger,
		BlobClient:     getBlobClient(config),
		EventClient:    network.NewEventClient(config.NsqURL),
		MetadataClient: getMetadataClient(config),
	}
}

func getLogger(config *Config) *logging.Logger {
	logger, _ := logger.InitLogger(config.LogDir, config.LogLevel)
	return logger
}

func getMetadataClient(config *Config) *network.MetadataClient {
	return network.NewMetadataClient(
		config.RedisURL,
		config.RedisPassword,
		config.RedisDefaultDB)
}

func getBlobClient(config *Config) *network.BlobClient {
	client, err := network.NewBlobClient(
		config.S3Host,
		config.S3KeyID,
		config.S3SecretKey,
		config.S3UseSSL,
		config.BlobBucket)
	if err != nil {
		msg := fmt.Sprintf("Could not initialize blob store client: %v", err)
		panic(msg)
	}
	return client
}
