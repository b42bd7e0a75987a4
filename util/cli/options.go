package cli

import (
	"flag"
)

type Options struct {
	ChannelBufferSize int
	PrintHelp         bool
}

var opts = Options{}
var defaultBufSize = 20

var EnvMessage = `This requires the following environment vars:

DEPOT_CONFIG_DIR - Path to the directory containing the .env settings file.

DEPOT_SERVICES_CONFIG - Name of the configuration to load. For example:
    test - Loads .env.test from DEPOT_CONFIG_DIR
    demo - Loads .env.demo from DEPOT_CONFIG_DIR
`

func Init() {
	flag.IntVar(&opts.ChannelBufferSize, "bufsize", defaultBufSize, "Max number of in-flight NSQ messages")
	flag.BoolVar(&opts.PrintHelp, "help", false, "Print help message")
}

func ParseOpts() Options {
	flag.Parse()
	return opts
}

func PrintDefaults() {
	flag.PrintDefaults()
}
