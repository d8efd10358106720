package main

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/Giulio2002/faster_poseidon/internal/log"
)

// default output of the command results; logs go to stderr.
var output io.Writer = os.Stdout

// Automatically set through -ldflags
// Example: go install -ldflags "-X main.version=`git describe --tags`
//   -X main.buildDate=`date -u +%d/%m/%Y@%H:%M:%S` -X main.gitCommit=`git rev-parse HEAD`"
var (
	version   = "master"
	gitCommit = "none"
	buildDate = "unknown"
)

const (
	configKey = "config"
	loggerKey = "logger"
)

var logLevelFlag = &cli.StringFlag{
	Name:    "log-level",
	Usage:   "Minimum level of log statements: debug, info, warn or error.",
	Value:   "info",
	EnvVars: []string{"POSEIDON_LOG_LEVEL"},
}

var jsonLogsFlag = &cli.BoolFlag{
	Name:    "json-logs",
	Usage:   "Emit logs as JSON instead of console text.",
	EnvVars: []string{"POSEIDON_JSON_LOGS"},
}

var configFlag = &cli.StringFlag{
	Name:    "config",
	Usage:   "TOML file with log_level, json_logs, workers and format keys. Flags take precedence.",
	EnvVars: []string{"POSEIDON_CONFIG"},
}

var formatFlag = &cli.StringFlag{
	Name:    "format",
	Usage:   "How to print 64-bit words: dec or hex.",
	Value:   formatDec,
	EnvVars: []string{"POSEIDON_FORMAT"},
}

var workersFlag = &cli.IntFlag{
	Name:    "workers",
	Usage:   "Number of concurrent hashing workers, 0 means one per CPU.",
	EnvVars: []string{"POSEIDON_WORKERS"},
}

var bytesOutFlag = &cli.BoolFlag{
	Name:  "bytes",
	Usage: "Print the digest as 32 big-endian bytes in hexadecimal.",
}

var hexInputFlag = &cli.StringFlag{
	Name:  "hex",
	Usage: "Input bytes in hexadecimal, optionally 0x-prefixed.",
}

var fileInputFlag = &cli.StringFlag{
	Name:  "file",
	Usage: "Read the input bytes from this file.",
}

var messagesFlag = &cli.IntFlag{
	Name:  "messages",
	Usage: "Number of messages to hash.",
	Value: 10000,
}

var lengthFlag = &cli.IntFlag{
	Name:  "length",
	Usage: "Number of field elements per message.",
	Value: 64,
}

var seedFlag = &cli.StringFlag{
	Name:  "seed",
	Usage: "Seed for the deterministic message sampler.",
	Value: "poseidon",
}

var appCommands = []*cli.Command{
	{
		Name:      "hash",
		Usage:     "Hash canonical 64-bit words given in decimal or 0x-prefixed hexadecimal.",
		ArgsUsage: "[words...]",
		Flags:     []cli.Flag{bytesOutFlag},
		Action:    hashCmd,
	},
	{
		Name:   "hash-bytes",
		Usage:  "Hash bytes read as big-endian 8-byte words.",
		Flags:  []cli.Flag{hexInputFlag, fileInputFlag, bytesOutFlag},
		Action: hashBytesCmd,
	},
	{
		Name:      "permute",
		Usage:     "Apply the permutation to a 12-word state.",
		ArgsUsage: "<12 words>",
		Action:    permuteCmd,
	},
	{
		Name:   "demo",
		Usage:  "Hash the ASCII codes of \"helloworld\".",
		Flags:  []cli.Flag{bytesOutFlag},
		Action: demoCmd,
	},
	{
		Name:   "bench",
		Usage:  "Hash sampled messages concurrently and report throughput.",
		Flags:  []cli.Flag{messagesFlag, lengthFlag, seedFlag},
		Action: benchCmd,
	},
}

// CLI returns the poseidon command line application.
func CLI() *cli.App {
	app := cli.NewApp()
	app.Name = "poseidon"
	cli.VersionPrinter = func(c *cli.Context) {
		fmt.Fprintf(output, "poseidon %v (date %v, commit %v)\n", version, buildDate, gitCommit)
	}

	app.ExitErrHandler = func(context *cli.Context, err error) {
		// override to prevent default behavior of calling OS.exit(1),
		// when tests expect to be able to run multiple commands.
	}
	app.Version = version
	app.Usage = "Poseidon hash over the Goldilocks field"
	app.Commands = appCommands
	app.Flags = []cli.Flag{logLevelFlag, jsonLogsFlag, configFlag, formatFlag, workersFlag}
	app.Before = setup
	app.After = func(c *cli.Context) error {
		if l, ok := c.App.Metadata[loggerKey].(log.Logger); ok {
			// stderr may not support fsync
			_ = l.Sync()
		}
		return nil
	}
	return app
}

func setup(c *cli.Context) error {
	cfg, err := contextToConfig(c)
	if err != nil {
		return err
	}
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	if c.App.Metadata == nil {
		c.App.Metadata = map[string]interface{}{}
	}
	c.App.Metadata[configKey] = cfg
	c.App.Metadata[loggerKey] = log.New(nil, level, cfg.JSONLogs).Named("poseidon")
	return nil
}

func configFrom(c *cli.Context) Config {
	if cfg, ok := c.App.Metadata[configKey].(Config); ok {
		return cfg
	}
	return defaultConfig()
}

func loggerFrom(c *cli.Context) log.Logger {
	if l, ok := c.App.Metadata[loggerKey].(log.Logger); ok {
		return l
	}
	return log.Nop()
}
