package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/patientwatch/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
// Supported flags:
//
//	-v   enable debug logging
//
// The config file path flags (-c / -config) are handled separately by the
// JSON layer. FilterArgs keeps this flag set from tripping over them.
func parseFlags(config *Config) error {
	args := flagx.FilterArgs(os.Args[1:], []string{"-v"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)
	fs.BoolVar(&config.Verbose, "v", config.Verbose, "enable debug logging")

	return fs.Parse(args)
}
