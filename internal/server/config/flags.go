package config

import (
	"flag"
	"os"
	"time"

	"github.com/taskboard/taskboard/internal/flagx"
)

// parseFlags overlays selected Config fields from command-line flags.
//
// Supported flags:
//
//	-a string   HTTP bind address (e.g. ":5005")
//	-d string   Mongo connection-string template
//	-n string   database name
//	-w string   database password
//	-s string   JWT HMAC secret key
//	-t int      login token validity, minutes
//
// os.Args is first filtered through flagx.FilterArgs so this layer only
// sees the flags it owns.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-n", "-w", "-s", "-t"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddr, "a", config.EndpointAddr, "address and port to run server")
	fs.StringVar(&config.DatabaseTemplate, "d", config.DatabaseTemplate, "database connection-string template")
	fs.StringVar(&config.DatabaseName, "n", config.DatabaseName, "database name")
	fs.StringVar(&config.DatabasePassword, "w", config.DatabasePassword, "database password")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")

	tokenValidity := fs.Int("t", int(config.TokenValidityDuration.Minutes()), "token validity duration (in minutes)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.TokenValidityDuration = time.Duration(*tokenValidity) * time.Minute
}
