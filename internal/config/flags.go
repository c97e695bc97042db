package config

import (
	"flag"
	"os"
	"time"

	"libmatch/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-r string   Postgres DSN of the remote store
//	-f string   path of the local SQLite database
//	-t int      session max age in seconds
//
// The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-r", "-f", "-t"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.RemoteDSN, "r", cfg.RemoteDSN, "remote store DSN")
	fs.StringVar(&cfg.LocalDSN, "f", cfg.LocalDSN, "local database file")
	sessionMaxAge := fs.Int("t", int(cfg.SessionMaxAge.Seconds()), "session max age (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.SessionMaxAge = time.Duration(*sessionMaxAge) * time.Second
}
