package config

import (
	"flag"
	"os"
	"time"

	"github.com/okarpov/studykeeper/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-p string   remote project id
//	-k string   path to the service-account credentials file
//	-d string   study content data directory
//	-t int      per-attempt request timeout in seconds
//	-r int      total remote attempt budget
//	-hash str   credential hash scheme (sha256 or bcrypt)
//	-setup      enable the one-time admin bootstrap gate
//
// Args are filtered through flagx.FilterArgs so flags owned by other config
// stages do not interfere.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-p", "-k", "-d", "-t", "-r", "-hash", "-setup"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ProjectID, "p", cfg.ProjectID, "remote project id")
	fs.StringVar(&cfg.CredentialsFile, "k", cfg.CredentialsFile, "service-account credentials file")
	fs.StringVar(&cfg.DataDir, "d", cfg.DataDir, "study content data directory")
	timeoutSec := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.IntVar(&cfg.RetryAttempts, "r", cfg.RetryAttempts, "total remote attempt budget")
	fs.StringVar(&cfg.HashScheme, "hash", cfg.HashScheme, "credential hash scheme (sha256 or bcrypt)")
	fs.BoolVar(&cfg.SetupMode, "setup", cfg.SetupMode, "enable admin bootstrap gate")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*timeoutSec) * time.Second
}
