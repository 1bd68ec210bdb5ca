// Released under an MIT license. See LICENSE.

// Package options parses the command line and the optional configuration
// file.
package options

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/docopt/docopt-go"
	"github.com/mattn/go-isatty"
	"gopkg.in/yaml.v3"

	"github.com/michaelmacinnis/nanscheme/internal/engine"
)

// Version is printed by -v.
const Version = "nanscheme 0.1.0"

//nolint:gochecknoglobals
var (
	command     string
	config      engine.Config
	interactive bool
	script      string
	stats       bool
	usage       = `nanscheme

Usage:
  nanscheme [options] SCRIPT
  nanscheme [options] -c COMMAND
  nanscheme [options] [-s]
  nanscheme -h
  nanscheme -v

Arguments:
  SCRIPT  Path to a Scheme source file.

Options:
  -c, --command=COMMAND  Evaluate COMMAND and print the result.
  -i, --interactive      Invert interactive mode.
  -s, --stdin            Read expressions from stdin.
  --config=FILE          YAML configuration file.
  --pool=N               Initial cons pool size in pairs.
  --limit=N              Maximum cons pool size in pairs.
  --depth=N              Maximum evaluation depth.
  --stats                Print pool statistics on exit.
  --no-boot              Do not load the boot library.
  -h, --help             Display this help.
  -v, --version          Print nanscheme version.

If stdin is a TTY and there is no SCRIPT or COMMAND, expressions are read
interactively. The configuration file defaults to ~/.nanscheme.yaml.
Command line options override settings from the configuration file.
`
)

// Command returns the expression passed with -c, if any.
func Command() string {
	return command
}

// Config returns the engine configuration.
func Config() engine.Config {
	return config
}

// Interactive returns true if expressions should be read with a prompt.
func Interactive() bool {
	return interactive
}

// Parse parses os.Args. It exits after printing help or the version.
func Parse() error {
	opts, err := docopt.ParseArgs(usage, os.Args[1:], Version)
	if err != nil {
		// Error in the usage doc. This should never happen.
		panic(err.Error())
	}

	return parse(opts, isatty.IsTerminal(os.Stdin.Fd()))
}

// Script returns the path of the script to run, if any.
func Script() string {
	return script
}

// Stats returns true if pool statistics should be printed on exit.
func Stats() bool {
	return stats
}

func parse(opts docopt.Opts, terminal bool) error {
	command, _ = opts.String("--command")
	script, _ = opts.String("SCRIPT")

	interactive = terminal && command == "" && script == ""

	invertInteractive, _ := opts.Bool("--interactive")
	interactive = interactive != invertInteractive

	stats, _ = opts.Bool("--stats")

	path, _ := opts.String("--config")

	c, err := load(path)
	if err != nil {
		return err
	}

	for key, field := range map[string]*int{
		"--depth": &c.Machine.MaxDepth,
		"--limit": &c.Store.ConsLimit,
		"--pool":  &c.Store.Cons,
	} {
		s, _ := opts.String(key)
		if s == "" {
			continue
		}

		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			return fmt.Errorf("%s: expected a non-negative integer, got %q", key, s)
		}

		*field = n
	}

	if noBoot, _ := opts.Bool("--no-boot"); noBoot {
		c.NoBoot = true
	}

	config = c

	return nil
}

// load reads the configuration file at path. An empty path means the
// default file, which need not exist.
func load(path string) (engine.Config, error) {
	c := engine.Config{}

	explicit := path != ""
	if !explicit {
		home, err := os.UserHomeDir()
		if err != nil {
			return c, nil //nolint:nilerr
		}

		path = filepath.Join(home, ".nanscheme.yaml")
	}

	f, err := os.Open(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return c, nil
		}

		return c, err
	}
	defer f.Close()

	return decode(f, path)
}

func decode(r io.Reader, name string) (engine.Config, error) {
	c := engine.Config{}

	d := yaml.NewDecoder(r)
	d.KnownFields(true)

	err := d.Decode(&c)
	if err != nil && !errors.Is(err, io.EOF) {
		return c, fmt.Errorf("%s: %w", name, err)
	}

	return c, nil
}
