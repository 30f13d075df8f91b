package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	if len(args) < 1 {
		printUsage(out)
		return errors.New("missing command")
	}

	apiURL := "http://localhost:8080"
	if envURL := os.Getenv("API_URL"); envURL != "" {
		apiURL = envURL
	}

	command, rest := args[0], args[1:]
	switch command {
	case "populate":
		return populateCmd(apiURL, rest, out)
	case "probe":
		return probeCmd(apiURL, rest, out)
	case "help", "-h", "--help":
		printUsage(out)
		return nil
	default:
		printUsage(out)
		return fmt.Errorf("unknown command: %s", command)
	}
}

func printUsage(out io.Writer) {
	fmt.Fprintln(out, `Hero Archive Simulator - Development tool for exercising a running backend

USAGE:
  simulator <command> [options]

COMMANDS:
  populate  Register fake users who favorite heroes, save drafts and post reviews
  probe     Check that one user's favorites, drafts and reviews are invisible to another
  help      Show this help message

ENVIRONMENT:
  API_URL   Backend API URL (default: http://localhost:8080)

EXAMPLES:
  # Fill the archive with 10 active users
  simulator populate --count=10

  # Run the access probe against staging
  API_URL=https://staging.example.com simulator probe`)
}

func populateCmd(apiURL string, args []string, out io.Writer) error {
	fs := pflag.NewFlagSet("populate", pflag.ContinueOnError)
	count := fs.Int("count", 5, "Number of fake users to create")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	if *count < 1 || *count > 100 {
		return errors.New("--count must be between 1 and 100")
	}

	return populate(NewAPIClient(apiURL), *count, out)
}

func probeCmd(apiURL string, args []string, out io.Writer) error {
	fs := pflag.NewFlagSet("probe", pflag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	return probe(NewAPIClient(apiURL), out)
}
