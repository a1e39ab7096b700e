package main

import (
	"fmt"
	"os"

	"github.com/Pvt25072004/devops-lab-cicd/internal/cli"
	"github.com/Pvt25072004/devops-lab-cicd/internal/config"
	"github.com/Pvt25072004/devops-lab-cicd/internal/entrypoint"
)

// Version information - set at build time via ldflags
var (
	Version = "dev"
	Commit  = "unknown"
)

//	@title			BookVault API
//	@version		1.0
//	@description	Book catalog with a JSON API and an HTML interface.
//	@BasePath		/
func main() {
	// If no arguments or "serve" command, run the HTTP server
	if len(os.Args) < 2 || os.Args[1] == "serve" {
		cfg := config.NewConfig()
		entrypoint.Run(cfg, Version)
		return
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "migrate":
		cmd := cli.NewMigrateCommand()
		if err := cmd.ParseFlags(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if err := cmd.Run(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

	case "version":
		fmt.Printf("bookvault %s (commit %s)\n", Version, Commit)

	case "help", "-h", "--help":
		printUsage()

	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("BookVault - book catalog service")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Printf("  %s [command] [options]\n", os.Args[0])
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  serve      Start the HTTP server (default)")
	fmt.Println("  migrate    Apply database migrations and exit")
	fmt.Println("  version    Print version information")
	fmt.Println("  help       Show this help message")
	fmt.Println()
	fmt.Println("Use '<command> -h' for command-specific help")
}
