package commands

import (
	"os"
	"path/filepath"

	"github.com/colonyops/taskdue/internal/core/config"
	"github.com/colonyops/taskdue/pkg/utils"
)

const appName = "taskdue"

type Flags struct {
	LogLevel   string
	LogFile    string
	ConfigPath string
	DataDir    string

	// ProfilerPort enables a pprof endpoint for long-running commands when positive
	ProfilerPort int

	// LogGate sits in front of stderr console logging so full-screen
	// commands can hold log lines back until they exit
	LogGate *utils.GateWriter

	// Config is loaded in the Before hook and available to all commands
	Config *config.Config
}

// NeedsTaskStore reports whether args, the command line after the root
// flags, runs a command that reads tasks. Config commands and help output
// never open the task file.
func NeedsTaskStore(args []string) bool {
	if len(args) > 0 && (args[0] == "config" || args[0] == "help") {
		return false
	}
	for _, arg := range args {
		if arg == "--" {
			break
		}
		if arg == "-h" || arg == "--help" {
			return false
		}
	}
	return true
}

// DefaultConfigPath returns the default config file path using XDG_CONFIG_HOME.
func DefaultConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, appName, "config.yaml")
}

// DefaultDataDir returns the default data directory using XDG_DATA_HOME.
func DefaultDataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, appName)
}
