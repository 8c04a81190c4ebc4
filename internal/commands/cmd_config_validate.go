package commands

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/taskdue/internal/core/config"
	"github.com/colonyops/taskdue/internal/printer"
	"github.com/colonyops/taskdue/pkg/iojson"
)

type ConfigValidateCmd struct {
	flags  *Flags
	format string
}

// NewConfigValidateCmd creates a new config validate command.
func NewConfigValidateCmd(flags *Flags) *ConfigValidateCmd {
	return &ConfigValidateCmd{flags: flags}
}

// Register adds the config validate command to the application.
func (cmd *ConfigValidateCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "config",
		Usage: "Configuration management commands",
		Commands: []*cli.Command{
			{
				Name:        "validate",
				Usage:       "Validate configuration file",
				UsageText:   "taskdue config validate [options]",
				Description: "Validates the configuration file, checking field values and the task file location.",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:        "format",
						Usage:       "output format (text, json)",
						Value:       "text",
						Destination: &cmd.format,
					},
				},
				Action: cmd.run,
			},
		},
	})

	return app
}

func (cmd *ConfigValidateCmd) run(ctx context.Context, c *cli.Command) error {
	result := cmd.flags.Config.ValidateDeep(cmd.flags.ConfigPath)

	if cmd.format == "json" {
		return cmd.outputJSON(c, result)
	}

	return cmd.outputText(printer.Ctx(ctx), result)
}

func (cmd *ConfigValidateCmd) outputJSON(c *cli.Command, result *config.ValidationResult) error {
	out := struct {
		Valid    bool                       `json:"valid"`
		Errors   []config.ValidationError   `json:"errors,omitempty"`
		Warnings []config.ValidationWarning `json:"warnings,omitempty"`
	}{
		Valid:    result.IsValid(),
		Errors:   result.Errors,
		Warnings: result.Warnings,
	}

	if err := iojson.WriteIndented(c.Root().Writer, out); err != nil {
		return err
	}
	if !result.IsValid() {
		return cli.Exit("", 1)
	}
	return nil
}

func (cmd *ConfigValidateCmd) outputText(p *printer.Printer, result *config.ValidationResult) error {
	p.Infof("Config file: %s", cmd.flags.ConfigPath)
	p.Infof("Task file: %s", cmd.flags.Config.TasksPath())

	for _, warn := range result.Warnings {
		p.Warnf("%s: %s", warn.Category, warn.Message)
	}

	for _, err := range result.Errors {
		p.Errorf("%s: %s", err.Field, err.Message)
	}

	p.Printf("")
	if result.IsValid() {
		p.Successf("Configuration is valid")
		return nil
	}

	p.Errorf("%d error(s) found", len(result.Errors))
	return cli.Exit("", 1)
}
