package cmd

import (
	"strconv"

	"obfuscate-logs/internal/config"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage default settings",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective defaults",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.LoadConfig()
		cmd.Printf("Keyword file: %s\n", orDefault(cfg.KeywordsPath))
		cmd.Printf("Output folder: %s\n", orDefault(cfg.OutputDir))
		cmd.Printf("IPv4: %t\n", cfg.IPv4)
		cmd.Printf("Detailed logging: %t\n", cfg.Detailed)
		cmd.Printf("Summary: %t\n", cfg.Summary)
	},
}

func orDefault(s string) string {
	if s == "" {
		return "(default)"
	}
	return s
}

var configSetKeywordsCmd = &cobra.Command{
	Use:   "set-keywords [path]",
	Short: "Set the default keyword file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return updateConfig(cmd, func(c *config.Config) { c.KeywordsPath = args[0] },
			"Keyword file set to: "+args[0])
	},
}

var configSetOutputCmd = &cobra.Command{
	Use:   "set-output [folder]",
	Short: "Set the default output folder",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return updateConfig(cmd, func(c *config.Config) { c.OutputDir = args[0] },
			"Output folder set to: "+args[0])
	},
}

func boolSetter(use, short, label string, set func(*config.Config, bool)) *cobra.Command {
	return &cobra.Command{
		Use:   use + " [true|false]",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := strconv.ParseBool(args[0])
			if err != nil {
				return err
			}
			return updateConfig(cmd, func(c *config.Config) { set(c, b) },
				label+" set to: "+strconv.FormatBool(b))
		},
	}
}

// updateConfig edits the config file alone, so environment overrides are
// never written back.
func updateConfig(cmd *cobra.Command, edit func(*config.Config), done string) error {
	c, err := config.LoadFile()
	if err != nil {
		return err
	}
	edit(&c)
	if err := config.SaveConfig(c); err != nil {
		return err
	}
	cmd.Println(done)
	return nil
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetKeywordsCmd)
	configCmd.AddCommand(configSetOutputCmd)
	configCmd.AddCommand(boolSetter("set-ipv4", "Enable or disable IPv4 obfuscation by default", "IPv4",
		func(c *config.Config, b bool) { c.IPv4 = b }))
	configCmd.AddCommand(boolSetter("set-detailed", "Enable or disable detailed logging by default", "Detailed logging",
		func(c *config.Config, b bool) { c.Detailed = b }))
	configCmd.AddCommand(boolSetter("set-summary", "Enable or disable the JSON run summary by default", "Summary",
		func(c *config.Config, b bool) { c.Summary = b }))
	rootCmd.AddCommand(configCmd)
}
