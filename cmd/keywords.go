package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"obfuscate-logs/internal/keywords"

	"github.com/spf13/cobra"
)

var (
	kwSection     string
	kwKeyword     string
	kwReplacement string
	kwForce       bool
)

var keywordsCmd = &cobra.Command{
	Use:   "keywords",
	Short: "Manage the keyword file",
	Long: `Keywords are literal strings replaced by a fixed value wherever they
appear, compared case-insensitively. They live in an .ini file grouped
into sections; sections only organize the file.

The file defaults to obfuscate-logs.ini next to the executable and can be
chosen with --keywords.`,
}

var keywordsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the configured keywords",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := resolveKeywordsPath()
		if err != nil {
			return err
		}
		set, found := readKeywordSet(cmd, slog.New(slog.DiscardHandler), path)
		if !found {
			cmd.Printf("Keyword file not found: %s\n", path)
			cmd.Println("\nCreate it with: obfuscate-logs keywords init")
			return nil
		}

		if set.Len() == 0 {
			cmd.Printf("No keywords configured in %s.\n", path)
			cmd.Println("\nAdd keywords with: obfuscate-logs keywords add --section servers --keyword server1 --replacement generic_server1")
			return nil
		}

		cmd.Printf("Configured keywords in %s (%d):\n\n", path, set.Len())
		section := ""
		for _, e := range set.Entries {
			if e.Section != section {
				section = e.Section
				cmd.Println(styleBanner.Render("[" + section + "]"))
			}
			cmd.Printf("  %s = %s\n", e.Keyword, e.Replacement)
		}
		return nil
	},
}

var keywordsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a keyword and its replacement",
	Long: `Add a keyword to the keyword file.

Examples:
  # Hide an internal host name
  obfuscate-logs keywords add --section servers --keyword build-01 --replacement generic_server

  # Hide a customer name
  obfuscate-logs keywords add --keyword "Acme Corp" --replacement customer`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if kwKeyword == "" || kwReplacement == "" {
			return fmt.Errorf("--keyword and --replacement are required")
		}
		path, err := resolveKeywordsPath()
		if err != nil {
			return err
		}
		if err := keywords.Add(path, kwSection, kwKeyword, kwReplacement); err != nil {
			return err
		}
		cmd.Printf("Added keyword: %s\n", kwKeyword)
		return nil
	},
}

var keywordsRemoveCmd = &cobra.Command{
	Use:   "remove [keyword]",
	Short: "Remove a keyword from every section",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := resolveKeywordsPath()
		if err != nil {
			return err
		}
		removed, err := keywords.Remove(path, args[0])
		if err != nil {
			return err
		}
		if !removed {
			return fmt.Errorf("no keyword %q found in %s", args[0], path)
		}
		cmd.Printf("Removed keyword: %s\n", args[0])
		return nil
	},
}

var keywordsInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the example keyword file",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := resolveKeywordsPath()
		if err != nil {
			return err
		}
		if _, err := os.Stat(path); err == nil && !kwForce {
			cmd.Printf("Keyword file already exists: %s (use --force to overwrite)\n", path)
			return nil
		}
		if err := keywords.WriteTemplate(path); err != nil {
			return err
		}
		cmd.Printf("Keyword file written: %s\n", path)
		return nil
	},
}

func init() {
	keywordsAddCmd.Flags().StringVar(&kwSection, "section", "general", "Section to add the keyword to")
	keywordsAddCmd.Flags().StringVar(&kwKeyword, "keyword", "", "Keyword to replace (required)")
	keywordsAddCmd.Flags().StringVar(&kwReplacement, "replacement", "", "Replacement text (required)")
	keywordsInitCmd.Flags().BoolVar(&kwForce, "force", false, "Overwrite an existing keyword file")

	keywordsCmd.AddCommand(keywordsListCmd)
	keywordsCmd.AddCommand(keywordsAddCmd)
	keywordsCmd.AddCommand(keywordsRemoveCmd)
	keywordsCmd.AddCommand(keywordsInitCmd)
	rootCmd.AddCommand(keywordsCmd)
}
