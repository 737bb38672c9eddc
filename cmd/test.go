package cmd

import (
	"log/slog"

	"obfuscate-logs/internal/obfuscation"

	"github.com/spf13/cobra"
)

var testCmd = &cobra.Command{
	Use:   "test [line]",
	Short: "Obfuscate one line of text and print the result",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := resolveKeywordsPath()
		if err != nil {
			return err
		}
		logger := slog.New(slog.DiscardHandler)
		set, _ := readKeywordSet(cmd, logger, path)

		obf := obfuscation.New(obfuscation.NewReplacementTable(), set.Map(), obfuscation.Options{
			IPv4:   ipv4,
			Logger: logger,
		})
		line, kind := obf.Line(args[0])
		cmd.Println(line)
		if kind != obfuscation.KindNone {
			cmd.Println(styleDim.Render("(" + string(kind) + ")"))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(testCmd)
}
