package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"obfuscate-logs/internal/batch"
	"obfuscate-logs/internal/config"
	"obfuscate-logs/internal/keywords"
	"obfuscate-logs/internal/obfuscation"
	"obfuscate-logs/internal/report"
	"obfuscate-logs/internal/session"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const version = "1.1.0"

var (
	cfg config.Config

	detailed     bool
	ipv4         bool
	keywordsPath string
	outputDir    string
	summary      bool
)

var rootCmd = &cobra.Command{
	Use:   "obfuscate-logs [path]",
	Short: "Obfuscate sensitive data in log files",
	Long: `Obfuscate URL hosts, IPv4 addresses and user-defined keywords in a log
file or a folder of log files, so the logs can be shared safely.

Each distinct host or address is replaced by the same generic value
everywhere in the run. Output files get an "_obfuscated" suffix and are
written to the output folder together with a run log.`,
	Version:      version,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cfg = config.LoadConfig()
		applyConfigDefaults(cmd.Flags())
	},
	RunE: runObfuscation,
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.SetVersionTemplate("obfuscate-logs version {{.Version}}\n")

	rootCmd.PersistentFlags().BoolVarP(&ipv4, "ipv4", "i", false, "Enable obfuscation of IPv4 addresses")
	rootCmd.PersistentFlags().StringVarP(&keywordsPath, "keywords", "k", "", "Path to the keyword .ini file (default: obfuscate-logs.ini next to the executable)")
	rootCmd.Flags().BoolVarP(&detailed, "detailed", "d", false, "Log every obfuscated line with before/after values")
	rootCmd.Flags().StringVarP(&outputDir, "output", "o", "", "Output folder (default: the input file's folder, or the input folder)")
	rootCmd.Flags().BoolVar(&summary, "summary", false, "Write a JSON summary of the run to the output folder")
}

func SetArgs(args []string) {
	rootCmd.SetArgs(args)
}

func SetOut(w io.Writer) {
	rootCmd.SetOut(w)
	rootCmd.SetErr(w)
}

// ResetFlags restores every flag to its default so repeated in-process
// executions start clean.
func ResetFlags() {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	rootCmd.PersistentFlags().VisitAll(reset)
	rootCmd.Flags().VisitAll(reset)
	for _, c := range rootCmd.Commands() {
		c.Flags().VisitAll(reset)
		for _, sub := range c.Commands() {
			sub.Flags().VisitAll(reset)
		}
	}
}

// applyConfigDefaults fills flags the user did not set from the config.
func applyConfigDefaults(flags *pflag.FlagSet) {
	if !flags.Changed("ipv4") {
		ipv4 = cfg.IPv4
	}
	if !flags.Changed("keywords") && cfg.KeywordsPath != "" {
		keywordsPath = cfg.KeywordsPath
	}
	if flags.Lookup("detailed") != nil && !flags.Changed("detailed") {
		detailed = cfg.Detailed
	}
	if flags.Lookup("output") != nil && !flags.Changed("output") && cfg.OutputDir != "" {
		outputDir = cfg.OutputDir
	}
	if flags.Lookup("summary") != nil && !flags.Changed("summary") {
		summary = cfg.Summary
	}
}

func resolveKeywordsPath() (string, error) {
	if keywordsPath != "" {
		return keywordsPath, nil
	}
	return keywords.DefaultPath()
}

func runObfuscation(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return batch.ErrNoPath
	}
	input := args[0]

	out := outputDir
	if out == "" {
		def, err := batch.DefaultOutputDir(input)
		if err != nil {
			return err
		}
		out = def
	} else if _, err := batch.Inspect(input); err != nil {
		return err
	}
	if err := os.MkdirAll(out, 0755); err != nil {
		return fmt.Errorf("create output folder %s: %w", out, err)
	}

	sess, err := session.Start(out)
	if err != nil {
		return err
	}
	defer sess.Close()
	logger := sess.Logger

	kwPath, err := resolveKeywordsPath()
	if err != nil {
		return err
	}
	set := loadKeywordSet(cmd, logger, kwPath)

	cmd.Println(styleBanner.Render("Starting the obfuscation process..."))
	if detailed {
		cmd.Println(styleInfo.Render("Detailed logging is enabled. Changes will be logged."))
	}
	logger.Info("Run options",
		"input", input,
		"output", out,
		"ipv4", ipv4,
		"detailed", detailed,
		"keywords", set.Len())

	var rep *report.Report
	skip := []string{sess.LogPath}
	if summary {
		rep = report.New(out, sess.RunID, sess.Started)
		skip = append(skip, rep.Path)
	}

	plan, err := batch.NewPlan(input, out, skip...)
	if err != nil {
		logger.Error("Error processing folder", "folder", input, "error", err)
		return err
	}

	runner := &batch.Runner{
		Obfuscator: obfuscation.New(obfuscation.NewReplacementTable(), set.Map(), obfuscation.Options{
			IPv4:     ipv4,
			Detailed: detailed,
			Logger:   logger,
		}),
		Logger: logger,
		Out:    cmd.OutOrStdout(),
		Report: rep,
	}
	sum := runner.Run(plan)

	if rep != nil {
		if err := rep.Save(); err != nil {
			logger.Error("Error writing summary", "path", rep.Path, "error", err)
			cmd.Println(styleError.Render(fmt.Sprintf("Error writing summary %s: %v", rep.Path, err)))
		} else {
			cmd.Printf("Summary written: %s\n", rep.Path)
		}
	}

	logger.Info("Obfuscation process completed.", "processed", sum.Processed, "failed", sum.Failed)
	if sum.Failed > 0 {
		cmd.Println(styleError.Render(fmt.Sprintf("%d file(s) could not be processed; see the log for details.", sum.Failed)))
	}
	cmd.Println(styleSuccess.Render("Obfuscation process completed. Log file created: " + sess.LogPath))
	return nil
}

// loadKeywordSet loads the keyword file, creating the template when it is
// missing. Problems are reported and result in an empty set.
func loadKeywordSet(cmd *cobra.Command, logger *slog.Logger, path string) *keywords.Set {
	set, created, err := keywords.Load(path)
	if err != nil {
		logger.Warn("Keyword file could not be loaded, continuing without keywords", "path", path, "error", err)
		cmd.Println(styleWarn.Render(fmt.Sprintf("Warning: %v", err)))
		return &keywords.Set{Path: path}
	}
	if created {
		logger.Info("Keyword file not found, created template", "path", path)
		cmd.Printf("%s not found. Creating a new blank keyword file.\n", path)
		return set
	}

	warnDuplicates(cmd, logger, set)
	logger.Info(fmt.Sprintf("Loaded %d unique keywords from %s.", set.Len(), path))
	return set
}

// readKeywordSet loads the keyword file for read-only commands. A missing
// file is not created; found reports whether it existed.
func readKeywordSet(cmd *cobra.Command, logger *slog.Logger, path string) (set *keywords.Set, found bool) {
	set, err := keywords.Read(path)
	if errors.Is(err, os.ErrNotExist) {
		return set, false
	}
	if err != nil {
		logger.Warn("Keyword file could not be loaded, continuing without keywords", "path", path, "error", err)
		cmd.Println(styleWarn.Render(fmt.Sprintf("Warning: %v", err)))
		return &keywords.Set{Path: path}, true
	}
	warnDuplicates(cmd, logger, set)
	return set, true
}

func warnDuplicates(cmd *cobra.Command, logger *slog.Logger, set *keywords.Set) {
	for _, d := range set.Duplicates {
		msg := fmt.Sprintf("Duplicate keyword ignored: '%s' in section [%s]", d.Keyword, d.Section)
		cmd.Println(styleWarn.Render("Warning: " + msg))
		logger.Warn(msg)
	}
}
