package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/user/docaudit/pkg/adk"
	"github.com/user/docaudit/pkg/audit"
	"github.com/user/docaudit/pkg/config"
	"github.com/user/docaudit/pkg/logging"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file>",
	Short: "Audit a project document and write the report",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]

		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		apiKey := cfg.GetAPIKey(cfg.SelectedProvider)
		if apiKey == "" {
			return fmt.Errorf("no API key for %s, run 'docaudit setup' first", cfg.SelectedProvider)
		}

		log := logging.New(DebugMode)
		defer log.Sync()

		ctx := cmd.Context()
		provider, err := adk.NewProvider(ctx, cfg.SelectedProvider, apiKey, cfg.SelectedModel)
		if err != nil {
			return fmt.Errorf("init provider: %w", err)
		}
		if closer, ok := provider.(io.Closer); ok {
			defer closer.Close()
		}

		svc, err := audit.NewService(cfg, provider, log)
		if err != nil {
			return err
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}

		result, err := svc.Analyze(ctx, filepath.Base(path), data)
		if err != nil {
			return err
		}

		if err := os.MkdirAll(cfg.Audit.OutputDir, 0755); err != nil {
			return err
		}
		base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		outPath := filepath.Join(cfg.Audit.OutputDir, base+"-audit.md")
		if err := os.WriteFile(outPath, []byte(result.Markdown), 0644); err != nil {
			return err
		}

		fmt.Printf("Report written to %s\n\n", outPath)
		fmt.Printf("Issues published:      %d\n", result.Report.TotalIssues())
		fmt.Printf("Quality score:         %d/100\n", result.Report.QualityScore)
		fmt.Printf("Discarded by evidence: %d\n", result.Stats.DiscardedByEvidence)
		fmt.Printf("Below threshold:       %d\n", result.Stats.BelowThreshold)
		fmt.Printf("Rejected by verifier:  %d\n", result.Stats.Rejected)
		fmt.Printf("Merged duplicates:     %d\n", result.Stats.Duplicates)
		for name, usage := range result.Stats.TokenUsage {
			fmt.Printf("Tokens (%s):           %d in / %d out\n", name, usage.Input, usage.Output)
		}
		fmt.Printf("Elapsed:               %s\n", result.Elapsed.Round(10*time.Millisecond))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
}
