package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"stock-scoring/config"
	"stock-scoring/internal/dto"
	"stock-scoring/internal/repository"
	"stock-scoring/internal/service"
	"stock-scoring/pkg/cache"
	"stock-scoring/pkg/logger"
	"stock-scoring/pkg/tracer"

	"github.com/spf13/cobra"
)

var (
	analyzeMode   string
	analyzePretty bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze SYMBOL",
	Short: "Score a single symbol and print the result as JSON",
	Args:  cobra.ExactArgs(1),
	RunE:  runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeMode, "mode", string(dto.ModeStandard), "analysis mode: standard or comprehensive")
	analyzeCmd.Flags().BoolVar(&analyzePretty, "pretty", false, "indent the JSON output")
}

// runAnalyze scores one symbol without a database; nothing is persisted.
func runAnalyze(cmd *cobra.Command, args []string) error {
	mode, ok := dto.ParseAnalysisMode(analyzeMode)
	if !ok {
		return fmt.Errorf("unknown analysis mode %q", analyzeMode)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.Log.Level, cfg.Log.Encoding)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	c := cache.NewCache(cfg.Cache.DefaultExpiration, cfg.Cache.CleanupInterval)
	marketData, err := repository.NewMarketData(cfg, log, c)
	if err != nil {
		return err
	}

	analyzer := service.NewAnalyzerService(cfg, log, tracer.Noop(), marketData.Provider, marketData.Sentiment, nil)
	result, err := analyzer.Analyze(cmd.Context(), args[0], mode)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	if analyzePretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(result)
}
