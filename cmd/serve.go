package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/user/docaudit/pkg/adk"
	"github.com/user/docaudit/pkg/audit"
	"github.com/user/docaudit/pkg/config"
	"github.com/user/docaudit/pkg/logging"
)

const maxUploadBytes = 32 << 20

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the audit HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
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

		provider, err := adk.NewProvider(cmd.Context(), cfg.SelectedProvider, apiKey, cfg.SelectedModel)
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

		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		mux.HandleFunc("/api/analyze", analyzeHandler(svc, log))

		srv := &http.Server{
			Addr:              serveAddr,
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
		}
		log.Info("audit API listening", zap.String("addr", serveAddr))
		return srv.ListenAndServe()
	},
}

func analyzeHandler(svc *audit.Service, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
		file, header, err := r.FormFile("file")
		if err != nil {
			http.Error(w, "missing file field: "+err.Error(), http.StatusBadRequest)
			return
		}
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			http.Error(w, "read upload: "+err.Error(), http.StatusBadRequest)
			return
		}

		result, err := svc.Analyze(r.Context(), header.Filename, data)
		if err != nil {
			log.Error("analysis failed", zap.String("filename", header.Filename), zap.Error(err))
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("X-Audit-Issues", strconv.Itoa(result.Report.TotalIssues()))
		w.Header().Set("X-Audit-Quality-Score", strconv.Itoa(result.Report.QualityScore))
		w.Header().Set("X-Audit-Discarded-Evidence", strconv.FormatInt(result.Stats.DiscardedByEvidence, 10))
		w.Header().Set("X-Audit-Below-Threshold", strconv.FormatInt(result.Stats.BelowThreshold, 10))
		w.Header().Set("X-Audit-Rejected", strconv.FormatInt(result.Stats.Rejected, 10))
		w.Header().Set("X-Audit-Duplicates", strconv.FormatInt(result.Stats.Duplicates, 10))
		w.Header().Set("X-Audit-Elapsed-Ms", strconv.FormatInt(result.Elapsed.Milliseconds(), 10))

		resp := struct {
			Report   any    `json:"report"`
			Markdown string `json:"markdown"`
			Stats    any    `json:"stats"`
			Timings  any    `json:"timings"`
		}{result.Report, result.Markdown, result.Stats, result.Timings}

		if err := json.NewEncoder(w).Encode(resp); err != nil {
			log.Error("encode response", zap.Error(err))
		}
	}
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "Listen address")
	rootCmd.AddCommand(serveCmd)
}
