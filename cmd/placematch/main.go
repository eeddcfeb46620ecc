package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/gnis-match/internal/config"
	"github.com/gnis-match/internal/engine"
	"github.com/gnis-match/internal/gazetteer"
	"github.com/gnis-match/internal/geo"
	"github.com/gnis-match/internal/report"
	"github.com/gnis-match/internal/store"
	"github.com/gnis-match/internal/web"
)

func main() {
	config.LoadEnv()

	rootCmd := &cobra.Command{
		Use:   "placematch",
		Short: "Historical place name matching",
		Long:  `Matches historical place name records against a geographic names catalog using layered exact, variation and fuzzy strategies, with optional geographic disambiguation.`,
	}

	rootCmd.AddCommand(createMatchCmd())
	rootCmd.AddCommand(createServeCmd())
	rootCmd.AddCommand(createCentroidsCmd())
	rootCmd.AddCommand(createPingCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// loadEngine builds an engine from the gazetteer file plus optional
// county centroids. Shared by the match and serve commands.
func loadEngine(gazetteerPath, centroidsPath string, cfg *config.Config) (*engine.Engine, error) {
	entries, err := gazetteer.LoadEntries(gazetteerPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load gazetteer: %w", err)
	}
	fmt.Printf("Loaded %d gazetteer entries\n", len(entries))

	var centroids geo.Centroids
	if centroidsPath != "" {
		centroids, err = geo.LoadCentroids(centroidsPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load centroids: %w", err)
		}
		fmt.Printf("Loaded %d county centroids\n", len(centroids))
	}

	return engine.New(entries, centroids, cfg)
}

func createMatchCmd() *cobra.Command {
	var (
		centroidsPath string
		threshold     float64
		geoEnabled    bool
		workers       int
		outPath       string
		htmlPath      string
		save          bool
		noProgress    bool
		trace         bool
	)

	cmd := &cobra.Command{
		Use:   "match [places.csv] [gazetteer.csv]",
		Short: "Match historical place records against the gazetteer",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			cfg := config.Default()
			cfg.ConfidenceThreshold = threshold
			cfg.GeoEnabled = geoEnabled
			cfg.ShowProgress = !noProgress
			if workers > 0 {
				cfg.Workers = workers
			}
			if geoEnabled && centroidsPath == "" {
				log.Fatal("--geo requires --centroids")
			}

			records, err := gazetteer.LoadPlaces(args[0])
			if err != nil {
				log.Fatalf("Failed to load place records: %v", err)
			}
			fmt.Printf("Loaded %d place records\n", len(records))

			eng, err := loadEngine(args[1], centroidsPath, cfg)
			if err != nil {
				log.Fatalf("Failed to build engine: %v", err)
			}
			eng.SetTrace(trace)

			results, summary := eng.MatchAll(records)
			printSummary(summary)

			if outPath != "" {
				if err := report.ExportCSV(outPath, results); err != nil {
					log.Fatalf("Failed to write CSV: %v", err)
				}
				fmt.Printf("Results written to %s\n", outPath)
			}
			if htmlPath != "" {
				if err := report.ExportHTML(htmlPath, results, summary); err != nil {
					log.Fatalf("Failed to write HTML report: %v", err)
				}
				fmt.Printf("Report written to %s\n", htmlPath)
			}
			if save {
				st, err := store.NewStore()
				if err != nil {
					log.Fatalf("Failed to connect to database: %v", err)
				}
				defer st.Close()

				if err := st.EnsureSchema(); err != nil {
					log.Fatalf("Failed to ensure schema: %v", err)
				}
				runID, err := st.SaveRun(results, summary)
				if err != nil {
					log.Fatalf("Failed to save run: %v", err)
				}
				fmt.Printf("Run saved as id %d\n", runID)
			}
		},
	}

	cmd.Flags().StringVar(&centroidsPath, "centroids", "", "county centroids CSV for geographic disambiguation")
	cmd.Flags().Float64Var(&threshold, "threshold", config.Default().ConfidenceThreshold, "minimum confidence for a candidate to survive")
	cmd.Flags().BoolVar(&geoEnabled, "geo", false, "enable geographic disambiguation")
	cmd.Flags().IntVar(&workers, "workers", 0, "worker goroutines (0 = one per CPU)")
	cmd.Flags().StringVar(&outPath, "out", "", "write per-candidate results CSV to this path")
	cmd.Flags().StringVar(&htmlPath, "html", "", "write HTML summary report to this path")
	cmd.Flags().BoolVar(&save, "save", false, "persist the run to Postgres")
	cmd.Flags().BoolVar(&noProgress, "no-progress", false, "suppress the progress bar")
	cmd.Flags().BoolVar(&trace, "trace", false, "print per-record strategy traces")

	return cmd
}

func createServeCmd() *cobra.Command {
	var (
		addr          string
		centroidsPath string
		geoEnabled    bool
	)

	cmd := &cobra.Command{
		Use:   "serve [places.csv] [gazetteer.csv]",
		Short: "Run a match and serve the results for review",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			cfg := config.Default()
			cfg.GeoEnabled = geoEnabled
			cfg.ShowProgress = false
			if geoEnabled && centroidsPath == "" {
				log.Fatal("--geo requires --centroids")
			}

			records, err := gazetteer.LoadPlaces(args[0])
			if err != nil {
				log.Fatalf("Failed to load place records: %v", err)
			}

			eng, err := loadEngine(args[1], centroidsPath, cfg)
			if err != nil {
				log.Fatalf("Failed to build engine: %v", err)
			}

			results, summary := eng.MatchAll(records)
			printSummary(summary)

			server := web.NewServer(addr, eng, results, summary)
			if err := server.Start(); err != nil {
				log.Fatalf("Server failed: %v", err)
			}
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:8080", "listen address")
	cmd.Flags().StringVar(&centroidsPath, "centroids", "", "county centroids CSV for geographic disambiguation")
	cmd.Flags().BoolVar(&geoEnabled, "geo", false, "enable geographic disambiguation")

	return cmd
}

func createCentroidsCmd() *cobra.Command {
	centroidsCmd := &cobra.Command{
		Use:   "centroids",
		Short: "County centroid utilities",
	}

	centroidsCmd.AddCommand(&cobra.Command{
		Use:   "validate [centroids.csv]",
		Short: "Check a centroids file for missing or out-of-range coordinates",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			centroids, err := geo.LoadCentroids(args[0])
			if err != nil {
				log.Fatalf("Failed to load centroids: %v", err)
			}
			if problems := centroids.Validate(); len(problems) > 0 {
				for _, p := range problems {
					fmt.Printf("  %s\n", p)
				}
				log.Fatalf("Validation failed: %d problems", len(problems))
			}
			fmt.Printf("OK: %d centroids, all coordinates in range\n", len(centroids))
		},
	})

	return centroidsCmd
}

func createPingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Test database connectivity",
		Run: func(cmd *cobra.Command, args []string) {
			st, err := store.NewStore()
			if err != nil {
				log.Fatalf("Failed to connect to database: %v", err)
			}
			defer st.Close()

			fmt.Println("Database connection successful!")

			var runs int
			err = st.DB.QueryRow("SELECT COUNT(*) FROM match_run").Scan(&runs)
			if err != nil {
				log.Printf("Error counting match runs: %v", err)
			} else {
				fmt.Printf("Match runs stored: %d\n", runs)
			}
		},
	}
}

func printSummary(summary engine.Summary) {
	fmt.Printf("\n=== Matching Complete ===\n")
	fmt.Printf("Total records:   %d\n", summary.TotalRecords)
	fmt.Printf("Single match:    %d\n", summary.SingleMatch)
	fmt.Printf("Multiple match:  %d\n", summary.MultipleMatch)
	fmt.Printf("Unmatched:       %d\n", summary.Unmatched)
	fmt.Printf("Match rate:      %.1f%%\n", summary.MatchRate()*100)
	if summary.SingleMatch+summary.MultipleMatch > 0 {
		fmt.Printf("Mean confidence: %.1f (median %.1f)\n", summary.MeanConfidence, summary.MedianConfidence)
	}
	for strategy, count := range summary.ByStrategy {
		fmt.Printf("  %-14s %d\n", strategy, count)
	}
}
