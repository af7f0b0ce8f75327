package main

//// Small CLI tool printing the training progress of each module. Reads the configured
//// log store directly, or asks a running service when -addr is given.

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/2beens/volleyfit/internal/config"
	"github.com/2beens/volleyfit/internal/stores"
	"github.com/2beens/volleyfit/internal/training/program"
	"github.com/2beens/volleyfit/internal/training/progress"
	"github.com/2beens/volleyfit/internal/training/workoutlog"
)

func main() {
	env := flag.String("env", "development", "environment [prod | production | dev | development]")
	configPath := flag.String("config", "./config.toml", "path for the TOML config file")
	addr := flag.String("addr", "", "base url of a running service, e.g. http://localhost:9100 (store is read directly if empty)")
	moduleID := flag.String("module", "", "only report this module")
	asJSON := flag.Bool("json", false, "print the report as json")
	flag.Parse()

	_ = godotenv.Load()
	log.SetOutput(os.Stderr)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var (
		report map[string]progress.ModuleProgress
		err    error
	)
	if *addr != "" {
		report, err = fetchReport(ctx, strings.TrimRight(*addr, "/"))
	} else {
		report, err = readReport(ctx, *env, *configPath)
	}
	if err != nil {
		log.Fatalf("progress report: %s", err)
	}

	if *moduleID != "" {
		moduleProgress, ok := report[*moduleID]
		if !ok {
			log.Fatalf("no progress for module [%s]", *moduleID)
		}
		report = map[string]progress.ModuleProgress{*moduleID: moduleProgress}
	}

	if *asJSON {
		reportJson, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			log.Fatalf("marshal report: %s", err)
		}
		fmt.Println(string(reportJson))
		return
	}

	printReport(os.Stdout, report)
}

func readReport(ctx context.Context, env, configPath string) (map[string]progress.ModuleProgress, error) {
	cfg, err := config.Load(env, configPath)
	if err != nil {
		return nil, err
	}
	if cfg.LogStore == config.LogStoreMemory {
		return nil, errors.New("memory log store lives in the service process, use -addr")
	}

	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	logStores, err := stores.Open(ctx, cfg, stores.OpenParams{
		RedisPassword:    os.Getenv("VOLLEYFIT_REDIS_PASS"),
		PostgresPassword: os.Getenv("VOLLEYFIT_POSTGRES_PASS"),
	})
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := logStores.Close(); err != nil {
			log.Errorf("close stores: %s", err)
		}
	}()

	progressService := progress.NewService(progress.NewServiceParams{
		Repo:     workoutlog.NewRepository(logStores.KV, nil),
		Catalog:  program.DefaultCatalog(),
		Location: loc,
	})
	return progressService.AllProgress(ctx)
}

func fetchReport(ctx context.Context, baseURL string) (map[string]progress.ModuleProgress, error) {
	httpClient := &http.Client{
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"/progress", nil)
	if err != nil {
		return nil, err
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http client do: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, respBytes)
	}

	var report map[string]progress.ModuleProgress
	if err := json.Unmarshal(respBytes, &report); err != nil {
		return nil, fmt.Errorf("unmarshal progress: %w", err)
	}
	return report, nil
}

func printReport(w io.Writer, report map[string]progress.ModuleProgress) {
	moduleIDs := make([]string, 0, len(report))
	for moduleID := range report {
		moduleIDs = append(moduleIDs, moduleID)
	}
	sort.Strings(moduleIDs)

	for _, moduleID := range moduleIDs {
		p := report[moduleID]
		fmt.Fprintf(w, "%s\n", moduleID)
		fmt.Fprintf(w, "  total sets:   %d\n", p.TotalSets)
		fmt.Fprintf(w, "  last workout: %s\n", p.LastWorkout)
		fmt.Fprintf(w, "  improvement:  %.1f%%\n", p.Improvement)

		exerciseIDs := make([]string, 0, len(p.Series))
		for exerciseID := range p.Series {
			exerciseIDs = append(exerciseIDs, exerciseID)
		}
		sort.Strings(exerciseIDs)
		for _, exerciseID := range exerciseIDs {
			points := p.Series[exerciseID]
			last := points[len(points)-1]
			fmt.Fprintf(w, "    %-16s entries: %3d  last: %s, %d", exerciseID, len(points), last.Date, last.Reps)
			if last.Weight != nil {
				fmt.Fprintf(w, " @ %.1f", *last.Weight)
			}
			fmt.Fprintln(w)
		}
	}
}
