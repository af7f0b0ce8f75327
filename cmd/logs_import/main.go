package main

//// Small CLI tool used to import workout logs exported from the browser storage of the
//// old web app: a JSON object with "<moduleId>-logs" keys holding the log arrays.

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/volleyfit/internal/config"
	"github.com/2beens/volleyfit/internal/stores"
	"github.com/2beens/volleyfit/internal/training/program"
	"github.com/2beens/volleyfit/internal/training/workoutlog"
)

type logsImporter interface {
	LogWorkout(ctx context.Context, moduleID string, req workoutlog.LogRequest) (_ workoutlog.WorkoutLog, total int, err error)
}

type failedImport struct {
	ModuleID string                `json:"moduleId"`
	Log      workoutlog.WorkoutLog `json:"log"`
	Error    string                `json:"error"`
}

func main() {
	env := flag.String("env", "development", "environment [prod | production | dev | development]")
	configPath := flag.String("config", "./config.toml", "path for the TOML config file")
	exportPath := flag.String("file", "", "path of the exported logs json file")
	verbose := flag.Bool("v", false, "print every imported log")
	flag.Parse()

	_ = godotenv.Load()

	if *exportPath == "" {
		fmt.Println("Error: -file is required")
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		log.Fatalf("load config: %s", err)
	}
	if cfg.LogStore == config.LogStoreMemory {
		log.Fatalf("importing into the memory log store makes no sense, configure redis or postgres")
	}

	exportData, err := os.ReadFile(*exportPath)
	if err != nil {
		log.Fatalf("read export file: %s", err)
	}
	exported, err := parseExport(exportData)
	if err != nil {
		log.Fatalf("parse export file: %s", err)
	}

	logStores, err := stores.Open(ctx, cfg, stores.OpenParams{
		RedisPassword:    os.Getenv("VOLLEYFIT_REDIS_PASS"),
		PostgresPassword: os.Getenv("VOLLEYFIT_POSTGRES_PASS"),
	})
	if err != nil {
		log.Fatalf("open stores: %s", err)
	}
	defer func() {
		if err := logStores.Close(); err != nil {
			log.Errorf("close stores: %s", err)
		}
	}()

	service := workoutlog.NewService(
		workoutlog.NewRepository(logStores.KV, nil),
		program.DefaultCatalog(),
	)

	result := importLogs(ctx, service, exported, *verbose)
	failed := result.failed
	log.Printf("imported %d logs, %d failed", result.imported, len(failed))
	if result.droppedWeights > 0 {
		log.Warnf("weight of %d set(s) dropped, their exercises are not weighted and progress uses reps for them", result.droppedWeights)
	}

	// print the failed ones as json, so they can be fixed and imported separately
	if len(failed) > 0 {
		failedJson, err := json.MarshalIndent(failed, "", "  ")
		if err != nil {
			log.Fatalf("marshal failed imports: %s", err)
		}
		fmt.Println(string(failedJson))
		os.Exit(2)
	}
}

// parseExport decodes the exported storage object. Keys other than
// "<moduleId>-logs" are ignored, undecodable module values are an error.
func parseExport(data []byte) (map[string][]workoutlog.WorkoutLog, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	exported := make(map[string][]workoutlog.WorkoutLog)
	for key, value := range raw {
		moduleID, ok := strings.CutSuffix(key, "-logs")
		if !ok || moduleID == "" {
			log.Debugf("skipping export key [%s]", key)
			continue
		}

		// the browser storage holds the array as a json string
		var encoded string
		if err := json.Unmarshal(value, &encoded); err == nil {
			value = json.RawMessage(encoded)
		}

		var logs []workoutlog.WorkoutLog
		if err := json.Unmarshal(value, &logs); err != nil {
			return nil, fmt.Errorf("logs of [%s]: %w", moduleID, err)
		}
		exported[moduleID] = logs
	}

	return exported, nil
}

type importResult struct {
	imported       int
	droppedWeights int // sets whose exported weight was not stored
	failed         []failedImport
}

func importLogs(
	ctx context.Context,
	importer logsImporter,
	exported map[string][]workoutlog.WorkoutLog,
	verbose bool,
) importResult {
	moduleIDs := make([]string, 0, len(exported))
	for moduleID := range exported {
		moduleIDs = append(moduleIDs, moduleID)
	}
	sort.Strings(moduleIDs)

	var result importResult
	for _, moduleID := range moduleIDs {
		for _, exportedLog := range exported[moduleID] {
			date := exportedLog.Date
			if date.IsZero() {
				date = time.Now()
			}

			stored, _, err := importer.LogWorkout(ctx, moduleID, workoutlog.LogRequest{
				ExerciseID: exportedLog.ExerciseID,
				Sets:       exportedLog.Sets,
				Date:       &date,
			})
			if err != nil {
				log.Printf("--- failed to import [%s/%s] [%s]: %s", moduleID, exportedLog.ExerciseID, date, err)
				result.failed = append(result.failed, failedImport{
					ModuleID: moduleID,
					Log:      exportedLog,
					Error:    err.Error(),
				})
				continue
			}

			result.imported++
			result.droppedWeights += countWeights(exportedLog.Sets) - countWeights(stored.Sets)
			if verbose {
				log.Printf("+++ imported [%s]: %+v", moduleID, stored)
			}
		}
	}

	return result
}

func countWeights(sets []workoutlog.SetEntry) int {
	count := 0
	for _, set := range sets {
		if set.HasWeight() {
			count++
		}
	}
	return count
}
