package progress

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/volleyfit/internal/telemetry/metrics"
	"github.com/2beens/volleyfit/internal/telemetry/tracing"
	"github.com/2beens/volleyfit/internal/training/program"
	"github.com/2beens/volleyfit/internal/training/workoutlog"
)

var ErrUnknownModule = errors.New("unknown module")

const (
	megabyte       = 1024 * 1024
	minCacheSizeMB = 1
)

type logsReader interface {
	GetLogs(ctx context.Context, moduleID string) ([]workoutlog.WorkoutLog, error)
}

type NewServiceParams struct {
	Repo           logsReader
	Catalog        *program.Catalog
	MetricsManager *metrics.Manager
	Location       *time.Location
	CacheSizeMB    int
	// zero keeps entries until the next append seen by this process
	CacheTTL time.Duration
	// optional, freecache default timer when nil
	CacheTimer freecache.Timer
}

// Service computes module progress and keeps the encoded result cached
// until the next log is appended to the module through this process, or
// until the cache TTL passes.
type Service struct {
	repo           logsReader
	catalog        *program.Catalog
	metricsManager *metrics.Manager
	location       *time.Location
	cache          *freecache.Cache
	cacheTTLSec    int

	// bumped on every append, a computation started before an append is not cached
	generationsMutex sync.Mutex
	generations      map[string]uint64
}

func NewService(params NewServiceParams) *Service {
	cacheSizeMB := params.CacheSizeMB
	if cacheSizeMB < minCacheSizeMB {
		cacheSizeMB = minCacheSizeMB
	}
	loc := params.Location
	if loc == nil {
		loc = time.UTC
	}

	var cache *freecache.Cache
	if params.CacheTimer != nil {
		cache = freecache.NewCacheCustomTimer(cacheSizeMB*megabyte, params.CacheTimer)
	} else {
		cache = freecache.NewCache(cacheSizeMB * megabyte)
	}

	cacheTTLSec := 0
	if params.CacheTTL > 0 {
		// freecache expiry has a one second resolution
		cacheTTLSec = int(math.Ceil(params.CacheTTL.Seconds()))
	}

	return &Service{
		repo:           params.Repo,
		catalog:        params.Catalog,
		metricsManager: params.MetricsManager,
		location:       loc,
		cache:          cache,
		cacheTTLSec:    cacheTTLSec,
		generations:    make(map[string]uint64),
	}
}

// LogAppended drops the cached progress of the module.
func (s *Service) LogAppended(_ context.Context, moduleID string) {
	s.generationsMutex.Lock()
	defer s.generationsMutex.Unlock()

	s.generations[moduleID]++
	s.cache.Del([]byte(moduleID))
}

func (s *Service) ModuleProgress(ctx context.Context, moduleID string) (_ ModuleProgress, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.progress.module")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("module", moduleID))

	if !s.catalog.IsKnownModule(moduleID) {
		return ModuleProgress{}, fmt.Errorf("%w: %s", ErrUnknownModule, moduleID)
	}

	cacheKey := []byte(moduleID)
	if cachedBytes, err := s.cache.Get(cacheKey); err == nil {
		var cached ModuleProgress
		if err := json.Unmarshal(cachedBytes, &cached); err == nil {
			s.countCache("hit")
			span.SetAttributes(attribute.Bool("cache.hit", true))
			return cached, nil
		} else {
			log.Errorf("failed to unmarshal cached progress [%s]: %s", moduleID, err)
		}
	}
	s.countCache("miss")

	generation := s.generation(moduleID)
	logs, err := s.repo.GetLogs(ctx, moduleID)
	if err != nil {
		return ModuleProgress{}, fmt.Errorf("get logs: %w", err)
	}

	moduleProgress := Aggregate(logs, AggregateOptions{
		Exercises: s.catalog.Exercises(moduleID),
		Location:  s.location,
	})

	s.storeInCache(moduleID, generation, moduleProgress)

	return moduleProgress, nil
}

// AllProgress computes the progress of every catalog module.
func (s *Service) AllProgress(ctx context.Context) (map[string]ModuleProgress, error) {
	all := make(map[string]ModuleProgress)
	for _, moduleID := range s.catalog.ModuleIDs() {
		moduleProgress, err := s.ModuleProgress(ctx, moduleID)
		if err != nil {
			return nil, fmt.Errorf("progress [%s]: %w", moduleID, err)
		}
		all[moduleID] = moduleProgress
	}
	return all, nil
}

func (s *Service) generation(moduleID string) uint64 {
	s.generationsMutex.Lock()
	defer s.generationsMutex.Unlock()
	return s.generations[moduleID]
}

func (s *Service) storeInCache(moduleID string, generation uint64, moduleProgress ModuleProgress) {
	progressBytes, err := json.Marshal(moduleProgress)
	if err != nil {
		log.Errorf("failed to marshal progress [%s] for cache: %s", moduleID, err)
		return
	}

	s.generationsMutex.Lock()
	defer s.generationsMutex.Unlock()

	if s.generations[moduleID] != generation {
		log.Tracef("progress [%s] changed while computing, not caching", moduleID)
		return
	}
	if err := s.cache.Set([]byte(moduleID), progressBytes, s.cacheTTLSec); err != nil {
		log.Errorf("failed to cache progress [%s]: %s", moduleID, err)
	}
}

func (s *Service) countCache(result string) {
	if s.metricsManager != nil {
		s.metricsManager.CounterProgressCache.WithLabelValues(result).Inc()
	}
}
