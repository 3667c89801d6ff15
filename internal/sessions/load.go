package sessions

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/sheetlord/coep.ultimatett.fyfirstsem2025/internal/logging"
	"github.com/sheetlord/coep.ultimatett.fyfirstsem2025/pkg/models"
)

// LoadingState is where an asynchronous load currently stands.
type LoadingState int

const (
	StateIdle LoadingState = iota
	StateLoading
	StateCancelling
	StateReady
	StateError
)

func (s LoadingState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateCancelling:
		return "cancelling"
	case StateReady:
		return "ready"
	case StateError:
		return "error"
	default:
		return fmt.Sprintf("LoadingState(%d)", int(s))
	}
}

// loadTimeout bounds a single load so a stuck database cannot hang startup.
const loadTimeout = 30 * time.Second

// Load reads src once and builds a Store. Rows with a blank essential field
// are skipped and reported, never fatal. On failure Load returns a
// FailedStore together with the error, so callers can always keep going.
func Load(ctx context.Context, src Source, opts StoreOptions, logger *zap.Logger) (*Store, error) {
	logger = logging.OrNop(logger).With(zap.String("source", src.Name()))

	ctx, cancel := context.WithTimeout(ctx, loadTimeout)
	defer cancel()

	started := time.Now()
	rows, err := src.Rows(ctx)
	if err != nil {
		err = fmt.Errorf("failed to load timetable: %w", err)
		logger.Error("timetable load failed", zap.Error(err))
		return FailedStore(err), err
	}

	n := newNormalizer()
	report := LoadReport{Source: src.Name(), Read: len(rows)}
	list := make([]models.Session, 0, len(rows))
	for _, row := range rows {
		sess, err := n.normalize(row)
		if err != nil {
			logger.Warn("skipping timetable row", zap.Int("line", row.Line), zap.Error(err))
			report.Skipped = append(report.Skipped, SkippedRow{Line: row.Line, Reason: err.Error()})
			continue
		}
		list = append(list, sess)
	}
	report.Kept = len(list)

	store := NewStore(list, opts)
	store.report = report

	logger.Info("timetable loaded",
		zap.Int("read", report.Read),
		zap.Int("kept", report.Kept),
		zap.Int("skipped", len(report.Skipped)),
		zap.Int("rooms", len(store.rooms)),
		zap.Duration("elapsed", time.Since(started)),
	)
	return store, nil
}

// LoadResult is delivered by LoadAsync.
type LoadResult struct {
	Store *Store
	Err   error
}

// LoadAsync runs Load in a goroutine. The channel yields exactly one result
// unless ctx is cancelled first, in which case it is closed empty.
func LoadAsync(ctx context.Context, src Source, opts StoreOptions, logger *zap.Logger) <-chan LoadResult {
	resultChan := make(chan LoadResult, 1)

	go func() {
		defer close(resultChan)

		store, err := Load(ctx, src, opts, logger)
		if ctx.Err() != nil {
			return
		}

		select {
		case resultChan <- LoadResult{Store: store, Err: err}:
		case <-ctx.Done():
		}
	}()

	return resultChan
}
