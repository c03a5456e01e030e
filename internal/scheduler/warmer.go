package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/padelgestionado/padel-club-api/internal/availability"
	"github.com/padelgestionado/padel-club-api/internal/cache"
	"github.com/padelgestionado/padel-club-api/internal/model"
)

// BookingLister is the slice of the booking repository the warmer
// needs to rebuild availability grids.
type BookingLister interface {
	ListActiveForDate(ctx context.Context, fecha string) ([]model.Booking, error)
}

// Warmer periodically precomputes the availability grid for the next
// few days and stores it in the cache, so the first request of the
// morning does not pay the cold-cache cost.
type Warmer struct {
	scheduler gocron.Scheduler
	bookings  BookingLister
	cache     *cache.AvailabilityCache
	warmDays  int
	logger    *zap.Logger
	stopOnce  sync.Once
	stopErr   error
}

// NewWarmer builds a warmer that refreshes today plus warmDays days
// ahead on the given interval. It returns nil when the cache is not
// enabled so callers can skip Start unconditionally.
func NewWarmer(bookings BookingLister, c *cache.AvailabilityCache, warmDays int, interval time.Duration, logger *zap.Logger) (*Warmer, error) {
	if c == nil || !c.Enabled() {
		return nil, nil
	}
	if warmDays < 0 {
		warmDays = 0
	}

	w := &Warmer{bookings: bookings, cache: c, warmDays: warmDays, logger: logger}

	sched, err := gocron.NewScheduler(
		gocron.WithGlobalJobOptions(
			gocron.WithEventListeners(
				gocron.AfterJobRunsWithPanic(func(jobID uuid.UUID, jobName string, recoverData any) {
					logger.Error("warmer job panicked",
						zap.String("job_id", jobID.String()),
						zap.String("job_name", jobName),
						zap.Any("panic", recoverData))
				}),
			),
		),
	)
	if err != nil {
		return nil, err
	}
	w.scheduler = sched

	_, err = sched.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(w.run),
		gocron.WithName("availability_warmer"),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		return nil, err
	}
	return w, nil
}

// Start begins the refresh cycle. Safe to call on a nil warmer.
func (w *Warmer) Start() {
	if w == nil {
		return
	}
	w.logger.Info("availability warmer starting", zap.Int("warm_days", w.warmDays))
	w.scheduler.Start()
}

// Stop shuts the scheduler down and waits for in-flight jobs.
func (w *Warmer) Stop() error {
	if w == nil {
		return nil
	}
	w.stopOnce.Do(func() {
		w.logger.Info("availability warmer stopping")
		w.stopErr = w.scheduler.Shutdown()
	})
	return w.stopErr
}

func (w *Warmer) run() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	today := time.Now().UTC()
	for d := 0; d <= w.warmDays; d++ {
		fecha := today.AddDate(0, 0, d).Format("2006-01-02")
		bookings, err := w.bookings.ListActiveForDate(ctx, fecha)
		if err != nil {
			w.logger.Warn("warmer could not list bookings", zap.String("fecha", fecha), zap.Error(err))
			continue
		}
		w.cache.Set(ctx, fecha, availability.BuildGrid(bookings))
	}
}
