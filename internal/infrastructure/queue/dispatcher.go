package queue

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/traveldesk/travel-requests/internal/api/metrics"
	"github.com/traveldesk/travel-requests/internal/core/domain"
	"github.com/traveldesk/travel-requests/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
	writeTimeout   = 5 * time.Second
)

// Dispatcher persists status changes in the background. Changes are routed by
// request id to a fixed set of workers, so the changes of one request are
// written in the order they were enqueued.
type Dispatcher struct {
	workers []chan domain.StatusChange
	store   ports.StatusEventRepository
	log     zerolog.Logger
	wg      sync.WaitGroup
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, store ports.StatusEventRepository, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan domain.StatusChange, numWorkers),
		store:   store,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.StatusChange, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Wait blocks until every worker has returned.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

// Enqueue hands a change to the worker responsible for its request. It never
// blocks: when that worker's buffer is full the change is dropped and counted.
func (d *Dispatcher) Enqueue(change domain.StatusChange) {
	idx := d.shardIndex(change.RequestID)
	select {
	case d.workers[idx] <- change:
		metrics.AuditQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
	default:
		metrics.AuditEventsTotal.WithLabelValues("dropped").Inc()
		d.log.Warn().
			Int64("request_id", change.RequestID).
			Int("worker_id", idx).
			Msg("audit queue full, status change dropped")
	}
}

// shardIndex maps a request id deterministically to a worker index.
func (d *Dispatcher) shardIndex(requestID int64) int {
	if requestID < 0 {
		requestID = -requestID
	}
	return int(requestID % int64(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.StatusChange) {
	defer d.wg.Done()
	label := strconv.Itoa(id)

	for {
		select {
		case <-ctx.Done():
			return
		case change := <-ch:
			metrics.AuditQueueDepth.WithLabelValues(label).Set(float64(len(ch)))

			// detached from ctx so an in-flight write survives shutdown
			writeCtx, cancel := context.WithTimeout(context.Background(), writeTimeout)
			err := d.store.Insert(writeCtx, &change)
			cancel()

			if err != nil {
				metrics.AuditEventsTotal.WithLabelValues("failed").Inc()
				d.log.Error().Err(err).
					Int64("request_id", change.RequestID).
					Int("worker_id", id).
					Msg("status change write failed")
				continue
			}
			metrics.AuditEventsTotal.WithLabelValues("written").Inc()
		}
	}
}
