package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/dhanu2426/corporate-banking-system/internal/core/domain"
	"github.com/dhanu2426/corporate-banking-system/internal/pkg/metrics"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
	writeTimeout   = 10 * time.Second
)

// AuditRecorder persists a single status change.
type AuditRecorder interface {
	Record(ctx context.Context, change domain.StatusChange) error
}

// Dispatcher routes credit status changes to a fixed set of workers using
// consistent hashing on the request id, so the audit trail of one request is
// written in decision order.
type Dispatcher struct {
	workers  []chan domain.StatusChange
	recorder AuditRecorder
	log      zerolog.Logger
	wg       sync.WaitGroup
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, recorder AuditRecorder, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers:  make([]chan domain.StatusChange, numWorkers),
		recorder: recorder,
		log:      log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.StatusChange, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. When ctx is cancelled each worker
// drains what is already queued and exits.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Wait blocks until every worker has exited.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

// Enqueue sends a change to the worker responsible for its request.
// The call is non-blocking up to channelBuffer capacity.
func (d *Dispatcher) Enqueue(change domain.StatusChange) {
	idx := d.shardIndex(change.RequestID)
	metrics.AuditQueueDepth.WithLabelValues(strconv.Itoa(idx)).Inc()
	d.workers[idx] <- change
}

// shardIndex maps a request id deterministically to a worker index.
func (d *Dispatcher) shardIndex(requestID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(requestID))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.StatusChange) {
	defer d.wg.Done()
	depth := metrics.AuditQueueDepth.WithLabelValues(strconv.Itoa(id))
	// Queued decisions are written even after shutdown begins.
	writeCtx := context.WithoutCancel(ctx)

	for {
		select {
		case <-ctx.Done():
			for {
				select {
				case change := <-ch:
					depth.Dec()
					d.record(writeCtx, id, change)
				default:
					return
				}
			}
		case change := <-ch:
			depth.Dec()
			d.record(writeCtx, id, change)
		}
	}
}

func (d *Dispatcher) record(ctx context.Context, id int, change domain.StatusChange) {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	start := time.Now()
	err := d.recorder.Record(ctx, change)
	result := "ok"
	if err != nil {
		result = "error"
		d.log.Error().Err(err).
			Str("request_id", change.RequestID).
			Str("to", string(change.To)).
			Int("worker_id", id).
			Msg("audit write failed")
	}
	metrics.AuditWriteDuration.WithLabelValues(result).Observe(time.Since(start).Seconds())
}
