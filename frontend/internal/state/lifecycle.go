package state

import (
	"context"
	"time"

	"github.com/google/uuid"
	internal_errors "github.com/itchan-dev/forumstate/shared/errors"
)

type Phase string

const (
	PhasePending   Phase = "pending"
	PhaseFulfilled Phase = "fulfilled"
	PhaseRejected  Phase = "rejected"
)

// StoreName names the store an Event concerns.
type StoreName string

const (
	StoreThreads     StoreName = "threads"
	StoreDetail      StoreName = "detail"
	StoreAuth        StoreName = "auth"
	StoreLeaderboard StoreName = "leaderboard"
)

// Event is published on every lifecycle transition and every reset hook.
type Event struct {
	Store     StoreName `json:"store"`
	Operation string    `json:"operation"`
	Phase     Phase     `json:"phase"`
	OpId      string    `json:"opId,omitempty"`
	Error     string    `json:"error,omitempty"`
}

// busy counts the in-flight calls of one action family, so overlapping calls
// keep the flag set until the last of them settles. clear starts a new epoch:
// calls begun before it no longer count and settle without touching n.
type busy struct {
	n     int
	epoch uint64
}

func (b *busy) active() bool { return b.n > 0 }

func (b *busy) clear() {
	b.n = 0
	b.epoch++
}

// slot is the busy counter and error message an action family reports into.
type slot struct {
	store StoreName
	busy  *busy
	err   *string
}

func (s slot) begin() uint64 {
	s.busy.n++
	*s.err = ""
	return s.busy.epoch
}

// end reports false when the counter was cleared since begin.
func (s slot) end(epoch uint64) bool {
	if s.busy.epoch != epoch {
		return false
	}
	s.busy.n--
	return true
}

// operation is one invocation of an action. fulfill and reject run under the
// Coordinator lock; call runs without it.
type operation[T any] struct {
	name    string
	slot    slot
	call    func(ctx context.Context) (T, error)
	fulfill func(result T)
	reject  func(err error)
}

// run drives op through Pending and then Fulfilled or Rejected.
func run[T any](ctx context.Context, c *Coordinator, op operation[T]) (T, error) {
	opId := uuid.NewString()
	log := c.log.With("operation", op.name, "op_id", opId)

	c.mu.Lock()
	epoch := op.slot.begin()
	c.transition(op.name, op.slot.store, opId, PhasePending, "")
	c.mu.Unlock()
	operationsInFlight.WithLabelValues(op.name).Inc()
	log.Debug("operation pending")

	start := time.Now()
	result, err := op.call(ctx)
	operationsInFlight.WithLabelValues(op.name).Dec()

	c.mu.Lock()
	defer c.mu.Unlock()
	current := op.slot.end(epoch)
	if err != nil {
		msg := internal_errors.Message(err)
		if current {
			*op.slot.err = msg
		}
		if op.reject != nil {
			op.reject(err)
		}
		c.transition(op.name, op.slot.store, opId, PhaseRejected, msg)
		log.Debug("operation rejected", "error", msg, "duration", time.Since(start))
		return result, err
	}
	if op.fulfill != nil {
		op.fulfill(result)
	}
	if current {
		*op.slot.err = ""
	}
	c.transition(op.name, op.slot.store, opId, PhaseFulfilled, "")
	log.Debug("operation fulfilled", "duration", time.Since(start))
	return result, nil
}

// transition must be called with c.mu held.
func (c *Coordinator) transition(name string, store StoreName, opId string, phase Phase, msg string) {
	operationTransitions.WithLabelValues(name, string(phase)).Inc()
	c.publish(Event{Store: store, Operation: name, Phase: phase, OpId: opId, Error: msg})
}
