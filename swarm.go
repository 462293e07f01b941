// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package robdd

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// defaultWorkers returns the default Swarm size: runtime.GOMAXPROCS(0) minus
// one, clamped to a minimum of one. GOMAXPROCS counts logical CPUs, not
// physical cores.
func defaultWorkers() int {
	n := runtime.GOMAXPROCS(0) - 1
	if n < 1 {
		return 1
	}
	return n
}

// stepResult is what a worker posts back after performing one normalization
// step for a query: the two cofactor normalizations for its hi and lo
// branch. Bookkeeping (registering new sub-queries, wiring dependencies,
// committing VHLs) stays out of the worker and is done by whichever
// goroutine is acting as coordinator when it drains this result, keeping
// every worker-side critical section to "one normalization, one cofactor
// pass" and nothing else.
type stepResult struct {
	qid QID
	hi  normalized
	lo  normalized
}

// Swarm is the generic N-worker pool described in §4.6: workers dequeue
// queries from a shared queue, perform one ITE normalization step each
// (cofactoring f, g, h with respect to the query's branch variable), and
// post the result back. The only suspension points for a worker are the
// dequeue and the result post, plus the WorkState lock taken to read the
// query (Get) and whatever row lock the unique table takes during
// cofactoring's VHL lookups (childrenOf) — never two locks at once.
type Swarm struct {
	jobs    chan QID
	results chan stepResult
	ws      *WorkState
	unique  *HiLoCache
}

func newSwarm(ws *WorkState, unique *HiLoCache) *Swarm {
	return &Swarm{
		// Generously buffered: a worker's only other suspension point is
		// this send, and we would rather let backlog build up than have a
		// fast worker stall behind a slow coordinator.
		jobs:    make(chan QID, 4096),
		results: make(chan stepResult, 4096),
		ws:      ws,
		unique:  unique,
	}
}

// Post enqueues qid for processing by the Swarm.
func (s *Swarm) Post(qid QID) {
	s.jobs <- qid
}

// Start launches n worker goroutines under g, draining jobs until ctx is
// cancelled. A worker panic is recovered and turned into an
// InvariantViolated error that cancels the group's context, tearing down
// every other worker: "any worker-side panic is fatal" (§7).
func (s *Swarm) Start(ctx context.Context, g *errgroup.Group, n int) {
	for i := 0; i < n; i++ {
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = newError(InvariantViolated, "swarm worker panic: %v", r)
				}
			}()
			return s.worker(ctx)
		})
	}
}

func (s *Swarm) worker(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case qid, ok := <-s.jobs:
			if !ok {
				return nil
			}
			res, skip, err := s.step(qid)
			if err != nil {
				return err
			}
			if skip {
				continue
			}
			select {
			case s.results <- res:
			case <-ctx.Done():
				return nil
			}
		}
	}
}

// step cofactors a query's triple with respect to its branch variable and
// normalizes each of the two resulting sub-triples, for the coordinator to
// act on. It reports skip=true for a query that another worker already
// resolved in the meantime (tolerating the short-circuit abandonment
// described in §4.6).
func (s *Swarm) step(qid QID) (stepResult, bool, error) {
	triple, v, resolved, _ := s.ws.Get(qid)
	if resolved {
		return stepResult{}, true, nil
	}
	fHi, fLo, err := cofactorPair(s.unique, triple.F, v)
	if err != nil {
		return stepResult{}, false, err
	}
	gHi, gLo, err := cofactorPair(s.unique, triple.G, v)
	if err != nil {
		return stepResult{}, false, err
	}
	hHi, hLo, err := cofactorPair(s.unique, triple.H, v)
	if err != nil {
		return stepResult{}, false, err
	}
	return stepResult{
		qid: qid,
		hi:  normalizeITE(fHi, gHi, hHi),
		lo:  normalizeITE(fLo, gLo, hLo),
	}, false, nil
}
