package repl

import (
	"context"
	"runtime"
	"strconv"

	"golang.org/x/sync/errgroup"

	"dogwood/internal/source"
	"dogwood/internal/trace"
)

// BatchOptions configure EvalBatch.
type BatchOptions struct {
	// Jobs limits concurrent turns; <= 0 means GOMAXPROCS.
	Jobs int
	// Session builds the session for one line, so explanations can carry
	// the line's own name and number.
	Session func(line source.Line) *Session
	// Notify, when set, is called from worker goroutines as lines start
	// and finish.
	Notify func(ev BatchEvent)
}

// BatchStatus is the state of one line in a batch.
type BatchStatus uint8

const (
	BatchQueued BatchStatus = iota
	BatchWorking
	BatchDone
	BatchFailed
)

func (s BatchStatus) String() string {
	switch s {
	case BatchQueued:
		return "queued"
	case BatchWorking:
		return "working"
	case BatchDone:
		return "done"
	case BatchFailed:
		return "error"
	default:
		return "unknown"
	}
}

// BatchEvent reports progress of the line at Index.
type BatchEvent struct {
	Index  int
	Status BatchStatus
}

// EvalBatch runs every line as an independent turn. Results keep input
// order regardless of completion order. Blank lines yield a zero result.
func EvalBatch(ctx context.Context, lines []source.Line, opts BatchOptions) ([]TurnResult, error) {
	results := make([]TurnResult, len(lines))
	if len(lines) == 0 {
		return results, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	ctx, span := trace.Start(ctx, trace.ScopeDriver, "batch")
	defer span.Set("lines", strconv.Itoa(len(lines))).Set("jobs", strconv.Itoa(jobs)).End("")

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(lines)))

	for i, line := range lines {
		if isBlank(line.Text) {
			continue
		}
		g.Go(func() error {
			// Проверка отмены
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			opts.notify(i, BatchWorking)
			res, err := opts.Session(line).Turn(gctx, line)
			if err != nil {
				return err
			}
			results[i] = res
			if res.Failed() {
				opts.notify(i, BatchFailed)
			} else {
				opts.notify(i, BatchDone)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (o BatchOptions) notify(i int, st BatchStatus) {
	if o.Notify != nil {
		o.Notify(BatchEvent{Index: i, Status: st})
	}
}

func isBlank(s string) bool {
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case ' ', '\t', '\r', '\n':
		default:
			return false
		}
	}
	return true
}

func itoa(n int) string { return strconv.Itoa(n) }
