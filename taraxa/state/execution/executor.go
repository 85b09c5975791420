package execution

import (
	"fmt"
	"time"

	"github.com/cornelk/hashmap"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/Taraxa-project/taraxa-runtime-state/taraxa/metric_utils"
	"github.com/Taraxa-project/taraxa-runtime-state/taraxa/util"
	"github.com/Taraxa-project/taraxa-runtime-state/taraxa/util/logging"
)

// Executor hands out execution contexts over one committed store.
type Executor struct {
	store   Store
	open    *hashmap.HashMap
	metrics *metric_utils.Collector
	log     *logrus.Entry
}

// NewExecutor creates an executor. metrics may be nil.
func NewExecutor(store Store, metrics *metric_utils.Collector) *Executor {
	return &Executor{
		store:   store,
		open:    hashmap.New(64),
		metrics: metrics,
		log:     logging.Module("execution"),
	}
}

// Begin opens a context. The height may not be lower than the height of
// the last commit.
func (self *Executor) Begin(meta Metadata) (*Context, error) {
	if committed := self.store.GetCommittedDescriptor().BlockNum; meta.BlockHeight < committed {
		return nil, errors.Wrapf(ErrBlockHeightRegression, "requested %d, committed %d", meta.BlockHeight, committed)
	}
	ctx := new(Context).init(self.store, meta, self.on_finalize)
	self.open.Set(ctx.ID(), ctx)
	self.metrics.ContextOpened()
	self.log.WithFields(logrus.Fields{
		"ctx":    ctx.ID(),
		"sender": meta.Sender.Hex(),
		"height": meta.BlockHeight,
	}).Trace("context opened")
	return ctx, nil
}

func (self *Executor) on_finalize(ctx *Context) {
	self.open.Del(ctx.ID())
	self.metrics.ContextClosed()
	res := ctx.Result()
	entry := self.log.WithFields(logrus.Fields{"ctx": ctx.ID(), "status": res.Status.String()})
	switch {
	case ctx.fault != nil:
		self.metrics.RecordOutcome(metric_utils.OutcomeFault)
		entry.WithError(ctx.fault.Err).Error("commit failed")
	case res.Status == StatusAborted:
		self.metrics.RecordOutcome(metric_utils.OutcomeAborted)
		entry = entry.WithField("reason", res.Message)
		if f := ctx.Failure(); f != nil {
			entry = entry.WithField("at", f.Location())
		}
		entry.Debug("context aborted")
	default:
		self.metrics.RecordOutcome(metric_utils.OutcomeCommitted)
		entry.Trace("context committed")
	}
}

// OpenContexts is the number of contexts begun and not yet finalized.
func (self *Executor) OpenContexts() int { return self.open.Len() }

// Lookup finds an open context by id.
func (self *Executor) Lookup(id string) (*Context, bool) {
	v, ok := self.open.Get(id)
	if !ok {
		return nil, false
	}
	return v.(*Context), true
}

// call turns a panic carrying an error into a returned error. Any other
// panic aborts ctx before it propagates.
func call(method func(*Context) error, ctx *Context) (err error) {
	defer util.Recover(util.SetTo(&err))
	defer func() {
		if caught := recover(); caught != nil {
			if _, is_err := caught.(error); !is_err {
				ctx.Abort(fmt.Sprint("panic: ", caught))
			}
			panic(caught)
		}
	}()
	return method(ctx)
}

// Execute runs method in a fresh context and commits it unless it was
// aborted. A failed assertion is reported in the Result. Errors returned
// by method abort the context and are returned as is. A *CommitFault is
// returned when the merge fails.
func (self *Executor) Execute(meta Metadata, method func(*Context) error) (Result, error) {
	ctx, err := self.Begin(meta)
	if err != nil {
		return Result{Status: StatusAborted, Message: err.Error()}, err
	}
	if err := call(method, ctx); err != nil {
		ctx.Abort(err.Error())
		return ctx.Result(), err
	}
	if ctx.Status() == StatusAborted {
		return ctx.Result(), nil
	}
	started, staged := time.Now(), ctx.StagedWrites()
	if err := ctx.Commit(); err != nil {
		return ctx.Result(), err
	}
	self.metrics.RecordCommit(started, staged, meta.BlockHeight)
	return ctx.Result(), nil
}
