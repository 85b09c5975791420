package execution

import (
	"fmt"

	"github.com/go-stack/stack"

	"github.com/Taraxa-project/taraxa-runtime-state/taraxa/util"
)

var (
	ErrFinalized             = util.ErrorString("execution context is already committed")
	ErrBlockHeightRegression = util.ErrorString("block height is lower than the last committed one")
)

// AssertionFailure is the reason an invocation was aborted.
type AssertionFailure struct {
	Message string
	// where Assert or Abort was called
	Caller stack.Call
}

func (self *AssertionFailure) Error() string { return self.Message }

func (self *AssertionFailure) Location() string {
	return fmt.Sprintf("%+v (%n)", self.Caller, self.Caller)
}

// CommitFault is a failure of the persistence layer while merging staged
// writes. The merge did not happen.
type CommitFault struct {
	Err error
}

func (self *CommitFault) Error() string { return "commit fault: " + self.Err.Error() }

func (self *CommitFault) Unwrap() error { return self.Err }
