package exec

import (
	"fmt"
	"runtime"

	"github.com/colorfulnotion/calcjit/log"
)

// Engine executes code buffers, each in a region of its own.
type Engine struct {
	Mapper Mapper
	// Observer, if set, sees every state change of every region.
	Observer func(from, to State)
}

// NewEngine returns an engine backed by the host's memory mapper.
func NewEngine() *Engine {
	return &Engine{Mapper: HostMapper{}}
}

var defaultEngine = NewEngine()

// Execute runs code on the default engine.
func Execute(code []byte) (int64, error) {
	return defaultEngine.Execute(code)
}

// Execute copies code into a fresh region, seals it, makes it executable and
// calls it on the current OS thread. The region is released before Execute
// returns, whatever the outcome.
//
// code must be a complete function for the host architecture, as produced by
// jit.Compile.
func (e *Engine) Execute(code []byte) (result int64, err error) {
	region, err := NewRegion(e.Mapper, len(code))
	if err != nil {
		log.Debug(log.ExecMonitoring, "allocation failed", "bytes", len(code), "err", err)
		return 0, err
	}
	region.OnTransition = e.Observer
	defer func() {
		if rerr := region.Release(); rerr != nil {
			log.Warn(log.ExecMonitoring, "release region", "err", rerr)
		}
	}()

	if err := region.Write(code); err != nil {
		return 0, err
	}
	if err := region.Seal(); err != nil {
		return 0, fmt.Errorf("seal region: %w", err)
	}
	if err := region.MakeExecutable(); err != nil {
		return 0, fmt.Errorf("make region executable: %w", err)
	}
	entry, err := region.entry()
	if err != nil {
		return 0, err
	}

	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	result = invoke(entry)
	log.Debug(log.ExecMonitoring, "executed", "bytes", len(code), "region", region.Len(), "result", result)
	return result, nil
}
