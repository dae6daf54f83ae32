package dispatch

import (
	"encoding/json"
	"fmt"
	"io"
	"sync"
)

// Bridge is the host callback. PerformScript runs a named host script with a
// JSON parameter string.
type Bridge interface {
	PerformScript(script, parameter string) error
}

// BridgeFunc adapts a function to Bridge.
type BridgeFunc func(script, parameter string) error

// PerformScript implements Bridge.
func (f BridgeFunc) PerformScript(script, parameter string) error {
	return f(script, parameter)
}

// Call is one recorded bridge invocation.
type Call struct {
	Script    string `json:"script" yaml:"script"`
	Parameter string `json:"parameter" yaml:"parameter"`
}

// WriterBridge writes each call as a JSON line, for hosts that run the
// editor as a child process and read its stdout.
type WriterBridge struct {
	mu sync.Mutex
	w  io.Writer
}

// NewWriterBridge returns a bridge writing to w.
func NewWriterBridge(w io.Writer) *WriterBridge {
	return &WriterBridge{w: w}
}

// PerformScript implements Bridge.
func (b *WriterBridge) PerformScript(script, parameter string) error {
	line, err := json.Marshal(Call{Script: script, Parameter: parameter})
	if err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, err := fmt.Fprintf(b.w, "%s\n", line); err != nil {
		return fmt.Errorf("dispatch: write call: %w", err)
	}
	return nil
}

// Recorder keeps calls in memory. Tests and previews use it as the host.
type Recorder struct {
	mu    sync.Mutex
	calls []Call
}

// PerformScript implements Bridge.
func (r *Recorder) PerformScript(script, parameter string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, Call{Script: script, Parameter: parameter})
	return nil
}

// Calls returns a copy of the recorded calls.
func (r *Recorder) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Call(nil), r.calls...)
}

// Reset forgets recorded calls.
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.calls = nil
	r.mu.Unlock()
}
