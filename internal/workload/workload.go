// Package workload replays scripted push/reserve sequences against an
// Array and checks the resulting length and capacity.
package workload

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/pavanmanishd/dynarray"
)

// Operations understood by Run.
const (
	OpPush    = "push"
	OpReserve = "reserve"
	OpCheck   = "check"
)

// Workload is a named list of steps.
type Workload struct {
	Name  string `yaml:"name"`
	Steps []Step `yaml:"steps"`
}

// Step is one operation. Push uses Count and Value, reserve uses Capacity,
// check compares against Len and Cap.
type Step struct {
	Op       string `yaml:"op"`
	Count    int    `yaml:"count,omitempty"`
	Value    int    `yaml:"value,omitempty"`
	Capacity int    `yaml:"capacity,omitempty"`
	Len      *int   `yaml:"len,omitempty"`
	Cap      *int   `yaml:"cap,omitempty"`
}

func (s Step) String() string {
	switch s.Op {
	case OpPush:
		return fmt.Sprintf("push %d from %d", s.Count, s.Value)
	case OpReserve:
		return fmt.Sprintf("reserve %d", s.Capacity)
	default:
		return s.Op
	}
}

// Result is the array state after a step.
type Result struct {
	Len int
	Cap int
}

// Load reads and validates a YAML workload file.
func Load(path string) (*Workload, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	w, err := Parse(data)
	if err != nil {
		return nil, errors.Wrap(err, path)
	}
	return w, nil
}

// Parse decodes and validates a YAML workload.
func Parse(data []byte) (*Workload, error) {
	w := &Workload{}
	if err := yaml.Unmarshal(data, w); err != nil {
		return nil, err
	}
	if err := w.Validate(); err != nil {
		return nil, err
	}
	return w, nil
}

// Validate rejects unknown operations and negative arguments.
func (w *Workload) Validate() error {
	for i, s := range w.Steps {
		switch s.Op {
		case OpPush:
			if s.Count < 0 {
				return errors.Errorf("step %d: negative push count %d", i, s.Count)
			}
		case OpReserve:
			if s.Capacity < 0 {
				return errors.Errorf("step %d: negative capacity %d", i, s.Capacity)
			}
		case OpCheck:
			if s.Len == nil && s.Cap == nil {
				return errors.Errorf("step %d: check needs len or cap", i)
			}
		default:
			return errors.Errorf("step %d: unknown op %q", i, s.Op)
		}
	}
	return nil
}

// Run executes w against a, calling obs (if non-nil) after every step.
// It stops at the first failed check.
func Run(w *Workload, a *dynarray.Array[int], obs func(Step, Result)) ([]Result, error) {
	results := make([]Result, 0, len(w.Steps))
	for i, s := range w.Steps {
		switch s.Op {
		case OpPush:
			for j := 0; j < s.Count; j++ {
				a.Push(s.Value + j)
			}
		case OpReserve:
			a.Reserve(s.Capacity)
		case OpCheck:
			if s.Len != nil && a.Len() != *s.Len {
				return results, errors.Errorf("step %d: len = %d, want %d", i, a.Len(), *s.Len)
			}
			if s.Cap != nil && a.Cap() != *s.Cap {
				return results, errors.Errorf("step %d: cap = %d, want %d", i, a.Cap(), *s.Cap)
			}
		default:
			return results, errors.Errorf("step %d: unknown op %q", i, s.Op)
		}
		r := Result{Len: a.Len(), Cap: a.Cap()}
		results = append(results, r)
		if obs != nil {
			obs(s, r)
		}
	}
	return results, nil
}

// Scenario returns the reference growth scenario: 230 pushes, a no-op
// reserve, an exact reserve, and 230 more pushes.
func Scenario() *Workload {
	n := func(v int) *int { return &v }
	return &Workload{
		Name: "growth",
		Steps: []Step{
			{Op: OpCheck, Len: n(0), Cap: n(0)},
			{Op: OpPush, Count: 230},
			{Op: OpCheck, Len: n(230), Cap: n(256)},
			{Op: OpReserve, Capacity: 10},
			{Op: OpCheck, Cap: n(256)},
			{Op: OpReserve, Capacity: 400},
			{Op: OpCheck, Cap: n(400)},
			{Op: OpPush, Count: 230},
			{Op: OpCheck, Len: n(460), Cap: n(800)},
		},
	}
}
