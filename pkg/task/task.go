// Package task defines the capability interface a simulation task
// exposes to the host orchestrator and implements the simple car
// dashboard task.
package task

import (
	"fmt"
	"sort"
	"sync"

	"github.com/simdash/simcar/pkg/scene"
	"github.com/simdash/simcar/pkg/sim"
)

// Task is the contract between a task and the host: residuals for the
// planner, a per-step transition, and a per-frame overlay pass.
type Task interface {
	Name() string
	ComputeResidual(s *sim.State) [4]float64
	Step(s *sim.State)
	RenderOverlay(s *sim.State, buf *scene.Buffer)
}

// Factory creates a fresh task instance.
type Factory func() Task

var (
	registryMu sync.RWMutex
	registry   = map[string]Factory{}
)

// Register adds a task factory under its name. Registering the same
// name twice panics; it is a wiring bug.
func Register(name string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, dup := registry[name]; dup {
		panic(fmt.Sprintf("task: duplicate registration for %q", name))
	}
	registry[name] = factory
}

// Lookup returns the factory registered under name.
func Lookup(name string) (Factory, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	f, ok := registry[name]
	return f, ok
}

// Names lists the registered task names, sorted.
func Names() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
