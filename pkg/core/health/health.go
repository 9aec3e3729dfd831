// ============================================================================
// Spell Gym - Audio spelling drill
// ============================================================================
//
// Package:     health
// Description: Preflight checks for speech and word list prerequisites
// Author:      Mike Stoffels
// Created:     2025-12-06
// License:     MIT
// ============================================================================

package health

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"sync"
	"time"
)

// Status represents the outcome of a check
type Status string

const (
	StatusHealthy   Status = "healthy"
	StatusUnhealthy Status = "unhealthy"
	StatusDegraded  Status = "degraded"
	StatusUnknown   Status = "unknown"
)

// CheckResult represents the result of a check
type CheckResult struct {
	Name     string
	Status   Status
	Message  string
	Duration time.Duration
}

// Checker is an interface for checks
type Checker interface {
	Name() string
	Check(ctx context.Context) CheckResult
}

type namedCheck struct {
	name string
	fn   func(ctx context.Context) CheckResult
}

// NewChecker creates a named checker from a function
func NewChecker(name string, fn func(ctx context.Context) CheckResult) Checker {
	return &namedCheck{name: name, fn: fn}
}

func (c *namedCheck) Name() string                          { return c.name }
func (c *namedCheck) Check(ctx context.Context) CheckResult { return c.fn(ctx) }

// Registry runs checks and keeps their registration order
type Registry struct {
	mu       sync.RWMutex
	checkers []Checker
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds a checker; a checker with the same name is replaced
func (r *Registry) Register(checker Checker) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, c := range r.checkers {
		if c.Name() == checker.Name() {
			r.checkers[i] = checker
			return
		}
	}
	r.checkers = append(r.checkers, checker)
}

// RegisterFunc adds a check function to the registry
func (r *Registry) RegisterFunc(name string, fn func(ctx context.Context) CheckResult) {
	r.Register(NewChecker(name, fn))
}

// Check runs all checks concurrently. Results are reported in registration
// order; the overall status is the worst individual status.
func (r *Registry) Check(ctx context.Context) *Report {
	r.mu.RLock()
	checkers := append([]Checker(nil), r.checkers...)
	r.mu.RUnlock()

	report := &Report{
		Status: StatusHealthy,
		Checks: make([]CheckResult, len(checkers)),
	}

	var wg sync.WaitGroup
	for i, checker := range checkers {
		wg.Add(1)
		go func(i int, c Checker) {
			defer wg.Done()
			start := time.Now()
			result := c.Check(ctx)
			result.Duration = time.Since(start)
			if result.Name == "" {
				result.Name = c.Name()
			}
			if result.Status == "" {
				result.Status = StatusUnknown
			}
			report.Checks[i] = result
		}(i, checker)
	}
	wg.Wait()

	for _, result := range report.Checks {
		switch result.Status {
		case StatusUnhealthy:
			report.Status = StatusUnhealthy
		case StatusDegraded, StatusUnknown:
			if report.Status != StatusUnhealthy {
				report.Status = StatusDegraded
			}
		}
	}
	return report
}

// CheckWithTimeout runs all checks with a timeout
func (r *Registry) CheckWithTimeout(timeout time.Duration) *Report {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return r.Check(ctx)
}

// Report is the combined result of all checks
type Report struct {
	Status Status
	Checks []CheckResult
}

// String returns a string representation of the report
func (r *Report) String() string {
	return fmt.Sprintf("Status: %s, Checks: %d", r.Status, len(r.Checks))
}

// Common checks

// BinaryCheck reports whether binary can be found. missing is the status
// used when it cannot.
func BinaryCheck(name, binary string, missing Status) Checker {
	return NewChecker(name, func(ctx context.Context) CheckResult {
		path, err := exec.LookPath(binary)
		if err != nil {
			return CheckResult{Name: name, Status: missing, Message: fmt.Sprintf("%s not found in PATH", binary)}
		}
		return CheckResult{Name: name, Status: StatusHealthy, Message: path}
	})
}

// DirCheck reports whether dir exists and is a directory
func DirCheck(name, dir string, missing Status) Checker {
	return NewChecker(name, func(ctx context.Context) CheckResult {
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			return CheckResult{Name: name, Status: missing, Message: fmt.Sprintf("directory %s not found", dir)}
		}
		return CheckResult{Name: name, Status: StatusHealthy, Message: dir}
	})
}
