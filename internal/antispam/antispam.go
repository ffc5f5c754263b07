// Package antispam throttles how fast a single connection may send
// commands.
package antispam

import (
	"fmt"
	"sync"
	"time"
)

// Config holds flood protection settings for one connection.
type Config struct {
	Enabled     bool          `yaml:"enabled"`
	MaxCommands int           `yaml:"max_commands"` // Commands allowed per window
	Window      time.Duration `yaml:"window"`
}

// DefaultConfig allows bursts well beyond what a person types.
func DefaultConfig() Config {
	return Config{
		Enabled:     true,
		MaxCommands: 20,
		Window:      5 * time.Second,
	}
}

// Validate checks an enabled config for usable limits.
func (c Config) Validate() error {
	if !c.Enabled {
		return nil
	}
	if c.MaxCommands <= 0 {
		return fmt.Errorf("flood max_commands must be positive, got %d", c.MaxCommands)
	}
	if c.Window <= 0 {
		return fmt.Errorf("flood window must be positive, got %s", c.Window)
	}
	return nil
}

// Tracker counts commands from one connection in a sliding window.
type Tracker struct {
	mu     sync.Mutex
	config Config
	times  []time.Time
	now    func() time.Time
}

// NewTracker creates a tracker with the given config
func NewTracker(config Config) *Tracker {
	return &Tracker{
		config: config,
		now:    time.Now,
	}
}

// CheckResult contains the result of a flood check
type CheckResult struct {
	Allowed bool
	Reason  string
	Wait    time.Duration // Until the next command is accepted
}

// Check records a command and reports whether it may run.
// Rejected commands are not counted against the window.
func (t *Tracker) Check() CheckResult {
	if !t.config.Enabled {
		return CheckResult{Allowed: true}
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	t.cleanup(now)

	if len(t.times) >= t.config.MaxCommands {
		return CheckResult{
			Reason: "You're sending commands too quickly. Please slow down.",
			Wait:   t.times[0].Add(t.config.Window).Sub(now),
		}
	}

	t.times = append(t.times, now)
	return CheckResult{Allowed: true}
}

// cleanup drops commands older than the window
func (t *Tracker) cleanup(now time.Time) {
	cutoff := now.Add(-t.config.Window)
	kept := t.times[:0]
	for _, at := range t.times {
		if at.After(cutoff) {
			kept = append(kept, at)
		}
	}
	t.times = kept
}

// Reset clears all tracking data
func (t *Tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.times = nil
}
