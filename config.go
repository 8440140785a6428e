package qedarray

import (
	"strings"

	"github.com/npillmayer/qedarray/schedule"
	"github.com/npillmayer/schuko"
)

// Configuration keys read by OptionsFromConfig.
const (
	ConfigMode        = "qedarray.mode"         // "direct" or "cooperative"
	ConfigValues      = "qedarray.values"       // store element values, default true
	ConfigDrainBudget = "qedarray.drain.budget" // steps per Pump, default unbounded
)

type options struct {
	cooperative bool
	sched       *schedule.Scheduler
	store       bool
	initial     []int
	budget      int
}

// Option configures an array at creation time.
type Option func(*options)

// WithCooperative lets the array execute inserts step by step on sched.
// If sched is nil, the array creates a scheduler of its own.
//
// Sharing a scheduler between arrays is possible, but only one of them may
// have an insert in flight at a time.
func WithCooperative(sched *schedule.Scheduler) Option {
	return func(o *options) {
		o.cooperative = true
		o.sched = sched
	}
}

// WithoutValues creates a side-effect-only array, which does not store
// element values.
func WithoutValues() Option {
	return func(o *options) {
		o.store = false
	}
}

// WithInitialExtents lets New insert a block of the given extents at the origin.
func WithInitialExtents(extents ...int) Option {
	return func(o *options) {
		o.initial = clone(extents)
	}
}

// WithDrainBudget caps the number of steps Array.Pump executes per call.
func WithDrainBudget(steps int) Option {
	return func(o *options) {
		o.budget = steps
	}
}

// OptionsFromConfig derives array options from an application configuration.
// Unset keys leave the defaults untouched.
func OptionsFromConfig(conf schuko.Configuration) []Option {
	var opts []Option
	if conf == nil {
		return opts
	}
	switch mode := strings.ToLower(conf.GetString(ConfigMode)); mode {
	case "cooperative":
		opts = append(opts, WithCooperative(nil))
	case "", "direct":
	default:
		tracer().P("config", ConfigMode).Errorf("unknown mode %q, using direct mode", mode)
	}
	if conf.IsSet(ConfigValues) && !conf.GetBool(ConfigValues) {
		opts = append(opts, WithoutValues())
	}
	if conf.IsSet(ConfigDrainBudget) {
		opts = append(opts, WithDrainBudget(conf.GetInt(ConfigDrainBudget)))
	}
	return opts
}
