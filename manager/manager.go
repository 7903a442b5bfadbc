package manager

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/hupe1980/capturemesh/core"
	"github.com/hupe1980/capturemesh/idle"
	"github.com/hupe1980/capturemesh/internal/util"
	"github.com/hupe1980/capturemesh/logging"
	"github.com/hupe1980/capturemesh/naming"
	"github.com/hupe1980/capturemesh/tracing"
	"github.com/viant/afs"
)

// Options holds dependency + configuration overrides passed to New().
type Options struct {
	// PathStrategy derives artifact destinations. Defaults to the naming
	// package's strategy rooted at "artifacts".
	PathStrategy core.PathStrategy

	// FS is the file system abstraction used for directory creation.
	// Defaults to afs.New().
	FS afs.Service

	// Logger receives structured failure reports. Defaults to NoOp logger.
	Logger logging.Logger

	// RunID tags every log line of this run. Defaults to a fresh id.
	RunID string

	// Modes maps factory keys to their configured capture mode. Factories
	// without an entry receive CaptureModeAll.
	Modes map[string]core.CaptureMode
}

// Manager coordinates the lifecycle of all registered capture plugins. It is
// the orchestration core: it owns the run context, the tracked-artifact set
// and the idle chain, and it is the ControlAPI implementation handed to every
// plugin factory. Public methods are safe for concurrent use.
type Manager struct {
	plugins  []core.Plugin
	strategy core.PathStrategy
	fs       afs.Service
	logger   logging.Logger
	runID    string

	mu        sync.RWMutex
	run       *core.RunContext // nil until the first launchApp event
	artifacts map[core.Artifact]struct{}

	idle      *idle.Chain
	terminate sync.Once
}

// Compile-time check: the manager is the capability façade plugins receive.
var _ core.ControlAPI = (*Manager)(nil)

// New instantiates every factory exactly once against the manager's
// ControlAPI and returns the ready manager. Factories are invoked in sorted
// key order so plugin registration is deterministic; dispatch order within a
// lifecycle event is concurrent and unspecified either way.
func New(factories map[string]core.PluginFactory, optFns ...func(o *Options)) *Manager {
	opts := Options{
		PathStrategy: naming.New("artifacts"),
		FS:           afs.New(),
		Logger:       logging.NoOpLogger{},
		RunID:        util.NewID(),
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	m := &Manager{
		strategy:  opts.PathStrategy,
		fs:        opts.FS,
		logger:    opts.Logger,
		runID:     opts.RunID,
		artifacts: make(map[core.Artifact]struct{}),
	}

	m.idle = idle.New(func(caller string, err error) {
		if o, ok := m.logger.(idleObserver); ok {
			o.LogIdleTask(caller, err)
			return
		}
		m.logger.Error("idle task failed caller=%s run_id=%s: %v", caller, m.runID, err)
	})

	keys := make([]string, 0, len(factories))
	for k := range factories {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		mode, ok := opts.Modes[k]
		if !ok {
			mode = core.CaptureModeAll
		}
		m.plugins = append(m.plugins, factories[k](m, mode))
	}

	return m
}

// Plugins returns the registered plugin instances. The slice is a snapshot;
// the set itself is fixed for the lifetime of the run.
func (m *Manager) Plugins() []core.Plugin {
	out := make([]core.Plugin, len(m.plugins))
	copy(out, m.plugins)
	return out
}

// RunID returns the identifier tagging this run's logs.
func (m *Manager) RunID() string { return m.runID }

// deviceEvent carries one emitter notification through the dispatch queue.
type deviceEvent struct {
	ctx     context.Context
	event   core.DeviceEvent
	payload core.DevicePayload
}

// Attach subscribes the manager to the external device/test-runner emitter.
// Handlers only enqueue onto a buffered channel drained by a single
// dispatcher goroutine: the emitter is never blocked by plugin work, and
// events reach plugins in exactly the order the emitter raised them.
func (m *Manager) Attach(src core.EventSource) {
	events := make(chan deviceEvent, 64)

	go func() {
		for ev := range events {
			switch ev.event {
			case core.DeviceEventBeforeReset:
				_ = m.OnBeforeResetDevice(ev.ctx)
			case core.DeviceEventReset:
				_ = m.OnResetDevice(ev.ctx)
			case core.DeviceEventLaunchApp:
				_ = m.OnLaunchApp(ev.ctx, ev.payload)
			}
		}
	}()

	enqueue := func(event core.DeviceEvent) func(ctx context.Context, payload core.DevicePayload) {
		return func(ctx context.Context, payload core.DevicePayload) {
			events <- deviceEvent{ctx: ctx, event: event, payload: payload}
		}
	}

	src.On(core.DeviceEventBeforeReset, enqueue(core.DeviceEventBeforeReset))
	src.On(core.DeviceEventReset, enqueue(core.DeviceEventReset))
	src.On(core.DeviceEventLaunchApp, enqueue(core.DeviceEventLaunchApp))
}

// OnBeforeAll dispatches the suite-start hook to every plugin.
func (m *Manager) OnBeforeAll(ctx context.Context) error {
	m.emit(ctx, "onBeforeAll", func(p core.Plugin) error { return p.OnBeforeAll(ctx) })
	return nil
}

// OnBeforeTest dispatches the test-start hook to every plugin.
func (m *Manager) OnBeforeTest(ctx context.Context, test *core.TestSummary) error {
	m.emit(ctx, "onBeforeTest", func(p core.Plugin) error { return p.OnBeforeTest(ctx, test) })
	return nil
}

// OnBeforeResetDevice dispatches the pre-reset hook to every plugin.
func (m *Manager) OnBeforeResetDevice(ctx context.Context) error {
	m.emit(ctx, "onBeforeResetDevice", func(p core.Plugin) error { return p.OnBeforeResetDevice(ctx) })
	return nil
}

// OnResetDevice dispatches the post-reset hook to every plugin.
func (m *Manager) OnResetDevice(ctx context.Context) error {
	m.emit(ctx, "onResetDevice", func(p core.Plugin) error { return p.OnResetDevice(ctx) })
	return nil
}

// OnLaunchApp binds (or rebinds) the run context from the launch payload.
// The first launch only binds; every subsequent launch additionally fans out
// OnRelaunchApp with the new context.
func (m *Manager) OnLaunchApp(ctx context.Context, payload core.DevicePayload) error {
	run := core.RunContext{DeviceID: payload.DeviceID, BundleID: payload.BundleID, PID: payload.PID}

	m.mu.Lock()
	relaunch := m.run != nil
	m.run = &run
	m.mu.Unlock()

	m.logger.Debug("run context bound device_id=%s bundle_id=%s pid=%d run_id=%s", run.DeviceID, run.BundleID, run.PID, m.runID)

	if relaunch {
		m.emit(ctx, "onRelaunchApp", func(p core.Plugin) error { return p.OnRelaunchApp(ctx, run) })
	}
	return nil
}

// OnAfterTest dispatches the test-end hook to every plugin.
func (m *Manager) OnAfterTest(ctx context.Context, test *core.TestSummary) error {
	m.emit(ctx, "onAfterTest", func(p core.Plugin) error { return p.OnAfterTest(ctx, test) })
	return nil
}

// OnAfterAll dispatches the suite-end hook, then waits for the idle chain so
// callers can rely on all deferred plugin work being flushed when this
// returns.
func (m *Manager) OnAfterAll(ctx context.Context) error {
	m.emit(ctx, "onAfterAll", func(p core.Plugin) error { return p.OnAfterAll(ctx) })
	return m.idle.Wait(ctx)
}

// OnTerminate runs the teardown sequence: mark the idle chain terminated so
// late idle work drains as a batch, stop every plugin, then discard every
// still-tracked artifact. Safe to invoke multiple times; the body executes
// only once. The idle chain itself is not drained here — callers are expected
// to have awaited OnAfterAll beforehand.
func (m *Manager) OnTerminate(ctx context.Context) error {
	m.terminate.Do(func() {
		m.idle.MarkTerminated()
		m.emit(ctx, "onTerminate", func(p core.Plugin) error { return p.OnTerminate(ctx) })
		m.discardTracked(ctx)
		m.logger.Info("artifact capture terminated run_id=%s", m.runID)
	})
	return nil
}

// emit fans a lifecycle hook out to every plugin concurrently. Each plugin's
// failure (error or panic) is caught independently, logged with the plugin's
// name and the hook, and swallowed; sibling plugins always run to completion.
func (m *Manager) emit(ctx context.Context, hook string, invoke func(p core.Plugin) error) {
	_, span := tracing.StartSpan(ctx, "lifecycle."+hook)

	var failures int
	var failuresMu sync.Mutex

	var wg sync.WaitGroup
	for _, p := range m.plugins {
		wg.Add(1)
		go func(p core.Plugin) {
			defer wg.Done()
			start := time.Now()
			defer func() {
				if r := recover(); r != nil {
					failuresMu.Lock()
					failures++
					failuresMu.Unlock()
					m.logHook(p.Name(), hook, time.Since(start), fmt.Errorf("panic: %v", r))
				}
			}()
			err := invoke(p)
			if err != nil {
				failuresMu.Lock()
				failures++
				failuresMu.Unlock()
			}
			m.logHook(p.Name(), hook, time.Since(start), err)
		}(p)
	}
	wg.Wait()

	span.SetInt("plugins", len(m.plugins))
	span.SetInt("failures", failures)
	var spanErr error
	if failures > 0 {
		spanErr = fmt.Errorf("%d of %d plugins failed %s", failures, len(m.plugins), hook)
	}
	span.End(spanErr)
}

// hookObserver and idleObserver are the optional richer logging surfaces of
// logging.CaptureMeshLogger; when the configured logger provides them, hook
// and idle-task outcomes are logged structurally instead of as printf lines.
type hookObserver interface {
	LogPluginHook(plugin, hook string, dur time.Duration, err error)
}

type idleObserver interface {
	LogIdleTask(caller string, err error)
}

func (m *Manager) logHook(plugin, hook string, dur time.Duration, err error) {
	if o, ok := m.logger.(hookObserver); ok {
		o.LogPluginHook(plugin, hook, dur, err)
		return
	}
	if err != nil {
		m.logger.Error("plugin hook failed plugin=%s hook=%s run_id=%s: %v", plugin, hook, m.runID, err)
		return
	}
	m.logger.Debug("plugin hook completed plugin=%s hook=%s duration=%s", plugin, hook, dur)
}

// discardTracked detaches the tracked set and discards every member
// concurrently with the same per-item isolation as plugin hooks.
func (m *Manager) discardTracked(ctx context.Context) {
	m.mu.Lock()
	tracked := m.artifacts
	m.artifacts = make(map[core.Artifact]struct{})
	m.mu.Unlock()

	var wg sync.WaitGroup
	for a := range tracked {
		wg.Add(1)
		go func(a core.Artifact) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					m.logger.Error("artifact discard panic run_id=%s: %v", m.runID, r)
				}
			}()
			if err := a.Discard(ctx); err != nil {
				m.logger.Error("artifact discard failed run_id=%s: %v", m.runID, err)
			}
		}(a)
	}
	wg.Wait()
}
