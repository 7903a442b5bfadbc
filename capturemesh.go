// Package capturemesh provides a high-level façade over the manager
// orchestration core for capturing artifacts (recordings, screenshots, logs)
// during automated device test runs. Most applications interact with this
// package by:
//  1. Creating a CaptureMesh via New() with the plugin factories they support
//  2. Attaching it to the device event source and forwarding test-runner
//     lifecycle notifications (BeforeAll, BeforeTest, AfterTest, AfterAll)
//  3. Calling Terminate() once when the run ends
//
// The façade filters the supplied factories through the capture configuration
// so only enabled plugins are instantiated, then delegates every lifecycle
// event to manager.Manager. All defaults are safe for local development;
// production runs typically supply a structured logger and an explicit
// artifacts root.
package capturemesh

import (
	"context"

	"github.com/viant/afs"

	"github.com/hupe1980/capturemesh/config"
	"github.com/hupe1980/capturemesh/core"
	"github.com/hupe1980/capturemesh/logging"
	"github.com/hupe1980/capturemesh/manager"
	"github.com/hupe1980/capturemesh/naming"
)

// Options configures the CaptureMesh instance.
type Options struct {
	// Config decides which plugin factories are instantiated and where the
	// artifacts root lives. Defaults to config.Default() (no plugins enabled).
	Config config.Config

	// PathStrategy overrides the artifact path layout. When nil, a naming
	// strategy rooted at Config.RootDir is used.
	PathStrategy core.PathStrategy

	// FS is the file system abstraction for directory creation. Defaults to
	// afs.New().
	FS afs.Service

	// Logger (defaults to NoOp logger if nil)
	Logger logging.Logger

	// RunID tags this run's logs. Defaults to a fresh id.
	RunID string
}

// CaptureMesh is the high-level façade aggregating the manager and the
// capture configuration.
type CaptureMesh struct {
	opts    Options
	manager *manager.Manager
}

// New creates a CaptureMesh from the supported plugin factories, keeping only
// the factories the configuration enables.
func New(factories map[string]core.PluginFactory, optFns ...func(o *Options)) *CaptureMesh {
	opts := Options{
		Config: config.Default(),
		FS:     afs.New(),
		Logger: logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	enabled := make(map[string]core.PluginFactory, len(factories))
	modes := make(map[string]core.CaptureMode, len(factories))
	for name, factory := range factories {
		if opts.Config.PluginEnabled(name) {
			enabled[name] = factory
			modes[name] = core.CaptureMode(opts.Config.PluginMode(name))
		}
	}

	strategy := opts.PathStrategy
	if strategy == nil {
		strategy = naming.New(opts.Config.RootDir)
	}

	m := manager.New(enabled, func(o *manager.Options) {
		o.PathStrategy = strategy
		o.FS = opts.FS
		o.Logger = opts.Logger
		o.Modes = modes
		if opts.RunID != "" {
			o.RunID = opts.RunID
		}
	})

	return &CaptureMesh{opts: opts, manager: m}
}

// Manager exposes the underlying orchestration core, including its ControlAPI
// surface.
func (c *CaptureMesh) Manager() *manager.Manager { return c.manager }

// RunID returns the identifier tagging this run's logs.
func (c *CaptureMesh) RunID() string { return c.manager.RunID() }

// Attach subscribes the capture pipeline to the device event emitter.
func (c *CaptureMesh) Attach(src core.EventSource) { c.manager.Attach(src) }

// BeforeAll notifies plugins that the suite is starting.
func (c *CaptureMesh) BeforeAll(ctx context.Context) error {
	return c.manager.OnBeforeAll(ctx)
}

// BeforeTest notifies plugins that a test is starting.
func (c *CaptureMesh) BeforeTest(ctx context.Context, test *core.TestSummary) error {
	return c.manager.OnBeforeTest(ctx, test)
}

// AfterTest notifies plugins that a test finished with its final status.
func (c *CaptureMesh) AfterTest(ctx context.Context, test *core.TestSummary) error {
	return c.manager.OnAfterTest(ctx, test)
}

// AfterAll notifies plugins that the suite finished and waits for all
// deferred capture work to flush.
func (c *CaptureMesh) AfterAll(ctx context.Context) error {
	return c.manager.OnAfterAll(ctx)
}

// LaunchApp binds the run context; on relaunch it also fans the new context
// out to plugins.
func (c *CaptureMesh) LaunchApp(ctx context.Context, payload core.DevicePayload) error {
	return c.manager.OnLaunchApp(ctx, payload)
}

// Terminate tears the capture pipeline down: late idle work drains as a
// batch, plugins stop and still-tracked artifacts are discarded. Idempotent.
func (c *CaptureMesh) Terminate(ctx context.Context) error {
	return c.manager.OnTerminate(ctx)
}
