// Package plugin provides building blocks for capture plugins: Base with
// no-op hook implementations to embed, and Funcs for assembling a plugin from
// plain functions without declaring a type.
package plugin

import (
	"context"

	"github.com/hupe1980/capturemesh/core"
)

// Base implements core.Plugin with no-op hooks. Embed it and override only
// the hooks the plugin cares about.
type Base struct {
	// PluginName identifies the plugin in failure reports.
	PluginName string
}

var _ core.Plugin = (*Base)(nil)

// Name returns the configured plugin name, or "plugin" when unset.
func (b Base) Name() string {
	if b.PluginName == "" {
		return "plugin"
	}
	return b.PluginName
}

// OnBeforeAll is a no-op.
func (Base) OnBeforeAll(context.Context) error { return nil }

// OnBeforeTest is a no-op.
func (Base) OnBeforeTest(context.Context, *core.TestSummary) error { return nil }

// OnBeforeResetDevice is a no-op.
func (Base) OnBeforeResetDevice(context.Context) error { return nil }

// OnResetDevice is a no-op.
func (Base) OnResetDevice(context.Context) error { return nil }

// OnRelaunchApp is a no-op.
func (Base) OnRelaunchApp(context.Context, core.RunContext) error { return nil }

// OnAfterTest is a no-op.
func (Base) OnAfterTest(context.Context, *core.TestSummary) error { return nil }

// OnAfterAll is a no-op.
func (Base) OnAfterAll(context.Context) error { return nil }

// OnTerminate is a no-op.
func (Base) OnTerminate(context.Context) error { return nil }

// Funcs adapts plain functions into a core.Plugin. Nil fields behave as
// no-ops. Useful for tests, examples and one-off instrumentation where a
// dedicated type would be ceremony.
type Funcs struct {
	PluginName string

	BeforeAll         func(ctx context.Context) error
	BeforeTest        func(ctx context.Context, test *core.TestSummary) error
	BeforeResetDevice func(ctx context.Context) error
	ResetDevice       func(ctx context.Context) error
	RelaunchApp       func(ctx context.Context, run core.RunContext) error
	AfterTest         func(ctx context.Context, test *core.TestSummary) error
	AfterAll          func(ctx context.Context) error
	Terminate         func(ctx context.Context) error
}

var _ core.Plugin = (*Funcs)(nil)

// Name returns the configured plugin name, or "plugin" when unset.
func (f *Funcs) Name() string {
	if f.PluginName == "" {
		return "plugin"
	}
	return f.PluginName
}

// OnBeforeAll calls BeforeAll when set.
func (f *Funcs) OnBeforeAll(ctx context.Context) error {
	if f.BeforeAll != nil {
		return f.BeforeAll(ctx)
	}
	return nil
}

// OnBeforeTest calls BeforeTest when set.
func (f *Funcs) OnBeforeTest(ctx context.Context, test *core.TestSummary) error {
	if f.BeforeTest != nil {
		return f.BeforeTest(ctx, test)
	}
	return nil
}

// OnBeforeResetDevice calls BeforeResetDevice when set.
func (f *Funcs) OnBeforeResetDevice(ctx context.Context) error {
	if f.BeforeResetDevice != nil {
		return f.BeforeResetDevice(ctx)
	}
	return nil
}

// OnResetDevice calls ResetDevice when set.
func (f *Funcs) OnResetDevice(ctx context.Context) error {
	if f.ResetDevice != nil {
		return f.ResetDevice(ctx)
	}
	return nil
}

// OnRelaunchApp calls RelaunchApp when set.
func (f *Funcs) OnRelaunchApp(ctx context.Context, run core.RunContext) error {
	if f.RelaunchApp != nil {
		return f.RelaunchApp(ctx, run)
	}
	return nil
}

// OnAfterTest calls AfterTest when set.
func (f *Funcs) OnAfterTest(ctx context.Context, test *core.TestSummary) error {
	if f.AfterTest != nil {
		return f.AfterTest(ctx, test)
	}
	return nil
}

// OnAfterAll calls AfterAll when set.
func (f *Funcs) OnAfterAll(ctx context.Context) error {
	if f.AfterAll != nil {
		return f.AfterAll(ctx)
	}
	return nil
}

// OnTerminate calls Terminate when set.
func (f *Funcs) OnTerminate(ctx context.Context) error {
	if f.Terminate != nil {
		return f.Terminate(ctx)
	}
	return nil
}
