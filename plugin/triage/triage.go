// Package triage implements a capture plugin that records per-test outcomes
// and, when the run ends, writes a triage summary artifact next to the other
// captured artifacts. Summary generation is deferred to an idle task so it
// never blocks the test runner.
package triage

import (
	"bytes"
	"context"
	"fmt"
	"sync"

	"github.com/viant/afs"
	"github.com/viant/afs/file"

	"github.com/hupe1980/capturemesh/core"
	"github.com/hupe1980/capturemesh/plugin"
	"github.com/hupe1980/capturemesh/report"
)

// Options configures the triage plugin.
type Options struct {
	// Generator produces the summary text. Defaults to report.NewTextGenerator().
	Generator report.Generator

	// ArtifactName is the file name of the written summary.
	ArtifactName string

	// FS is the file abstraction used to write the summary.
	FS afs.Service
}

// Plugin collects test results during the run and writes the summary on
// after-all via an idle callback.
type Plugin struct {
	plugin.Base

	api  core.ControlAPI
	opts Options

	mu      sync.Mutex
	current *report.TestResult
	results []report.TestResult
}

// NewFactory returns a factory registering the triage plugin with a manager.
func NewFactory(optFns ...func(o *Options)) core.PluginFactory {
	opts := Options{
		Generator:    report.NewTextGenerator(),
		ArtifactName: "triage.md",
		FS:           afs.New(),
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	// the summary is a suite-scoped artifact, written regardless of mode
	return func(api core.ControlAPI, _ core.CaptureMode) core.Plugin {
		return &Plugin{
			Base: plugin.Base{PluginName: "triage"},
			api:  api,
			opts: opts,
		}
	}
}

// OnBeforeTest starts tracking the test.
func (p *Plugin) OnBeforeTest(_ context.Context, test *core.TestSummary) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if test == nil {
		p.current = nil
		return nil
	}
	p.current = &report.TestResult{
		Title:    test.Title,
		FullName: test.FullName,
		Status:   test.Status,
	}
	return nil
}

// OnAfterTest records the final status of the tracked test.
func (p *Plugin) OnAfterTest(_ context.Context, test *core.TestSummary) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.current == nil {
		return nil
	}
	if test != nil {
		p.current.Status = test.Status
	}
	p.results = append(p.results, *p.current)
	p.current = nil
	return nil
}

// OnAfterAll schedules the summary generation as an idle task.
func (p *Plugin) OnAfterAll(context.Context) error {
	p.api.RequestIdleCallback(core.IdleTask{
		Caller: "triage",
		Run:    p.writeSummary,
	})
	return nil
}

func (p *Plugin) writeSummary(ctx context.Context) error {
	r := p.buildReport()

	summary, err := p.opts.Generator.Generate(ctx, r)
	if err != nil {
		return fmt.Errorf("failed to generate triage summary: %w", err)
	}

	dest, err := p.api.PreparePathForArtifact(ctx, p.opts.ArtifactName, nil)
	if err != nil {
		return fmt.Errorf("failed to prepare triage path: %w", err)
	}
	if err := p.opts.FS.Upload(ctx, dest, file.DefaultFileOsMode, bytes.NewReader([]byte(summary))); err != nil {
		return fmt.Errorf("failed to write triage summary to %s: %w", dest, err)
	}
	return nil
}

func (p *Plugin) buildReport() report.RunReport {
	p.mu.Lock()
	results := make([]report.TestResult, len(p.results))
	copy(results, p.results)
	p.mu.Unlock()

	r := report.RunReport{Results: results}
	if deviceID, err := p.api.DeviceID(); err == nil {
		r.DeviceID = deviceID
	}
	if bundleID, err := p.api.BundleID(); err == nil {
		r.BundleID = bundleID
	}
	return r
}

// Results returns a copy of the recorded results so far.
func (p *Plugin) Results() []report.TestResult {
	p.mu.Lock()
	defer p.mu.Unlock()
	results := make([]report.TestResult, len(p.results))
	copy(results, p.results)
	return results
}
