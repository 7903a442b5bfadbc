package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCaptureMode_ShouldKeep(t *testing.T) {
	assert.True(t, CaptureModeAll.ShouldKeep(TestStatusPassed))
	assert.True(t, CaptureModeAll.ShouldKeep(TestStatusFailed))

	assert.False(t, CaptureModeFailing.ShouldKeep(TestStatusPassed))
	assert.True(t, CaptureModeFailing.ShouldKeep(TestStatusFailed))

	assert.False(t, CaptureModeNone.ShouldKeep(TestStatusFailed))
	assert.False(t, CaptureMode("").ShouldKeep(TestStatusFailed))
}
