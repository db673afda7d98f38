package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/LdDl/hands-go/config"
	"github.com/LdDl/hands-go/hands"
	"github.com/LdDl/hands-go/replay"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRunReplay(t *testing.T) {
	session, err := replay.LoadSession("../../replay/testdata/session.yaml")
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, runReplay(&out, session, config.Default(), zap.NewNop()))
	text := out.String()

	assert.Equal(t, 2, strings.Count(text, "source detected left"))
	assert.Equal(t, 1, strings.Count(text, "source detected right"))
	// Lost on tick 2, then Disable at the end for both hands
	assert.Equal(t, 2, strings.Count(text, "source lost left"))
	assert.Equal(t, 1, strings.Count(text, "source lost right"))
	assert.Contains(t, text, "tick 1: left=tracked joints=26")
	assert.Contains(t, text, "tick 2: left=absent right=absent")
}

func TestRunReplayPlatformUnavailable(t *testing.T) {
	session := &replay.Session{Subsystems: []hands.Subsystem{{ID: hands.MeshSubsystemID, Running: true}}}
	var out bytes.Buffer
	assert.Error(t, runReplay(&out, session, config.Default(), zap.NewNop()))
	assert.Empty(t, out.String())
}

func TestPrintJoints(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, printJoints(&out))
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	assert.Len(t, lines, hands.DeviceJointCount+1)
	assert.Contains(t, lines[1], "DevicePalm")
}
