package main

import (
	"bytes"
	"errors"
	"testing"

	"github.com/milk9111/fpsdemo/prefabs"
	"github.com/stretchr/testify/require"
)

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("closed pipe") }

func TestWriteTuning(t *testing.T) {
	want, err := prefabs.PrefabsFS.ReadFile("tuning.yaml")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, writeTuning(&buf))
	require.Equal(t, want, buf.Bytes())
}

func TestWriteTuningReportsWriteFailure(t *testing.T) {
	err := writeTuning(failingWriter{})
	require.ErrorContains(t, err, "closed pipe")
}
