package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunKeepsLineOrder(t *testing.T) {
	t.Parallel()

	var in strings.Builder
	for i := 0; i < batchSize*2+3; i++ {
		fmt.Fprintf(&in, "Line %d\n", i)
	}

	var out bytes.Buffer
	err := run(context.Background(), strings.NewReader(in.String()), &out, perLine(strings.ToLower))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	require.Len(t, lines, batchSize*2+3)
	assert.Equal(t, "line 0", lines[0])
	assert.Equal(t, fmt.Sprintf("line %d", batchSize*2+2), lines[len(lines)-1])
}

func TestRunEmptyInput(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	require.NoError(t, run(context.Background(), strings.NewReader(""), &out, perLine(strings.ToUpper)))
	assert.Empty(t, out.String())
}

func TestRunStopsOnError(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	var out bytes.Buffer
	err := run(context.Background(), strings.NewReader("a\nb\n"), &out, func(context.Context, []string) ([]string, error) {
		return nil, boom
	})
	assert.ErrorIs(t, err, boom)
}

func TestPerLineCanceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := perLine(strings.ToUpper)(ctx, []string{"a"})
	assert.ErrorIs(t, err, context.Canceled)
}
