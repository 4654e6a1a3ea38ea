package cmd

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMonthWindows(t *testing.T) {
	start := time.Date(2019, 11, 15, 0, 0, 0, 0, time.UTC)
	end := time.Date(2020, 1, 10, 0, 0, 0, 0, time.UTC)

	ws := monthWindows(start, end)
	require.Len(t, ws, 3)
	require.Equal(t, start, ws[0][0])
	require.Equal(t, time.Date(2019, 12, 1, 0, 0, 0, 0, time.UTC), ws[0][1])
	require.Equal(t, ws[0][1], ws[1][0])
	require.Equal(t, time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), ws[1][1])
	require.Equal(t, end, ws[2][1])
}

func TestMonthWindowsSingleChunk(t *testing.T) {
	start := time.Date(2019, 11, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2019, 11, 8, 0, 0, 0, 0, time.UTC)

	ws := monthWindows(start, end)
	require.Len(t, ws, 1)
	require.Equal(t, [2]time.Time{start, end}, ws[0])
}

func TestMonthWindowsEmpty(t *testing.T) {
	at := time.Date(2019, 11, 1, 0, 0, 0, 0, time.UTC)
	require.Empty(t, monthWindows(at, at))
}
