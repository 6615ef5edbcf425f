package measurement

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aerospike-workshop/exercises/pkg/util"
)

func TestMeasure(t *testing.T) {
	m := New()
	m.Measure("put", 2*time.Millisecond)
	m.Measure("put", 4*time.Millisecond)
	m.Measure("get", time.Millisecond)

	require.Equal(t, int64(2), m.Count("put"))
	require.Equal(t, int64(1), m.Count("get"))
	require.Equal(t, int64(0), m.Count("query"))

	headers, lines := m.Summary()
	require.Equal(t, header, headers)
	require.Len(t, lines, 2)
	require.Equal(t, "get", lines[0][0])
	require.Equal(t, "put", lines[1][0])
	require.Equal(t, "2", lines[1][2])
	require.Len(t, lines[1], len(header))
}

func TestOutput(t *testing.T) {
	m := New()
	var buf bytes.Buffer
	m.Output(&buf, util.OutputStyleTable)
	require.Empty(t, buf.String())

	m.Measure("operate", time.Millisecond)
	m.Output(&buf, util.OutputStyleTable)
	require.True(t, strings.Contains(buf.String(), "operate"))
	require.True(t, strings.Contains(buf.String(), "Avg(us)"))
}
