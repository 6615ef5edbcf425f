package util

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

var (
	testHeaders = []string{"Key", "Name", "Count"}
	testValues  = [][]string{{"a", "cat", "1"}, {"b", "dog", "2"}}
)

func TestRenderPlain(t *testing.T) {
	var buf bytes.Buffer
	Render(&buf, OutputStylePlain, testHeaders, testValues)
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	require.True(t, strings.HasPrefix(lines[0], "a "))
	require.True(t, strings.HasSuffix(lines[0], "Name: cat, Count: 1"))
}

func TestRenderJson(t *testing.T) {
	var buf bytes.Buffer
	Render(&buf, OutputStyleJson, testHeaders, testValues)
	require.Equal(t, `[{"Count":"1","Key":"a","Name":"cat"},{"Count":"2","Key":"b","Name":"dog"}]`+"\n", buf.String())
}

func TestRenderYaml(t *testing.T) {
	var buf bytes.Buffer
	Render(&buf, OutputStyleYaml, testHeaders, testValues[:1])
	require.Equal(t, "- Count: \"1\"\n  Key: a\n  Name: cat\n", buf.String())
}

func TestRenderTable(t *testing.T) {
	var buf bytes.Buffer
	Render(&buf, OutputStyleTable, testHeaders, testValues)
	out := buf.String()
	require.Contains(t, out, "Name")
	require.Contains(t, out, "dog")
}

func TestRenderEmpty(t *testing.T) {
	for _, style := range []string{OutputStylePlain, OutputStyleTable, OutputStyleJson, OutputStyleYaml} {
		var buf bytes.Buffer
		Render(&buf, style, testHeaders, nil)
		require.Empty(t, buf.String(), style)
	}
}

func TestIsOutputStyle(t *testing.T) {
	require.True(t, IsOutputStyle(OutputStyleYaml))
	require.False(t, IsOutputStyle("xml"))
	require.False(t, IsOutputStyle(""))
}
