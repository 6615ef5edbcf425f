package util

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/ghodss/yaml"
	"github.com/olekukonko/tablewriter"
)

// output style
const (
	OutputStylePlain = "plain"
	OutputStyleTable = "table"
	OutputStyleJson  = "json"
	OutputStyleYaml  = "yaml"
)

// IsOutputStyle reports whether style is one of the supported output styles.
func IsOutputStyle(style string) bool {
	switch style {
	case OutputStylePlain, OutputStyleTable, OutputStyleJson, OutputStyleYaml:
		return true
	}
	return false
}

// Render writes headers and values in the given style. Plain output puts the
// first column first and the remaining columns as "header: value" pairs.
func Render(w io.Writer, style string, headers []string, values [][]string) {
	switch style {
	case OutputStyleTable:
		RenderTable(w, headers, values)
	case OutputStyleJson:
		RenderJson(w, headers, values)
	case OutputStyleYaml:
		RenderYaml(w, headers, values)
	default:
		RenderString(w, "%-20s %s\n", headers, values)
	}
}

// RenderString renders headers and values according to the format provided
func RenderString(w io.Writer, format string, headers []string, values [][]string) {
	if len(values) == 0 {
		return
	}

	buf := new(bytes.Buffer)
	for _, value := range values {
		args := make([]string, len(headers)-1)
		for i, header := range headers[1:] {
			args[i] = header + ": " + value[i+1]
		}
		buf.WriteString(fmt.Sprintf(format, value[0], strings.Join(args, ", ")))
	}
	fmt.Fprint(w, buf.String())
}

// RenderTable will use given headers and values to render a table style output
func RenderTable(w io.Writer, headers []string, values [][]string) {
	if len(values) == 0 {
		return
	}
	tb := tablewriter.NewWriter(w)
	tb.SetHeader(headers)
	tb.SetAutoFormatHeaders(false)
	tb.AppendBulk(values)
	tb.Render()
}

func rows(headers []string, values [][]string) []map[string]string {
	data := make([]map[string]string, 0, len(values))
	for _, value := range values {
		line := make(map[string]string, len(headers))
		for i, header := range headers {
			line[header] = value[i]
		}
		data = append(data, line)
	}
	return data
}

// RenderJson will combine the headers and values and print a json string
func RenderJson(w io.Writer, headers []string, values [][]string) {
	if len(values) == 0 {
		return
	}
	outStr, err := json.Marshal(rows(headers, values))
	if err != nil {
		fmt.Fprintln(w, err)
		return
	}
	fmt.Fprintln(w, string(outStr))
}

// RenderYaml prints the rows as a yaml sequence of mappings.
func RenderYaml(w io.Writer, headers []string, values [][]string) {
	if len(values) == 0 {
		return
	}
	out, err := yaml.Marshal(rows(headers, values))
	if err != nil {
		fmt.Fprintln(w, err)
		return
	}
	fmt.Fprint(w, string(out))
}

// IntToString formats int value to string
func IntToString(i interface{}) string {
	return fmt.Sprintf("%d", i)
}

// FloatToOneString formats float into string with one digit after dot
func FloatToOneString(f interface{}) string {
	return fmt.Sprintf("%.1f", f)
}
