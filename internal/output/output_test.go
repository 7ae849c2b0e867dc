// Copyright (c) 2025 Henoct Shimanga <henoctshimanga@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
)

func TestInterfaceToString(t *testing.T) {
	tests := []struct {
		name     string
		value    interface{}
		emptyVal string
		want     string
	}{
		{name: "string", value: "web-1", want: "web-1"},
		{name: "int", value: 42, want: "42"},
		{name: "float truncated", value: 5432.0, want: "5432"},
		{name: "bool true", value: true, want: "true"},
		{name: "nil with empty value", value: nil, emptyVal: "-", want: "-"},
		{name: "empty string with empty value", value: "", emptyVal: "-", want: "-"},
		{name: "slice marshals", value: []string{"a", "b"}, want: `["a","b"]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got string
			if tt.emptyVal != "" {
				got = InterfaceToString(tt.value, tt.emptyVal)
			} else {
				got = InterfaceToString(tt.value)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

// runWithFlags executes fn inside a throwaway cli.Command so flag values are
// actually parsed rather than faked.
func runWithFlags(t *testing.T, args []string, fn func(cmd *cli.Command) error) {
	t.Helper()
	app := &cli.Command{
		Name: "test",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "output", Value: "text"},
			&cli.BoolFlag{Name: "color"},
			&cli.BoolFlag{Name: "titles"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return fn(cmd)
		},
	}
	require.NoError(t, app.Run(context.Background(), append([]string{"test"}, args...)))
}

func TestSpitJSON(t *testing.T) {
	rows := []Row{{"name": "web_instance_public_ips", "sensitive": "false"}}

	runWithFlags(t, []string{"--output", "json"}, func(cmd *cli.Command) error {
		var buf bytes.Buffer
		err := Spit(rows, []string{"name", "sensitive"}, nil, cmd, &buf)
		require.NoError(t, err)
		assert.JSONEq(t,
			`[{"name":"web_instance_public_ips","sensitive":"false"}]`,
			buf.String())
		return nil
	})
}

func TestSpitRaw(t *testing.T) {
	doc := []byte(`{"anything": "goes"}`)

	runWithFlags(t, []string{"--output", "raw"}, func(cmd *cli.Command) error {
		var buf bytes.Buffer
		err := Spit(nil, nil, doc, cmd, &buf)
		require.NoError(t, err)
		assert.Equal(t, doc, buf.Bytes())
		return nil
	})
}

func TestSpitYAML(t *testing.T) {
	rows := []Row{{"name": "database_endpoint"}}

	runWithFlags(t, []string{"--output", "yaml"}, func(cmd *cli.Command) error {
		var buf bytes.Buffer
		err := Spit(rows, []string{"name"}, nil, cmd, &buf)
		require.NoError(t, err)
		assert.Contains(t, buf.String(), "name: database_endpoint")
		return nil
	})
}

func TestSpitTextIncludesValues(t *testing.T) {
	rows := []Row{
		{"name": "web_instance_public_ips", "type": "list", "sensitive": "false"},
		{"name": "database_endpoint", "type": "string", "sensitive": "true"},
	}

	runWithFlags(t, []string{"--titles"}, func(cmd *cli.Command) error {
		var buf bytes.Buffer
		err := Spit(rows, []string{"name", "type", "sensitive"}, nil, cmd, &buf)
		require.NoError(t, err)
		out := buf.String()
		assert.Contains(t, out, "web_instance_public_ips")
		assert.Contains(t, out, "database_endpoint")
		assert.Contains(t, out, "name")
		return nil
	})
}

func TestSpitTextEmpty(t *testing.T) {
	runWithFlags(t, nil, func(cmd *cli.Command) error {
		var buf bytes.Buffer
		err := Spit(nil, []string{"name"}, nil, cmd, &buf)
		require.NoError(t, err)
		assert.Empty(t, buf.String())
		return nil
	})
}
