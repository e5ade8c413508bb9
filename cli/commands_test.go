package cli

import (
	"encoding/json"
	"strconv"
	"strings"
	"testing"
	"unsafe"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/ryanmt/nmatrix/core"
	"github.com/ryanmt/nmatrix/ops"
)

func TestListJSON(t *testing.T) {
	out, _, err := execute(t, "--format", "json", "list")
	require.NoError(t, err)

	var infos []DTypeInfo
	require.NoError(t, json.Unmarshal([]byte(out), &infos))
	require.Len(t, infos, core.NumDTypes)
	assert.Equal(t, DTypeInfo{Name: "byte", Ordinal: 0, Size: 1}, infos[0])
	assert.Equal(t, DTypeInfo{Name: "complex128", Ordinal: 8, Size: 16}, infos[8])
	assert.Equal(t, int(unsafe.Sizeof(uintptr(0))), infos[12].Size)
}

func TestListText(t *testing.T) {
	out, _, err := execute(t, "list")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, core.NumDTypes)
	assert.Equal(t, " 9  rational32   4", lines[9])
}

func TestUpcast(t *testing.T) {
	out, _, err := execute(t, "upcast", "byte", "int8")
	require.NoError(t, err)
	assert.Equal(t, "byte x int8 -> int16\n", out)

	out, _, err = execute(t, "--format", "yaml", "upcast", "complex64", "rational128")
	require.NoError(t, err)
	var res UpcastResult
	require.NoError(t, yaml.Unmarshal([]byte(out), &res))
	assert.Equal(t, UpcastResult{A: "complex64", B: "rational128", Result: "complex128"}, res)

	_, _, err = execute(t, "upcast", "byte", "quad")
	assert.ErrorIs(t, err, core.ErrTypeConversion)

	_, _, err = execute(t, "upcast", "byte")
	assert.Error(t, err)
}

func TestTableGolden(t *testing.T) {
	out, _, err := execute(t, "--color", "off", "table")
	require.NoError(t, err)

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "upcast_table", []byte(out))
}

func TestTableJSON(t *testing.T) {
	out, _, err := execute(t, "--format", "json", "table")
	require.NoError(t, err)

	var tab UpcastTable
	require.NoError(t, json.Unmarshal([]byte(out), &tab))
	require.Len(t, tab.Table, core.NumDTypes)
	for i := range tab.Table {
		for j := range tab.Table[i] {
			assert.Equal(t, tab.Table[i][j], tab.Table[j][i])
		}
	}
	assert.Equal(t, "float64", tab.Table[core.Rational32][core.Float32])
}

func TestConvert(t *testing.T) {
	out, _, err := execute(t, "convert", "--to", "byte", "300")
	require.NoError(t, err)
	assert.Equal(t, "byte 2c\n44\n", out)

	out, _, err = execute(t, "convert", "--to", "int16", "--", "-1")
	require.NoError(t, err)
	assert.Equal(t, "int16 ff ff\n-1\n", out)

	out, _, err = execute(t, "--format", "json", "convert", "3.14", "--to", "float32")
	require.NoError(t, err)
	var res ConvertResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, "float32", res.DType)
	assert.Equal(t, "float", res.Kind)
	assert.Len(t, res.Bytes, 8)
	f, err := strconv.ParseFloat(res.Value, 64)
	require.NoError(t, err)
	assert.InDelta(t, 3.14, f, 1e-6)

	out, _, err = execute(t, "--format", "json", "convert", "-t", "rational32", "6/8")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, "3/4", res.Value)
	assert.Equal(t, "rational", res.Kind)
}

func TestConvertErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"strict overflow", []string{"convert", "--strict", "--to", "byte", "300"}},
		{"float to rational", []string{"convert", "--to", "rational64", "0.5"}},
		{"numeric to object", []string{"convert", "--to", "object", "1"}},
		{"unknown dtype", []string{"convert", "--to", "decimal", "1"}},
		{"bad literal", []string{"convert", "--to", "int8", "one"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := execute(t, tc.args...)
			assert.ErrorIs(t, err, core.ErrTypeConversion)
		})
	}

	_, _, err := execute(t, "convert", "1")
	assert.Error(t, err)
}

func TestEval(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"int32:2", "+", "float32:0.5"}, "float32 2.5\n"},
		{[]string{"byte:200", "add", "byte:100"}, "byte 44\n"},
		{[]string{"rational64:1/3", "<", "rational64:1/2"}, "byte 1\n"},
		{[]string{"rational32:1/2", "*", "int8:3"}, "rational32 3/2\n"},
		{[]string{"complex128:1+2i", "*", "complex128:3-1i"}, "complex128 (5+5i)\n"},
	}
	for _, tc := range tests {
		t.Run(strings.Join(tc.args, " "), func(t *testing.T) {
			out, _, err := execute(t, append([]string{"eval"}, tc.args...)...)
			require.NoError(t, err)
			assert.Equal(t, tc.want, out)
		})
	}

	out, _, err := execute(t, "--format", "yaml", "eval", "int64:7", "%", "int8:4")
	require.NoError(t, err)
	var res EvalResult
	require.NoError(t, yaml.Unmarshal([]byte(out), &res))
	assert.Equal(t, EvalResult{Expr: "int64:7 % int8:4", DType: "int64", Value: "3", Bytes: res.Bytes}, res)
	assert.Len(t, res.Bytes, 16)
}

func TestEvalErrors(t *testing.T) {
	_, _, err := execute(t, "eval", "int32:1", "/", "int32:0")
	assert.ErrorIs(t, err, ops.ErrDivideByZero)

	_, _, err = execute(t, "eval", "complex64:1", "<", "complex64:2")
	assert.ErrorIs(t, err, ops.ErrUnsupported)

	_, _, err = execute(t, "eval", "--strict", "byte:200", "+", "byte:100")
	assert.ErrorIs(t, err, core.ErrTypeConversion)

	_, _, err = execute(t, "eval", "int32", "+", "int32:1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "want dtype:value")

	_, _, err = execute(t, "eval", "int32:1", "^", "int32:1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown element-wise operator")
}
