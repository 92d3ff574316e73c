package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const dataset = `
name: products
dimension: 4
partitions: [fruits, juices, others]
records:
  - id: p1
    partition: fruits
    vector: [0.9, 0.1, 0.0, 0.0]
    metadata:
      name: Red apple
      category: fruit
  - id: p2
    partition: fruits
    vector: [0.85, 0.15, 0.0, 0.0]
    metadata:
      name: Green apple
      category: fruit
  - id: p3
    partition: juices
    vector: [0.2, 0.8, 0.1, 0.0]
    metadata:
      name: Orange juice
      category: drink
  - id: p4
    vector: [0.1, 0.05, 0.9, 0.3]
`

func writeDataset(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "products.yaml")
	require.NoError(t, os.WriteFile(path, []byte(dataset), 0o600))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestSummaryCommand(t *testing.T) {
	path := writeDataset(t)

	out, err := run(t, "-f", path, "summary")
	require.NoError(t, err)
	assert.Contains(t, out, "products")
	assert.Contains(t, out, "fruits")
	assert.Contains(t, out, "Total vectors: 4")

	out, err = run(t, "-f", path, "summary", "--json")
	require.NoError(t, err)

	var v summaryView
	require.NoError(t, json.Unmarshal([]byte(out), &v))
	assert.Equal(t, 4, v.Total)
	assert.Equal(t, "L2", v.Metric)
	assert.Equal(t, []partitionView{{"fruits", 2}, {"juices", 2}, {"others", 0}}, v.Partitions)
}

func TestSearchCommand(t *testing.T) {
	path := writeDataset(t)

	tests := []struct {
		name string
		args []string
		want []string
	}{
		{name: "Partition", args: []string{"-p", "fruits", "-q", "0.88,0.12,0,0", "-k", "2"}, want: []string{"p1", "p2"}},
		{name: "AllPartitions", args: []string{"-q", "0.2,0.8,0.1,0", "-k", "2"}, want: []string{"p3", "p2"}},
		{name: "Where", args: []string{"-q", "0.2,0.8,0.1,0", "-k", "2", "--where", "category=fruit"}, want: []string{"p2", "p1"}},
		{name: "NoResults", args: []string{"-p", "others", "-q", "1,0,0,0"}, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"-f", path, "search", "--json"}, tt.args...)
			out, err := run(t, args...)
			require.NoError(t, err)

			var results []resultView
			require.NoError(t, json.Unmarshal([]byte(out), &results))
			ids := make([]string, len(results))
			for i, r := range results {
				ids[i] = r.ID
			}
			assert.Equal(t, tt.want, ids)
		})
	}

	t.Run("Table", func(t *testing.T) {
		out, err := run(t, "-f", path, "search", "-p", "fruits", "-q", "0.88,0.12,0,0", "-k", "2")
		require.NoError(t, err)
		assert.Contains(t, out, "p1")
		assert.Contains(t, out, "0.0283")
	})

	errTests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{name: "UnknownPartition", args: []string{"-p", "nonexistent", "-q", "1,0,0,0"}, wantErr: "does not exist"},
		{name: "DimensionMismatch", args: []string{"-p", "fruits", "-q", "1,0"}, wantErr: "dimension mismatch"},
		{name: "BadQuery", args: []string{"-q", "1,x,0,0"}, wantErr: "query component 1"},
		{name: "BadFilter", args: []string{"-q", "1,0,0,0", "--where", "category"}, wantErr: "invalid filter"},
		{name: "MissingQuery", args: []string{"-p", "fruits"}, wantErr: "query"},
	}

	for _, tt := range errTests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"-f", path, "search"}, tt.args...)
			_, err := run(t, args...)
			require.Error(t, err)
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestGetCommand(t *testing.T) {
	path := writeDataset(t)

	out, err := run(t, "-f", path, "get", "p1", "--json")
	require.NoError(t, err)

	var v recordView
	require.NoError(t, json.Unmarshal([]byte(out), &v))
	assert.Equal(t, "p1", v.ID)
	assert.Equal(t, "fruits", v.Partition)
	assert.Equal(t, []float32{0.9, 0.1, 0, 0}, v.Vector)
	assert.Equal(t, "Red apple", v.Metadata["name"])

	out, err = run(t, "-f", path, "get", "p3")
	require.NoError(t, err)
	assert.Contains(t, out, "juices")
	assert.Contains(t, out, "name = Orange juice")

	_, err = run(t, "-f", path, "get", "missing")
	assert.ErrorContains(t, err, `record "missing" not found`)

	_, err = run(t, "-f", path, "get")
	assert.Error(t, err)
}

func TestMissingDataset(t *testing.T) {
	_, err := run(t, "summary")
	assert.ErrorContains(t, err, "dataset file is required")

	_, err = run(t, "-f", filepath.Join(t.TempDir(), "nope.yaml"), "summary")
	assert.Error(t, err)
}

func TestParseScalar(t *testing.T) {
	assert.Equal(t, int64(3), parseScalar("3"))
	assert.Equal(t, 1.5, parseScalar("1.5"))
	assert.Equal(t, true, parseScalar("true"))
	assert.Equal(t, "fruit", parseScalar("fruit"))
}
