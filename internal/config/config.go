// Package config loads partvec datasets from YAML files.
//
// A dataset describes a collection and the records to upsert into it:
//
//	name: products
//	dimension: 4
//	metric: l2
//	partitions: [fruits, juices, others]
//	records:
//	  - id: p1
//	    partition: fruits
//	    vector: [0.9, 0.1, 0.0, 0.0]
//	    metadata:
//	      name: Red apple
//	  - id: p4
//	    vector: [0.1, 0.05, 0.9, 0.3]
//
// Records without a partition are placed automatically.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/hupe1980/partvec"
	"github.com/hupe1980/partvec/distance"
	"github.com/hupe1980/partvec/metadata"
)

// ErrEmptyDataset is returned when a dataset file holds no document.
var ErrEmptyDataset = errors.New("empty dataset")

// Dataset is a collection definition plus its records.
type Dataset struct {
	Name          string   `yaml:"name"`
	Dimension     int      `yaml:"dimension"`
	Metric        string   `yaml:"metric,omitempty"`
	Partitions    []string `yaml:"partitions,omitempty"`
	NumPartitions int      `yaml:"num_partitions,omitempty"`
	Records       []Record `yaml:"records"`
}

// Record is one record of a dataset.
type Record struct {
	ID        string         `yaml:"id"`
	Partition string         `yaml:"partition,omitempty"`
	Vector    []float32      `yaml:"vector"`
	Metadata  map[string]any `yaml:"metadata,omitempty"`
}

// Load reads and parses the dataset at path.
func Load(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML dataset. Unknown fields are rejected.
func Parse(data []byte) (*Dataset, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var d Dataset
	if err := dec.Decode(&d); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyDataset
		}
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return &d, nil
}

// Options translates the dataset header into collection options.
func (d *Dataset) Options() ([]partvec.Option, error) {
	metric, err := distance.ParseMetric(d.Metric)
	if err != nil {
		return nil, err
	}

	opts := []partvec.Option{partvec.WithMetric(metric)}
	if len(d.Partitions) > 0 {
		opts = append(opts, partvec.WithPartitions(d.Partitions...))
	}
	if d.NumPartitions != 0 {
		opts = append(opts, partvec.WithNumPartitions(d.NumPartitions))
	}
	return opts, nil
}

// Build creates the collection and upserts every record in file order.
// extra options are applied after the dataset's own.
func (d *Dataset) Build(extra ...partvec.Option) (*partvec.Collection, error) {
	opts, err := d.Options()
	if err != nil {
		return nil, err
	}

	c, err := partvec.New(d.Name, d.Dimension, append(opts, extra...)...)
	if err != nil {
		return nil, err
	}

	for i, r := range d.Records {
		meta, err := metadata.DocumentFromAny(r.Metadata)
		if err != nil {
			return nil, fmt.Errorf("record %d (%q): %w", i, r.ID, err)
		}

		if r.Partition != "" {
			_, err = c.UpsertTo(r.Partition, r.ID, r.Vector, meta)
		} else {
			_, err = c.Upsert(r.ID, r.Vector, meta)
		}
		if err != nil {
			return nil, fmt.Errorf("record %d (%q): %w", i, r.ID, err)
		}
	}

	return c, nil
}
