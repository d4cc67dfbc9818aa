package spec

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ProjectFile is the plot spec file name inside a project directory.
const ProjectFile = "plot.yaml"

// Parse decodes a plot spec from YAML and applies defaults.
func Parse(data []byte) (*PlotSpec, error) {
	var spec PlotSpec
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&spec); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing spec YAML: %w", err)
	}
	spec.ApplyDefaults()
	return &spec, nil
}

// Load reads a plot spec from a YAML file.
func Load(path string) (*PlotSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading spec file: %w", err)
	}
	return Parse(data)
}

// LoadProject loads a plot spec from a project directory.
// It looks for plot.yaml in the given directory and resolves the boundary
// path relative to it.
func LoadProject(projectDir string) (*PlotSpec, error) {
	spec, err := Load(filepath.Join(projectDir, ProjectFile))
	if err != nil {
		return nil, err
	}
	if spec.Boundary != "" && !filepath.IsAbs(spec.Boundary) {
		spec.Boundary = filepath.Join(projectDir, spec.Boundary)
	}
	return spec, nil
}
