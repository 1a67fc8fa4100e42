package adapter

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	m "refine.dev/pkg/refine/internal/model"
)

// ScenarioLoader parses scenario files.
type ScenarioLoader interface {
	Load(file m.File) (m.Scenario, error)
}

// YAMLScenarioLoader reads scenarios written in YAML. Unknown keys are
// rejected so that typos do not silently drop steps.
type YAMLScenarioLoader struct {
	fs ScenarioFSAdapter
}

// NewYAMLScenarioLoader returns a loader reading through fs.
func NewYAMLScenarioLoader(fs ScenarioFSAdapter) *YAMLScenarioLoader {
	return &YAMLScenarioLoader{fs: fs}
}

// Load implements ScenarioLoader. A scenario without a name is named
// after its file.
func (l *YAMLScenarioLoader) Load(file m.File) (m.Scenario, error) {
	data, err := l.fs.ReadFile(file.FullPath)
	if err != nil {
		return m.Scenario{}, fmt.Errorf("read %s: %w", file.ShortPath, err)
	}

	scenario, err := DecodeScenario(data)
	if err != nil {
		return m.Scenario{}, fmt.Errorf("parse %s: %w", file.ShortPath, err)
	}

	if scenario.Name == "" {
		scenario.Name = scenarioName(string(file.FullPath))
	}

	scenario.File = file

	return scenario, nil
}

// DecodeScenario parses a single YAML scenario document.
func DecodeScenario(data []byte) (m.Scenario, error) {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	var scenario m.Scenario
	if err := decoder.Decode(&scenario); err != nil {
		if errors.Is(err, io.EOF) {
			return m.Scenario{}, errors.New("empty scenario")
		}

		return m.Scenario{}, err
	}

	return scenario, nil
}

func scenarioName(path string) string {
	base := filepath.Base(path)

	for _, suffix := range ScenarioSuffixes {
		if name, ok := strings.CutSuffix(base, suffix); ok {
			return name
		}
	}

	return strings.TrimSuffix(base, filepath.Ext(base))
}
