package adapter

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	m "refine.dev/pkg/refine/internal/model"
)

const reportSuffix = ".report.yaml"

// ReportStore persists the reports of a run.
type ReportStore interface {
	SaveReports(path m.Path, reports []m.Report) error
	LoadReports(path m.Path) ([]m.Report, error)
}

// YAMLReportStore keeps one YAML file per scenario in a directory. Saving
// replaces the reports of the previous run.
type YAMLReportStore struct{}

// NewYAMLReportStore constructs a YAMLReportStore.
func NewYAMLReportStore() *YAMLReportStore {
	return &YAMLReportStore{}
}

var unsafeName = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

func reportFileName(index int, report m.Report) string {
	name := strings.Trim(unsafeName.ReplaceAllString(report.Scenario, "_"), "_")
	if name == "" {
		name = "scenario"
	}

	return fmt.Sprintf("%04d-%s%s", index, name, reportSuffix)
}

// SaveReports implements ReportStore.
func (s *YAMLReportStore) SaveReports(path m.Path, reports []m.Report) error {
	dir := string(path)

	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("create report directory: %w", err)
	}

	stale, err := filepath.Glob(filepath.Join(dir, "*"+reportSuffix))
	if err != nil {
		return err
	}

	for _, file := range stale {
		if err := os.Remove(file); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("remove stale report: %w", err)
		}
	}

	for i, report := range reports {
		data, err := yaml.Marshal(report)
		if err != nil {
			return fmt.Errorf("encode report %s: %w", report.Scenario, err)
		}

		file := filepath.Join(dir, reportFileName(i, report))
		if err := os.WriteFile(file, data, 0o600); err != nil {
			return fmt.Errorf("write report %s: %w", file, err)
		}
	}

	slog.Debug("saved reports", "path", dir, "count", len(reports))

	return nil
}

// LoadReports implements ReportStore. Reports come back in the order they
// were saved.
func (s *YAMLReportStore) LoadReports(path m.Path) ([]m.Report, error) {
	files, err := filepath.Glob(filepath.Join(string(path), "*"+reportSuffix))
	if err != nil {
		return nil, err
	}

	if len(files) == 0 {
		if _, err := os.Stat(string(path)); err != nil {
			return nil, fmt.Errorf("load reports: %w", err)
		}
	}

	slices.Sort(files)

	reports := make([]m.Report, 0, len(files))

	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("read report %s: %w", file, err)
		}

		var report m.Report
		if err := yaml.Unmarshal(data, &report); err != nil {
			return nil, fmt.Errorf("decode report %s: %w", file, err)
		}

		reports = append(reports, report)
	}

	return reports, nil
}
