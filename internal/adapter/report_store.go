package adapter

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	m "jsinline.dev/pkg/jsinline/internal/model"
)

// ReportStore persists batch plans and the reports produced from them.
type ReportStore interface {
	LoadPlan(path m.Path) (m.Plan, error)
	SaveReports(path m.Path, reports []m.Report) error
	LoadReports(path m.Path) ([]m.Report, error)
}

// YAMLReportStore keeps plans and reports as YAML documents.
type YAMLReportStore struct{}

// NewYAMLReportStore constructs a YAMLReportStore.
func NewYAMLReportStore() *YAMLReportStore {
	return &YAMLReportStore{}
}

type reportFile struct {
	Reports []m.Report `yaml:"reports"`
}

// LoadPlan reads a plan of requests.
func (s *YAMLReportStore) LoadPlan(path m.Path) (m.Plan, error) {
	data, err := os.ReadFile(string(path))
	if err != nil {
		return m.Plan{}, fmt.Errorf("read plan: %w", err)
	}

	var plan m.Plan
	if err := yaml.Unmarshal(data, &plan); err != nil {
		return m.Plan{}, fmt.Errorf("decode plan %s: %w", path, err)
	}

	return plan, nil
}

// SaveReports writes reports to path, creating its directory.
func (s *YAMLReportStore) SaveReports(path m.Path, reports []m.Report) error {
	data, err := yaml.Marshal(reportFile{Reports: reports})
	if err != nil {
		return fmt.Errorf("encode reports: %w", err)
	}

	if dir := filepath.Dir(string(path)); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("create reports directory: %w", err)
		}
	}

	if err := os.WriteFile(string(path), data, 0o600); err != nil {
		return fmt.Errorf("write reports: %w", err)
	}

	return nil
}

// LoadReports reads reports saved by SaveReports.
func (s *YAMLReportStore) LoadReports(path m.Path) ([]m.Report, error) {
	data, err := os.ReadFile(string(path))
	if err != nil {
		return nil, fmt.Errorf("read reports: %w", err)
	}

	var file reportFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("decode reports %s: %w", path, err)
	}

	return file.Reports, nil
}
