package adapters

import (
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"asset-deps/internal/ports"
	"asset-deps/internal/types"
)

// ReportFileAdapter persists dependency reports as YAML.
type ReportFileAdapter struct {
	fs afero.Fs
}

func NewReportFileAdapter(fsys afero.Fs) ReportFileAdapter {
	return ReportFileAdapter{fs: fsys}
}

func (a ReportFileAdapter) WriteReport(path string, report types.DependencyReport) error {
	if strings.TrimSpace(path) == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("report path is required")
	}
	if err := a.fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create report directory").
			WithCause(err)
	}
	data, err := yaml.Marshal(report)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to encode report").
			WithCause(err)
	}
	if err := afero.WriteFile(a.fs, path, data, 0644); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write report").
			WithCause(err)
	}
	return nil
}

func (a ReportFileAdapter) ReadReport(path string) (types.DependencyReport, error) {
	data, err := afero.ReadFile(a.fs, path)
	if err != nil {
		return types.DependencyReport{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("dependency report not found: " + path).
			WithCause(err)
	}
	var report types.DependencyReport
	if err := yaml.Unmarshal(data, &report); err != nil {
		return types.DependencyReport{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse dependency report").
			WithCause(err)
	}
	if strings.TrimSpace(report.Version) == "" {
		return types.DependencyReport{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("dependency report missing version")
	}
	return report, nil
}

var (
	_ ports.ReportWriterPort = ReportFileAdapter{}
	_ ports.ReportReaderPort = ReportFileAdapter{}
)
