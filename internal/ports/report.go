package ports

import "asset-deps/internal/types"

type ReportWriterPort interface {
	WriteReport(path string, report types.DependencyReport) error
}

type ReportReaderPort interface {
	ReadReport(path string) (types.DependencyReport, error)
}
