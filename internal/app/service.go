package app

import (
	"time"

	"github.com/spf13/afero"

	"asset-deps/internal/adapters"
	"asset-deps/internal/ports"
)

type Service struct {
	FS           afero.Fs
	ConfigLoader ports.AssetConfigPort
	ReportWriter ports.ReportWriterPort
	ReportReader ports.ReportReaderPort
	Clock        func() time.Time
}

func NewService() Service {
	return NewServiceWithFs(afero.NewOsFs())
}

// NewServiceWithFs wires every adapter onto fsys.
func NewServiceWithFs(fsys afero.Fs) Service {
	reports := adapters.NewReportFileAdapter(fsys)
	return Service{
		FS:           fsys,
		ConfigLoader: adapters.NewConfigFileAdapter(fsys),
		ReportWriter: reports,
		ReportReader: reports,
		Clock:        time.Now,
	}
}
