package app

import (
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"asset-deps/internal/adapters"
	"asset-deps/internal/types"
)

func (s Service) Inspect(req InspectRequest) (InspectResult, error) {
	reportPath := strings.TrimSpace(req.ReportPath)
	if reportPath == "" {
		return InspectResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("report path is required")
	}
	report, err := s.ReportReader.ReadReport(reportPath)
	if err != nil {
		return InspectResult{}, err
	}

	var summaries []InspectGroupSummary
	summaries = append(summaries, summarizeGroups(types.AssetTypeScript, report.Scripts)...)
	summaries = append(summaries, summarizeGroups(types.AssetTypeStylesheet, report.Stylesheets)...)
	leaves := 0
	for _, entry := range report.Dependencies {
		if len(entry.Dependencies) == 0 {
			leaves++
		}
	}
	return InspectResult{
		Version:     report.Version,
		GeneratedAt: adapters.ParseReportTime(report.GeneratedAt),
		Groups:      summaries,
		Entries:     len(report.Dependencies),
		Leaves:      leaves,
	}, nil
}

func summarizeGroups(assetType types.AssetType, groups []types.ReportGroup) []InspectGroupSummary {
	summaries := make([]InspectGroupSummary, 0, len(groups))
	for _, group := range groups {
		summaries = append(summaries, InspectGroupSummary{
			URL:       group.ConsolidatedURL,
			Type:      assetType,
			Count:     len(group.Resources),
			Resources: append([]string(nil), group.Resources...),
		})
	}
	return summaries
}
