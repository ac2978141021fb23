package app

import (
	"time"

	"asset-deps/internal/types"
)

// RuntimeOptions override settings of the asset config for one command.
type RuntimeOptions struct {
	Mode types.ResourceMode
	Tier types.CacheTier
}

type ValidateRequest struct {
	ConfigPath string
}

type ValidateResult struct {
	Root              string
	Tier              types.CacheTier
	ScriptBundles     int
	StylesheetBundles int
	Assets            int
}

type DepsRequest struct {
	ConfigPath string
	Paths      []string
	Options    RuntimeOptions
}

type DepsResult struct {
	Entries []types.ReportEntry
}

type OrderRequest struct {
	ConfigPath string
	Paths      []string
	Options    RuntimeOptions
}

type OrderResult struct {
	Paths []string
}

type IncludesRequest struct {
	ConfigPath string
	Paths      []string
	Options    RuntimeOptions
}

type IncludesResult struct {
	Mode types.ResourceMode
	URLs []string
}

type ReportRequest struct {
	ConfigPath string
	OutputPath string
	Workers    int
}

type ReportResult struct {
	OutputPath string
	Bundles    int
	Entries    int
}

type InspectRequest struct {
	ReportPath string
}

type InspectGroupSummary struct {
	URL       string
	Type      types.AssetType
	Count     int
	Resources []string
}

type InspectResult struct {
	Version     string
	GeneratedAt time.Time
	Groups      []InspectGroupSummary
	Entries     int
	Leaves      int
}
