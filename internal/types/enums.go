package types

type AssetType string

const (
	AssetTypeScript     AssetType = "script"
	AssetTypeStylesheet AssetType = "stylesheet"
	AssetTypeUnknown    AssetType = ""
)

// Order is the judgment of a dependency comparison. The values line up with
// the usual comparator convention so an Order can be returned from a cmp func.
type Order int

const (
	OrderBefore    Order = -1
	OrderUnordered Order = 0
	OrderAfter     Order = 1
)

func (o Order) String() string {
	switch o {
	case OrderBefore:
		return "before"
	case OrderAfter:
		return "after"
	default:
		return "unordered"
	}
}

type CacheTier string

const (
	CacheTierValidated   CacheTier = "validated"
	CacheTierRequest     CacheTier = "request"
	CacheTierPrecomputed CacheTier = "precomputed"
)

type ExtractorKind string

const (
	ExtractorKindReference ExtractorKind = "reference"
	ExtractorKindImport    ExtractorKind = "import"
	ExtractorKindNone      ExtractorKind = "none"
)

type ResourceMode string

const (
	ResourceModeDebug   ResourceMode = "debug"
	ResourceModeRelease ResourceMode = "release"
)

type ConsolidateMode string

const (
	ConsolidateAlways      ConsolidateMode = "always"
	ConsolidateNever       ConsolidateMode = "never"
	ConsolidateReleaseOnly ConsolidateMode = "release"
)
