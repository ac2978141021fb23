package adapters

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"path"
	"regexp"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"asset-deps/internal/ports"
	"asset-deps/internal/shared"
	"asset-deps/internal/types"
)

var referencePattern = regexp.MustCompile(`^///\s*<reference\s+path\s*=\s*["']([^"']+)["']\s*/?>`)

var (
	importPattern       = regexp.MustCompile(`@import\s+(?:\([^)]*\)\s*)?(?:url\(\s*)?["']?([^"'()\s;]+)["']?\s*\)?[^;]*;`)
	blockCommentPattern = regexp.MustCompile(`(?s)/\*.*?\*/`)
)

// ReferenceExtractor reads the triple-slash reference directives at the head
// of a script. Scanning stops at the first line that is not blank or a line
// comment.
type ReferenceExtractor struct{}

func NewReferenceExtractor() ReferenceExtractor {
	return ReferenceExtractor{}
}

func (e ReferenceExtractor) Dependencies(_ context.Context, asset types.Asset) ([]string, error) {
	content, err := readAsset(asset)
	if err != nil {
		return nil, err
	}
	var deps []string
	scanner := bufio.NewScanner(bytes.NewReader(content))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if !strings.HasPrefix(line, "//") {
			break
		}
		match := referencePattern.FindStringSubmatch(line)
		if match == nil {
			continue
		}
		if dep, ok := ResolveReference(asset.Path, match[1]); ok {
			deps = append(deps, dep)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(fmt.Sprintf("failed to scan %s", asset.Path)).
			WithCause(err)
	}
	return deps, nil
}

// ImportExtractor reads @import rules from stylesheets. Imports inside block
// comments are ignored.
type ImportExtractor struct{}

func NewImportExtractor() ImportExtractor {
	return ImportExtractor{}
}

func (e ImportExtractor) Dependencies(_ context.Context, asset types.Asset) ([]string, error) {
	content, err := readAsset(asset)
	if err != nil {
		return nil, err
	}
	stripped := blockCommentPattern.ReplaceAll(content, nil)
	var deps []string
	for _, match := range importPattern.FindAllSubmatch(stripped, -1) {
		reference := string(match[1])
		if shared.Extension(asset.Path) == ".less" && path.Ext(shared.WithoutQuery(reference)) == "" {
			reference += ".less"
		}
		if dep, ok := ResolveReference(asset.Path, reference); ok {
			deps = append(deps, dep)
		}
	}
	return deps, nil
}

// NoneExtractor declares no dependencies; it lets a config switch an
// extension off explicitly.
type NoneExtractor struct{}

func (NoneExtractor) Dependencies(context.Context, types.Asset) ([]string, error) {
	return nil, nil
}

// NewExtractor builds the extractor for a configured kind.
func NewExtractor(kind types.ExtractorKind) (ports.ExtractorPort, error) {
	switch kind {
	case types.ExtractorKindReference:
		return NewReferenceExtractor(), nil
	case types.ExtractorKindImport:
		return NewImportExtractor(), nil
	case types.ExtractorKindNone:
		return NoneExtractor{}, nil
	default:
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("unknown extractor kind: %s", kind))
	}
}

// ResolveReference turns a reference found inside assetPath into a web path.
// "~/" and "/" are root relative, anything else is relative to the directory
// of the referencing asset. External URLs are returned unchanged.
func ResolveReference(assetPath string, reference string) (string, bool) {
	ref := strings.ReplaceAll(shared.WithoutQuery(reference), "\\", "/")
	if ref == "" {
		return "", false
	}
	if isExternal(ref) {
		return ref, true
	}
	if strings.HasPrefix(ref, "~/") || strings.HasPrefix(ref, "/") {
		return WebPath(ref)
	}
	base := path.Dir(path.Clean("/" + strings.ReplaceAll(shared.WithoutQuery(assetPath), "\\", "/")))
	return path.Join(base, ref), true
}

func readAsset(asset types.Asset) ([]byte, error) {
	content, err := asset.ReadContent()
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(fmt.Sprintf("failed to read %s", asset.Path)).
			WithCause(err)
	}
	return content, nil
}

var (
	_ ports.ExtractorPort = ReferenceExtractor{}
	_ ports.ExtractorPort = ImportExtractor{}
	_ ports.ExtractorPort = NoneExtractor{}
)
