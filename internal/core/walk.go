package core

import (
	"context"
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"asset-deps/internal/ports"
	"asset-deps/internal/shared"
	"asset-deps/internal/types"
)

type frame struct {
	asset    types.Asset
	declared string
	key      string
	pending  []string
	next     int
	lists    [][]string
}

// walker computes the dependency closure of one asset depth-first with an
// explicit stack. Every finished frame is collapsed and stored before its
// result is handed to the parent frame.
type walker struct {
	resolver *DependencyResolver
	tier     ports.DependencyCachePort
	stack    []*frame
	active   map[string]int
}

func (r *DependencyResolver) walkAsset(ctx context.Context, asset types.Asset) ([]string, error) {
	w := &walker{
		resolver: r,
		tier:     r.tier(),
		active:   map[string]int{},
	}
	if err := w.push(ctx, asset, asset.Path); err != nil {
		return nil, err
	}
	return w.run(ctx)
}

func (w *walker) push(ctx context.Context, asset types.Asset, declared string) error {
	key := shared.CanonicalPath(asset.Path)
	if start, ok := w.active[key]; ok {
		return w.cycleError(start, declared)
	}
	direct, err := w.resolver.directDependencies(ctx, asset)
	if err != nil {
		return err
	}
	f := &frame{
		asset:    asset,
		declared: declared,
		key:      key,
		pending:  direct,
	}
	if globals := w.resolver.globalsFor(asset.Path); len(globals) > 0 {
		f.lists = append(f.lists, globals)
	}
	w.active[key] = len(w.stack)
	w.stack = append(w.stack, f)
	return nil
}

func (w *walker) run(ctx context.Context) ([]string, error) {
	for {
		top := w.stack[len(w.stack)-1]
		if top.next < len(top.pending) {
			dep := top.pending[top.next]
			top.next++
			deps, next, descend, err := w.lookup(ctx, dep)
			if err != nil {
				return nil, err
			}
			if descend {
				if err := w.push(ctx, next, dep); err != nil {
					return nil, err
				}
				continue
			}
			top.lists = append(top.lists, deps, []string{dep})
			continue
		}

		result := collapse(top.lists)
		w.tier.Store(ctx, top.asset, result)
		w.stack = w.stack[:len(w.stack)-1]
		delete(w.active, top.key)
		if len(w.stack) == 0 {
			return result, nil
		}
		parent := w.stack[len(w.stack)-1]
		parent.lists = append(parent.lists, result, []string{top.declared})
	}
}

// lookup answers a direct dependency from the cache tier or the global list
// when possible. Otherwise it returns the asset the walk has to descend into.
func (w *walker) lookup(ctx context.Context, dep string) ([]string, types.Asset, bool, error) {
	if deps, ok := w.tier.TryGetPath(ctx, dep); ok {
		return deps, types.Asset{}, false, nil
	}
	asset, found, err := w.resolver.findAsset(dep)
	if err != nil {
		return nil, types.Asset{}, false, err
	}
	if !found {
		return w.resolver.globalsFor(dep), types.Asset{}, false, nil
	}
	if deps, ok := w.tier.TryGetAsset(ctx, asset); ok {
		w.tier.Store(ctx, asset, deps)
		return deps, types.Asset{}, false, nil
	}
	return nil, asset, true, nil
}

func (w *walker) cycleError(start int, declared string) error {
	chain := make([]string, 0, len(w.stack)-start+1)
	for _, f := range w.stack[start:] {
		chain = append(chain, f.asset.Path)
	}
	chain = append(chain, declared)
	return errbuilder.New().
		WithCode(errbuilder.CodeFailedPrecondition).
		WithMsg(fmt.Sprintf("dependency cycle detected: %s", strings.Join(chain, " -> ")))
}
