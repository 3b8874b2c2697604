package zarr

import (
	"errors"
	"fmt"
	"path"
)

// Group is one node of the zarr hierarchy. The zero path is the store
// root.
type Group struct {
	store Store
	path  string
}

// OpenRoot opens the root group of a store, writing the root .zgroup
// marker if the store is empty.
func OpenRoot(store Store) (*Group, error) {
	g := &Group{store: store}
	if err := g.ensureMarker(); err != nil {
		return nil, err
	}
	return g, nil
}

// Group opens or creates the named child group.
func (g *Group) Group(name string) (*Group, error) {
	child := &Group{store: g.store, path: g.key(name)}
	if err := child.ensureMarker(); err != nil {
		return nil, err
	}
	return child, nil
}

func (g *Group) ensureMarker() error {
	key := g.key(KeyGroup)
	if r, err := g.store.Get(key); err == nil {
		r.Close()
		return nil
	} else if !errors.Is(err, ErrNotFound) {
		return err
	}
	return putJSON(g.store, key, groupMeta{ZarrFormat: FormatVersion})
}

// GroupKeys lists the names of existing child groups.
func (g *Group) GroupKeys() ([]string, error) {
	names, err := g.store.List(g.path)
	if err != nil {
		return nil, err
	}

	var groups []string
	for _, n := range names {
		if r, err := g.store.Get(g.key(n, KeyGroup)); err == nil {
			r.Close()
			groups = append(groups, n)
		}
	}
	return groups, nil
}

// Path returns the logical path of the group within the store.
func (g *Group) Path() string { return g.path }

// Attrs reads the group's .zattrs document. A missing document yields
// empty attrs.
func (g *Group) Attrs() (GroupAttrs, error) {
	var attrs GroupAttrs
	err := getJSON(g.store, g.key(KeyAttributes), &attrs)
	if errors.Is(err, ErrNotFound) {
		return GroupAttrs{}, nil
	}
	return attrs, err
}

// SetAttrs replaces the group's .zattrs document.
func (g *Group) SetAttrs(attrs GroupAttrs) error {
	return putJSON(g.store, g.key(KeyAttributes), attrs)
}

// AddLabel appends name to the group's labels attribute, preserving
// names written by earlier runs.
func (g *Group) AddLabel(name string) error {
	attrs, err := g.Attrs()
	if err != nil {
		return err
	}
	if !attrs.AddLabel(name) {
		return nil
	}
	return g.SetAttrs(attrs)
}

// CreateArray creates the named child array, removing any previous
// array of the same name first. len(chunks) must equal len(shape).
func (g *Group) CreateArray(name string, shape, chunks []int, dtype Dtype, comp *CompressorConfig) (*Array, error) {
	if len(shape) != len(chunks) {
		return nil, fmt.Errorf("shape rank %d does not match chunk rank %d", len(shape), len(chunks))
	}

	arrPath := g.key(name)
	if err := g.store.Delete(arrPath); err != nil {
		return nil, fmt.Errorf("failed to clear existing array %q: %v", name, err)
	}

	meta := &ArrayMeta{
		ZarrFormat: FormatVersion,
		Shape:      append([]int(nil), shape...),
		Chunks:     append([]int(nil), chunks...),
		DtypeStr:   dtype.TypeStr(),
		Compressor: comp,
		FillValue:  0,
		Order:      "C",
	}
	if err := putJSON(g.store, path.Join(arrPath, KeyArray), meta); err != nil {
		return nil, err
	}

	return &Array{store: g.store, path: arrPath, meta: meta, dtype: dtype}, nil
}

// OpenArray opens an existing child array.
func (g *Group) OpenArray(name string) (*Array, error) {
	meta := &ArrayMeta{}
	if err := getJSON(g.store, g.key(name, KeyArray), meta); err != nil {
		return nil, err
	}
	dtype, err := meta.Dtype()
	if err != nil {
		return nil, err
	}
	return &Array{store: g.store, path: g.key(name), meta: meta, dtype: dtype}, nil
}

func (g *Group) key(elems ...string) string {
	return path.Join(append([]string{g.path}, elems...)...)
}
