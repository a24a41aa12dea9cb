package routefile

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/vitalvas/cascade/dispatch"
)

// Build compiles the file into a dispatch table. Registration order is
// custom types, then the top-level routes, then each group in listed
// order; that order is the dispatch evaluation order. Build fails on
// the first bad entry, and the error names the entry's position.
func (f *File) Build(reg *Registry) (*dispatch.Table, error) {
	tbl := dispatch.NewTable()
	for tag, fragment := range f.Types {
		if err := tbl.TypeSet().Register(tag, fragment); err != nil {
			return nil, err
		}
	}

	if err := addRoutes(tbl, reg, "", f.Routes); err != nil {
		return nil, err
	}
	for i := range f.Groups {
		g := &f.Groups[i]
		if err := addRoutes(tbl, reg, g.Prefix, g.Routes); err != nil {
			return nil, fmt.Errorf("group %q: %w", g.Prefix, err)
		}
	}

	return tbl, nil
}

func addRoutes(tbl *dispatch.Table, reg *Registry, prefix string, defs []RouteDef) error {
	for i := range defs {
		def := &defs[i]
		r, err := def.route(reg)
		if err != nil {
			return fmt.Errorf("route %d (%s): %w", i, def.Pattern, err)
		}
		if err := tbl.AddGroup(prefix, r); err != nil {
			return fmt.Errorf("route %d (%s): %w", i, def.Pattern, err)
		}
	}

	return nil
}

// route builds the dispatch route for one definition.
func (d *RouteDef) route(reg *Registry) (*dispatch.Route, error) {
	if d.Handler == "" {
		return nil, ErrMissingHandler
	}
	h, ok := reg.Lookup(d.Handler)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownHandler, d.Handler)
	}

	r := dispatch.NewRoute(d.Pattern, h)
	if ms := d.Methods.Values(); len(ms) > 0 {
		r.Methods(ms...)
	}
	if d.Name != "" {
		r.Name(d.Name)
	}
	if d.CountMatch != nil {
		r.CountMatch(*d.CountMatch)
	}

	return r, nil
}

// Manifest renders a table back to route-file YAML. Handler keys are
// not recoverable from a table, so the manifest carries pattern,
// methods, name, and count_match; it documents a running table rather
// than rebuilding one.
func Manifest(t *dispatch.Table) ([]byte, error) {
	f := File{Version: 1}
	for r := range t.All() {
		def := RouteDef{
			Pattern: r.GetPattern(),
			Methods: Methods(r.GetMethods()...),
			Name:    r.GetName(),
		}
		if !r.CountsMatch() {
			v := false
			def.CountMatch = &v
		}
		f.Routes = append(f.Routes, def)
	}

	return yaml.Marshal(&f)
}
