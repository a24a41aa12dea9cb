// Package routefile loads dispatch tables from declarative YAML route
// files.
//
// A route file names patterns, method filters, and handler keys; the
// keys are resolved against a Registry the caller passes in, so the
// file stays data and the handler binding stays explicit.
//
// # File Format
//
//	version: 1
//	types:
//	  yr: "[0-9]{4}"
//	routes:
//	  - pattern: /healthz
//	    handler: health.check
//	groups:
//	  - prefix: /api
//	    routes:
//	      - pattern: /users/[i:id]
//	        methods: [GET, PUT]
//	        handler: users.show
//	        name: user
//	      - pattern: /audit/[**:trail]
//	        methods: GET
//	        handler: audit.trail
//	        count_match: false
//
// The methods field accepts a scalar or a sequence. count_match
// defaults to true. Tables are built in file order: custom types,
// top-level routes, then each group.
//
// # Building
//
//	reg := routefile.NewRegistry()
//	if err := reg.RegisterFunc("users.show", showUser); err != nil {
//	    log.Fatal(err)
//	}
//
//	f, err := routefile.Parse(file)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	tbl, err := f.Build(reg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	d := dispatch.NewDispatcher(tbl)
package routefile
