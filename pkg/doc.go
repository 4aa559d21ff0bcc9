// Package pkg provides the core libraries for Renderbox view rasterization.
//
// # Overview
//
// Renderbox turns an XML-like view markup into measured layout trees and
// deterministic PNG images, with no display server or GPU involved. The pkg
// directory is organized into five main areas:
//
//  1. [markup] - Parsing (markup documents, resources, attribute grammar)
//  2. [layout] - Measurement and placement (size specs, constraints, frames)
//  3. [raster] - Rasterization (painter's algorithm, PNG encoding)
//  4. [pipeline] - Orchestration (parse → layout → render, caching)
//  5. [wire] - Length-prefixed framing for the daemon protocol
//
// # Architecture
//
// The typical data flow through Renderbox:
//
//	Markup document (+ resources)
//	         ↓
//	    [markup] package (parse into a view tree)
//	         ↓
//	    [layout] package (measure + place, producing frames)
//	         ↓
//	    [raster] package (paint + encode)
//	         ↓
//	    PNG/base64/JSON output
//
// # Quick Start
//
// Parse a document and render it to PNG:
//
//	import (
//	    "context"
//	    "github.com/mfeldt/renderbox/pkg/cache"
//	    "github.com/mfeldt/renderbox/pkg/pipeline"
//	)
//
//	runner := pipeline.NewRunner(cache.NewNullCache(), nil, nil)
//	result, _ := runner.Execute(context.Background(), pipeline.Options{
//	    Markup:  doc,
//	    Width:   400,
//	    Formats: []string{pipeline.FormatPNG},
//	})
//	png := result.Artifacts[pipeline.FormatPNG]
//
// # Main Packages
//
// ## Core Domain Logic
//
// [markup] - Parser for the view markup dialect. Supports an optional
// <layout> root with a <resources> block, named colors and fonts, and the
// width/height/margin/padding/text/orientation attribute grammar.
//
// [layout] - The measurement and placement engine. Views declare size specs
// (wrap_content, match_parent, or exact), containers resolve them against
// constraints, and the result is a frame tree in absolute pixel coordinates.
// Text measurement uses fixed per-character font metrics, so identical input
// always produces identical geometry.
//
// [raster] - Turns a placed tree into pixels. Fills run back-to-front with
// depth-derived palette defaults, borders darken the fill, and the PNG
// encoder emits uncompressed zlib stored blocks so output bytes are stable
// across runs and platforms.
//
// ## Infrastructure
//
// [pipeline] - Complete rendering pipeline (parse → layout → render) shared
// by the CLI, the HTTP server, and the daemon. Each stage is cached under its
// own key so a changed constraint reuses the parse, and a changed format
// reuses the layout.
//
// [cache] - Cache backends behind a single interface: FileCache for the CLI,
// RedisCache for server deployments, NullCache for tests and one-shot runs.
//
// [wire] - Length-prefixed frame codec and a request/response serve loop for
// running the pipeline over stdin/stdout.
//
// [config] - TOML configuration: default constraints, cache backend
// selection, server listen address, and user-defined colors and fonts.
//
// [observability] - Hook interfaces the pipeline calls around each stage and
// each cache operation.
//
// [errors] - Coded errors (INVALID_MARKUP, UNKNOWN_RESOURCE, ...) with user
// messages that survive wrapping.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...              # All tests
//	go test ./pkg/layout/...       # Specific package
//	go test -run Example           # Examples only
//
// [markup]: https://pkg.go.dev/github.com/mfeldt/renderbox/pkg/markup
// [layout]: https://pkg.go.dev/github.com/mfeldt/renderbox/pkg/layout
// [raster]: https://pkg.go.dev/github.com/mfeldt/renderbox/pkg/raster
// [pipeline]: https://pkg.go.dev/github.com/mfeldt/renderbox/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/mfeldt/renderbox/pkg/cache
// [wire]: https://pkg.go.dev/github.com/mfeldt/renderbox/pkg/wire
// [config]: https://pkg.go.dev/github.com/mfeldt/renderbox/pkg/config
// [observability]: https://pkg.go.dev/github.com/mfeldt/renderbox/pkg/observability
// [errors]: https://pkg.go.dev/github.com/mfeldt/renderbox/pkg/errors
package pkg
