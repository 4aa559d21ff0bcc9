// Package pipeline provides the core rendering pipeline for renderbox.
//
// This package implements the complete parse → layout → render pipeline
// that can be used by CLI, API, and daemon components. By centralizing
// this logic, we ensure consistent behavior across all entry points.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Parse: Turn XML view markup into a view tree
//  2. Layout: Resolve a frame for every node under a root constraint
//  3. Render: Rasterize the frames and encode output formats
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Markup:  markup,
//	    Width:   200,
//	    Formats: []string{"png"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	png := result.Artifacts["png"]
//
// Run individual stages:
//
//	// Parse only
//	tree, err := runner.Parse(ctx, opts)
//
//	// Layout with an existing tree
//	rendered, err := runner.ComputeLayout(ctx, tree, opts)
//
//	// Render with an existing layout
//	artifacts, err := runner.Render(ctx, rendered, opts)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/mfeldt/renderbox/pkg/cache"
	"github.com/mfeldt/renderbox/pkg/errors"
	"github.com/mfeldt/renderbox/pkg/layout"
	"github.com/mfeldt/renderbox/pkg/markup"
)

// Format constants for output formats.
const (
	FormatPNG  = "png"
	FormatB64  = "b64"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatPNG:  true,
	FormatB64:  true,
	FormatJSON: true,
}

// DefaultFormats is used when a request names no formats.
var DefaultFormats = []string{FormatPNG}

// Options contains all configuration for the rendering pipeline.
// This struct supports JSON serialization for API and daemon requests.
type Options struct {
	// Markup is the XML view document to render.
	Markup string `json:"markup"`

	// Width and Height bound the root constraint in pixels. Zero leaves
	// the axis unbounded, so the tree sizes to its content.
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`

	// Formats lists the artifacts to produce.
	Formats []string `json:"formats,omitempty"`

	// Refresh bypasses the cache for the parse stage.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Resources *markup.Resources `json:"-"`
	Logger    *log.Logger       `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Tree is the parsed view tree.
	Tree *layout.Node

	// TreeHash is the content hash of the serialized tree.
	TreeHash string

	// Layout is the tree with resolved frames.
	Layout *layout.RenderedNode

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount  int
	ParseTime  time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	ParseHit  bool // Whether the parsed tree came from cache
	LayoutHit bool // Whether the layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: png, b64, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateAndSetDefaults checks required fields and applies defaults for
// the full pipeline. This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForParse(); err != nil {
		return err
	}
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForParse checks required fields for parsing.
func (o *Options) ValidateForParse() error {
	if o.Markup == "" {
		return errors.New(errors.ErrCodeInvalidInput, "markup is required")
	}
	o.setLoggerDefault()
	return nil
}

// ValidateForLayout validates the root constraint.
func (o *Options) ValidateForLayout() error {
	if o.Width < 0 || o.Height < 0 {
		return errors.New(errors.ErrCodeInvalidInput,
			"constraint must be non-negative, got %gx%g", o.Width, o.Height)
	}
	o.setLoggerDefault()
	return nil
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	if len(o.Formats) == 0 {
		o.Formats = append([]string(nil), DefaultFormats...)
	}
	o.setLoggerDefault()
	return ValidateFormats(o.Formats)
}

func (o *Options) setLoggerDefault() {
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Constraint returns the root layout constraint. A zero axis becomes
// Unbounded.
func (o *Options) Constraint() layout.Constraint {
	c := layout.Unconstrained()
	if o.Width > 0 {
		c.Width = o.Width
	}
	if o.Height > 0 {
		c.Height = o.Height
	}
	return c
}

// TreeKeyOpts returns cache key options for the parse stage.
func (o *Options) TreeKeyOpts() cache.TreeKeyOpts {
	return cache.TreeKeyOpts{
		ResourceHash: resourceHash(o.Resources),
	}
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Width:  o.Width,
		Height: o.Height,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format: format,
	}
}
