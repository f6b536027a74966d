package squall

import (
	"errors"
	"fmt"
	"sort"
)

// Target selects the language level a unit is checked against.
type Target int

const (
	TargetSQ1 Target = iota + 1
	TargetSQ2
)

// String returns the configuration name of the target.
func (t Target) String() string {
	switch t {
	case TargetSQ1:
		return "sq1"
	case TargetSQ2:
		return "sq2"
	default:
		return fmt.Sprintf("target(%d)", int(t))
	}
}

// ModuleKind controls whether import declarations are available.
type ModuleKind int

const (
	ModuleNone ModuleKind = iota
	ModuleHost
)

// String returns the configuration name of the module kind.
func (m ModuleKind) String() string {
	switch m {
	case ModuleNone:
		return "none"
	case ModuleHost:
		return "host"
	default:
		return fmt.Sprintf("module(%d)", int(m))
	}
}

// ModuleResolution controls how unknown import paths are treated.
type ModuleResolution int

const (
	ResolutionLoose ModuleResolution = iota
	ResolutionStrict
)

// String returns the configuration name of the resolution mode.
func (r ModuleResolution) String() string {
	switch r {
	case ResolutionLoose:
		return "loose"
	case ResolutionStrict:
		return "strict"
	default:
		return fmt.Sprintf("resolution(%d)", int(r))
	}
}

// Options are the fully resolved compiler options for one unit. The
// zero value is not valid; start from DefaultOptions.
type Options struct {
	Target           Target
	Module           ModuleKind
	ModuleResolution ModuleResolution

	// Strict enables assignability checking on declarations, calls,
	// assignments, and returns.
	Strict bool

	// AllowLoose permits bindings whose type cannot be determined to
	// fall back to Any instead of being reported.
	AllowLoose bool

	// Libs names the ambient declaration groups in scope. nil selects
	// the default set; an empty non-nil slice selects none.
	Libs []string
}

// DefaultOptions returns the options used when no configuration file is
// found.
func DefaultOptions() Options {
	return Options{
		Target:           TargetSQ2,
		Module:           ModuleHost,
		ModuleResolution: ResolutionLoose,
		Strict:           true,
		AllowLoose:       true,
	}
}

// DefaultLibs is the ambient lib set selected when options leave Libs
// unset.
var DefaultLibs = []string{"core", "host"}

// ErrInvalidOptions is returned by NewUnit when options cannot be used
// to build a unit.
var ErrInvalidOptions = errors.New("invalid options")

// SourceFile is one source text with its line index.
type SourceFile struct {
	Path string
	Text string

	lineMap *LineMap
}

// LineMap returns the file's line index.
func (f *SourceFile) LineMap() *LineMap { return f.lineMap }

// Unit is an immutable compilation of a single root file. All analysis
// happens during construction; accessors only read.
type Unit struct {
	root   *SourceFile
	opts   Options
	file   *File
	syntax []Diagnostic
	info   *checkResult
}

// NewUnit parses and checks text as the content of the root file at
// path. Syntax and semantic problems become diagnostics on the unit; an
// error return means the unit could not be built at all, such as when
// the options are unusable.
func NewUnit(path, text string, opts Options) (*Unit, error) {
	if opts.Target != TargetSQ1 && opts.Target != TargetSQ2 {
		return nil, fmt.Errorf("%w: unknown target %d", ErrInvalidOptions, int(opts.Target))
	}
	libs := opts.Libs
	if libs == nil {
		libs = DefaultLibs
	}
	amb, err := loadAmbient(libs)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidOptions, err)
	}

	file, syntax := parseFile(text)
	sortDiagnostics(syntax)

	root := &SourceFile{Path: path, Text: text, lineMap: NewLineMap(text)}
	info := checkFile(file, amb, opts)
	sortDiagnostics(info.diags)

	return &Unit{
		root:   root,
		opts:   opts,
		file:   file,
		syntax: syntax,
		info:   info,
	}, nil
}

// Root returns the unit's single root file.
func (u *Unit) Root() *SourceFile { return u.root }

// Options returns the options the unit was built with.
func (u *Unit) Options() Options { return u.opts }

// File returns the source file registered under path, or nil when the
// unit holds no file by that name.
func (u *Unit) File(path string) *SourceFile {
	if u.root != nil && u.root.Path == path {
		return u.root
	}
	return nil
}

// SyntacticDiagnostics returns the lexical and parse diagnostics for the
// file at path, or nil when the unit holds no such file.
func (u *Unit) SyntacticDiagnostics(path string) []Diagnostic {
	if u.File(path) == nil {
		return nil
	}
	out := make([]Diagnostic, len(u.syntax))
	copy(out, u.syntax)
	return out
}

// SemanticDiagnostics returns the type check diagnostics for the file at
// path, or nil when the unit holds no such file.
func (u *Unit) SemanticDiagnostics(path string) []Diagnostic {
	if u.File(path) == nil {
		return nil
	}
	out := make([]Diagnostic, len(u.info.diags))
	copy(out, u.info.diags)
	return out
}

func sortDiagnostics(diags []Diagnostic) {
	sort.SliceStable(diags, func(i, j int) bool {
		if diags[i].Start != diags[j].Start {
			return diags[i].Start < diags[j].Start
		}
		return diags[i].Code < diags[j].Code
	})
}
