package gen

import (
	"lifecycle-generator/internal/common"
	"lifecycle-generator/internal/diagnostic"
	"lifecycle-generator/internal/model"
)

// FragmentSuffix ends the name of every generated file.
const FragmentSuffix = ".Lifecycle.g.cs"

// Fragment is the generated augmentation of one type.
type Fragment struct {
	// Type is the augmented type.
	Type model.TypeID
	// FilePath is the source file declaring the type.
	FilePath string
	// Filename is the name of the generated file.
	Filename string
	// Content is the rendered source text.
	Content []byte
	// Diagnostics collects everything reported while synthesizing the type,
	// whether or not it is embedded in Content.
	Diagnostics diagnostic.Diagnostics
	// ConstructorHook is spliced at the start of the guarded Initialize region.
	ConstructorHook string
	// FinalizerHook runs first in the synthesized finalizer.
	FinalizerHook string
	// Err is set when the type hit an internal invariant violation. Other
	// fragments are unaffected.
	Err error `msgpack:"-"`
}

// GeneratedFile represents a file ready to be written.
type GeneratedFile struct {
	// Filename is the name of the file (e.g., "Resource.Resource.Lifecycle.g.cs").
	Filename string
	// Content is the file content.
	Content []byte
}

// File returns the file to write for the fragment.
func (f *Fragment) File() GeneratedFile {
	return GeneratedFile{Filename: f.Filename, Content: f.Content}
}

// FragmentFilename returns "<stem>.<Type>.Lifecycle.g.cs", where stem is the
// name of the file declaring the type.
func FragmentFilename(t *model.TypeSymbol) string {
	return common.JoinNonEmpty(".", common.FileStem(t.FilePath), t.ID.Name) + FragmentSuffix
}

// Files returns the files of all fragments, in order.
func Files(fragments []*Fragment) []GeneratedFile {
	return common.Map(fragments, (*Fragment).File)
}

// Diagnostics merges the diagnostics of all fragments, in order.
func Diagnostics(fragments []*Fragment) diagnostic.Diagnostics {
	var all diagnostic.Diagnostics
	for _, f := range fragments {
		all.Merge(f.Diagnostics)
	}

	return all
}
