package diffalign

import (
	"github.com/johnstarich/go/diffalign/internal/patch"
	"github.com/johnstarich/go/diffalign/internal/vcs"
)

// FromChanges converts git changes into Inputs
func FromChanges(changes []vcs.Change) []Input {
	inputs := make([]Input, 0, len(changes))
	for _, c := range changes {
		inputs = append(inputs, Input{
			BeforePath: c.BeforePath,
			AfterPath:  c.AfterPath,
			Before:     c.Before,
			After:      c.After,
			Hunks:      c.Hunks,
			Binary:     c.Binary,
		})
	}
	return inputs
}

// FromPatch converts files parsed from a unified diff into Inputs
func FromPatch(files []patch.File) []Input {
	inputs := make([]Input, 0, len(files))
	for _, f := range files {
		inputs = append(inputs, Input{
			BeforePath: f.OldName,
			AfterPath:  f.NewName,
			Before:     f.Before,
			After:      f.After,
			Hunks:      f.Hunks,
			Binary:     f.Binary,
		})
	}
	return inputs
}
