package validate

import (
	"strings"

	"github.com/jlaustill/c-next/errors"
)

var implementationExtensions = []string{".c", ".cpp", ".cc", ".cxx"}

// ValidateInclude implements spec.md §4.11's include-directive rule:
// implementation files are never includable (*IncludeImplementationFile*);
// a `.h`/`.hpp` header with a `.cnx` sibling must be replaced by including
// the `.cnx` form instead (*CnxAlternativeExists*).
func ValidateInclude(path string, hasCnxSibling bool) error {
	for _, ext := range implementationExtensions {
		if strings.HasSuffix(path, ext) {
			return errors.New(errors.PhaseValidate, errors.KindIncludeImplementationFile).
				Path(path).
				Detail("cannot include an implementation file %q", path).
				Build()
		}
	}
	if (strings.HasSuffix(path, ".h") || strings.HasSuffix(path, ".hpp")) && hasCnxSibling {
		return errors.New(errors.PhaseValidate, errors.KindCnxAlternativeExists).
			Path(path).
			Detail("use the .cnx form instead of %q", path).
			Build()
	}
	return nil
}
