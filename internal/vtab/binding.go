package vtab

import (
	"errors"
	"fmt"
)

// ErrConstraintBinding is returned when Filter arguments do not match the
// bind mode they were planned for.
var ErrConstraintBinding = errors.New("constraint binding failed")

// QueryBinding holds the parameters of one Filter call.
type QueryBinding struct {
	Repository *string
	Revision   *string
	Mode       BindMode
}

// RepositoryPath returns the bound repository path or fallback.
func (b QueryBinding) RepositoryPath(fallback string) string {
	if b.Repository != nil {
		return *b.Repository
	}
	return fallback
}

// RevisionOrHead returns the bound revision or "" for HEAD.
func (b QueryBinding) RevisionOrHead() string {
	if b.Revision != nil {
		return *b.Revision
	}
	return ""
}

// Bind reads the Filter arguments of mode. Arguments arrive in ascending
// column order of hidden.
func Bind(mode BindMode, hidden HiddenColumns, args []any) (QueryBinding, error) {
	b := QueryBinding{Mode: mode}
	if len(args) < mode.Arity() {
		return QueryBinding{}, fmt.Errorf("%w: %s expects %d arguments, got %d", ErrConstraintBinding, mode, mode.Arity(), len(args))
	}

	var err error
	switch mode {
	case Unbound:
	case RevisionBound:
		b.Revision, err = textArg("revision", args[0])
	case RepositoryBound:
		b.Repository, err = textArg("repository", args[0])
	case BothBound:
		repoArg, revArg := args[0], args[1]
		if hidden.Revision < hidden.Repository {
			repoArg, revArg = revArg, repoArg
		}
		if b.Repository, err = textArg("repository", repoArg); err != nil {
			return QueryBinding{}, err
		}
		b.Revision, err = textArg("revision", revArg)
	default:
		err = fmt.Errorf("%w: unknown bind mode %d", ErrConstraintBinding, int(mode))
	}
	if err != nil {
		return QueryBinding{}, err
	}
	return b, nil
}

func textArg(name string, v any) (*string, error) {
	var s string
	switch x := v.(type) {
	case string:
		s = x
	case []byte:
		if x == nil {
			return nil, fmt.Errorf("%w: %s is NULL", ErrConstraintBinding, name)
		}
		s = string(x)
	case nil:
		return nil, fmt.Errorf("%w: %s is NULL", ErrConstraintBinding, name)
	default:
		return nil, fmt.Errorf("%w: %s must be text, got %T", ErrConstraintBinding, name, v)
	}
	if s == "" {
		return nil, fmt.Errorf("%w: %s is empty", ErrConstraintBinding, name)
	}
	return &s, nil
}
