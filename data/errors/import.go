package errors

// ImportError is a css @import of Importer that could not be inlined.
type ImportError struct {
	Importer string
	Import   string
	Err      error
}

func (e *ImportError) Error() string {
	return newError(e.Err, "unable to inline '%s' into '%s'", e.Import, e.Importer)
}

func (e *ImportError) Unwrap() error {
	return e.Err
}

func ImportNotFound(importer, imp string) error {
	return &ImportError{
		Importer: importer,
		Import:   imp,
		Err:      ErrImportNotFound,
	}
}

func ImportCycle(importer, imp string) error {
	return &ImportError{
		Importer: importer,
		Import:   imp,
		Err:      ErrImportCycle,
	}
}
