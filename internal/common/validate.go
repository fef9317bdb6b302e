package common

// CheckValid returns a ValidationError carrying message when ok is false.
//
// Constructors chain it the same way for every field:
//
//	if err := common.CheckValid(quantity > 0, "invalid quantity"); err != nil {
//		return nil, err
//	}
func CheckValid(ok bool, message string) error {
	if ok {
		return nil
	}
	return &ValidationError{Message: message}
}

// FirstInvalid returns the first non-nil error, letting constructors validate
// several fields in one expression.
func FirstInvalid(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
