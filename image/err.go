package image

import (
	"errors"

	"github.com/ezrec/umips/translate"
)

var f = translate.From

var (
	ErrImageTruncated = errors.New(f("image not a whole number of words"))
	ErrHexSyntax      = errors.New(f("hex listing syntax"))
)

// ErrHex indicates the location of a hex listing error.
type ErrHex struct {
	LineNo int
	Line   string
	Err    error
}

func (err *ErrHex) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err *ErrHex) Unwrap() error {
	return err.Err
}
