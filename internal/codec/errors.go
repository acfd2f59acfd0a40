package codec

import "errors"

// Errors classifying rejected streams and images. Decode failures are
// deterministic functions of the input and are returned, never retried;
// callers match them with errors.Is.
var (
	ErrBadMagic              = errors.New("qoi: bad magic")
	ErrUnsupportedChannels   = errors.New("qoi: unsupported channel count")
	ErrUnsupportedColorspace = errors.New("qoi: unsupported colorspace")
	ErrInvalidDimension      = errors.New("qoi: invalid image dimension")
	ErrUnexpectedEOF         = errors.New("qoi: unexpected end of data")
	ErrBadEndMarker          = errors.New("qoi: bad end marker")
	ErrTrailingData          = errors.New("qoi: data past end marker")
	ErrRunOverflow           = errors.New("qoi: run past end of image")
	ErrTooLarge              = errors.New("qoi: image too large")
)
