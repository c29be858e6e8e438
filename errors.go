package dawg

import "errors"

var (
	ErrUsage       = errors.New("dawg: usage")
	ErrLineLength  = errors.New("dawg: invalid line length")
	ErrInvalidWord = errors.New("dawg: invalid word")
	ErrOutOfOrder  = errors.New("dawg: word out of sequence")
	ErrCapacity    = errors.New("dawg: dictionary full")
	ErrIndexFull   = errors.New("dawg: hash table full")
	ErrInternal    = errors.New("dawg: internal error")
	ErrBadConfig   = errors.New("dawg: invalid configuration")
	ErrCorrupt     = errors.New("dawg: corrupt file")
)
