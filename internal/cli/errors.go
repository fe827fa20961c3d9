package cli

import "errors"

var (
	// ErrNoConfigFile is returned when a command needs a config file and
	// neither an argument nor --config names one.
	ErrNoConfigFile = errors.New("no config file given")

	// ErrConfigNotFound is returned by show when the named file does not
	// exist.
	ErrConfigNotFound = errors.New("config file not found")

	// ErrInvalidField is returned by create for empty or repeated field
	// names.
	ErrInvalidField = errors.New("invalid field")

	// ErrInvalidBody is returned by api when --data is not valid JSON.
	ErrInvalidBody = errors.New("invalid request body")
)
