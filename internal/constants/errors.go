package constants

import "errors"

// Configuration errors.
var (
	ErrUnknownConfigKey = errors.New("unknown configuration key")
	ErrNoHostInURL      = errors.New("no host specified in URL")
	ErrUnsupportedURL   = errors.New("URL scheme must be http or https")
)

// Input errors.
var (
	ErrInvalidQueryPair = errors.New("query parameter must be in key=value form")
	ErrPayloadRequired  = errors.New("one of --data or --file is required")
	ErrPayloadConflict  = errors.New("payload flags are mutually exclusive")
	ErrSchemaRequired   = errors.New("one of --schema or --schema-file is required")
	ErrInvalidOutput    = errors.New("output format must be table, json or yaml")
	ErrUsernameRequired = errors.New("username is required")
)
