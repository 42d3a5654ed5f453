package constants

// ThriftDB service.
const (
	// DefaultBaseURL is the root of the hosted ThriftDB API.
	DefaultBaseURL = "http://api.thriftdb.com"

	// BulkPathSegment prefixes every bulk action path.
	BulkPathSegment = "_bulk"

	// BulkIDsParam is the query parameter carrying comma-joined item ids.
	BulkIDsParam = "ids"

	// IDSeparator joins item ids in bulk requests.
	IDSeparator = ","
)

// Bulk actions.
const (
	ActionPutMulti    = "put_multi"
	ActionGetMulti    = "get_multi"
	ActionDeleteMulti = "delete_multi"
	ActionReindex     = "reindex"
)

// HTTP headers and content types.
const (
	// HeaderAccept is the Accept header name.
	HeaderAccept = "Accept"

	// HeaderContentType is the Content-Type header name.
	HeaderContentType = "Content-Type"

	// HeaderUserAgent is the User-Agent header name.
	HeaderUserAgent = "User-Agent"

	// ContentTypeJSON is sent for every request body.
	ContentTypeJSON = "application/json"

	// DefaultUserAgent identifies this client.
	DefaultUserAgent = "thriftdb-go/" + Version
)

// Version of the client library and CLI.
const Version = "0.1.0"

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600
)

// CLI configuration.
const (
	// ConfigDirName is created under the user's home directory.
	ConfigDirName = ".thriftdb"

	// ConfigFileName is the config file base name (without extension).
	ConfigFileName = "config"

	// ConfigFileType is the config file format.
	ConfigFileType = "yml"

	// EnvPrefix prefixes environment variables read by the CLI.
	EnvPrefix = "THRIFTDB"
)

// Format constants.
const (
	// FormatTable for table output format.
	FormatTable = "table"

	// FormatJSON for JSON output format.
	FormatJSON = "json"

	// FormatYAML for YAML output format.
	FormatYAML = "yaml"
)

// UI and display constants.
const (
	// NotAvailable is used when information is not available.
	NotAvailable = "N/A"

	// MaskedSecret is used to hide sensitive information.
	MaskedSecret = "***"
)

// Validation and limits.
const (
	// MinimumArgumentCount is the minimum number of command line arguments.
	MinimumArgumentCount = 2

	// ItemArgumentCount is bucket, collection and item id.
	ItemArgumentCount = 3

	// QueryPairParts is the number of parts in a key=value query flag.
	QueryPairParts = 2
)
