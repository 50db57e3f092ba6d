package model

// Output formats
const (
	OutputPlain    = "plain"
	OutputTable    = "table"
	OutputJSON     = "json"
	OutputTemplate = "template"
)

// Headers sent to the time entry endpoint
const (
	HeaderAPIKey    = "X-API-Key"
	HeaderRequestID = "X-Request-ID"
)

// Environment overrides
const (
	EnvAPIKey = "TIMET_KEY"
	EnvURL    = "TIMET_URL"
)

// FagdagMarker is printed above the project lines when a fagdag is reported.
const FagdagMarker = "En stk fagdag"
