package log

// Common field names for structured logging
const (
	FieldComponent  = "component"
	FieldRequestID  = "request_id"
	FieldClientIP   = "client_ip"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldStatusCode = "status_code"
	FieldDuration   = "duration_ms"
	FieldUserAgent  = "user_agent"
	FieldError      = "error"
	FieldUserID     = "user_id"
	FieldRecordID   = "record_id"
	FieldRecordType = "record_type"
	FieldEmail      = "email"
)

// ComponentApp tags records from the process-level logger.
const ComponentApp = "app"
