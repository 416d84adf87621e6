package log

// Common field names for structured logging
const (
	FieldComponent = "component"
	FieldRequestID = "request_id"
	FieldMethod    = "method"
	FieldURL       = "url"
	FieldStatus    = "status"
	FieldDuration  = "duration_ms"
	FieldError     = "error"
	FieldOperation = "operation"
	FieldDebtID    = "debt_id"
	FieldDebtName  = "debt_name"
	FieldAmount    = "amount"
	FieldKind      = "kind"
	FieldWidget    = "widget"
	FieldCount     = "count"
)

// Components defines standard component names
const (
	ComponentApp       = "app"
	ComponentAPI       = "api"
	ComponentSession   = "session"
	ComponentLedger    = "ledger"
	ComponentDashboard = "dashboard"
	ComponentChart     = "chart"
)
