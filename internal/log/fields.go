package log

// Common field names for structured logging
const (
	FieldComponent     = "component"
	FieldError         = "error"
	FieldUserID        = "user_id"
	FieldTransactionID = "transaction_id"
	FieldKind          = "kind"
	FieldCategory      = "category"
	FieldAmountCents   = "amount_cents"
	FieldPeriod        = "period"
	FieldPhase         = "phase"
	FieldMessageID     = "message_id"
	FieldSheetsRef     = "sheets_ref"
)

// Standard component names
const (
	ComponentApp          = "app"
	ComponentBot          = "bot"
	ComponentConversation = "conversation"
	ComponentStorage      = "storage"
	ComponentStats        = "stats"
	ComponentReport       = "report"
	ComponentAMQP         = "amqp"
	ComponentWorker       = "worker"
	ComponentSheets       = "sheets"
)
