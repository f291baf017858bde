package log

// Common field names for structured logging
const (
	FieldComponent   = "component"
	FieldError       = "error"
	FieldOperation   = "operation"
	FieldPath        = "path"
	FieldSchema      = "schema"
	FieldRecordID    = "record_id"
	FieldRecordCount = "record_count"
	FieldRevision    = "revision"
	FieldReportID    = "report_id"
	FieldBackupPath  = "backup_path"
	FieldUser        = "user"
	FieldDuration    = "duration_ms"
)

// Components defines standard component names
const (
	ComponentApp      = "app"
	ComponentStore    = "store"
	ComponentEngine   = "engine"
	ComponentLedger   = "ledger"
	ComponentSchema   = "schema"
	ComponentBackup   = "backup"
	ComponentSecurity = "security"
	ComponentCache    = "cache"
	ComponentExport   = "export"
	ComponentReport   = "report"
	ComponentTUI      = "tui"
)

// Operations defines standard operation names
const (
	OpLoad     = "load"
	OpSave     = "save"
	OpAdd      = "add"
	OpUpdate   = "update"
	OpDelete   = "delete"
	OpQuery    = "query"
	OpExport   = "export"
	OpBackup   = "backup"
	OpLogin    = "login"
	OpStartup  = "startup"
	OpShutdown = "shutdown"
)
