package logging

// Standardized field names for structured logging.
const (
	FieldFile        = "file_path"
	FieldSource      = "source"
	FieldRunID       = "run_id"
	FieldCategory    = "category"
	FieldCurrency    = "currency"
	FieldSymbol      = "symbol"
	FieldOperation   = "operation"
	FieldStatus      = "status"
	FieldError       = "error"
	FieldDuration    = "duration_ms"
	FieldCount       = "count"
	FieldDelimiter   = "delimiter"
	FieldInputFile   = "input_file"
	FieldOutputFile  = "output_file"
	FieldWindowStart = "window_start"
	FieldWindowEnd   = "window_end"
)
