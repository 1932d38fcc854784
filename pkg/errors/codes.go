package errors

// ErrorCode is a string representation of a specific error condition.
type ErrorCode string

func (c ErrorCode) String() string {
	return string(c)
}

// Common Error Codes
const (
	ErrCodeInternal       ErrorCode = "COMMON_001"
	ErrCodeBadRequest     ErrorCode = "COMMON_002"
	ErrCodeNotFound       ErrorCode = "COMMON_005"
	ErrCodeTimeout        ErrorCode = "COMMON_009"
	ErrCodeValidation     ErrorCode = "COMMON_010"
	ErrCodeSerialization  ErrorCode = "COMMON_011"
	ErrCodeNotImplemented ErrorCode = "COMMON_016"
	ErrCodeConfigInvalid  ErrorCode = "COMMON_017"
	ErrCodeMetricsExport  ErrorCode = "COMMON_018"
)

// Kandang (house feasibility) Module Error Codes
const (
	ErrCodeInvalidInput          ErrorCode = "KDG_001"
	ErrCodeDatasetUnreadable     ErrorCode = "KDG_002"
	ErrCodeDatasetColumnsMissing ErrorCode = "KDG_003"
	ErrCodeDatasetEmpty          ErrorCode = "KDG_004"
)

// Short aliases used at call sites.
const (
	CodeInternal       = ErrCodeInternal
	CodeInvalidParam   = ErrCodeBadRequest
	CodeNotFound       = ErrCodeNotFound
	CodeNotImplemented = ErrCodeNotImplemented
	CodeInvalidInput   = ErrCodeInvalidInput
	CodeUnknown        = ErrorCode("")
	CodeOK             = ErrorCode("OK")
)

// Process exit codes returned by the CLI.  They follow the BSD sysexits
// convention where one exists.
const (
	ExitOK          = 0
	ExitFailure     = 1
	ExitUsage       = 64 // EX_USAGE
	ExitDataErr     = 65 // EX_DATAERR
	ExitNoInput     = 66 // EX_NOINPUT
	ExitSoftware    = 70 // EX_SOFTWARE
	ExitIOErr       = 74 // EX_IOERR
	ExitConfigError = 78 // EX_CONFIG
)

// ErrorCodeExitStatus maps ErrorCodes to process exit statuses.
var ErrorCodeExitStatus = map[ErrorCode]int{
	ErrCodeInternal:       ExitSoftware,
	ErrCodeBadRequest:     ExitUsage,
	ErrCodeNotFound:       ExitNoInput,
	ErrCodeTimeout:        ExitFailure,
	ErrCodeValidation:     ExitDataErr,
	ErrCodeSerialization:  ExitSoftware,
	ErrCodeNotImplemented: ExitSoftware,
	ErrCodeConfigInvalid:  ExitConfigError,
	ErrCodeMetricsExport:  ExitIOErr,

	ErrCodeInvalidInput:          ExitDataErr,
	ErrCodeDatasetUnreadable:     ExitNoInput,
	ErrCodeDatasetColumnsMissing: ExitDataErr,
	ErrCodeDatasetEmpty:          ExitDataErr,
}

// ErrorCodeMessage maps ErrorCodes to default messages.
var ErrorCodeMessage = map[ErrorCode]string{
	ErrCodeInternal:       "internal error",
	ErrCodeBadRequest:     "bad request",
	ErrCodeNotFound:       "resource not found",
	ErrCodeTimeout:        "operation timed out",
	ErrCodeValidation:     "validation failed",
	ErrCodeSerialization:  "serialization failed",
	ErrCodeNotImplemented: "not implemented",
	ErrCodeConfigInvalid:  "invalid configuration",
	ErrCodeMetricsExport:  "failed to export metrics",

	ErrCodeInvalidInput:          "invalid house input",
	ErrCodeDatasetUnreadable:     "dataset could not be read",
	ErrCodeDatasetColumnsMissing: "dataset is missing required columns",
	ErrCodeDatasetEmpty:          "dataset contains no usable rows",
}

// ExitStatus returns the process exit status for code.  Unknown codes map to
// ExitFailure.
func (c ErrorCode) ExitStatus() int {
	if c == CodeOK {
		return ExitOK
	}
	if s, ok := ErrorCodeExitStatus[c]; ok {
		return s
	}
	return ExitFailure
}

// DefaultMessage returns the registered default message for code, or the code
// itself when none is registered.
func (c ErrorCode) DefaultMessage() string {
	if m, ok := ErrorCodeMessage[c]; ok {
		return m
	}
	return string(c)
}

//Personal.AI order the ending
