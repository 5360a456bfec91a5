package codes

// ExitCodes maps conventional process exit codes to their descriptions.
// Codes outside this table are reported as a bare number.
var ExitCodes = map[int]string{
	1:   "General failure",
	2:   "Misuse of shell builtin",
	64:  "Command line usage error",
	65:  "Data format error",
	66:  "Cannot open input",
	69:  "Service unavailable",
	70:  "Internal software error",
	71:  "System error",
	73:  "Cannot create output file",
	74:  "Input/output error",
	75:  "Temporary failure",
	77:  "Permission denied",
	78:  "Configuration error",
	101: "Panicked",
	126: "Command found but not executable",
	127: "Command not found",
	130: "Terminated by Ctrl-C",
}

// IsSuccess returns true if the exit code indicates success
func IsSuccess(code int) bool {
	return code == 0
}

// Describe returns the description for a given exit code, and whether one is known
func Describe(code int) (string, bool) {
	msg, ok := ExitCodes[code]
	return msg, ok
}
