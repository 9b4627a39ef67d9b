package errors

import "errors"

// ErrorInfo holds user-facing message and suggested action for an error.
type ErrorInfo struct {
	// Message is the user-friendly error description.
	Message string
	// Action is a suggested action to resolve the issue (empty if none).
	Action string
}

// errorEntry pairs a sentinel error with its user-facing info.
type errorEntry struct {
	err  error
	info ErrorInfo
}

// errorInfoEntries maps sentinel errors to their user-facing messages.
// A slice (not a map) because errors.Is() requires chain traversal and
// the first match wins.
//
//nolint:gochecknoglobals // Pre-built mapping for efficiency
var errorInfoEntries = []errorEntry{
	// ===================
	// Cryptographic core
	// ===================
	{
		err: ErrKeyFormat,
		info: ErrorInfo{
			Message: "The key material is invalid or too short.",
			Action:  "Keys must be 32 bytes. Generate a fresh key with 'rcli text generate'.",
		},
	},
	{
		err: ErrCryptoFailure,
		info: ErrorInfo{
			Message: "Decryption failed. The ciphertext was modified or the key is wrong.",
			Action:  "Check that you are using the same key (and nonce mode) used for encryption.",
		},
	},
	{
		err: ErrEncoding,
		info: ErrorInfo{
			Message: "The input is not valid base64.",
			Action:  "Signatures and ciphertexts must be base64url encoded without padding.",
		},
	},
	{
		err: ErrUnsupportedFormat,
		info: ErrorInfo{
			Message: "Unsupported format.",
			Action:  "Use --format blake3 or --format ed25519.",
		},
	},
	{
		err: ErrIO,
		info: ErrorInfo{
			Message: "Could not read or write a file.",
			Action:  "Check that the path exists and that you have the required permissions.",
		},
	},

	// ===================
	// Tooling
	// ===================
	{
		err: ErrJWTSecretMissing,
		info: ErrorInfo{
			Message: "No JWT secret is configured.",
			Action:  "Set RCLI_JWT_SECRET or jwt.secret in ~/.rcli/config.yaml.",
		},
	},
	{
		err: ErrTokenInvalid,
		info: ErrorInfo{
			Message: "The token is invalid or has expired.",
			Action:  "Issue a new token with 'rcli jwt sign'.",
		},
	},
	{
		err: ErrNoCharacterSet,
		info: ErrorInfo{
			Message: "At least one character set must be enabled.",
			Action:  "Enable one of --uppercase, --lowercase, --number or --symbol.",
		},
	},
	{
		err: ErrCSVInvalid,
		info: ErrorInfo{
			Message: "The CSV file could not be converted.",
			Action:  "Check that every row has the same number of columns as the header.",
		},
	},
	{
		err: ErrPathNotFound,
		info: ErrorInfo{
			Message: "The specified path does not exist.",
			Action:  "Check the path, or use '-' to read from standard input.",
		},
	},
	{
		err: ErrConfigInvalid,
		info: ErrorInfo{
			Message: "Invalid configuration.",
			Action:  "Check ~/.rcli/config.yaml and .rcli/config.yaml for invalid values.",
		},
	},
	{
		err: ErrConfigNil,
		info: ErrorInfo{
			Message: "Configuration is not loaded.",
			Action:  "Ensure the config file exists and is valid YAML.",
		},
	},
	{
		err: ErrInvalidDuration,
		info: ErrorInfo{
			Message: "Invalid duration format.",
			Action:  "Use formats like '30m', '12h', '14d' or '2w'.",
		},
	},
	{
		err: ErrValueOutOfRange,
		info: ErrorInfo{
			Message: "Value is outside the allowed range.",
			Action:  "Check the command help for valid value ranges.",
		},
	},
	{
		err: ErrLockTimeout,
		info: ErrorInfo{
			Message: "Could not acquire lock. Another process may be writing keys.",
			Action:  "Wait and try again.",
		},
	},
	{
		err: ErrVerificationFailed,
		info: ErrorInfo{
			Message: "The signature does not match the input.",
			Action:  "Check that the input, key file and --format match the ones used to sign.",
		},
	},
	{
		err: ErrInvalidArgument,
		info: ErrorInfo{
			Message: "An invalid argument was provided.",
			Action:  "Check the command help for valid arguments.",
		},
	},
}

// errorInfoMap provides O(1) lookup for direct sentinel error matches.
//
//nolint:gochecknoglobals // Pre-built mapping for O(1) lookup performance
var errorInfoMap = buildErrorInfoMap()

func buildErrorInfoMap() map[error]ErrorInfo {
	m := make(map[error]ErrorInfo, len(errorInfoEntries))
	for _, entry := range errorInfoEntries {
		m[entry.err] = entry.info
	}
	return m
}

// getErrorInfo looks up the ErrorInfo for a given error.
// It first tries a direct map lookup for unwrapped sentinels, then falls
// back to errors.Is() traversal. Unknown errors keep their own message.
func getErrorInfo(err error) ErrorInfo {
	if info, ok := errorInfoMap[err]; ok {
		return info
	}

	for _, entry := range errorInfoEntries {
		if errors.Is(err, entry.err) {
			return entry.info
		}
	}

	return ErrorInfo{Message: err.Error()}
}

// UserMessage returns a user-friendly message for common errors.
// For unrecognized errors, it returns the error's original message.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	return getErrorInfo(err).Message
}

// Actionable returns a user-friendly error message along with a suggested
// action the user can take to resolve the issue.
func Actionable(err error) (message, action string) {
	if err == nil {
		return "", ""
	}
	info := getErrorInfo(err)
	return info.Message, info.Action
}
