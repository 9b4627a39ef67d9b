// Package logging provides zerolog helpers that keep key material and
// secrets out of rcli's logs.
//
// Core packages never log key bytes. These filters are the second line: the
// rotating file log is wrapped in a FilteringWriter, and every logger carries
// a SensitiveDataHook that flags messages that look like they carry secrets.
package logging

import (
	"io"
	"regexp"
	"strings"

	"github.com/rs/zerolog"
)

// RedactedValue is the replacement string for sensitive data.
const RedactedValue = "[REDACTED]"

// sensitivePatterns match secrets rcli handles or is commonly fed.
var sensitivePatterns = []*regexp.Regexp{ //nolint:gochecknoglobals // Package-level patterns for reuse
	// JSON Web Tokens: three base64url segments, the first two starting with a JSON object.
	regexp.MustCompile(`eyJ[a-zA-Z0-9_-]{5,}\.eyJ[a-zA-Z0-9_-]{5,}\.[a-zA-Z0-9_-]*`),

	// Bearer tokens
	regexp.MustCompile(`(?i)bearer\s+[a-zA-Z0-9._-]{20,}`),

	// Assignments of secret-bearing settings, including RCLI_JWT_SECRET=... and jwt.secret: ...
	regexp.MustCompile(`(?i)(secret|password|passwd|pwd|credential)["']?\s*[:=]\s*["']?[^\s"',}]{6,}["']?`),

	// Key text passed on the command line (-k/--key)
	regexp.MustCompile(`(?i)(--key|-k)[\s=]+["']?[^\s"']{16,}["']?`),

	// PEM private keys
	regexp.MustCompile(`(?i)-----BEGIN[A-Z\s]+PRIVATE KEY-----`),
}

// sensitiveFieldNames are log field names whose values are always redacted.
// Matching is case-insensitive and by substring.
var sensitiveFieldNames = []string{ //nolint:gochecknoglobals // Package-level patterns for reuse
	"secret",
	"password",
	"passwd",
	"credential",
	"private_key",
	"privatekey",
	"signing_key",
	"key_text",
	"key_bytes",
	"seed",
	"token",
	"authorization",
	"bearer",
}

// SensitiveDataHook is a zerolog hook that marks log entries whose message
// looks like it carries sensitive data.
type SensitiveDataHook struct{}

// NewSensitiveDataHook creates a new SensitiveDataHook.
func NewSensitiveDataHook() *SensitiveDataHook {
	return &SensitiveDataHook{}
}

// Run implements zerolog.Hook. Zerolog does not let hooks rewrite the
// message, so the entry is flagged and the FilteringWriter does the
// redaction on the way to disk.
func (h *SensitiveDataHook) Run(e *zerolog.Event, _ zerolog.Level, msg string) {
	if ContainsSensitiveData(msg) {
		e.Bool("contains_filtered_data", true)
	}
}

// ContainsSensitiveData reports whether s matches any sensitive pattern.
func ContainsSensitiveData(s string) bool {
	for _, pattern := range sensitivePatterns {
		if pattern.MatchString(s) {
			return true
		}
	}
	return false
}

// FilterSensitiveValue replaces every sensitive match in value with [REDACTED].
func FilterSensitiveValue(value string) string {
	result := value
	for _, pattern := range sensitivePatterns {
		result = pattern.ReplaceAllString(result, RedactedValue)
	}
	return result
}

// IsSensitiveFieldName reports whether fieldName names sensitive data.
func IsSensitiveFieldName(fieldName string) bool {
	lowerName := strings.ToLower(fieldName)
	for _, sensitive := range sensitiveFieldNames {
		if strings.Contains(lowerName, sensitive) {
			return true
		}
	}
	return false
}

// SafeValue returns [REDACTED] for sensitive field names and the filtered
// value otherwise.
//
//	log.Debug().Str("token", logging.SafeValue("token", tok)).Msg("verifying")
func SafeValue(fieldName, value string) string {
	if IsSensitiveFieldName(fieldName) {
		return RedactedValue
	}
	return FilterSensitiveValue(value)
}

// FilteringWriter wraps an io.Writer and redacts sensitive data from
// everything written through it.
type FilteringWriter struct {
	w io.Writer
}

// NewFilteringWriter creates a new FilteringWriter around w.
func NewFilteringWriter(w io.Writer) *FilteringWriter {
	return &FilteringWriter{w: w}
}

// Write implements io.Writer. It reports len(p) on success even when
// redaction changed the number of bytes written.
func (fw *FilteringWriter) Write(p []byte) (n int, err error) {
	filtered := FilterSensitiveValue(string(p))
	if _, err = fw.w.Write([]byte(filtered)); err != nil {
		return 0, err
	}
	return len(p), nil
}

// FilteringWriteCloser is a FilteringWriter that also closes the
// underlying writer, for wrapping rotating log files.
type FilteringWriteCloser struct {
	*FilteringWriter
	closer io.Closer
}

// NewFilteringWriteCloser wraps wc with redaction.
func NewFilteringWriteCloser(wc io.WriteCloser) *FilteringWriteCloser {
	return &FilteringWriteCloser{FilteringWriter: NewFilteringWriter(wc), closer: wc}
}

// Close closes the underlying writer.
func (f *FilteringWriteCloser) Close() error {
	return f.closer.Close()
}
