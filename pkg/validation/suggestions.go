// ABOUTME: Fixed suggestion text per error code
// ABOUTME: Lookup table, no free text generation

package validation

import "github.com/mkearney/huntstore/pkg/schema"

var suggestions = map[string]string{
	schema.CodeMissingField:  "add the required field at the indicated path",
	schema.CodeTypeMismatch:  "check the value type at the indicated path",
	schema.CodeStringTooLong: "shorten the value to the documented maximum length",
	schema.CodeInvalidEnum:   "use one of the valid options listed in the message",
	schema.CodeInvalidFormat: "format the value as stated in the message",
	schema.CodeDuplicate:     "remove or merge the duplicated entry",
	CodeMissingSchemaVersion: "set schemaVersion to the latest published version",
	CodeMigrationFailed:      "register the missing migration step or upgrade the document manually",
	CodeUnknownKind:          "register the document kind before validating",
	CodeUnknownVersion:       "register a schema for this version or migrate the document",
	CodeValidationException:  "report this document, the validator rejected it abnormally",
}

func suggestionFor(code string) string {
	return suggestions[code]
}
