package sqlerr

import (
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/deppfellow/starwars-api/internal/errs"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gorm.io/gorm"
)

var (
	uniqueKeyPattern  = regexp.MustCompile(`_([^_]+)_(?:key|ukey)$`)
	foreignKeyPattern = regexp.MustCompile(`^[a-z]+_([a-z_]+_id)_fkey$`)
)

// ConvertPgError converts a pgconn.PgError (raw Postgres error) into our custom sqlerr.Error.
//
// SQLSTATE and Severity are mapped into our enums for easier switching.
func ConvertPgError(src *pgconn.PgError) *Error {
	return &Error{
		Code:           MapCode(src.Code),
		Severity:       MapSeverity(src.Severity),
		DatabaseCode:   src.Code,
		Message:        src.Message,
		SchemaName:     src.SchemaName,
		TableName:      src.TableName,
		ColumnName:     src.ColumnName,
		DataTypeName:   src.DataTypeName,
		ConstraintName: src.ConstraintName,
		driverErr:      src,
	}
}

// generateErrorCode creates consistent "application error codes" from DB errors.
//
// Output format:
//
//	<DOMAIN>_<ACTION>
//
// Example:
//
//	users + UniqueViolation => USER_ALREADY_EXISTS
func generateErrorCode(tableName string, errType Code) string {
	if tableName == "" {
		tableName = "RECORD"
	}

	domain := strings.ToUpper(tableName)

	// "USERS" -> "USER". Good enough for this schema.
	if strings.HasSuffix(domain, "S") && len(domain) > 1 {
		domain = domain[:len(domain)-1]
	}

	action := "ERROR"
	switch errType {
	case ForeignKeyViolation:
		action = "NOT_FOUND"
	case UniqueViolation:
		action = "ALREADY_EXISTS"
	case NotNullViolation:
		action = "REQUIRED"
	case CheckViolation:
		action = "INVALID"
	}

	return fmt.Sprintf("%s_%s", domain, action)
}

// formatUserFriendlyMessage produces an end-user-facing error message.
func formatUserFriendlyMessage(sqlErr *Error) string {
	entityName := getEntityName(sqlErr.TableName, sqlErr.ColumnName)

	switch sqlErr.Code {
	case ForeignKeyViolation:
		return fmt.Sprintf("The referenced %s does not exist", entityName)

	case UniqueViolation:
		// "identifier" is replaced later when the column can be inferred.
		return fmt.Sprintf("A %s with this identifier already exists", entityName)

	case NotNullViolation:
		fieldName := humanizeText(sqlErr.ColumnName)
		if fieldName == "" {
			fieldName = "field"
		}
		return fmt.Sprintf("The %s is required", fieldName)

	case CheckViolation:
		fieldName := humanizeText(sqlErr.ColumnName)
		if fieldName != "" {
			return fmt.Sprintf("The %s value does not meet required conditions", fieldName)
		}
		return "One or more values do not meet required conditions"

	default:
		return "An error occurred while processing your request"
	}
}

// getEntityName tries to infer an entity name from table/column data.
//
// Priority rules:
//  1. If column ends with "_id", use that base name ("user_id" -> "User").
//  2. Otherwise use table name, singularized if it ends with "s".
//  3. Otherwise fallback to "record".
func getEntityName(tableName, columnName string) string {
	if columnName != "" && strings.HasSuffix(strings.ToLower(columnName), "_id") {
		entity := strings.TrimSuffix(strings.ToLower(columnName), "_id")
		return humanizeText(entity)
	}

	if tableName != "" {
		entity := tableName
		if strings.HasSuffix(entity, "s") && len(entity) > 1 {
			entity = entity[:len(entity)-1]
		}
		return humanizeText(entity)
	}

	return "record"
}

// humanizeText converts snake_case into Title Case.
//
//	"skin_color" -> "Skin Color"
func humanizeText(text string) string {
	if text == "" {
		return ""
	}
	return cases.Title(language.English).String(strings.ReplaceAll(text, "_", " "))
}

// extractColumnForUniqueViolation tries to infer the column name from a unique constraint name.
//
// It supports two conventions:
//
//  1. "unique_<table>_<column>"
//     Example: unique_users_email -> "email"
//
//  2. "<table>_<column>_(key|ukey)"
//     Example: users_email_key -> "email"
func extractColumnForUniqueViolation(constraintName string) string {
	if constraintName == "" {
		return ""
	}

	if strings.HasPrefix(constraintName, "unique_") {
		parts := strings.Split(constraintName, "_")
		if len(parts) >= 3 {
			return parts[len(parts)-1]
		}
	}

	matches := uniqueKeyPattern.FindStringSubmatch(constraintName)
	if len(matches) > 1 {
		return matches[1]
	}

	return ""
}

// extractColumnForForeignKey reads the referencing column out of a
// Postgres default FK name: favorites_character_id_fkey -> character_id.
func extractColumnForForeignKey(constraintName string) string {
	matches := foreignKeyPattern.FindStringSubmatch(constraintName)
	if len(matches) > 1 {
		return matches[1]
	}
	return ""
}

// HandleError converts a low-level database error into an application-level error.
//
// Output:
//   - If already *errs.HTTPError: returned unchanged
//   - If pgconn.PgError: mapped to a conflict, not found or bad request error
//   - If a GORM translated sentinel: mapped the same way, with generic wording
//   - If no rows: mapped to errs.NewNotFoundError
//   - Otherwise: errs.NewInternalServerError
func HandleError(err error) error {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}

	var pgerr *pgconn.PgError
	if errors.As(err, &pgerr) {
		sqlErr := ConvertPgError(pgerr)

		switch sqlErr.Code {
		case ForeignKeyViolation:
			// The missing row is the referenced one, not the row being written.
			if sqlErr.ColumnName == "" {
				sqlErr.ColumnName = extractColumnForForeignKey(sqlErr.ConstraintName)
			}
			referenced := strings.TrimSuffix(strings.ToLower(sqlErr.ColumnName), "_id")
			errorCode := generateErrorCode(referenced, ForeignKeyViolation)
			return errs.NewNotFoundError(formatUserFriendlyMessage(sqlErr), true, &errorCode)

		case UniqueViolation:
			errorCode := generateErrorCode(sqlErr.TableName, sqlErr.Code)
			userMessage := formatUserFriendlyMessage(sqlErr)
			columnName := extractColumnForUniqueViolation(sqlErr.ConstraintName)
			if columnName != "" {
				userMessage = strings.ReplaceAll(userMessage, "identifier", humanizeText(columnName))
			}
			return errs.NewConflictError(userMessage, true, &errorCode)

		case NotNullViolation:
			errorCode := generateErrorCode(sqlErr.TableName, sqlErr.Code)
			fieldErrors := []errs.FieldError{
				{
					Field: strings.ToLower(sqlErr.ColumnName),
					Error: "is required",
				},
			}
			return errs.NewBadRequestError(formatUserFriendlyMessage(sqlErr), true, &errorCode, fieldErrors)

		case CheckViolation:
			errorCode := generateErrorCode(sqlErr.TableName, sqlErr.Code)
			return errs.NewBadRequestError(formatUserFriendlyMessage(sqlErr), true, &errorCode, nil)

		default:
			// Unknown DB errors must not leak details to clients.
			return errs.NewInternalServerError()
		}
	}

	// GORM dialects with TranslateError enabled replace driver errors with
	// these sentinels and drop the table metadata.
	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		table := tableFromError(err)
		code := generateErrorCode(table, UniqueViolation)
		return errs.NewConflictError(
			fmt.Sprintf("A %s with this identifier already exists", getEntityName(table, "")), true, &code)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		code := generateErrorCode("", ForeignKeyViolation)
		return errs.NewNotFoundError("The referenced record does not exist", true, &code)
	}

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound), errors.Is(err, pgx.ErrNoRows), errors.Is(err, sql.ErrNoRows):
		if table := tableFromError(err); table != "" {
			return errs.NewNotFoundError(fmt.Sprintf("%s not found", getEntityName(table, "")), true, nil)
		}
		return errs.NewNotFoundError("Resource not found", false, nil)
	}

	return errs.NewInternalServerError()
}

// tableFromError reads the table name repositories put in front of their
// errors as "table:<name>:". It returns "" when there is none.
func tableFromError(err error) string {
	const tablePrefix = "table:"

	_, rest, ok := strings.Cut(err.Error(), tablePrefix)
	if !ok {
		return ""
	}
	table, _, _ := strings.Cut(rest, ":")
	return table
}
