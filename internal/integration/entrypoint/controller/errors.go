// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domainerror "github.com/elliotJHarding/transactions/internal/domain/error"
	"github.com/elliotJHarding/transactions/internal/integration/entrypoint/dto"
	"github.com/elliotJHarding/transactions/internal/integration/entrypoint/middleware"
)

// handleError maps domain errors to HTTP responses. Anything unrecognised is
// logged and reported as an internal error.
func handleError(ctx *gin.Context, err error) {
	var (
		authErr    *domainerror.AuthError
		accountErr *domainerror.AccountError
		txnErr     *domainerror.TransactionError
		linkErr    *domainerror.LinkError
		tagErr     *domainerror.TagError
		ruleErr    *domainerror.RuleError
		holidayErr *domainerror.HolidayError
		reportErr  *domainerror.ReportError
	)

	var status int
	var code, message string

	switch {
	case errors.As(err, &authErr):
		status, code, message = statusForAuthError(authErr.Code), string(authErr.Code), authErr.Message
	case errors.As(err, &accountErr):
		status, code, message = statusForAccountError(accountErr.Code), string(accountErr.Code), accountErr.Message
	case errors.As(err, &txnErr):
		status, code, message = statusForTransactionError(txnErr.Code), string(txnErr.Code), txnErr.Message
	case errors.As(err, &linkErr):
		status, code, message = statusForLinkError(linkErr.Code), string(linkErr.Code), linkErr.Message
	case errors.As(err, &tagErr):
		status, code, message = statusForTagError(tagErr.Code), string(tagErr.Code), tagErr.Message
	case errors.As(err, &ruleErr):
		status, code, message = statusForRuleError(ruleErr.Code), string(ruleErr.Code), ruleErr.Message
	case errors.As(err, &holidayErr):
		status, code, message = statusForHolidayError(holidayErr.Code), string(holidayErr.Code), holidayErr.Message
	case errors.As(err, &reportErr):
		status, code, message = statusForReportError(reportErr.Code), string(reportErr.Code), reportErr.Message
	default:
		slog.Error("Unhandled request error",
			"method", ctx.Request.Method,
			"path", ctx.FullPath(),
			"error", err,
		)
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "An internal error occurred",
		})
		return
	}

	if status == http.StatusInternalServerError || status == http.StatusBadGateway {
		slog.Error("Request failed", "path", ctx.FullPath(), "code", code, "error", err)
	}

	ctx.JSON(status, dto.ErrorResponse{
		Error: message,
		Code:  code,
	})
}

func statusForAuthError(code domainerror.AuthErrorCode) int {
	switch code {
	case domainerror.ErrCodeEmailExists:
		return http.StatusConflict
	case domainerror.ErrCodeWeakPassword,
		domainerror.ErrCodeInvalidEmail,
		domainerror.ErrCodeMissingFields:
		return http.StatusBadRequest
	case domainerror.ErrCodeInvalidCredentials,
		domainerror.ErrCodeInvalidToken,
		domainerror.ErrCodeExpiredToken,
		domainerror.ErrCodeMissingToken:
		return http.StatusUnauthorized
	case domainerror.ErrCodeRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

func statusForAccountError(code domainerror.AccountErrorCode) int {
	switch code {
	case domainerror.ErrCodeAccountNotFound,
		domainerror.ErrCodeInstitutionNotFound,
		domainerror.ErrCodeRequisitionNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeRequisitionNotLinked,
		domainerror.ErrCodeMissingAccountFields:
		return http.StatusBadRequest
	case domainerror.ErrCodeImportInProgress:
		return http.StatusConflict
	case domainerror.ErrCodeBankingProvider:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func statusForTransactionError(code domainerror.TransactionErrorCode) int {
	switch code {
	case domainerror.ErrCodeTransactionNotFound,
		domainerror.ErrCodeTxnTagNotFound,
		domainerror.ErrCodeTxnHolidayNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeNotAuthorizedTransaction:
		return http.StatusForbidden
	case domainerror.ErrCodeInvalidDateRange:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func statusForLinkError(code domainerror.LinkErrorCode) int {
	switch code {
	case domainerror.ErrCodeLinkNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeDuplicateLink,
		domainerror.ErrCodeResolverBusy:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func statusForTagError(code domainerror.TagErrorCode) int {
	switch code {
	case domainerror.ErrCodeTagNameRequired,
		domainerror.ErrCodeTagNameTooLong,
		domainerror.ErrCodeTagNestingTooDeep,
		domainerror.ErrCodeChildTagCategory,
		domainerror.ErrCodeTagCategoryUnknown:
		return http.StatusBadRequest
	case domainerror.ErrCodeTagNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeTagReadOnly:
		return http.StatusForbidden
	case domainerror.ErrCodeTagHasChildren:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func statusForRuleError(code domainerror.RuleErrorCode) int {
	switch code {
	case domainerror.ErrCodeRuleExpressionRequired,
		domainerror.ErrCodeRuleExpressionTooLong,
		domainerror.ErrCodeRuleTagNotFound:
		return http.StatusBadRequest
	case domainerror.ErrCodeRuleNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func statusForHolidayError(code domainerror.HolidayErrorCode) int {
	switch code {
	case domainerror.ErrCodeHolidayNameRequired,
		domainerror.ErrCodeHolidayInvalidRange:
		return http.StatusBadRequest
	case domainerror.ErrCodeHolidayNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func statusForReportError(code domainerror.ReportErrorCode) int {
	switch code {
	case domainerror.ErrCodeInvalidReportYear:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// currentUser returns the authenticated user or writes a 401.
func currentUser(ctx *gin.Context) (uuid.UUID, bool) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return uuid.Nil, false
	}
	return userID, true
}

// pathID parses the :id path parameter or writes a 400.
func pathID(ctx *gin.Context, what string) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid " + what + " ID format",
		})
		return uuid.Nil, false
	}
	return id, true
}

// optionalID parses an optional id string. An empty string is nil.
func optionalID(raw *string) (*uuid.UUID, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(*raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func badRequest(ctx *gin.Context, message string) {
	ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: message})
}
