package controller

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	domainerror "github.com/elliotJHarding/transactions/internal/domain/error"
)

func TestHandleError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "email exists",
			err:        domainerror.NewAuthError(domainerror.ErrCodeEmailExists, "exists", domainerror.ErrEmailAlreadyExists),
			wantStatus: http.StatusConflict,
			wantCode:   string(domainerror.ErrCodeEmailExists),
		},
		{
			name:       "wrapped tag read only",
			err:        fmt.Errorf("update: %w", domainerror.NewTagError(domainerror.ErrCodeTagReadOnly, "read only", domainerror.ErrTagReadOnly)),
			wantStatus: http.StatusForbidden,
			wantCode:   string(domainerror.ErrCodeTagReadOnly),
		},
		{
			name:       "tag has children",
			err:        domainerror.NewTagError(domainerror.ErrCodeTagHasChildren, "children", domainerror.ErrTagHasChildren),
			wantStatus: http.StatusConflict,
			wantCode:   string(domainerror.ErrCodeTagHasChildren),
		},
		{
			name:       "resolver busy",
			err:        domainerror.NewLinkError(domainerror.ErrCodeResolverBusy, "busy", domainerror.ErrResolverBusy),
			wantStatus: http.StatusConflict,
			wantCode:   string(domainerror.ErrCodeResolverBusy),
		},
		{
			name:       "banking provider",
			err:        domainerror.NewAccountError(domainerror.ErrCodeBankingProvider, "provider", domainerror.ErrBankingProvider),
			wantStatus: http.StatusBadGateway,
			wantCode:   string(domainerror.ErrCodeBankingProvider),
		},
		{
			name:       "holiday not found",
			err:        domainerror.NewHolidayError(domainerror.ErrCodeHolidayNotFound, "missing", domainerror.ErrHolidayNotFound),
			wantStatus: http.StatusNotFound,
			wantCode:   string(domainerror.ErrCodeHolidayNotFound),
		},
		{
			name:       "rule expression required",
			err:        domainerror.NewRuleError(domainerror.ErrCodeRuleExpressionRequired, "required", domainerror.ErrRuleExpressionRequired),
			wantStatus: http.StatusBadRequest,
			wantCode:   string(domainerror.ErrCodeRuleExpressionRequired),
		},
		{
			name:       "transaction not owned",
			err:        domainerror.NewTransactionError(domainerror.ErrCodeNotAuthorizedTransaction, "forbidden", domainerror.ErrNotAuthorizedToModifyTransaction),
			wantStatus: http.StatusForbidden,
			wantCode:   string(domainerror.ErrCodeNotAuthorizedTransaction),
		},
		{
			name:       "invalid report year",
			err:        domainerror.NewReportError(domainerror.ErrCodeInvalidReportYear, "year", domainerror.ErrInvalidReportYear),
			wantStatus: http.StatusBadRequest,
			wantCode:   string(domainerror.ErrCodeInvalidReportYear),
		},
		{
			name:       "unknown error",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			ctx, _ := gin.CreateTestContext(rec)
			ctx.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			handleError(ctx, tt.err)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.wantCode != "" && !strings.Contains(rec.Body.String(), tt.wantCode) {
				t.Errorf("body = %s, want code %s", rec.Body.String(), tt.wantCode)
			}
			if tt.wantStatus == http.StatusInternalServerError && strings.Contains(rec.Body.String(), "boom") {
				t.Errorf("body leaks internal error: %s", rec.Body.String())
			}
		})
	}
}
