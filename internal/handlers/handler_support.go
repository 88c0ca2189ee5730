package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/SscSPs/banking_backoffice_app/internal/apperrors"
	"github.com/SscSPs/banking_backoffice_app/internal/core/domain"
	portssvc "github.com/SscSPs/banking_backoffice_app/internal/core/ports/services"
	"github.com/SscSPs/banking_backoffice_app/internal/dto"
	"github.com/SscSPs/banking_backoffice_app/internal/middleware"
	"github.com/SscSPs/banking_backoffice_app/internal/utils/pagination"
)

// supportHandler serves the support staff's view of the audit trail.
type supportHandler struct {
	ledgerService portssvc.PendingRecordSvc
	recordService portssvc.RecordSvcFacade
}

func registerSupportRoutes(rg *gin.RouterGroup, ledgerService portssvc.PendingRecordSvc, recordService portssvc.RecordSvcFacade) {
	h := &supportHandler{ledgerService: ledgerService, recordService: recordService}

	support := rg.Group("/support", middleware.RequireRoles(domain.RoleSupport))
	{
		support.GET("/records", h.listRecords)
		support.GET("/pending-withdrawal/:recordId", h.executePendingRecord)
	}
}

// listRecords godoc
// @Summary List records
// @Description Filtered, sorted and paged listing of every record. Page metadata is returned in the X-Pagination header.
// @Tags support
// @Produce  json
// @Param   userId query int false "Owner of the records"
// @Param   isPending query bool false "Only pending or only settled records"
// @Param   beginningDate query string false "RFC3339 lower bound"
// @Param   endingDate query string false "RFC3339 upper bound, defaults to now"
// @Param   orderBy query string false "Comma separated sort keys, each optionally followed by desc" default(IsPending)
// @Param   pageNumber query int false "Page number" default(1)
// @Param   pageSize query int false "Page size, at most 50" default(10)
// @Success 200 {array} dto.RecordResponse
// @Failure 400 {object} dto.ErrorDetails
// @Failure 403 {object} dto.ErrorDetails
// @Security BearerAuth
// @Router /support/records [get]
func (h *supportHandler) listRecords(c *gin.Context) {
	var params dto.ListRecordsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		writeBindError(c, err)
		return
	}

	records, meta, err := h.recordService.ListRecords(c.Request.Context(), params)
	if err != nil {
		writeError(c, err)
		return
	}

	c.Header(pagination.HeaderName, meta.Header())
	c.JSON(http.StatusOK, dto.ToListRecordResponse(records))
}

// executePendingRecord godoc
// @Summary Replay a pending record
// @Description Executes a withdrawal or transfer that was refused on the operation limit. A record can be replayed once.
// @Tags support
// @Produce  json
// @Param   recordId path int true "Record ID"
// @Success 200 {object} dto.AccountResponse
// @Failure 400 {object} dto.ErrorDetails
// @Failure 403 {object} dto.ErrorDetails
// @Security BearerAuth
// @Router /support/pending-withdrawal/{recordId} [get]
func (h *supportHandler) executePendingRecord(c *gin.Context) {
	recordID, err := strconv.ParseInt(c.Param("recordId"), 10, 64)
	if err != nil || recordID <= 0 {
		writeError(c, fmt.Errorf("%w: Record id must be a positive integer", apperrors.ErrValidation))
		return
	}

	account, err := h.ledgerService.ExecutePendingRecord(c.Request.Context(), recordID)
	if err != nil {
		writeError(c, err)
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Pending record executed", slog.Int64("record_id", recordID))
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}
