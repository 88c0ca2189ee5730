package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SscSPs/banking_backoffice_app/internal/core/domain"
	portssvc "github.com/SscSPs/banking_backoffice_app/internal/core/ports/services"
	"github.com/SscSPs/banking_backoffice_app/internal/dto"
	"github.com/SscSPs/banking_backoffice_app/internal/middleware"
)

// accountHandler serves the caller's own account.
type accountHandler struct {
	ledgerService portssvc.LedgerSvcFacade
	recordService portssvc.RecordSvcFacade
}

func newAccountHandler(ls portssvc.LedgerSvcFacade, rs portssvc.RecordSvcFacade) *accountHandler {
	return &accountHandler{ledgerService: ls, recordService: rs}
}

// registerAccountRoutes registers routes related to accounts.
func registerAccountRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade, recordService portssvc.RecordSvcFacade) {
	h := newAccountHandler(ledgerService, recordService)

	accounts := rg.Group("/accounts", middleware.RequireRoles(domain.RoleUser))
	{
		accounts.GET("", h.getAccount)
		accounts.POST("/create-account", h.createAccount)
		accounts.POST("/deposit", h.deposit)
		accounts.POST("/withdraw", h.withdraw)
		accounts.POST("/transfer", h.transfer)
		accounts.GET("/transaction-history", h.transactionHistory)
		accounts.POST("/bills", h.setupBill)
	}
}

// callerID reads the authenticated user, answering 401 when it is missing.
func callerID(c *gin.Context) (int64, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, dto.NewErrorDetails(http.StatusUnauthorized, "Unauthorized"))
	}
	return userID, ok
}

// getAccount godoc
// @Summary Get the caller's account
// @Description Returns the account of the logged-in user together with its bills
// @Tags accounts
// @Produce  json
// @Success 200 {object} dto.AccountResponse
// @Failure 400 {object} dto.ErrorDetails "Account does not exist"
// @Failure 401 {object} dto.ErrorDetails
// @Security BearerAuth
// @Router /accounts [get]
func (h *accountHandler) getAccount(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	account, err := h.ledgerService.GetAccount(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// createAccount godoc
// @Summary Open an account
// @Description Opens the logged-in user's account with an opening balance of at least 100
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   account body dto.CreateAccountRequest true "Opening balance"
// @Success 200 {object} dto.AccountResponse
// @Failure 400 {object} dto.ErrorDetails "Validation error or account already exists"
// @Failure 401 {object} dto.ErrorDetails
// @Failure 403 {object} dto.ErrorDetails
// @Security BearerAuth
// @Router /accounts/create-account [post]
func (h *accountHandler) createAccount(c *gin.Context) {
	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}
	userID, ok := callerID(c)
	if !ok {
		return
	}

	account, err := h.ledgerService.CreateAccount(c.Request.Context(), userID, req.Balance)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// deposit godoc
// @Summary Deposit money
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   deposit body dto.DepositRequest true "Amount"
// @Success 200 {object} dto.AccountResponse
// @Failure 400 {object} dto.ErrorDetails
// @Security BearerAuth
// @Router /accounts/deposit [post]
func (h *accountHandler) deposit(c *gin.Context) {
	var req dto.DepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}
	userID, ok := callerID(c)
	if !ok {
		return
	}

	account, err := h.ledgerService.Deposit(c.Request.Context(), userID, req.Amount)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// withdraw godoc
// @Summary Withdraw money
// @Description Fails when funds, the daily limit or the operation limit do not allow the amount.
// @Description Operation limit failures are recorded as pending for support review.
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   withdraw body dto.WithdrawRequest true "Amount"
// @Success 200 {object} dto.AccountResponse
// @Failure 400 {object} dto.ErrorDetails
// @Security BearerAuth
// @Router /accounts/withdraw [post]
func (h *accountHandler) withdraw(c *gin.Context) {
	var req dto.WithdrawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}
	userID, ok := callerID(c)
	if !ok {
		return
	}

	account, err := h.ledgerService.Withdraw(c.Request.Context(), userID, req.Amount)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// transfer godoc
// @Summary Transfer money to another account
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   transfer body dto.TransferRequest true "Receiver and amount"
// @Success 200 {object} dto.TransferResponse
// @Failure 400 {object} dto.ErrorDetails
// @Security BearerAuth
// @Router /accounts/transfer [post]
func (h *accountHandler) transfer(c *gin.Context) {
	var req dto.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}
	userID, ok := callerID(c)
	if !ok {
		return
	}

	sender, receiver, err := h.ledgerService.Transfer(c.Request.Context(), userID, req.ReceiverAccountID, req.Amount)
	if err != nil {
		writeError(c, err)
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Transfer completed",
		slog.Int64("sender_account_id", sender.ID),
		slog.Int64("receiver_account_id", receiver.ID))
	c.JSON(http.StatusOK, dto.TransferResponse{
		Sender:   dto.ToAccountResponse(sender),
		Receiver: dto.ToAccountResponse(receiver),
	})
}

// transactionHistory godoc
// @Summary List the caller's records
// @Tags accounts
// @Produce  json
// @Success 200 {array} dto.RecordResponse
// @Security BearerAuth
// @Router /accounts/transaction-history [get]
func (h *accountHandler) transactionHistory(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	records, err := h.recordService.GetTransactionHistory(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToListRecordResponse(records))
}

// setupBill godoc
// @Summary Set up an automatic bill payment
// @Description The bill is charged on LastPayTime's day and then monthly
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   bill body dto.CreateBillRequest true "Bill"
// @Success 200 {object} dto.BillResponse
// @Failure 400 {object} dto.ErrorDetails
// @Security BearerAuth
// @Router /accounts/bills [post]
func (h *accountHandler) setupBill(c *gin.Context) {
	var req dto.CreateBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}
	userID, ok := callerID(c)
	if !ok {
		return
	}

	bill, err := h.ledgerService.SetupAutomaticPayment(c.Request.Context(), userID, req.Amount, req.LastPayTime)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToBillResponse(bill))
}
