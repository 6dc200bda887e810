package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cashg/cashg-ledger/internal/apperrors"
	"github.com/cashg/cashg-ledger/internal/core/domain"
	portssvc "github.com/cashg/cashg-ledger/internal/core/ports/services"
	"github.com/cashg/cashg-ledger/internal/dto"
	"github.com/cashg/cashg-ledger/internal/handlers"
	"github.com/cashg/cashg-ledger/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock AccountService ---
type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) OpenAccount(ctx context.Context, req dto.OpenAccountRequest) (*domain.Account, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) GetAccountForUser(ctx context.Context, userID string) (*domain.Account, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) DeactivateAccount(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

var _ portssvc.AccountSvcFacade = (*MockAccountService)(nil)

// --- Mock LedgerService ---
type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) Deposit(ctx context.Context, userID string, amount string) (*domain.Account, error) {
	args := m.Called(ctx, userID, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockLedgerService) Withdraw(ctx context.Context, userID string, amount string) (*domain.Account, error) {
	args := m.Called(ctx, userID, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockLedgerService) History(ctx context.Context, userID string, limit int) ([]domain.Transaction, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

var _ portssvc.LedgerSvcFacade = (*MockLedgerService)(nil)

// --- Mock TransferService ---
type MockTransferService struct {
	mock.Mock
}

func (m *MockTransferService) Transfer(ctx context.Context, senderUserID string, req dto.CreateTransferRequest) (*domain.Transfer, *domain.Account, error) {
	args := m.Called(ctx, senderUserID, req)
	var transfer *domain.Transfer
	var account *domain.Account
	if args.Get(0) != nil {
		transfer = args.Get(0).(*domain.Transfer)
	}
	if args.Get(1) != nil {
		account = args.Get(1).(*domain.Account)
	}
	return transfer, account, args.Error(2)
}

var _ portssvc.TransferSvcFacade = (*MockTransferService)(nil)

// --- Mock IdentifierService ---
type MockIdentifierService struct {
	mock.Mock
}

func (m *MockIdentifierService) AccountNumber(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockIdentifierService) ReferenceNumber(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockIdentifierService) TransferID(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

var _ portssvc.IdentifierSvcFacade = (*MockIdentifierService)(nil)

// --- Test Suite ---
type HandlerTestSuite struct {
	suite.Suite
	router              *gin.Engine
	mockAccountService  *MockAccountService
	mockLedgerService   *MockLedgerService
	mockTransferService *MockTransferService
}

func (suite *HandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()

	suite.mockAccountService = new(MockAccountService)
	suite.mockLedgerService = new(MockLedgerService)
	suite.mockTransferService = new(MockTransferService)

	container := &portssvc.ServiceContainer{
		Account:    suite.mockAccountService,
		Ledger:     suite.mockLedgerService,
		Transfer:   suite.mockTransferService,
		Identifier: new(MockIdentifierService),
	}
	handlers.RegisterRoutes(suite.router, container, nil)
}

func (suite *HandlerTestSuite) performJSON(method, url, callerID string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		suite.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req, _ := http.NewRequest(method, url, &buf)
	req.Header.Set("Content-Type", "application/json")
	if callerID != "" {
		req.Header.Set(middleware.CallerIDHeader, callerID)
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func testAccount(userID string) *domain.Account {
	return &domain.Account{
		AccountNumber: "1234-5678-9012",
		UserID:        userID,
		AccountType:   domain.Savings,
		Balance:       decimal.RequireFromString("1000.00"),
		IsActive:      true,
		AuditFields: domain.AuditFields{
			CreatedAt:     time.Now().UTC(),
			LastUpdatedAt: time.Now().UTC(),
		},
	}
}

// --- Account routes ---

func (suite *HandlerTestSuite) TestOpenAccount_Success() {
	userID := uuid.NewString()
	account := testAccount(userID)
	account.Balance = decimal.Zero

	suite.mockAccountService.On("OpenAccount", mock.Anything, mock.MatchedBy(func(req dto.OpenAccountRequest) bool {
		return req.Username == "alice" && req.AccountType == domain.Savings
	})).Return(account, nil).Once()

	w := suite.performJSON(http.MethodPost, "/api/v1/accounts", "", dto.OpenAccountRequest{
		Username:    "alice",
		AccountType: domain.Savings,
	})

	suite.Equal(http.StatusCreated, w.Code)

	var body dto.AccountResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal("1234-5678-9012", body.AccountNumber)
	suite.True(body.Balance.IsZero())

	suite.mockAccountService.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestOpenAccount_MissingUsername() {
	w := suite.performJSON(http.MethodPost, "/api/v1/accounts", "", gin.H{"accountType": "SAVINGS"})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockAccountService.AssertNotCalled(suite.T(), "OpenAccount", mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestOpenAccount_DuplicateUsername() {
	suite.mockAccountService.On("OpenAccount", mock.Anything, mock.AnythingOfType("dto.OpenAccountRequest")).
		Return(nil, fmt.Errorf("%w: username %q is taken", apperrors.ErrDuplicateUser, "alice")).Once()

	w := suite.performJSON(http.MethodPost, "/api/v1/accounts", "", dto.OpenAccountRequest{
		Username:    "alice",
		AccountType: domain.Checking,
	})

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *HandlerTestSuite) TestGetMyAccount_Success() {
	userID := uuid.NewString()
	suite.mockAccountService.On("GetAccountForUser", mock.Anything, userID).Return(testAccount(userID), nil).Once()

	w := suite.performJSON(http.MethodGet, "/api/v1/accounts/me", userID, nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.mockAccountService.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestGetMyAccount_MissingCallerHeader() {
	w := suite.performJSON(http.MethodGet, "/api/v1/accounts/me", "", nil)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockAccountService.AssertNotCalled(suite.T(), "GetAccountForUser", mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestDeactivateMyAccount_Success() {
	userID := uuid.NewString()
	suite.mockAccountService.On("DeactivateAccount", mock.Anything, userID).Return(nil).Once()

	w := suite.performJSON(http.MethodDelete, "/api/v1/accounts/me", userID, nil)

	suite.Equal(http.StatusNoContent, w.Code)
	suite.mockAccountService.AssertExpectations(suite.T())
}

// --- Ledger routes ---

func (suite *HandlerTestSuite) TestDeposit_Success() {
	userID := uuid.NewString()
	suite.mockLedgerService.On("Deposit", mock.Anything, userID, "250.00").Return(testAccount(userID), nil).Once()

	w := suite.performJSON(http.MethodPost, "/api/v1/accounts/deposit", userID, dto.AmountRequest{Amount: "250.00"})

	suite.Equal(http.StatusOK, w.Code)
	suite.mockLedgerService.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestDeposit_MalformedAmountRejectedAtBinding() {
	userID := uuid.NewString()

	w := suite.performJSON(http.MethodPost, "/api/v1/accounts/deposit", userID, gin.H{"amount": "12.345"})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockLedgerService.AssertNotCalled(suite.T(), "Deposit", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestWithdraw_InsufficientFunds() {
	userID := uuid.NewString()
	suite.mockLedgerService.On("Withdraw", mock.Anything, userID, "500.00").
		Return(nil, fmt.Errorf("%w: balance 100 cannot cover 500", apperrors.ErrInsufficientFunds)).Once()

	w := suite.performJSON(http.MethodPost, "/api/v1/accounts/withdraw", userID, dto.AmountRequest{Amount: "500.00"})

	suite.Equal(http.StatusUnprocessableEntity, w.Code)
}

func (suite *HandlerTestSuite) TestWithdraw_OutOfRange() {
	userID := uuid.NewString()
	suite.mockLedgerService.On("Withdraw", mock.Anything, userID, "50000.01").
		Return(nil, fmt.Errorf("%w: withdrawal must be between 200 and 50000", apperrors.ErrAmountOutOfRange)).Once()

	w := suite.performJSON(http.MethodPost, "/api/v1/accounts/withdraw", userID, dto.AmountRequest{Amount: "50000.01"})

	suite.Equal(http.StatusUnprocessableEntity, w.Code)
}

func (suite *HandlerTestSuite) TestWithdraw_Busy() {
	userID := uuid.NewString()
	suite.mockLedgerService.On("Withdraw", mock.Anything, userID, "300.00").
		Return(nil, fmt.Errorf("%w: row lock not acquired in time", apperrors.ErrBusy)).Once()

	w := suite.performJSON(http.MethodPost, "/api/v1/accounts/withdraw", userID, dto.AmountRequest{Amount: "300.00"})

	suite.Equal(http.StatusServiceUnavailable, w.Code)
	suite.Equal("1", w.Header().Get("Retry-After"))
}

func (suite *HandlerTestSuite) TestHistory_Success() {
	userID := uuid.NewString()
	transactions := []domain.Transaction{
		{ReferenceNumber: "TXN-NEWEST000001", TransactionType: domain.Deposit, Amount: decimal.RequireFromString("300.00"), CreatedAt: time.Now().UTC()},
		{ReferenceNumber: "TXN-OLDER0000001", TransactionType: domain.Withdrawal, Amount: decimal.RequireFromString("200.00"), CreatedAt: time.Now().UTC().Add(-time.Hour)},
	}
	suite.mockLedgerService.On("History", mock.Anything, userID, 5).Return(transactions, nil).Once()

	w := suite.performJSON(http.MethodGet, "/api/v1/transactions?limit=5", userID, nil)

	suite.Equal(http.StatusOK, w.Code)

	var body dto.ListTransactionsResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Require().Len(body.Transactions, 2)
	suite.Equal("TXN-NEWEST000001", body.Transactions[0].ReferenceNumber)

	suite.mockLedgerService.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestHistory_DefaultsLimitToZero() {
	userID := uuid.NewString()
	suite.mockLedgerService.On("History", mock.Anything, userID, 0).Return([]domain.Transaction{}, nil).Once()

	w := suite.performJSON(http.MethodGet, "/api/v1/transactions", userID, nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.mockLedgerService.AssertExpectations(suite.T())
}

// --- Transfer routes ---

func (suite *HandlerTestSuite) TestCreateTransfer_Success() {
	userID := uuid.NewString()
	req := dto.CreateTransferRequest{Recipient: "bob", Amount: "10000.00", Note: "rent"}
	transfer := &domain.Transfer{
		TransferID:       "TRF-AAAABBBBCCCC",
		SenderAccount:    "1234-5678-9012",
		RecipientAccount: "2222-2222-2222",
		Amount:           decimal.RequireFromString("10000.00"),
		Note:             "rent",
		Status:           domain.TransferCompleted,
		CreatedAt:        time.Now().UTC(),
	}
	sender := testAccount(userID)

	suite.mockTransferService.On("Transfer", mock.Anything, userID, req).Return(transfer, sender, nil).Once()

	w := suite.performJSON(http.MethodPost, "/api/v1/transfers", userID, req)

	suite.Equal(http.StatusCreated, w.Code)

	var body dto.TransferResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal("TRF-AAAABBBBCCCC", body.TransferID)
	suite.Equal(domain.TransferCompleted, body.Status)
	suite.Equal("1234-5678-9012", body.SenderAccount.AccountNumber)

	suite.mockTransferService.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestCreateTransfer_SelfTransfer() {
	userID := uuid.NewString()
	req := dto.CreateTransferRequest{Recipient: "alice", Amount: "500.00"}

	suite.mockTransferService.On("Transfer", mock.Anything, userID, req).
		Return(nil, nil, apperrors.ErrSelfTransfer).Once()

	w := suite.performJSON(http.MethodPost, "/api/v1/transfers", userID, req)

	suite.Equal(http.StatusUnprocessableEntity, w.Code)
}

func (suite *HandlerTestSuite) TestCreateTransfer_RecipientNotFound() {
	userID := uuid.NewString()
	req := dto.CreateTransferRequest{Recipient: "ghost", Amount: "500.00"}

	suite.mockTransferService.On("Transfer", mock.Anything, userID, req).
		Return(nil, nil, fmt.Errorf("%w: no user named %q", apperrors.ErrRecipientNotFound, "ghost")).Once()

	w := suite.performJSON(http.MethodPost, "/api/v1/transfers", userID, req)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *HandlerTestSuite) TestCreateTransfer_MissingCallerHeader() {
	req := dto.CreateTransferRequest{Recipient: "bob", Amount: "500.00"}

	w := suite.performJSON(http.MethodPost, "/api/v1/transfers", "", req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockTransferService.AssertNotCalled(suite.T(), "Transfer", mock.Anything, mock.Anything, mock.Anything)
}

// --- Health ---

func (suite *HandlerTestSuite) TestHealth() {
	w := suite.performJSON(http.MethodGet, "/health", "", nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("OK", w.Body.String())
}

func TestHandlers(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}
