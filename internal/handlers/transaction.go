package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/sbilibin2017/pocket-wallet/internal/models"
	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=transaction.go -destination=transaction_mock_test.go -package=handlers

// TransactionCreator creates transactions.
type TransactionCreator interface {
	CreateTransaction(ctx context.Context, userID, pocketID uuid.UUID, kind models.TransactionKind, amount decimal.Decimal, comment *string) (*models.Transaction, error)
}

// TransactionLister lists visible transactions.
type TransactionLister interface {
	ListTransactions(ctx context.Context, userID uuid.UUID, filter models.TransactionFilter) ([]models.Transaction, error)
}

// TransactionGetter returns a single visible transaction.
type TransactionGetter interface {
	GetTransaction(ctx context.Context, userID, transactionID uuid.UUID) (*models.Transaction, error)
}

// ConfirmationCodeRequester issues transaction confirmation codes.
type ConfirmationCodeRequester interface {
	RequestConfirmationCode(ctx context.Context, userID, transactionID uuid.UUID) error
}

// TransactionConfirmer confirms and activates transactions.
type TransactionConfirmer interface {
	ConfirmTransaction(ctx context.Context, userID, transactionID uuid.UUID, code string) (*models.Transaction, error)
}

// TransactionCanceller cancels transactions.
type TransactionCanceller interface {
	CancelTransaction(ctx context.Context, userID, transactionID uuid.UUID) (*models.Transaction, error)
}

// TransactionDeleter deletes transactions.
type TransactionDeleter interface {
	DeleteTransaction(ctx context.Context, userID, transactionID uuid.UUID) error
}

// TransactionRequest represents the JSON body for creating a transaction
// swagger:model TransactionRequest
type TransactionRequest struct {
	// Target pocket
	// required: true
	PocketID uuid.UUID `json:"pocket_id"`

	// REFILL or DEBIT
	// required: true
	// default: REFILL
	Kind string `json:"kind"`

	// Amount between 0 and 100000
	// required: true
	// default: 400.00
	Amount decimal.Decimal `json:"amount" swaggertype:"string" example:"400.00"`

	// Optional free text
	Comment *string `json:"comment,omitempty"`
}

// TransactionResponse represents a transaction
// swagger:model TransactionResponse
type TransactionResponse struct {
	TransactionID uuid.UUID       `json:"transaction_id"`
	PocketID      uuid.UUID       `json:"pocket_id"`
	Amount        decimal.Decimal `json:"amount" swaggertype:"string" example:"400.00"`
	Kind          string          `json:"kind" example:"REFILL"`
	Status        string          `json:"status" example:"CREATED"`
	Comment       *string         `json:"comment,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

func newTransactionResponse(t *models.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID: t.TransactionID,
		PocketID:      t.PocketID,
		Amount:        t.Amount,
		Kind:          t.Kind.String(),
		Status:        t.Status.String(),
		Comment:       t.Comment,
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
	}
}

// NewCreateTransactionHandler returns an HTTP handler for creating a transaction.
// @Summary Create transaction
// @Description Creates a CREATED transaction against one of the caller's pockets.
// @Tags transactions
// @Accept json
// @Produce json
// @Param request body handlers.TransactionRequest true "Transaction"
// @Success 201 {object} handlers.TransactionResponse
// @Failure 400 {object} handlers.ErrorResponse "Invalid kind or amount"
// @Failure 403 {object} handlers.ErrorResponse "Forbidden"
// @Failure 409 {object} handlers.ErrorResponse "Pocket is archived"
// @Router /transactions [post]
// @Security BearerAuth
func NewCreateTransactionHandler(svc TransactionCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := userIDFromRequest(w, r)
		if !ok {
			return
		}

		var req TransactionRequest
		if !decodeBody(w, r, &req) {
			return
		}

		kind, err := models.ParseTransactionKind(req.Kind)
		if err != nil {
			writeError(w, r, err)
			return
		}

		t, err := svc.CreateTransaction(r.Context(), userID, req.PocketID, kind, req.Amount, req.Comment)
		if err != nil {
			writeError(w, r, err)
			return
		}

		writeJSON(w, http.StatusCreated, newTransactionResponse(t))
	}
}

// NewListTransactionsHandler returns an HTTP handler for listing transactions.
// @Summary List transactions
// @Description Lists the caller's transactions. Transactions of archived pockets are hidden.
// @Tags transactions
// @Produce json
// @Param pocket_id query string false "Pocket ID"
// @Param status query string false "Status" Enums(CREATED, IN_PROCESS, CONFIRMED, FINISHED, CANCELLED)
// @Success 200 {array} handlers.TransactionResponse
// @Failure 400 {object} handlers.ErrorResponse "Invalid filter"
// @Router /transactions [get]
// @Security BearerAuth
func NewListTransactionsHandler(svc TransactionLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := userIDFromRequest(w, r)
		if !ok {
			return
		}

		var filter models.TransactionFilter
		query := r.URL.Query()
		if v := query.Get("pocket_id"); v != "" {
			pocketID, err := uuid.Parse(v)
			if err != nil {
				writeError(w, r, &models.ValidationError{Field: "pocket_id", Reason: "must be a UUID"})
				return
			}
			filter.PocketID = &pocketID
		}
		if v := query.Get("status"); v != "" {
			status, err := models.ParseTransactionStatus(v)
			if err != nil {
				writeError(w, r, err)
				return
			}
			filter.Status = &status
		}

		list, err := svc.ListTransactions(r.Context(), userID, filter)
		if err != nil {
			writeError(w, r, err)
			return
		}

		resp := make([]TransactionResponse, 0, len(list))
		for i := range list {
			resp = append(resp, newTransactionResponse(&list[i]))
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// NewGetTransactionHandler returns an HTTP handler for reading a transaction.
// @Summary Get transaction
// @Tags transactions
// @Produce json
// @Param id path string true "Transaction ID"
// @Success 200 {object} handlers.TransactionResponse
// @Failure 404 {object} handlers.ErrorResponse "Transaction not found"
// @Router /transactions/{id} [get]
// @Security BearerAuth
func NewGetTransactionHandler(svc TransactionGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := userIDFromRequest(w, r)
		if !ok {
			return
		}
		transactionID, ok := idFromPath(w, r)
		if !ok {
			return
		}

		t, err := svc.GetTransaction(r.Context(), userID, transactionID)
		if err != nil {
			writeError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, newTransactionResponse(t))
	}
}

// NewRequestConfirmationCodeHandler returns an HTTP handler that moves a
// transaction to IN_PROCESS and emails a confirmation code.
// @Summary Request confirmation code
// @Tags transactions
// @Produce json
// @Param id path string true "Transaction ID"
// @Success 202 {object} handlers.MessageResponse
// @Failure 403 {object} handlers.ErrorResponse "Forbidden"
// @Failure 404 {object} handlers.ErrorResponse "Transaction not found"
// @Failure 409 {object} handlers.ErrorResponse "Invalid transaction state"
// @Router /transactions/{id}/confirmation-code [post]
// @Security BearerAuth
func NewRequestConfirmationCodeHandler(svc ConfirmationCodeRequester) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := userIDFromRequest(w, r)
		if !ok {
			return
		}
		transactionID, ok := idFromPath(w, r)
		if !ok {
			return
		}

		if err := svc.RequestConfirmationCode(r.Context(), userID, transactionID); err != nil {
			writeError(w, r, err)
			return
		}

		writeJSON(w, http.StatusAccepted, MessageResponse{Message: "Confirmation code sent"})
	}
}

// NewConfirmTransactionHandler returns an HTTP handler that confirms and
// activates a transaction.
// @Summary Confirm transaction
// @Description Checks the code and applies the transaction to its pocket. A debit that exceeds the balance cancels the transaction.
// @Tags transactions
// @Accept json
// @Produce json
// @Param id path string true "Transaction ID"
// @Param request body handlers.CodeRequest true "Confirmation code"
// @Success 200 {object} handlers.TransactionResponse
// @Failure 400 {object} handlers.ErrorResponse "Invalid confirmation code"
// @Failure 409 {object} handlers.ErrorResponse "Invalid state or insufficient funds"
// @Router /transactions/{id}/confirm [post]
// @Security BearerAuth
func NewConfirmTransactionHandler(svc TransactionConfirmer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := userIDFromRequest(w, r)
		if !ok {
			return
		}
		transactionID, ok := idFromPath(w, r)
		if !ok {
			return
		}

		var req CodeRequest
		if !decodeBody(w, r, &req) {
			return
		}

		t, err := svc.ConfirmTransaction(r.Context(), userID, transactionID, req.Code)
		if err != nil {
			writeError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, newTransactionResponse(t))
	}
}

// NewCancelTransactionHandler returns an HTTP handler that cancels a transaction.
// @Summary Cancel transaction
// @Description Cancels the transaction. A finished transaction is refunded.
// @Tags transactions
// @Produce json
// @Param id path string true "Transaction ID"
// @Success 200 {object} handlers.TransactionResponse
// @Failure 409 {object} handlers.ErrorResponse "Already cancelled or refund failed"
// @Router /transactions/{id}/cancel [post]
// @Security BearerAuth
func NewCancelTransactionHandler(svc TransactionCanceller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := userIDFromRequest(w, r)
		if !ok {
			return
		}
		transactionID, ok := idFromPath(w, r)
		if !ok {
			return
		}

		t, err := svc.CancelTransaction(r.Context(), userID, transactionID)
		if err != nil {
			writeError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, newTransactionResponse(t))
	}
}

// NewDeleteTransactionHandler returns an HTTP handler that deletes a transaction.
// @Summary Delete transaction
// @Description Cancels the transaction if needed, refunding it when finished, and removes it.
// @Tags transactions
// @Param id path string true "Transaction ID"
// @Success 204
// @Failure 409 {object} handlers.ErrorResponse "Refund failed"
// @Router /transactions/{id} [delete]
// @Security BearerAuth
func NewDeleteTransactionHandler(svc TransactionDeleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := userIDFromRequest(w, r)
		if !ok {
			return
		}
		transactionID, ok := idFromPath(w, r)
		if !ok {
			return
		}

		if err := svc.DeleteTransaction(r.Context(), userID, transactionID); err != nil {
			writeError(w, r, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// TransactionHandlers groups the transaction endpoints.
type TransactionHandlers struct {
	Create      http.HandlerFunc
	List        http.HandlerFunc
	Get         http.HandlerFunc
	RequestCode http.HandlerFunc
	Confirm     http.HandlerFunc
	Cancel      http.HandlerFunc
	Delete      http.HandlerFunc
}

// RegisterTransactionHandlers registers transaction routes
func RegisterTransactionHandlers(r chi.Router, h TransactionHandlers) {
	r.Post("/transactions", h.Create)
	r.Get("/transactions", h.List)
	r.Get("/transactions/{id}", h.Get)
	r.Post("/transactions/{id}/confirmation-code", h.RequestCode)
	r.Post("/transactions/{id}/confirm", h.Confirm)
	r.Post("/transactions/{id}/cancel", h.Cancel)
	r.Delete("/transactions/{id}", h.Delete)
}
