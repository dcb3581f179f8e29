package handler

import (
	"net/http"

	"github.com/coopmed/coopmed/internal/database"
	"github.com/coopmed/coopmed/internal/rest/convert"
	restTypes "github.com/coopmed/coopmed/internal/rest/types"
	"github.com/google/uuid"
	"github.com/uptrace/bunrouter"
	"go.uber.org/zap"
)

// CompensationHandler handles compensation ledger REST endpoints.
type CompensationHandler struct {
	db     database.Client
	logger *zap.Logger
}

// NewCompensationHandler creates a new compensation handler.
func NewCompensationHandler(db database.Client, logger *zap.Logger) *CompensationHandler {
	return &CompensationHandler{
		db:     db,
		logger: logger,
	}
}

// UndoRemoval restores a removed member from a pending removal
// compensation record and deletes the record.
func (h *CompensationHandler) UndoRemoval(w http.ResponseWriter, req bunrouter.Request) error {
	id, err := uuid.Parse(req.Param("id"))
	if err != nil {
		http.Error(w, "invalid compensation id", http.StatusBadRequest)
		return nil
	}

	member, err := h.db.Service().Compensation().Undo(req.Context(), id)
	if err != nil {
		writeError(w, h.logger, err)
		return nil
	}

	return bunrouter.JSON(w, restTypes.MemberResponse{
		Member: convert.Member(member),
	})
}

// SettlePayment marks a pending compensation record as paid.
func (h *CompensationHandler) SettlePayment(w http.ResponseWriter, req bunrouter.Request) error {
	id, err := uuid.Parse(req.Param("id"))
	if err != nil {
		http.Error(w, "invalid compensation id", http.StatusBadRequest)
		return nil
	}

	record, err := h.db.Service().Compensation().Settle(req.Context(), id)
	if err != nil {
		writeError(w, h.logger, err)
		return nil
	}

	return bunrouter.JSON(w, restTypes.CompensationResponse{
		Record: convert.Compensation(record),
	})
}

// RevertSettlement returns a paid compensation record to pending.
func (h *CompensationHandler) RevertSettlement(w http.ResponseWriter, req bunrouter.Request) error {
	id, err := uuid.Parse(req.Param("id"))
	if err != nil {
		http.Error(w, "invalid compensation id", http.StatusBadRequest)
		return nil
	}

	record, err := h.db.Service().Compensation().RevertSettlement(req.Context(), id)
	if err != nil {
		writeError(w, h.logger, err)
		return nil
	}

	return bunrouter.JSON(w, restTypes.CompensationResponse{
		Record: convert.Compensation(record),
	})
}

// ListPending returns all pending compensation records for the admin
// payout view.
func (h *CompensationHandler) ListPending(w http.ResponseWriter, req bunrouter.Request) error {
	records, err := h.db.Service().Compensation().ListPending(req.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return nil
	}

	return bunrouter.JSON(w, restTypes.CompensationListResponse{
		Records: convert.Compensations(records),
	})
}
