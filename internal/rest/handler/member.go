package handler

import (
	"net/http"

	"github.com/coopmed/coopmed/internal/database"
	restTypes "github.com/coopmed/coopmed/internal/rest/types"
	"github.com/uptrace/bunrouter"
	"go.uber.org/zap"
)

// ActorHeader carries the authenticated actor's member id. Authentication
// itself happens upstream; this layer only needs the resolved identity.
const ActorHeader = "X-Actor-ID"

// MemberHandler handles member-related REST endpoints.
type MemberHandler struct {
	db     database.Client
	logger *zap.Logger
}

// NewMemberHandler creates a new member handler.
func NewMemberHandler(db database.Client, logger *zap.Logger) *MemberHandler {
	return &MemberHandler{
		db:     db,
		logger: logger,
	}
}

// RemoveMember removes the member with the given id, detaching or deleting
// all dependent records and opening a pending compensation entry.
func (h *MemberHandler) RemoveMember(w http.ResponseWriter, req bunrouter.Request) error {
	actorID := req.Header.Get(ActorHeader)
	if actorID == "" {
		http.Error(w, "missing actor header", http.StatusBadRequest)
		return nil
	}

	result, err := h.db.Service().Member().RemoveByID(req.Context(), actorID, req.Param("id"))
	if err != nil {
		writeError(w, h.logger, err)
		return nil
	}

	return bunrouter.JSON(w, restTypes.RemovalResponse{
		Message:          "member removed",
		CompensationID:   result.CompensationID.String(),
		Amount:           result.Amount,
		SnapshotCaptured: result.SnapshotCaptured,
	})
}

// RemoveMemberByEmail removes the member with the given email.
func (h *MemberHandler) RemoveMemberByEmail(w http.ResponseWriter, req bunrouter.Request) error {
	actorID := req.Header.Get(ActorHeader)
	if actorID == "" {
		http.Error(w, "missing actor header", http.StatusBadRequest)
		return nil
	}

	result, err := h.db.Service().Member().RemoveByEmail(req.Context(), actorID, req.Param("email"))
	if err != nil {
		writeError(w, h.logger, err)
		return nil
	}

	return bunrouter.JSON(w, restTypes.RemovalResponse{
		Message:          "member removed",
		CompensationID:   result.CompensationID.String(),
		Amount:           result.Amount,
		SnapshotCaptured: result.SnapshotCaptured,
	})
}
