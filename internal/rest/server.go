package rest

import (
	"net/http"

	"github.com/coopmed/coopmed/internal/database"
	"github.com/coopmed/coopmed/internal/rest/handler"
	"github.com/klauspost/compress/gzhttp"
	"github.com/uptrace/bunrouter"
	"go.uber.org/zap"
)

// Server implements the REST API service.
type Server struct {
	memberHandler       *handler.MemberHandler
	compensationHandler *handler.CompensationHandler
}

// NewServer creates a new REST API server.
func NewServer(db database.Client, logger *zap.Logger) http.Handler {
	server := &Server{
		memberHandler:       handler.NewMemberHandler(db, logger),
		compensationHandler: handler.NewCompensationHandler(db, logger),
	}

	router := bunrouter.New()

	router.WithGroup("/v1", func(g *bunrouter.Group) {
		g.DELETE("/members/:id", server.memberHandler.RemoveMember)
		g.DELETE("/members/by-email/:email", server.memberHandler.RemoveMemberByEmail)
		g.POST("/compensations/:id/undo", server.compensationHandler.UndoRemoval)
		g.POST("/compensations/:id/settle", server.compensationHandler.SettlePayment)
		g.POST("/compensations/:id/revert", server.compensationHandler.RevertSettlement)
		g.GET("/compensations/pending", server.compensationHandler.ListPending)
	})

	return gzhttp.GzipHandler(router)
}
