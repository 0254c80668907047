package transaction

import (
	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/ledger-server/internal/service"
)

// RegisterAll mounts every transaction operation on api, in an order that
// keeps /transactions/summary ahead of /transactions/{id}.
func RegisterAll(api huma.API, svc *service.TransactionService) {
	NewCreateTransactionHandler(svc).Register(api)
	NewListTransactionsHandler(svc).Register(api)
	NewSummarizeTransactionsHandler(svc).Register(api)
	NewGetTransactionHandler(svc).Register(api)
}
