package v1

import (
	"encoding/json"
	"net/http"

	"github.com/openbooks/reporting/internal/ingest"
	"github.com/openbooks/reporting/internal/ledger"
)

// postTransactions ingests posted transactions in either feed shape and
// appends the normalized records to the ledger. Records that fail
// normalization are reported as warnings, not errors; the rest still post.
func (s *Server) postTransactions(w http.ResponseWriter, r *http.Request) {
	if !requireJSON(w, r) {
		return
	}
	var req postTransactionsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid json: "+err.Error())
		return
	}
	if len(req.Transactions) == 0 && len(req.Entries) == 0 {
		badRequest(w, "transactions or entries required")
		return
	}

	flat, flatWarnings := ingest.FlatTransactions(req.Transactions)
	lines, lineWarnings := ingest.JournalTransactions(req.Entries)

	txs := make([]ledger.Transaction, 0, len(flat)+len(lines))
	txs = append(txs, flat...)
	txs = append(txs, lines...)
	warnings := append(flatWarnings, lineWarnings...)

	if err := s.store.AddTransactions(r.Context(), txs); err != nil {
		s.log.Error("append transactions", "err", err)
		writeDomainErr(w, err)
		return
	}
	toJSON(w, http.StatusCreated, postTransactionsResponse{Added: len(txs), Warnings: warnings})
}

// listTransactions returns the canonical ledger in posting order.
func (s *Server) listTransactions(w http.ResponseWriter, r *http.Request) {
	txs, err := s.store.Transactions(r.Context())
	if err != nil {
		s.log.Error("list transactions", "err", err)
		writeDomainErr(w, err)
		return
	}
	toJSON(w, http.StatusOK, txs)
}
