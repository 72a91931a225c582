package v1

import (
	"encoding/json"
	"net/http"
)

func (s *Server) getBalances(w http.ResponseWriter, r *http.Request) {
	balances, warnings, err := s.svc.Balances(r.Context())
	if err != nil {
		s.log.Error("derive balances", "err", err)
		writeDomainErr(w, err)
		return
	}
	toJSON(w, http.StatusOK, balancesResponse{Balances: balances, Warnings: warnings})
}

func (s *Server) getProfitAndLoss(w http.ResponseWriter, r *http.Request) {
	pnl, warnings, err := s.svc.ProfitAndLoss(r.Context())
	if err != nil {
		s.log.Error("derive pnl", "err", err)
		writeDomainErr(w, err)
		return
	}
	toJSON(w, http.StatusOK, pnlResponse{ProfitAndLoss: pnl, Warnings: warnings})
}

func (s *Server) getBalanceSheet(w http.ResponseWriter, r *http.Request) {
	bs, warnings, err := s.svc.BalanceSheet(r.Context())
	if err != nil {
		s.log.Error("derive balance sheet", "err", err)
		writeDomainErr(w, err)
		return
	}
	toJSON(w, http.StatusOK, balanceSheetResponse{BalanceSheet: bs, Warnings: warnings})
}

func (s *Server) getCashFlow(w http.ResponseWriter, r *http.Request) {
	cf, warnings, err := s.svc.CashFlow(r.Context())
	if err != nil {
		s.log.Error("derive cash flow", "err", err)
		writeDomainErr(w, err)
		return
	}
	toJSON(w, http.StatusOK, cashFlowResponse{CashFlow: cf, Warnings: warnings})
}

func (s *Server) getExecutiveSummary(w http.ResponseWriter, r *http.Request) {
	summary, warnings, err := s.svc.ExecutiveSummary(r.Context())
	if err != nil {
		s.log.Error("derive kpis", "err", err)
		writeDomainErr(w, err)
		return
	}
	toJSON(w, http.StatusOK, kpisResponse{Summary: summary, Warnings: warnings})
}

func (s *Server) getAnalytics(w http.ResponseWriter, r *http.Request) {
	analytics, warnings, err := s.svc.Analytics(r.Context())
	if err != nil {
		s.log.Error("derive analytics", "err", err)
		writeDomainErr(w, err)
		return
	}
	toJSON(w, http.StatusOK, analyticsResponse{Analytics: analytics, Warnings: warnings})
}

func (s *Server) getGeneralLedger(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("account")
	if code == "" {
		badRequest(w, "account query parameter is required")
		return
	}
	view, warnings, err := s.svc.GeneralLedger(r.Context(), code)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	toJSON(w, http.StatusOK, generalLedgerResponse{Ledger: view, Warnings: warnings})
}

func (s *Server) postReconciliation(w http.ResponseWriter, r *http.Request) {
	if !requireJSON(w, r) {
		return
	}
	var req postReconciliationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid json: "+err.Error())
		return
	}
	if req.Account == "" {
		badRequest(w, "account is required")
		return
	}
	view, warnings, err := s.svc.Reconciliation(r.Context(), req.Account, req.BankLines)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	toJSON(w, http.StatusOK, reconciliationResponse{Reconciliation: view, Warnings: warnings})
}
