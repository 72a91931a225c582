package v1

import (
	"encoding/json"
	"net/http"

	chi "github.com/go-chi/chi/v5"

	"github.com/openbooks/reporting/internal/ingest"
)

// postAccount appends one account to the chart of accounts.
func (s *Server) postAccount(w http.ResponseWriter, r *http.Request) {
	if !requireJSON(w, r) {
		return
	}
	var req postAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid json: "+err.Error())
		return
	}
	accounts, warnings := ingest.Accounts([]ingest.ChartRow{req})
	if len(accounts) == 0 {
		detail := "invalid account"
		if len(warnings) > 0 {
			detail = warnings[0].Detail
		}
		unprocessable(w, detail, "validation_error")
		return
	}
	if err := s.store.AppendAccount(r.Context(), accounts[0]); err != nil {
		writeDomainErr(w, err)
		return
	}
	toJSON(w, http.StatusCreated, toAccountResponse(accounts[0]))
}

// listAccounts returns the full chart, placeholders included, as the
// statement views see it.
func (s *Server) listAccounts(w http.ResponseWriter, r *http.Request) {
	reg, err := s.svc.Registry(r.Context())
	if err != nil {
		s.log.Error("load registry", "err", err)
		writeDomainErr(w, err)
		return
	}
	accounts := reg.Accounts()
	out := make([]accountResponse, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, toAccountResponse(a))
	}
	toJSON(w, http.StatusOK, out)
}

func (s *Server) getAccount(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	reg, err := s.svc.Registry(r.Context())
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	a, ok := reg.Lookup(code)
	if !ok {
		notFound(w)
		return
	}
	toJSON(w, http.StatusOK, toAccountResponse(a))
}
