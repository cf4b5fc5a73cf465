package server

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"valorant-accounts/internal/domain"
	"valorant-accounts/internal/importer"
	"valorant-accounts/internal/service"
)

// envelope mirrors the success/error shape the UI already understands.
type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Error().Err(err).Msg("failed to encode response")
	}
}

func (s *Server) writeData(w http.ResponseWriter, data any) {
	s.writeJSON(w, http.StatusOK, envelope{Success: true, Data: data})
}

// writeError maps typed failures onto statuses; every failure carries a
// human-readable explanation naming the cause.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError

	var invalidFormat *importer.InvalidFormatError
	var noAccounts *importer.NoAccountsError
	switch {
	case errors.As(err, &invalidFormat), errors.As(err, &noAccounts):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, service.ErrAccountNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrInvalidPassword):
		status = http.StatusUnauthorized
	}

	if status == http.StatusInternalServerError {
		s.logger.Error().Err(err).Msg("request failed")
	}
	s.writeJSON(w, status, envelope{Success: false, Error: err.Error()})
}

func (s *Server) decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		s.writeJSON(w, http.StatusBadRequest, envelope{Success: false, Error: "invalid request body"})
		return false
	}
	return true
}

func (s *Server) handleVerifyPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Password string `json:"password"`
	}
	if !s.decodeBody(w, r, &req) {
		return
	}
	if req.Password == "" {
		s.writeJSON(w, http.StatusBadRequest, envelope{Success: false, Error: "password is required"})
		return
	}

	created, err := s.auth.Verify(req.Password)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeData(w, map[string]bool{"created": created})
}

func (s *Server) handleListAccounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := s.accounts.Search(r.URL.Query().Get("q"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	if accounts == nil {
		accounts = []domain.Account{}
	}
	s.writeData(w, accounts)
}

func (s *Server) handleAddAccount(w http.ResponseWriter, r *http.Request) {
	var acc domain.Account
	if !s.decodeBody(w, r, &acc) {
		return
	}
	added, err := s.accounts.Add(acc)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeData(w, added)
}

func (s *Server) handleUpdateAccount(w http.ResponseWriter, r *http.Request) {
	var acc domain.Account
	if !s.decodeBody(w, r, &acc) {
		return
	}
	updated, err := s.accounts.Update(chi.URLParam(r, "id"), acc)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeData(w, updated)
}

func (s *Server) handleDeleteAccount(w http.ResponseWriter, r *http.Request) {
	if err := s.accounts.Delete(chi.URLParam(r, "id")); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeData(w, nil)
}

func (s *Server) handleToggleSkins(w http.ResponseWriter, r *http.Request) {
	acc, err := s.accounts.ToggleSkins(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeData(w, acc)
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FileName string `json:"fileName"`
		Data     string `json:"data"` // base64
	}
	if !s.decodeBody(w, r, &req) {
		return
	}

	fileBytes, err := base64.StdEncoding.DecodeString(req.Data)
	if err != nil {
		s.writeJSON(w, http.StatusBadRequest, envelope{Success: false, Error: "file data is not valid base64"})
		return
	}

	outcome, err := s.accounts.Import(fileBytes, req.FileName)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeData(w, map[string]any{
		"accounts": outcome.Accounts,
		"message":  outcome.Message,
		"merged":   outcome.Merged,
		"added":    outcome.Added,
	})
}

func (s *Server) handleRefreshOne(w http.ResponseWriter, r *http.Request) {
	info, err := s.accounts.Refresh(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeData(w, info)
}

func (s *Server) handleRefreshAll(w http.ResponseWriter, r *http.Request) {
	started, err := s.accounts.RefreshAll()
	if err != nil {
		s.writeError(w, err)
		return
	}
	if !started {
		s.writeJSON(w, http.StatusConflict, envelope{Success: false, Error: "a batch refresh is already running"})
		return
	}
	s.writeData(w, map[string]bool{"started": true})
}

func (s *Server) handleStopRefresh(w http.ResponseWriter, r *http.Request) {
	s.accounts.StopRefreshAll()
	s.writeData(w, map[string]bool{"stopped": true})
}

func (s *Server) handleRefreshStatus(w http.ResponseWriter, r *http.Request) {
	s.writeData(w, map[string]any{
		"refreshing": s.accounts.IsRefreshing(),
		"results":    s.accounts.RankResults(),
	})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	records, err := s.accounts.History(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}

	type historyRow struct {
		Rank      string `json:"rank"`
		FetchedAt string `json:"fetchedAt"`
	}
	rows := make([]historyRow, 0, len(records))
	for _, rec := range records {
		rows = append(rows, historyRow{Rank: rec.Rank, FetchedAt: rec.FetchedAt.Format("2006-01-02T15:04:05Z07:00")})
	}
	s.writeData(w, rows)
}

func (s *Server) handleGetTheme(w http.ResponseWriter, r *http.Request) {
	theme, err := s.store.LoadTheme()
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeData(w, map[string]string{"theme": theme})
}

func (s *Server) handleSetTheme(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Theme string `json:"theme"`
	}
	if !s.decodeBody(w, r, &req) {
		return
	}
	if req.Theme != "light" && req.Theme != "dark" {
		s.writeJSON(w, http.StatusBadRequest, envelope{Success: false, Error: "theme must be light or dark"})
		return
	}
	if err := s.store.SaveTheme(req.Theme); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeData(w, map[string]string{"theme": req.Theme})
}
