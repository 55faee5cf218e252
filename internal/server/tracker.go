package server

import (
	"net/http"
	"time"

	"github.com/finbuzz/finbuzz/internal/model"
	"github.com/finbuzz/finbuzz/internal/session"
)

type expenseResponse struct {
	ID          string  `json:"id"`
	Date        string  `json:"date"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
}

type expenseListResponse struct {
	Expenses       []expenseResponse  `json:"expenses"`
	Total          float64            `json:"total"`
	CategoryTotals map[string]float64 `json:"categoryTotals"`
}

func toExpenseResponse(e model.Expense) expenseResponse {
	return expenseResponse{
		ID:          e.ID,
		Date:        e.Date.Format(time.RFC3339),
		Category:    e.Category,
		Description: e.Description,
		Amount:      e.Amount,
	}
}

func (s *Server) handleListExpenses(w http.ResponseWriter, _ *http.Request, sess *session.Session) {
	expenses := sess.Expenses.Expenses()
	out := make([]expenseResponse, 0, len(expenses))
	for _, e := range expenses {
		out = append(out, toExpenseResponse(e))
	}
	writeJSON(w, http.StatusOK, expenseListResponse{
		Expenses:       out,
		Total:          sess.Expenses.Total(),
		CategoryTotals: sess.Expenses.CategoryTotals(),
	})
}

type addExpenseRequest struct {
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
}

func (s *Server) handleAddExpense(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	var req addExpenseRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err)
		return
	}

	e, err := sess.Expenses.Add(req.Amount, req.Category, req.Description)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toExpenseResponse(e))
}

func (s *Server) handleResetExpenses(w http.ResponseWriter, _ *http.Request, sess *session.Session) {
	sess.Expenses.Reset()
	writeJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}

type goalResponse struct {
	ID                 string  `json:"id"`
	Name               string  `json:"name"`
	Frequency          string  `json:"frequency"`
	StartDate          string  `json:"startDate"`
	TargetAmount       float64 `json:"targetAmount"`
	CurrentAmount      float64 `json:"currentAmount"`
	ContributionAmount float64 `json:"contributionAmount"`
	Progress           float64 `json:"progress"`
}

type goalListResponse struct {
	Goals      []goalResponse `json:"goals"`
	TotalSaved float64        `json:"totalSaved"`
}

func toGoalResponse(g model.SavingsGoal) goalResponse {
	return goalResponse{
		ID:                 g.ID,
		Name:               g.Name,
		Frequency:          string(g.Frequency),
		StartDate:          g.StartDate.Format(time.RFC3339),
		TargetAmount:       g.TargetAmount,
		CurrentAmount:      g.CurrentAmount,
		ContributionAmount: g.ContributionAmount,
		Progress:           g.Progress(),
	}
}

func (s *Server) handleListGoals(w http.ResponseWriter, _ *http.Request, sess *session.Session) {
	goals := sess.Goals.Goals()
	out := make([]goalResponse, 0, len(goals))
	for _, g := range goals {
		out = append(out, toGoalResponse(g))
	}
	writeJSON(w, http.StatusOK, goalListResponse{Goals: out, TotalSaved: sess.Goals.TotalSaved()})
}

type addGoalRequest struct {
	Name               string  `json:"name"`
	Frequency          string  `json:"frequency"`
	TargetAmount       float64 `json:"targetAmount"`
	ContributionAmount float64 `json:"contributionAmount"`
}

func (s *Server) handleAddGoal(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	var req addGoalRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err)
		return
	}

	g, err := sess.Goals.Add(req.Name, req.TargetAmount, req.ContributionAmount, model.Frequency(req.Frequency))
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toGoalResponse(g))
}

func (s *Server) handleContributeGoal(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	g, err := sess.Goals.Contribute(r.PathValue("id"))
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toGoalResponse(g))
}

func (s *Server) handleResetGoals(w http.ResponseWriter, _ *http.Request, sess *session.Session) {
	sess.Goals.Reset()
	writeJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}

type investmentResponse struct {
	ID     string  `json:"id"`
	Date   string  `json:"date"`
	Type   string  `json:"type"`
	Amount float64 `json:"amount"`
}

type investmentListResponse struct {
	Investments []investmentResponse `json:"investments"`
	Total       float64              `json:"total"`
	TypeTotals  map[string]float64   `json:"typeTotals"`
}

func toInvestmentResponse(i model.Investment) investmentResponse {
	return investmentResponse{
		ID:     i.ID,
		Date:   i.Date.Format(time.RFC3339),
		Type:   i.Type,
		Amount: i.Amount,
	}
}

func (s *Server) handleListInvestments(w http.ResponseWriter, _ *http.Request, sess *session.Session) {
	investments := sess.Portfolio.Investments()
	out := make([]investmentResponse, 0, len(investments))
	for _, i := range investments {
		out = append(out, toInvestmentResponse(i))
	}
	writeJSON(w, http.StatusOK, investmentListResponse{
		Investments: out,
		Total:       sess.Portfolio.Total(),
		TypeTotals:  sess.Portfolio.TypeTotals(),
	})
}

type addInvestmentRequest struct {
	Type   string  `json:"type"`
	Amount float64 `json:"amount"`
}

func (s *Server) handleAddInvestment(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	var req addInvestmentRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err)
		return
	}

	i, err := sess.Portfolio.Add(req.Type, req.Amount)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toInvestmentResponse(i))
}

func (s *Server) handleResetInvestments(w http.ResponseWriter, _ *http.Request, sess *session.Session) {
	sess.Portfolio.Reset()
	writeJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}

type fundResponse struct {
	CurrentAmount       float64 `json:"currentAmount"`
	TargetAmount        float64 `json:"targetAmount"`
	MonthlyContribution float64 `json:"monthlyContribution"`
	Progress            float64 `json:"progress"`
	MonthsToGoal        int     `json:"monthsToGoal"`
}

func toFundResponse(f model.EmergencyFund) fundResponse {
	return fundResponse{
		CurrentAmount:       f.CurrentAmount,
		TargetAmount:        f.TargetAmount,
		MonthlyContribution: f.MonthlyContribution,
		Progress:            f.Progress(),
		MonthsToGoal:        f.MonthsToGoal(),
	}
}

func (s *Server) handleGetFund(w http.ResponseWriter, _ *http.Request, sess *session.Session) {
	writeJSON(w, http.StatusOK, toFundResponse(sess.Fund.Fund()))
}

func (s *Server) handleContributeFund(w http.ResponseWriter, _ *http.Request, sess *session.Session) {
	writeJSON(w, http.StatusOK, toFundResponse(sess.Fund.AddContribution()))
}

type fundAmountRequest struct {
	Amount float64 `json:"amount"`
}

func (s *Server) handleSetFundTarget(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	var req fundAmountRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err)
		return
	}
	if err := sess.Fund.SetTarget(req.Amount); err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toFundResponse(sess.Fund.Fund()))
}

func (s *Server) handleSetFundMonthly(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	var req fundAmountRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err)
		return
	}
	if err := sess.Fund.SetMonthlyContribution(req.Amount); err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toFundResponse(sess.Fund.Fund()))
}

func (s *Server) handleResetFund(w http.ResponseWriter, _ *http.Request, sess *session.Session) {
	sess.Fund.Reset()
	writeJSON(w, http.StatusOK, toFundResponse(sess.Fund.Fund()))
}
