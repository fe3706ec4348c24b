package handler

import (
	"encoding/json"
	"net/http"

	"github.com/pesio-ai/be-plt-directory/internal/repository"
	"github.com/pesio-ai/be-plt-directory/internal/service"
)

type companyResponse struct {
	ID      int64   `json:"id"`
	Name    string  `json:"name"`
	Email   *string `json:"email"`
	Website *string `json:"website"`
}

func toCompanyResponse(c *repository.Company) *companyResponse {
	if c == nil {
		return nil
	}
	return &companyResponse{
		ID:      c.ID,
		Name:    c.Name,
		Email:   c.Email,
		Website: c.Website,
	}
}

func (h *HTTPHandler) listCompanies(w http.ResponseWriter, r *http.Request) {
	page := pageParam(r)

	companies, total, err := h.companies.List(r.Context(), page)
	if err != nil {
		h.writeError(w, err, "Failed to list companies. Please try again later")
		return
	}

	data := make([]*companyResponse, 0, len(companies))
	for _, c := range companies {
		data = append(data, toCompanyResponse(c))
	}

	h.writeJSON(w, http.StatusOK, map[string]any{
		"data":  data,
		"page":  page,
		"total": total,
	})
}

func (h *HTTPHandler) getCompany(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, err, "Failed to get company. Please try again later")
		return
	}

	company, err := h.companies.Get(r.Context(), id)
	if err != nil {
		h.writeError(w, err, "Failed to get company. Please try again later")
		return
	}

	h.writeJSON(w, http.StatusOK, toCompanyResponse(company))
}

func (h *HTTPHandler) createCompany(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name    string  `json:"name"`
		Email   *string `json:"email"`
		Website *string `json:"website"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	company, err := h.companies.Create(r.Context(), service.CreateCompanyRequest{
		Name:    req.Name,
		Email:   req.Email,
		Website: req.Website,
	})
	if err != nil {
		h.writeError(w, err, "Failed to create company. Please try again later")
		return
	}

	h.writeJSON(w, http.StatusCreated, toCompanyResponse(company))
}

func (h *HTTPHandler) updateCompany(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, err, "Failed to update company. Please try again later")
		return
	}

	var req struct {
		Name    *string `json:"name"`
		Email   *string `json:"email"`
		Website *string `json:"website"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	company, err := h.companies.Update(r.Context(), id, service.UpdateCompanyRequest{
		Name:    req.Name,
		Email:   req.Email,
		Website: req.Website,
	})
	if err != nil {
		h.writeError(w, err, "Failed to update company. Please try again later")
		return
	}

	h.writeJSON(w, http.StatusOK, toCompanyResponse(company))
}

func (h *HTTPHandler) deleteCompany(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, err, "Failed to delete company. Please try again later")
		return
	}

	if err := h.companies.Delete(r.Context(), id); err != nil {
		h.writeError(w, err, "Failed to delete company. Please try again later")
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{"data": "Company deleted successfully"})
}
