package handler

import (
	"encoding/json"
	"net/http"

	"github.com/pesio-ai/be-plt-directory/internal/repository"
	"github.com/pesio-ai/be-plt-directory/internal/service"
)

// employeeResponse carries the resolved company summary, not the raw foreign
// key.
type employeeResponse struct {
	ID        int64            `json:"id"`
	FirstName string           `json:"firstName"`
	LastName  string           `json:"lastName"`
	Company   *companyResponse `json:"company"`
	Email     *string          `json:"email"`
	Phone     *string          `json:"phone"`
}

func toEmployeeResponse(e *repository.Employee) *employeeResponse {
	return &employeeResponse{
		ID:        e.ID,
		FirstName: e.FirstName,
		LastName:  e.LastName,
		Company:   toCompanyResponse(e.Company),
		Email:     e.Email,
		Phone:     e.Phone,
	}
}

func (h *HTTPHandler) listEmployees(w http.ResponseWriter, r *http.Request) {
	page := pageParam(r)

	employees, total, err := h.employees.List(r.Context(), page)
	if err != nil {
		h.writeError(w, err, "Failed to list employees. Please try again later")
		return
	}

	data := make([]*employeeResponse, 0, len(employees))
	for _, e := range employees {
		data = append(data, toEmployeeResponse(e))
	}

	h.writeJSON(w, http.StatusOK, map[string]any{
		"data":  data,
		"page":  page,
		"total": total,
	})
}

func (h *HTTPHandler) getEmployee(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, err, "Failed to get employee. Please try again later")
		return
	}

	employee, err := h.employees.Get(r.Context(), id)
	if err != nil {
		h.writeError(w, err, "Failed to get employee. Please try again later")
		return
	}

	h.writeJSON(w, http.StatusOK, toEmployeeResponse(employee))
}

func (h *HTTPHandler) createEmployee(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FirstName string  `json:"firstName"`
		LastName  string  `json:"lastName"`
		CompanyID int64   `json:"companyId"`
		Email     *string `json:"email"`
		Phone     *string `json:"phone"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	employee, err := h.employees.Create(r.Context(), service.CreateEmployeeRequest{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		CompanyID: req.CompanyID,
		Email:     req.Email,
		Phone:     req.Phone,
	})
	if err != nil {
		h.writeError(w, err, "Failed to create employee. Please try again later")
		return
	}

	h.writeJSON(w, http.StatusCreated, toEmployeeResponse(employee))
}

func (h *HTTPHandler) updateEmployee(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, err, "Failed to update employee. Please try again later")
		return
	}

	var req struct {
		FirstName *string `json:"firstName"`
		LastName  *string `json:"lastName"`
		CompanyID *int64  `json:"companyId"`
		Email     *string `json:"email"`
		Phone     *string `json:"phone"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	employee, err := h.employees.Update(r.Context(), id, service.UpdateEmployeeRequest{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		CompanyID: req.CompanyID,
		Email:     req.Email,
		Phone:     req.Phone,
	})
	if err != nil {
		h.writeError(w, err, "Failed to update employee. Please try again later")
		return
	}

	h.writeJSON(w, http.StatusOK, toEmployeeResponse(employee))
}

func (h *HTTPHandler) deleteEmployee(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, err, "Failed to delete employee. Please try again later")
		return
	}

	if err := h.employees.Delete(r.Context(), id); err != nil {
		h.writeError(w, err, "Failed to delete employee. Please try again later")
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{"data": "Employee deleted successfully"})
}
