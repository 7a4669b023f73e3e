package reports

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Get("/visits", listVisitsHandler(svc))
	r.Get("/pets/{petID}/history", petHistoryHandler(svc))

	r.Route("/reports", func(rr chi.Router) {
		rr.Get("/monthly/{month}", monthlyHandler(svc))
		rr.Get("/annual/{year}/counts", annualCountsHandler(svc))
		rr.Get("/annual/{year}/totals", annualTotalsHandler(svc))
	})
}

type entryResponse struct {
	Key       string          `json:"id"`
	PetID     string          `json:"mascota"`
	PetName   string          `json:"mascota_nombre"`
	OwnerDNI  string          `json:"propietario"`
	OwnerName string          `json:"propietario_nombre"`
	Reason    string          `json:"motivo"`
	VetCost   decimal.Decimal `json:"costo_veterinario"`
	MedCost   decimal.Decimal `json:"costo_medicamentos"`
	TotalCost decimal.Decimal `json:"costo"`
}

type countRowResponse struct {
	PetID   string  `json:"mascota"`
	PetName string  `json:"nombre"`
	Months  [12]int `json:"meses"`
}

type totalRowResponse struct {
	PetID   string              `json:"mascota"`
	PetName string              `json:"nombre"`
	Months  [12]decimal.Decimal `json:"meses"`
}

type historyResponse struct {
	PetID    string                 `json:"mascota"`
	PetName  string                 `json:"nombre"`
	Species  string                 `json:"especie"`
	Age      int                    `json:"edad"`
	OwnerDNI string                 `json:"propietario"`
	Visits   []historyVisitResponse `json:"atenciones"`
}

type historyVisitResponse struct {
	ID        string          `json:"id"`
	Reason    string          `json:"motivo"`
	Diagnosis string          `json:"diagnostico"`
	Treatment string          `json:"tratamiento"`
	VetCost   decimal.Decimal `json:"costo_veterinario"`
	MedCost   decimal.Decimal `json:"costo_medicamentos"`
	TotalCost decimal.Decimal `json:"costo"`
}

func listVisitsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entries, err := svc.All(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toEntryResponses(entries))
	}
}

func monthlyHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entries, err := svc.Monthly(r.Context(), chi.URLParam(r, "month"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toEntryResponses(entries))
	}
}

func annualCountsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := svc.AnnualCounts(r.Context(), chi.URLParam(r, "year"))
		if err != nil {
			writeError(w, err)
			return
		}

		out := make([]countRowResponse, 0, len(rows))
		for _, row := range rows {
			out = append(out, countRowResponse{PetID: row.PetID, PetName: row.PetName, Months: row.Months})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func annualTotalsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := svc.AnnualTotals(r.Context(), chi.URLParam(r, "year"))
		if err != nil {
			writeError(w, err)
			return
		}

		out := make([]totalRowResponse, 0, len(rows))
		for _, row := range rows {
			out = append(out, totalRowResponse{PetID: row.PetID, PetName: row.PetName, Months: row.Months})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func petHistoryHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h, err := svc.History(r.Context(), chi.URLParam(r, "petID"))
		if err != nil {
			writeError(w, err)
			return
		}

		resp := historyResponse{
			PetID:    h.Pet.ID,
			PetName:  h.Pet.Name,
			Species:  h.Pet.Species,
			Age:      h.Pet.Age,
			OwnerDNI: h.Pet.OwnerDNI,
			Visits:   make([]historyVisitResponse, 0, len(h.Visits)),
		}
		for _, v := range h.Visits {
			resp.Visits = append(resp.Visits, historyVisitResponse{
				ID:        v.ID,
				Reason:    v.Reason,
				Diagnosis: v.Diagnosis,
				Treatment: v.Treatment,
				VetCost:   v.VetCost,
				MedCost:   v.MedCost,
				TotalCost: v.TotalCost,
			})
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func toEntryResponses(entries []Entry) []entryResponse {
	out := make([]entryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, entryResponse{
			Key:       e.Key,
			PetID:     e.PetID,
			PetName:   e.PetName,
			OwnerDNI:  e.OwnerDNI,
			OwnerName: e.OwnerName,
			Reason:    e.Reason,
			VetCost:   e.VetCost,
			MedCost:   e.MedCost,
			TotalCost: e.TotalCost,
		})
	}
	return out
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidPeriod):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrPetNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		http.Error(w, "storage error", http.StatusBadGateway)
	}
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos
// para evitar crear helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
