package visits

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Post("/visits", recordVisitHandler(svc))
}

type recordVisitRequest struct {
	PetID     string          `json:"mascota"`
	Reason    string          `json:"motivo"`
	Diagnosis string          `json:"diagnostico"`
	Treatment string          `json:"tratamiento"`
	VetCost   decimal.Decimal `json:"costo_veterinario"`
	MedCost   decimal.Decimal `json:"costo_medicamentos"`
}

type visitResponse struct {
	ID        string          `json:"id"`
	PetID     string          `json:"mascota"`
	OwnerDNI  string          `json:"propietario"`
	Reason    string          `json:"motivo"`
	Diagnosis string          `json:"diagnostico"`
	Treatment string          `json:"tratamiento"`
	VetCost   decimal.Decimal `json:"costo_veterinario"`
	MedCost   decimal.Decimal `json:"costo_medicamentos"`
	TotalCost decimal.Decimal `json:"costo"`
}

func recordVisitHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req recordVisitRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		v, err := svc.Record(r.Context(), RecordInput{
			PetID:     req.PetID,
			Reason:    req.Reason,
			Diagnosis: req.Diagnosis,
			Treatment: req.Treatment,
			VetCost:   req.VetCost,
			MedCost:   req.MedCost,
		})
		if err != nil {
			switch {
			case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrPetUnavailable):
				http.Error(w, err.Error(), http.StatusBadRequest)
			default:
				http.Error(w, "storage error", http.StatusBadGateway)
			}
			return
		}

		writeJSON(w, http.StatusCreated, toVisitResponse(v))
	}
}

func toVisitResponse(v Visit) visitResponse {
	return visitResponse{
		ID:        v.ID,
		PetID:     v.PetID,
		OwnerDNI:  v.OwnerDNI,
		Reason:    v.Reason,
		Diagnosis: v.Diagnosis,
		Treatment: v.Treatment,
		VetCost:   v.VetCost,
		MedCost:   v.MedCost,
		TotalCost: v.TotalCost,
	}
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos
// para evitar crear helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
