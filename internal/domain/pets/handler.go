package pets

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/pets", func(pr chi.Router) {
		pr.Post("/", createPetHandler(svc))
		pr.Get("/", listPetsHandler(svc))
		pr.Get("/{petID}", getPetHandler(svc))
		pr.Patch("/{petID}", updatePetHandler(svc))
		pr.Delete("/{petID}", deactivatePetHandler(svc))
	})
}

type createPetRequest struct {
	Name     string          `json:"nombre"`
	Sex      string          `json:"sexo"`
	Species  string          `json:"especie"`
	Breed    string          `json:"raza"`
	Age      int             `json:"edad"`
	Weight   decimal.Decimal `json:"peso"`
	OwnerDNI string          `json:"propietario"`
}

type updatePetRequest struct {
	// Campo vacío u omitido = mantener. Los numéricos van como
	// punteros para distinguir "0" de "no enviado".
	Name    string           `json:"nombre"`
	Sex     string           `json:"sexo"`
	Species string           `json:"especie"`
	Breed   string           `json:"raza"`
	Age     *int             `json:"edad"`
	Weight  *decimal.Decimal `json:"peso"`
}

type petResponse struct {
	ID       string          `json:"id"`
	Active   bool            `json:"activo"`
	Name     string          `json:"nombre"`
	Sex      string          `json:"sexo"`
	Species  string          `json:"especie"`
	Breed    string          `json:"raza"`
	Age      int             `json:"edad"`
	Weight   decimal.Decimal `json:"peso"`
	OwnerDNI string          `json:"propietario"`
	History  []string        `json:"historial"`
}

func createPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createPetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		p, err := svc.Create(r.Context(), CreateInput{
			Name:     req.Name,
			Sex:      req.Sex,
			Species:  req.Species,
			Breed:    req.Breed,
			Age:      req.Age,
			Weight:   req.Weight,
			OwnerDNI: req.OwnerDNI,
		})
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toPetResponse(p))
	}
}

func getPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := svc.Get(r.Context(), chi.URLParam(r, "petID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toPetResponse(p))
	}
}

func listPetsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		active, err := svc.ListActive(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}

		out := make([]petResponse, 0, len(active))
		for _, p := range active {
			out = append(out, toPetResponse(p))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func updatePetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updatePetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		p, err := svc.Update(r.Context(), chi.URLParam(r, "petID"), UpdateInput{
			Name:    req.Name,
			Sex:     req.Sex,
			Species: req.Species,
			Breed:   req.Breed,
			Age:     req.Age,
			Weight:  req.Weight,
		})
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toPetResponse(p))
	}
}

func deactivatePetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Deactivate(r.Context(), chi.URLParam(r, "petID")); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func toPetResponse(p Pet) petResponse {
	history := p.History
	if history == nil {
		history = []string{}
	}
	return petResponse{
		ID:       p.ID,
		Active:   p.Active,
		Name:     p.Name,
		Sex:      p.Sex,
		Species:  p.Species,
		Breed:    p.Breed,
		Age:      p.Age,
		Weight:   p.Weight,
		OwnerDNI: p.OwnerDNI,
		History:  history,
	}
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrOwnerUnavailable):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrNotFoundOrInactive):
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
