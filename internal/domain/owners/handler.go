package owners

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/owners", func(or chi.Router) {
		or.Post("/", createOwnerHandler(svc))
		or.Get("/", listOwnersHandler(svc))
		or.Get("/{dni}", getOwnerHandler(svc))
		or.Patch("/{dni}", updateOwnerHandler(svc))
		or.Delete("/{dni}", deactivateOwnerHandler(svc))
	})
}

type createOwnerRequest struct {
	DNI            string `json:"dni"`
	Name           string `json:"nombre"`
	Address        string `json:"direccion"`
	Email          string `json:"email"`
	PhonePrimary   string `json:"telefono_principal"`
	PhoneEmergency string `json:"telefono_emergencia"`
}

type updateOwnerRequest struct {
	// Campo vacío u omitido = mantener el valor actual.
	Name           string `json:"nombre"`
	Address        string `json:"direccion"`
	Email          string `json:"email"`
	PhonePrimary   string `json:"telefono_principal"`
	PhoneEmergency string `json:"telefono_emergencia"`
}

type ownerResponse struct {
	DNI            string `json:"dni"`
	Active         bool   `json:"activo"`
	Name           string `json:"nombre"`
	Address        string `json:"direccion"`
	Email          string `json:"email"`
	PhonePrimary   string `json:"telefono_principal"`
	PhoneEmergency string `json:"telefono_emergencia"`
}

func createOwnerHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createOwnerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		o, err := svc.Create(r.Context(), CreateInput{
			DNI:            req.DNI,
			Name:           req.Name,
			Address:        req.Address,
			Email:          req.Email,
			PhonePrimary:   req.PhonePrimary,
			PhoneEmergency: req.PhoneEmergency,
		})
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toOwnerResponse(o))
	}
}

func getOwnerHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		o, err := svc.Get(r.Context(), chi.URLParam(r, "dni"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toOwnerResponse(o))
	}
}

func listOwnersHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		active, err := svc.ListActive(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}

		out := make([]ownerResponse, 0, len(active))
		for _, o := range active {
			out = append(out, toOwnerResponse(o))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func updateOwnerHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateOwnerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		o, err := svc.Update(r.Context(), chi.URLParam(r, "dni"), UpdateInput{
			Name:           req.Name,
			Address:        req.Address,
			Email:          req.Email,
			PhonePrimary:   req.PhonePrimary,
			PhoneEmergency: req.PhoneEmergency,
		})
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toOwnerResponse(o))
	}
}

func deactivateOwnerHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Deactivate(r.Context(), chi.URLParam(r, "dni")); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func toOwnerResponse(o Owner) ownerResponse {
	return ownerResponse{
		DNI:            o.DNI,
		Active:         o.Active,
		Name:           o.Name,
		Address:        o.Address,
		Email:          o.Email,
		PhonePrimary:   o.Phones.Primary,
		PhoneEmergency: o.Phones.Emergency,
	}
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrDuplicateDNI):
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
