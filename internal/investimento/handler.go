package investimento

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/RendaCapital/api-investimentos/internal/comissao"
	"github.com/RendaCapital/api-investimentos/internal/hierarquia"
	"github.com/RendaCapital/api-investimentos/internal/serie"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

type Handler struct {
	Service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{Service: service}
}

// POST /investimentos
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	var in CriarInvestimentoDTO
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}

	resposta, err := h.Service.Criar(in)
	if err != nil {
		switch {
		case errors.Is(err, ErrSerieNaoEncontrada),
			errors.Is(err, ErrInvestidorNaoEncontrado),
			errors.Is(err, hierarquia.ErrNaoEncontrado):
			http.Error(w, err.Error(), http.StatusNotFound)
		case errors.Is(err, comissao.ErrTetoExcedido),
			errors.Is(err, comissao.ErrPercentualInvalido),
			errors.Is(err, serie.ErrAbaixoDoMinimo),
			errors.Is(err, ErrAcimaDoMaximo),
			errors.Is(err, ErrValorInvalido):
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		case errors.Is(err, serie.ErrCaptacaoExcedida):
			http.Error(w, err.Error(), http.StatusConflict)
		case errors.Is(err, hierarquia.ErrCicloSuspeito):
			http.Error(w, err.Error(), http.StatusInternalServerError)
		default:
			http.Error(w, "erro ao criar investimento", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(resposta)
}

// GET /investimentos  (aceita ?assessorId=)
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	var (
		lista []Investimento
		err   error
	)
	if q := r.URL.Query().Get("assessorId"); q != "" {
		id, convErr := strconv.Atoi(q)
		if convErr != nil {
			http.Error(w, "assessorId inválido", http.StatusBadRequest)
			return
		}
		lista, err = h.Service.Repo.ListByAssessor(uint(id))
	} else {
		lista, err = h.Service.Repo.List()
	}
	if err != nil {
		http.Error(w, "erro ao listar investimentos", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(lista)
}

// GET /investimentos/{id}
func (h *Handler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}
	inv, err := h.Service.Repo.FindByID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "investimento não encontrado", http.StatusNotFound)
			return
		}
		http.Error(w, "erro ao buscar investimento", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(inv)
}

// POST /investimentos/{id}/resgate
func (h *Handler) Resgatar(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}
	if err := h.Service.Resgatar(uint(id)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "investimento não encontrado", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DELETE /investimentos/{id}
func (h *Handler) Deletar(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}
	if err := h.Service.Remover(uint(id)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "investimento não encontrado", http.StatusNotFound)
			return
		}
		http.Error(w, "erro ao remover investimento", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
