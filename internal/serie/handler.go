package serie

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/RendaCapital/api-investimentos/internal/usuario"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

type Handler struct {
	Repo *Repository
}

func NewHandler(repo *Repository) *Handler {
	return &Handler{Repo: repo}
}

// POST /series
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	var s Serie
	if err := json.NewDecoder(r.Body).Decode(&s); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}
	if s.DebentureID == 0 || s.Nome == "" || s.PrazoMeses <= 0 {
		http.Error(w, "debentureId, nome e prazoMeses são obrigatórios", http.StatusBadRequest)
		return
	}
	if s.TipoJuros == "" {
		s.TipoJuros = JurosSimples
	}
	if s.TipoJuros != JurosSimples && s.TipoJuros != JurosComposto {
		http.Error(w, "tipoJuros deve ser simples ou composto", http.StatusBadRequest)
		return
	}
	if err := h.Repo.Create(&s); err != nil {
		http.Error(w, "erro ao criar série", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(s)
}

// GET /series  (aceita ?debentureId=)
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	var (
		lista []Serie
		err   error
	)
	if q := r.URL.Query().Get("debentureId"); q != "" {
		id, convErr := strconv.Atoi(q)
		if convErr != nil {
			http.Error(w, "debentureId inválido", http.StatusBadRequest)
			return
		}
		lista, err = h.Repo.ListByDebenture(uint(id))
	} else {
		lista, err = h.Repo.List()
	}
	if err != nil {
		http.Error(w, "erro ao listar séries", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(lista)
}

// GET /series/{id}
func (h *Handler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}
	s, err := h.Repo.FindByID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "série não encontrada", http.StatusNotFound)
			return
		}
		http.Error(w, "erro ao buscar série", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s)
}

// PUT /series/{id}
func (h *Handler) Atualizar(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}
	s, err := h.Repo.FindByID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "série não encontrada", http.StatusNotFound)
			return
		}
		http.Error(w, "erro ao buscar série", http.StatusInternalServerError)
		return
	}
	var in Serie
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}
	if in.Nome != "" {
		s.Nome = in.Nome
	}
	if !in.InvestimentoMinimo.IsZero() {
		s.InvestimentoMinimo = in.InvestimentoMinimo
	}
	if !in.InvestimentoMaximo.IsZero() {
		s.InvestimentoMaximo = in.InvestimentoMaximo
	}
	if !in.CaptacaoMaxima.IsZero() {
		s.CaptacaoMaxima = in.CaptacaoMaxima
	}
	if !in.PercentualMaximoComissao.IsZero() {
		s.PercentualMaximoComissao = in.PercentualMaximoComissao
	}
	if err := h.Repo.Update(s); err != nil {
		http.Error(w, "erro ao atualizar série", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s)
}

// DELETE /series/{id}
func (h *Handler) Deletar(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}
	if err := h.Repo.Delete(uint(id)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "série não encontrada", http.StatusNotFound)
			return
		}
		http.Error(w, "erro ao remover série", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GET /series/{id}/perfis-comissao
func (h *Handler) ListarPerfis(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}
	perfis, err := h.Repo.ListarPerfis(uint(id))
	if err != nil {
		http.Error(w, "erro ao listar perfis de comissão", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(perfis)
}

// PUT /series/{id}/perfis-comissao
func (h *Handler) SalvarPerfis(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}
	if _, err := h.Repo.FindByID(uint(id)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "série não encontrada", http.StatusNotFound)
			return
		}
		http.Error(w, "erro ao buscar série", http.StatusInternalServerError)
		return
	}
	var perfis []PerfilComissao
	if err := json.NewDecoder(r.Body).Decode(&perfis); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}
	for i := range perfis {
		if !usuario.PapelValido(perfis[i].Papel) {
			http.Error(w, "papel inválido: "+perfis[i].Papel, http.StatusBadRequest)
			return
		}
		perfis[i].SerieID = uint(id)
		if err := h.Repo.SalvarPerfil(&perfis[i]); err != nil {
			http.Error(w, "erro ao salvar perfil de comissão", http.StatusInternalServerError)
			return
		}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(perfis)
}
