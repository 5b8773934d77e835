package debenture

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

type Handler struct {
	Repo *Repository
}

func NewHandler(repo *Repository) *Handler {
	return &Handler{Repo: repo}
}

// POST /debentures
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	var d Debenture
	if err := json.NewDecoder(r.Body).Decode(&d); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}
	if d.Nome == "" {
		http.Error(w, "nome é obrigatório", http.StatusBadRequest)
		return
	}
	if err := h.Repo.Create(&d); err != nil {
		http.Error(w, "erro ao criar debênture", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(d)
}

// GET /debentures
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	lista, err := h.Repo.List()
	if err != nil {
		http.Error(w, "erro ao listar debêntures", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(lista)
}

// GET /debentures/{id}
func (h *Handler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}
	d, err := h.Repo.FindByID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "debênture não encontrada", http.StatusNotFound)
			return
		}
		http.Error(w, "erro ao buscar debênture", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(d)
}

// PUT /debentures/{id}
func (h *Handler) Atualizar(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}
	d, err := h.Repo.FindByID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "debênture não encontrada", http.StatusNotFound)
			return
		}
		http.Error(w, "erro ao buscar debênture", http.StatusInternalServerError)
		return
	}
	var in Debenture
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}
	if in.Nome != "" {
		d.Nome = in.Nome
	}
	if in.Emissor != "" {
		d.Emissor = in.Emissor
	}
	if in.Descricao != "" {
		d.Descricao = in.Descricao
	}
	if err := h.Repo.Update(d); err != nil {
		http.Error(w, "erro ao atualizar debênture", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(d)
}

// DELETE /debentures/{id}
func (h *Handler) Deletar(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}
	if err := h.Repo.Delete(uint(id)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "debênture não encontrada", http.StatusNotFound)
			return
		}
		http.Error(w, "erro ao remover debênture", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
