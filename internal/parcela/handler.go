package parcela

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/RendaCapital/api-investimentos/internal/auth"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

/* ============================== Handler & DTOs ============================== */

type Handler struct {
	Repo    *Repository
	Service *Service
}

func NewHandler(repo *Repository, service *Service) *Handler {
	return &Handler{Repo: repo, Service: service}
}

// DTO do PATCH /parcelas/{id}/status
type TransicaoDTO struct {
	Status         Status     `json:"status"`
	Notas          string     `json:"notas"`
	DataPagamento  *time.Time `json:"dataPagamento"`
	Administrativa bool       `json:"administrativa"`
}

// DTO do PATCH /parcelas/status-lote
type TransicaoLoteDTO struct {
	ParcelaIDs []uint `json:"parcelaIds"`
	Status     Status `json:"status"`
	Notas      string `json:"notas"`
}

func autorDaRequisicao(r *http.Request) string {
	if id, ok := r.Context().Value(auth.CtxUserID).(uint); ok {
		return "usuario:" + strconv.FormatUint(uint64(id), 10)
	}
	return ""
}

/* ============================== Endpoints ============================== */

// GET /cronogramas/{cid}/parcelas
func (h *Handler) ListarPorCronograma(w http.ResponseWriter, r *http.Request) {
	cid, err := strconv.Atoi(mux.Vars(r)["cid"])
	if err != nil {
		http.Error(w, "ID do cronograma inválido", http.StatusBadRequest)
		return
	}
	parcelas, err := h.Repo.ListByCronogramaID(uint(cid))
	if err != nil {
		http.Error(w, "erro ao buscar parcelas", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(parcelas)
}

// GET /parcelas/{id}/historico
func (h *Handler) Historico(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}
	hist, err := h.Repo.ListarHistorico(uint(id))
	if err != nil {
		http.Error(w, "erro ao buscar histórico", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(hist)
}

// PATCH /parcelas/{id}/status
func (h *Handler) AtualizarStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}
	var in TransicaoDTO
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}

	autor := autorDaRequisicao(r)
	var p *ParcelaComissao
	var trErr error
	if in.Administrativa {
		p, trErr = h.Service.TransicionarAdministrativo(uint(id), in.Status, in.Notas, autor)
	} else {
		p, trErr = h.Service.Transicionar(uint(id), in.Status, in.Notas, autor, in.DataPagamento)
	}
	if trErr != nil {
		var inval *TransicaoInvalidaError
		switch {
		case errors.As(trErr, &inval):
			http.Error(w, inval.Error(), http.StatusUnprocessableEntity)
		case errors.Is(trErr, ErrConflitoStatus):
			http.Error(w, trErr.Error(), http.StatusConflict)
		case errors.Is(trErr, gorm.ErrRecordNotFound):
			http.Error(w, "parcela não encontrada", http.StatusNotFound)
		default:
			http.Error(w, "erro ao atualizar status", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(p)
}

// PATCH /parcelas/status-lote
func (h *Handler) AtualizarStatusLote(w http.ResponseWriter, r *http.Request) {
	var in TransicaoLoteDTO
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}
	if len(in.ParcelaIDs) == 0 {
		http.Error(w, "parcelaIds é obrigatório", http.StatusBadRequest)
		return
	}

	resultado := h.Service.TransicionarEmLote(in.ParcelaIDs, in.Status, in.Notas, autorDaRequisicao(r))

	// lote parcial nunca é tratado como erro HTTP; o manifesto informa item a item
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resultado)
}

// GET /parcelas/resumo?por=status|papel|mes
func (h *Handler) Resumo(w http.ResponseWriter, r *http.Request) {
	var (
		resumo interface{}
		err    error
	)
	switch r.URL.Query().Get("por") {
	case "", "status":
		resumo, err = h.Repo.ResumoPorStatus()
	case "papel":
		resumo, err = h.Repo.ResumoPorPapel()
	case "mes":
		resumo, err = h.Repo.ResumoPorMes()
	default:
		http.Error(w, "agrupamento inválido; use status, papel ou mes", http.StatusBadRequest)
		return
	}
	if err != nil {
		http.Error(w, "erro ao montar resumo", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resumo)
}
