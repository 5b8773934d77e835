package usuario

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/RendaCapital/api-investimentos/internal/auth"
	"github.com/RendaCapital/api-investimentos/internal/utils"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

type LoginRequest struct {
	Email string `json:"email"`
	Senha string `json:"senha"`
}

type criarUsuarioRequest struct {
	Nome         string `json:"nome"`
	Email        string `json:"email"`
	Senha        string `json:"senha"`
	Papel        string `json:"papel"`
	SuperiorID   *uint  `json:"superiorId"`
	TipoChavePix string `json:"tipoChavePix"`
	ChavePix     string `json:"chavePix"`
}

type criarUsuarioResponse struct {
	Usuario
	SenhaTemporaria string `json:"senhaTemporaria,omitempty"`
}

type atualizarUsuarioRequest struct {
	Nome         string `json:"nome"`
	SuperiorID   *uint  `json:"superiorId"`
	TipoChavePix string `json:"tipoChavePix"`
	ChavePix     string `json:"chavePix"`
}

// Handler expõe as rotas de usuários da hierarquia.
type Handler struct {
	Repo *Repository
}

func NewHandler(repo *Repository) *Handler {
	return &Handler{Repo: repo}
}

// Login gera um JWT para credenciais válidas
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}

	user, err := h.Repo.BuscarPorEmail(req.Email)
	if err != nil {
		http.Error(w, "credenciais inválidas", http.StatusUnauthorized)
		return
	}

	if !utils.CheckSenha(user.Senha, req.Senha) {
		http.Error(w, "senha incorreta", http.StatusUnauthorized)
		return
	}

	token, err := auth.GerarToken(user.ID, user.Papel)
	if err != nil {
		http.Error(w, "erro ao gerar token", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"token": token})
}

// Criar cadastra um novo participante da hierarquia.
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	var req criarUsuarioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}
	if !PapelValido(req.Papel) {
		http.Error(w, "papel inválido", http.StatusBadRequest)
		return
	}
	if req.Papel == PapelGlobal && req.SuperiorID != nil {
		http.Error(w, "papel global não possui superior", http.StatusBadRequest)
		return
	}
	if req.SuperiorID != nil {
		if _, err := h.Repo.BuscarPorID(*req.SuperiorID); err != nil {
			http.Error(w, "superior não encontrado", http.StatusUnprocessableEntity)
			return
		}
	}

	// cadastro sem senha recebe uma temporária, devolvida uma única vez na
	// resposta para o operador repassar
	senha := req.Senha
	senhaTemporaria := ""
	if senha == "" {
		temp, err := utils.GerarSenhaTemporaria()
		if err != nil {
			http.Error(w, "erro ao gerar senha temporária", http.StatusInternalServerError)
			return
		}
		senha = temp
		senhaTemporaria = temp
	}

	hash, err := utils.HashSenha(senha)
	if err != nil {
		http.Error(w, "erro ao processar senha", http.StatusInternalServerError)
		return
	}

	u := Usuario{
		Nome:         req.Nome,
		Email:        req.Email,
		Senha:        hash,
		Papel:        req.Papel,
		SuperiorID:   req.SuperiorID,
		TipoChavePix: req.TipoChavePix,
		ChavePix:     req.ChavePix,
	}
	if err := h.Repo.Create(&u); err != nil {
		http.Error(w, "erro ao criar usuário", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(criarUsuarioResponse{Usuario: u, SenhaTemporaria: senhaTemporaria})
}

// Listar retorna todos os usuários; aceita ?papel= para filtrar.
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	var (
		lista []Usuario
		err   error
	)
	if papel := r.URL.Query().Get("papel"); papel != "" {
		lista, err = h.Repo.ListarPorPapel(papel)
	} else {
		lista, err = h.Repo.Listar()
	}
	if err != nil {
		http.Error(w, "erro ao listar usuários", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(lista)
}

// BuscarPorID retorna um usuário pelo ID.
func (h *Handler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}
	u, err := h.Repo.BuscarPorID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "usuário não encontrado", http.StatusNotFound)
			return
		}
		http.Error(w, "erro ao buscar usuário", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(u)
}

// Atualizar altera nome, superior e dados de PIX. A troca de superior
// reorganiza a hierarquia daqui em diante; investimentos já criados mantêm
// o rastreio capturado na venda.
func (h *Handler) Atualizar(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}
	u, err := h.Repo.BuscarPorID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "usuário não encontrado", http.StatusNotFound)
			return
		}
		http.Error(w, "erro ao buscar usuário", http.StatusInternalServerError)
		return
	}

	var req atualizarUsuarioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}
	if req.SuperiorID != nil {
		if *req.SuperiorID == u.ID {
			http.Error(w, "usuário não pode ser superior de si mesmo", http.StatusBadRequest)
			return
		}
		if _, err := h.Repo.BuscarPorID(*req.SuperiorID); err != nil {
			http.Error(w, "superior não encontrado", http.StatusUnprocessableEntity)
			return
		}
		u.SuperiorID = req.SuperiorID
	}
	if req.Nome != "" {
		u.Nome = req.Nome
	}
	if req.TipoChavePix != "" {
		u.TipoChavePix = req.TipoChavePix
	}
	if req.ChavePix != "" {
		u.ChavePix = req.ChavePix
	}

	if err := h.Repo.Update(u); err != nil {
		http.Error(w, "erro ao atualizar usuário", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(u)
}

// Deletar remove um usuário sem subordinados.
func (h *Handler) Deletar(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}
	if err := h.Repo.Deletar(uint(id)); err != nil {
		switch {
		case errors.Is(err, ErrPossuiSubordinados):
			http.Error(w, err.Error(), http.StatusConflict)
		case errors.Is(err, gorm.ErrRecordNotFound):
			http.Error(w, "usuário não encontrado", http.StatusNotFound)
		default:
			http.Error(w, "erro ao remover usuário", http.StatusInternalServerError)
		}
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
