package conciliacao

import (
	"encoding/json"
	"net/http"
	"strconv"
)

type Handler struct {
	Service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{Service: service}
}

// GET /conciliacao/exportar?mes=&ano=
func (h *Handler) Exportar(w http.ResponseWriter, r *http.Request) {
	mes, err := parametroInteiro(r, "mes")
	if err != nil {
		http.Error(w, "mes inválido", http.StatusBadRequest)
		return
	}
	ano, err := parametroInteiro(r, "ano")
	if err != nil {
		http.Error(w, "ano inválido", http.StatusBadRequest)
		return
	}
	if mes != 0 && (mes < 1 || mes > 12) {
		http.Error(w, "mes deve estar entre 1 e 12", http.StatusBadRequest)
		return
	}
	if mes != 0 && ano == 0 {
		http.Error(w, "mes exige ano", http.StatusBadRequest)
		return
	}

	exp, err := h.Service.Exportar(mes, ano)
	if err != nil {
		http.Error(w, "erro ao exportar comissões", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(exp)
}

// POST /conciliacao/importar — multipart com o campo "arquivo"; o campo
// opcional "limite" limita quantas linhas de dados são processadas.
func (h *Handler) Importar(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		http.Error(w, "multipart inválido", http.StatusBadRequest)
		return
	}
	arquivo, _, err := r.FormFile("arquivo")
	if err != nil {
		http.Error(w, "campo arquivo é obrigatório", http.StatusBadRequest)
		return
	}
	defer arquivo.Close()

	limite := 0
	if v := r.FormValue("limite"); v != "" {
		limite, err = strconv.Atoi(v)
		if err != nil || limite < 0 {
			http.Error(w, "limite inválido", http.StatusBadRequest)
			return
		}
	}

	resultado, err := h.Service.Importar(arquivo, limite)
	if err != nil {
		http.Error(w, "erro ao importar arquivo", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resultado)
}

func parametroInteiro(r *http.Request, nome string) (int, error) {
	v := r.URL.Query().Get(nome)
	if v == "" {
		return 0, nil
	}
	return strconv.Atoi(v)
}
