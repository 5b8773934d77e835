package parcela

import (
	"gorm.io/gorm"
)

// Repository encapsula o acesso a dados de Parcelas de Comissão.
type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// WithDB retorna uma cópia do repo usando um *gorm.DB específico (ex.: tx).
func (r *Repository) WithDB(db *gorm.DB) *Repository {
	if db == nil {
		db = r.DB
	}
	return &Repository{DB: db}
}

/* ========================= CRUD básico de parcelas ========================= */

// CreateInBatch cria múltiplas parcelas de uma vez (ignora se vazio).
func (r *Repository) CreateInBatch(parcelas []*ParcelaComissao) error {
	if len(parcelas) == 0 {
		return nil
	}
	return r.DB.Create(parcelas).Error
}

// FindByID busca uma única parcela pelo seu ID.
func (r *Repository) FindByID(id uint) (*ParcelaComissao, error) {
	var p ParcelaComissao
	if err := r.DB.First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// FindByCodigoPagamento busca pela identificação humana usada na conciliação.
func (r *Repository) FindByCodigoPagamento(codigo string) (*ParcelaComissao, error) {
	var p ParcelaComissao
	if err := r.DB.Where("codigo_pagamento = ?", codigo).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// ListByCronogramaID busca todas as parcelas de um cronograma específico.
func (r *Repository) ListByCronogramaID(cronogramaID uint) ([]ParcelaComissao, error) {
	var parcelas []ParcelaComissao
	err := r.DB.
		Where("cronograma_id = ?", cronogramaID).
		Order("numero ASC").
		Find(&parcelas).Error
	return parcelas, err
}

// AtualizarStatusCondicional grava o novo status apenas se o status atual
// ainda for o esperado. Zero linhas afetadas sinaliza corrida perdida
// (outra transição chegou antes).
func (r *Repository) AtualizarStatusCondicional(id uint, esperado Status, campos map[string]interface{}) (int64, error) {
	res := r.DB.Model(&ParcelaComissao{}).
		Where("id = ? AND status = ?", id, esperado).
		Updates(campos)
	return res.RowsAffected, res.Error
}

// RegistrarHistorico grava uma linha de histórico de transição.
func (r *Repository) RegistrarHistorico(h *HistoricoParcela) error {
	return r.DB.Create(h).Error
}

// ListarHistorico retorna o histórico de transições de uma parcela.
func (r *Repository) ListarHistorico(parcelaID uint) ([]HistoricoParcela, error) {
	var hist []HistoricoParcela
	err := r.DB.Where("parcela_id = ?", parcelaID).Order("id ASC").Find(&hist).Error
	return hist, err
}

/* ============================ Visões agregadas ============================ */

// ResumoStatus agrega quantidade e soma de valores por status.
type ResumoStatus struct {
	Status     Status  `json:"status"`
	Quantidade int64   `json:"quantidade"`
	ValorTotal float64 `json:"valorTotal"`
}

// ResumoPapel agrega por papel do recebedor (join com cronogramas).
type ResumoPapel struct {
	Papel      string  `json:"papel"`
	Quantidade int64   `json:"quantidade"`
	ValorTotal float64 `json:"valorTotal"`
}

// ResumoMes agrega por mês de vencimento (AAAA-MM).
type ResumoMes struct {
	Mes        string  `json:"mes"`
	Quantidade int64   `json:"quantidade"`
	ValorTotal float64 `json:"valorTotal"`
}

func (r *Repository) ResumoPorStatus() ([]ResumoStatus, error) {
	var resumo []ResumoStatus
	err := r.DB.Model(&ParcelaComissao{}).
		Select("status, COUNT(*) AS quantidade, COALESCE(SUM(valor), 0) AS valor_total").
		Group("status").
		Order("status ASC").
		Scan(&resumo).Error
	return resumo, err
}

func (r *Repository) ResumoPorPapel() ([]ResumoPapel, error) {
	var resumo []ResumoPapel
	err := r.DB.Table("parcela_comissaos").
		Select("cronogramas.papel AS papel, COUNT(*) AS quantidade, COALESCE(SUM(parcela_comissaos.valor), 0) AS valor_total").
		Joins("JOIN cronogramas ON cronogramas.id = parcela_comissaos.cronograma_id").
		Group("cronogramas.papel").
		Order("papel ASC").
		Scan(&resumo).Error
	return resumo, err
}

func (r *Repository) ResumoPorMes() ([]ResumoMes, error) {
	var parcelas []ParcelaComissao
	if err := r.DB.Order("vencimento ASC").Find(&parcelas).Error; err != nil {
		return nil, err
	}
	// agrega em memória para manter o formato AAAA-MM portátil entre bancos
	indice := map[string]int{}
	var resumo []ResumoMes
	for _, p := range parcelas {
		mes := p.Vencimento.Format("2006-01")
		i, ok := indice[mes]
		if !ok {
			i = len(resumo)
			indice[mes] = i
			resumo = append(resumo, ResumoMes{Mes: mes})
		}
		resumo[i].Quantidade++
		v, _ := p.Valor.Float64()
		resumo[i].ValorTotal += v
	}
	return resumo, nil
}
