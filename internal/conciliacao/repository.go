package conciliacao

import (
	"time"

	"github.com/RendaCapital/api-investimentos/internal/parcela"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// LinhaExportacao é a projeção plana de uma parcela com os dados do
// investimento e do recebedor necessários para o CSV.
type LinhaExportacao struct {
	CodigoPagamento   string
	NomeInvestidor    string
	ValorInvestimento decimal.Decimal
	NomeRecebedor     string
	Numero            int
	ValorParcela      decimal.Decimal
	TipoChavePix      string
	ChavePix          string
	Vencimento        time.Time
	Status            parcela.Status
	DataPagamento     *time.Time
}

// Repository monta a visão plana usada pela exportação.
type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// ListarParaExportacao devolve as linhas de exportação, opcionalmente
// filtradas pela competência de vencimento (mes/ano; zero ignora o filtro).
func (r *Repository) ListarParaExportacao(mes, ano int) ([]LinhaExportacao, error) {
	q := r.DB.Table("parcela_comissaos AS p").
		Select(`p.codigo_pagamento,
			investidores.nome AS nome_investidor,
			investimentos.valor AS valor_investimento,
			recebedores.nome AS nome_recebedor,
			p.numero,
			p.valor AS valor_parcela,
			recebedores.tipo_chave_pix,
			recebedores.chave_pix,
			p.vencimento,
			p.status,
			p.data_pagamento`).
		Joins("JOIN cronogramas ON cronogramas.id = p.cronograma_id").
		Joins("JOIN investimentos ON investimentos.id = cronogramas.investimento_id").
		Joins("JOIN usuarios AS investidores ON investidores.id = investimentos.investidor_id").
		Joins("JOIN usuarios AS recebedores ON recebedores.id = cronogramas.recebedor_id").
		Order("p.vencimento ASC, p.codigo_pagamento ASC")

	if ano != 0 {
		inicio := time.Date(ano, time.January, 1, 0, 0, 0, 0, time.UTC)
		fim := inicio.AddDate(1, 0, 0)
		if mes != 0 {
			inicio = time.Date(ano, time.Month(mes), 1, 0, 0, 0, 0, time.UTC)
			fim = inicio.AddDate(0, 1, 0)
		}
		q = q.Where("p.vencimento >= ? AND p.vencimento < ?", inicio, fim)
	}

	var linhas []LinhaExportacao
	err := q.Scan(&linhas).Error
	return linhas, err
}
