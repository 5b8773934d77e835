package investimento

import (
	"github.com/RendaCapital/api-investimentos/internal/comissao"
	"github.com/shopspring/decimal"
)

// CriarInvestimentoDTO é o corpo do POST /investimentos. Quando Percentuais
// é omitido, os percentuais vêm dos perfis de comissão da série.
type CriarInvestimentoDTO struct {
	SerieID          uint                  `json:"serieId"`
	InvestidorID     uint                  `json:"investidorId"`
	AssessorID       uint                  `json:"assessorId"`
	Valor            decimal.Decimal       `json:"valor"`
	DataInvestimento string                `json:"dataInvestimento"` // AAAA-MM-DD; vazio usa a data atual
	TipoJuros        string                `json:"tipoJuros"`        // vazio herda da série
	Percentuais      *comissao.Percentuais `json:"percentuais,omitempty"`
}

// ResumoComissaoDTO descreve uma linha do resumo devolvido na criação.
type ResumoComissaoDTO struct {
	Papel       string          `json:"papel"`
	RecebedorID uint            `json:"recebedorId"`
	Percentual  decimal.Decimal `json:"percentual"`
	ValorTotal  decimal.Decimal `json:"valorTotal"`
	ValorMensal decimal.Decimal `json:"valorMensal"`
}

// CriacaoResponseDTO é a resposta do POST /investimentos.
type CriacaoResponseDTO struct {
	Investimento  *Investimento       `json:"investimento"`
	RastreioID    uint                `json:"rastreioId"`
	Comissoes     []ResumoComissaoDTO `json:"comissoes"`
	TotalComissao decimal.Decimal     `json:"totalComissao"`
}
