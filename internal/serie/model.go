package serie

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Tipos de juros aceitos por uma série.
const (
	JurosSimples  = "simples"
	JurosComposto = "composto"
)

// Serie é uma oferta de uma debênture com condições próprias de captação,
// prazo e teto de comissionamento.
type Serie struct {
	ID                       uint            `gorm:"primaryKey" json:"id"`
	DebentureID              uint            `gorm:"not null;index" json:"debentureId"`
	Nome                     string          `gorm:"size:255;not null" json:"nome"`
	InvestimentoMinimo       decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"investimentoMinimo"`
	InvestimentoMaximo       decimal.Decimal `gorm:"type:decimal(15,2)" json:"investimentoMaximo"`
	CaptacaoMaxima           decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"captacaoMaxima"`
	CaptacaoAtual            decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0" json:"captacaoAtual"`
	PrazoMeses               int             `gorm:"not null" json:"prazoMeses"`
	TaxaJuros                decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"taxaJuros"`
	TipoJuros                string          `gorm:"size:20;not null;default:'simples'" json:"tipoJuros"`
	PercentualMaximoComissao decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"percentualMaximoComissao"`
	CreatedAt                time.Time       `json:"createdAt"`
	UpdatedAt                time.Time       `json:"updatedAt"`
	DeletedAt                gorm.DeletedAt  `gorm:"index" json:"-"`
}

// PerfilComissao é a configuração de percentual padrão por (série, papel),
// consumida pelo cálculo quando a requisição não informa percentuais.
type PerfilComissao struct {
	ID         uint            `gorm:"primaryKey" json:"id"`
	SerieID    uint            `gorm:"not null;uniqueIndex:idx_perfil_serie_papel" json:"serieId"`
	Papel      string          `gorm:"size:20;not null;uniqueIndex:idx_perfil_serie_papel" json:"papel"`
	Percentual decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"percentual"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}

// Migrate cria as tabelas no banco de dados.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Serie{}, &PerfilComissao{})
}
