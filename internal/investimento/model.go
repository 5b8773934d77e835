package investimento

import (
	"time"

	"github.com/RendaCapital/api-investimentos/internal/comissao"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Status de um investimento.
const (
	StatusAtivo     = "ativo"
	StatusResgatado = "resgatado"
	StatusCancelado = "cancelado"
)

// Investimento representa um aporte de um investidor em uma série, vendido
// por um assessor. Nunca é removido fisicamente; resgate e cancelamento são
// status, e a exclusão é soft delete.
type Investimento struct {
	ID               uint            `gorm:"primaryKey" json:"id"`
	SerieID          uint            `gorm:"not null;index" json:"serieId"`
	InvestidorID     uint            `gorm:"not null;index" json:"investidorId"`
	AssessorID       uint            `gorm:"not null;index" json:"assessorId"`
	Valor            decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"valor"`
	DataInvestimento time.Time       `gorm:"not null" json:"dataInvestimento"`
	DataVencimento   time.Time       `gorm:"not null" json:"dataVencimento"`
	TaxaJuros        decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"taxaJuros"`
	TipoJuros        string          `gorm:"size:20;not null" json:"tipoJuros"`
	Status           string          `gorm:"size:20;not null;default:'ativo';index" json:"status"`

	Rastreio    *HierarquiaRastreio   `gorm:"foreignKey:InvestimentoID" json:"rastreio,omitempty"`
	Cronogramas []comissao.Cronograma `gorm:"foreignKey:InvestimentoID" json:"cronogramas,omitempty"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// HierarquiaRastreio é a fotografia imutável da cadeia comercial resolvida
// no momento da venda. Reorganizações posteriores da hierarquia não alteram
// as obrigações de comissão já assumidas.
type HierarquiaRastreio struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	InvestimentoID uint      `gorm:"not null;uniqueIndex" json:"investimentoId"`
	InvestidorID   uint      `gorm:"not null" json:"investidorId"`
	AssessorID     uint      `gorm:"not null" json:"assessorId"`
	EscritorioID   *uint     `json:"escritorioId,omitempty"`
	MasterID       *uint     `json:"masterId,omitempty"`
	GlobalID       *uint     `json:"globalId,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

// Migrate cria as tabelas no banco de dados.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Investimento{}, &HierarquiaRastreio{})
}
