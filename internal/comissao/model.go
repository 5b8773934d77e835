package comissao

import (
	"time"

	"github.com/RendaCapital/api-investimentos/internal/parcela"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Cronograma representa a obrigação total de comissão de um papel sobre um
// investimento, ao longo de toda a vida do aporte. Imutável após a criação;
// cancelamentos acontecem no nível da parcela.
type Cronograma struct {
	ID             uint            `gorm:"primaryKey" json:"id"`
	Codigo         string          `gorm:"size:36;uniqueIndex;not null" json:"codigo"`
	InvestimentoID uint            `gorm:"not null;index" json:"investimentoId"`
	RecebedorID    uint            `gorm:"not null;index" json:"recebedorId"`
	Papel          string          `gorm:"size:20;not null;index" json:"papel"`
	Percentual     decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"percentual"`
	ValorTotal     decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"valorTotal"`
	DuracaoMeses   int             `gorm:"not null" json:"duracaoMeses"`
	ValorMensal    decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"valorMensal"`

	Parcelas []parcela.ParcelaComissao `gorm:"foreignKey:CronogramaID;constraint:OnDelete:CASCADE" json:"parcelas,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

// Migrate cria a tabela no banco de dados e aplica relacionamentos.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Cronograma{})
}
