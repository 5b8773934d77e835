package parcela

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ParcelaComissao representa uma única parcela mensal de um cronograma de
// comissão. Cancelamento é um status, nunca remoção da linha.
type ParcelaComissao struct {
	ID               uint             `gorm:"primaryKey" json:"id"`
	CronogramaID     uint             `gorm:"not null;index" json:"cronogramaId"`
	CodigoPagamento  string           `gorm:"size:40;uniqueIndex;not null" json:"codigoPagamento"`
	Numero           int              `gorm:"not null" json:"numero"`
	Valor            decimal.Decimal  `gorm:"type:decimal(15,2);not null" json:"valor"`
	Vencimento       time.Time        `gorm:"not null;index" json:"vencimento"`
	Status           Status           `gorm:"size:20;not null;default:'pending';index" json:"status"`
	DataPagamento    *time.Time       `json:"dataPagamento,omitempty"`
	Observacoes      string           `gorm:"size:500" json:"observacoes,omitempty"`
	StatusAlteradoEm time.Time        `json:"statusAlteradoEm"`
	CreatedAt        time.Time        `json:"createdAt"`
	UpdatedAt        time.Time        `json:"updatedAt"`
}

// HistoricoParcela registra cada transição de status aplicada a uma parcela.
// Transições administrativas (fora do grafo normal) ficam marcadas.
type HistoricoParcela struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	ParcelaID      uint      `gorm:"not null;index" json:"parcelaId"`
	De             Status    `gorm:"size:20;not null" json:"de"`
	Para           Status    `gorm:"size:20;not null" json:"para"`
	Notas          string    `gorm:"size:500" json:"notas,omitempty"`
	Autor          string    `gorm:"size:120" json:"autor,omitempty"`
	Administrativa bool      `gorm:"not null;default:false" json:"administrativa"`
	CreatedAt      time.Time `json:"createdAt"`
}

// CodigoPagamento deriva o identificador humano da parcela a partir do
// código público do cronograma e do número sequencial (1-based). O prefixo
// encurtado do cronograma é o que a conciliação usa como fallback de busca.
func CodigoPagamento(codigoCronograma string, numero int) string {
	frag := codigoCronograma
	if len(frag) > 8 {
		frag = frag[:8]
	}
	return fmt.Sprintf("PAG-%s-%d", frag, numero)
}

// Migrate cria as tabelas no banco de dados.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&ParcelaComissao{}, &HistoricoParcela{})
}
