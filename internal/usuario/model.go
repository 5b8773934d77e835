package usuario

import (
	"time"

	"gorm.io/gorm"
)

// Papéis da hierarquia comercial, do topo para a base.
const (
	PapelGlobal     = "global"
	PapelMaster     = "master"
	PapelEscritorio = "escritorio"
	PapelAssessor   = "assessor"
	PapelInvestidor = "investidor"
)

// Usuario representa um participante da hierarquia comercial.
// SuperiorID aponta para o usuário imediatamente acima na cadeia;
// o papel global não possui superior.
type Usuario struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Nome         string         `gorm:"size:255;not null" json:"nome"`
	Email        string         `gorm:"size:255;unique;not null" json:"email"`
	Senha        string         `gorm:"size:255" json:"-"`
	Papel        string         `gorm:"size:20;not null;index" json:"papel"`
	SuperiorID   *uint          `gorm:"index" json:"superiorId,omitempty"`
	TipoChavePix string         `gorm:"size:20" json:"tipoChavePix"`
	ChavePix     string         `gorm:"size:140" json:"chavePix"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// PapelValido informa se o papel é um dos conhecidos.
func PapelValido(papel string) bool {
	switch papel {
	case PapelGlobal, PapelMaster, PapelEscritorio, PapelAssessor, PapelInvestidor:
		return true
	}
	return false
}

// Migrate cria a tabela no banco de dados.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Usuario{})
}
