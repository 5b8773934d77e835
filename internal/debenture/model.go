package debenture

import (
	"time"

	"gorm.io/gorm"
)

// Debenture é o instrumento de renda fixa emitido pela plataforma; cada
// debênture possui uma ou mais séries com condições próprias.
type Debenture struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Nome      string         `gorm:"size:255;not null" json:"nome"`
	Emissor   string         `gorm:"size:255" json:"emissor"`
	Descricao string         `gorm:"size:1000" json:"descricao"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// Migrate cria a tabela no banco de dados.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Debenture{})
}
