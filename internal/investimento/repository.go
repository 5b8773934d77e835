package investimento

import (
	"gorm.io/gorm"
)

// Repository encapsula operações de banco para Investimento e rastreio.
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

func (r *Repository) Create(inv *Investimento) error {
	return r.DB.Create(inv).Error
}

func (r *Repository) CreateRastreio(h *HierarquiaRastreio) error {
	return r.DB.Create(h).Error
}

func (r *Repository) FindByID(id uint) (*Investimento, error) {
	var inv Investimento
	if err := r.DB.Preload("Rastreio").Preload("Cronogramas").First(&inv, id).Error; err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *Repository) List() ([]Investimento, error) {
	var lista []Investimento
	err := r.DB.Preload("Rastreio").Order("id ASC").Find(&lista).Error
	return lista, err
}

func (r *Repository) ListByAssessor(assessorID uint) ([]Investimento, error) {
	var lista []Investimento
	err := r.DB.Where("assessor_id = ?", assessorID).Order("id ASC").Find(&lista).Error
	return lista, err
}

// AtualizarStatus grava um novo status para o investimento.
func (r *Repository) AtualizarStatus(id uint, status string) error {
	res := r.DB.Model(&Investimento{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SoftDelete marca o investimento como removido (gorm.DeletedAt).
func (r *Repository) SoftDelete(id uint) error {
	res := r.DB.Delete(&Investimento{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
