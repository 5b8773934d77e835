package comissao

import (
	"gorm.io/gorm"
)

// Repository encapsula operações de banco para Cronograma.
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

func (r *Repository) Create(c *Cronograma) error {
	return r.DB.Create(c).Error
}

// FindByPrefixoCodigo localiza o cronograma cujo código começa com o
// fragmento informado; é o fallback da conciliação quando o identificador
// de pagamento não bate com nenhuma parcela existente.
func (r *Repository) FindByPrefixoCodigo(prefixo string) (*Cronograma, error) {
	var c Cronograma
	if err := r.DB.Where("codigo LIKE ?", prefixo+"%").First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// ListByInvestimento retorna os cronogramas de um investimento, com as
// parcelas pré-carregadas.
func (r *Repository) ListByInvestimento(investimentoID uint) ([]Cronograma, error) {
	var lista []Cronograma
	err := r.DB.
		Preload("Parcelas").
		Where("investimento_id = ?", investimentoID).
		Order("id ASC").
		Find(&lista).Error
	return lista, err
}

// ListByRecebedor retorna todos os cronogramas de um recebedor.
func (r *Repository) ListByRecebedor(recebedorID uint) ([]Cronograma, error) {
	var lista []Cronograma
	err := r.DB.
		Preload("Parcelas").
		Where("recebedor_id = ?", recebedorID).
		Order("id ASC").
		Find(&lista).Error
	return lista, err
}
