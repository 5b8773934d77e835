package serie

import (
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	// ErrCaptacaoExcedida indica que o aporte ultrapassaria a captação
	// máxima da série.
	ErrCaptacaoExcedida = errors.New("captação máxima da série excedida")
	// ErrAbaixoDoMinimo indica aporte menor que o investimento mínimo.
	ErrAbaixoDoMinimo = errors.New("valor abaixo do investimento mínimo da série")
)

// Repository encapsula operações de banco para Serie e PerfilComissao.
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

func (r *Repository) Create(s *Serie) error {
	return r.DB.Create(s).Error
}

func (r *Repository) FindByID(id uint) (*Serie, error) {
	var s Serie
	if err := r.DB.First(&s, id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *Repository) ListByDebenture(debentureID uint) ([]Serie, error) {
	var lista []Serie
	err := r.DB.Where("debenture_id = ?", debentureID).Order("id ASC").Find(&lista).Error
	return lista, err
}

func (r *Repository) List() ([]Serie, error) {
	var lista []Serie
	err := r.DB.Order("id ASC").Find(&lista).Error
	return lista, err
}

func (r *Repository) Update(s *Serie) error {
	return r.DB.Save(s).Error
}

func (r *Repository) Delete(id uint) error {
	res := r.DB.Delete(&Serie{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// RegistrarCaptacao soma valor à captação atual da série respeitando o teto.
// O UPDATE condicional garante atomicidade mesmo sob aportes concorrentes;
// zero linhas afetadas significa teto estourado.
func (r *Repository) RegistrarCaptacao(serieID uint, valor decimal.Decimal) error {
	res := r.DB.Model(&Serie{}).
		Where("id = ? AND captacao_atual + ? <= captacao_maxima", serieID, valor).
		Update("captacao_atual", gorm.Expr("captacao_atual + ?", valor))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		var existe int64
		if err := r.DB.Model(&Serie{}).Where("id = ?", serieID).Count(&existe).Error; err != nil {
			return err
		}
		if existe == 0 {
			return gorm.ErrRecordNotFound
		}
		return ErrCaptacaoExcedida
	}
	return nil
}

// EstornarCaptacao devolve valor à captação da série (resgate/cancelamento).
func (r *Repository) EstornarCaptacao(serieID uint, valor decimal.Decimal) error {
	return r.DB.Model(&Serie{}).
		Where("id = ?", serieID).
		Update("captacao_atual", gorm.Expr("captacao_atual - ?", valor)).Error
}

/* ========================= Perfis de comissão ========================= */

// ListarPerfis retorna os perfis de comissão configurados para a série.
func (r *Repository) ListarPerfis(serieID uint) ([]PerfilComissao, error) {
	var perfis []PerfilComissao
	err := r.DB.Where("serie_id = ?", serieID).Order("papel ASC").Find(&perfis).Error
	return perfis, err
}

// SalvarPerfil insere ou atualiza o percentual de um (série, papel).
func (r *Repository) SalvarPerfil(p *PerfilComissao) error {
	return r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "serie_id"}, {Name: "papel"}},
		DoUpdates: clause.AssignmentColumns([]string{"percentual", "updated_at"}),
	}).Create(p).Error
}
