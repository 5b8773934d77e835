package usuario

import (
	"errors"

	"gorm.io/gorm"
)

// ErrPossuiSubordinados impede a remoção de um usuário ainda referenciado
// como superior por outros nós da hierarquia.
var ErrPossuiSubordinados = errors.New("usuário possui subordinados e não pode ser removido")

// Repository encapsula o acesso a dados de usuários.
type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

func (r *Repository) Create(u *Usuario) error {
	return r.DB.Create(u).Error
}

func (r *Repository) BuscarPorID(id uint) (*Usuario, error) {
	var u Usuario
	if err := r.DB.First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *Repository) BuscarPorEmail(email string) (*Usuario, error) {
	var u Usuario
	if err := r.DB.Where("email = ?", email).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *Repository) Listar() ([]Usuario, error) {
	var lista []Usuario
	err := r.DB.Order("id ASC").Find(&lista).Error
	return lista, err
}

func (r *Repository) ListarPorPapel(papel string) ([]Usuario, error) {
	var lista []Usuario
	err := r.DB.Where("papel = ?", papel).Order("id ASC").Find(&lista).Error
	return lista, err
}

// Update salva alterações em um usuário existente (Save exige PK).
func (r *Repository) Update(u *Usuario) error {
	return r.DB.Save(u).Error
}

// ContarSubordinados retorna quantos usuários apontam para o id como superior.
func (r *Repository) ContarSubordinados(id uint) (int64, error) {
	var n int64
	err := r.DB.Model(&Usuario{}).Where("superior_id = ?", id).Count(&n).Error
	return n, err
}

// Deletar remove o usuário; recusa se ainda houver subordinados apontando
// para ele.
func (r *Repository) Deletar(id uint) error {
	n, err := r.ContarSubordinados(id)
	if err != nil {
		return err
	}
	if n > 0 {
		return ErrPossuiSubordinados
	}
	res := r.DB.Delete(&Usuario{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
