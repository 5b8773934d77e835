package debenture

import "gorm.io/gorm"

// Repository encapsula operações de banco para Debenture
type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

func (r *Repository) Create(d *Debenture) error {
	return r.DB.Create(d).Error
}

func (r *Repository) FindByID(id uint) (*Debenture, error) {
	var d Debenture
	if err := r.DB.First(&d, id).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *Repository) List() ([]Debenture, error) {
	var lista []Debenture
	err := r.DB.Order("id ASC").Find(&lista).Error
	return lista, err
}

func (r *Repository) Update(d *Debenture) error {
	return r.DB.Save(d).Error
}

func (r *Repository) Delete(id uint) error {
	res := r.DB.Delete(&Debenture{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
