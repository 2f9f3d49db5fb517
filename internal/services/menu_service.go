package services

import (
	"github.com/littlelemon/littlelemon-api/internal/models"
	"gorm.io/gorm"
)

// MenuService provides methods to interact with the menu item storage
type MenuService interface {
	// GetAllMenuItems retrieves every menu item
	GetAllMenuItems() ([]models.Menu, error)
	// GetMenuItemByID retrieves a menu item by its ID
	GetMenuItemByID(id int) (models.Menu, error)
	// CreateMenuItem persists a new menu item and assigns its ID
	CreateMenuItem(item models.Menu) (models.Menu, error)
	// UpdateMenuItem persists changes to an existing menu item
	UpdateMenuItem(item models.Menu) (models.Menu, error)
	// DeleteMenuItem permanently removes a menu item by its ID
	DeleteMenuItem(id int) error
}

type menuService struct {
	db *gorm.DB
}

// NewMenuService creates a new instance of MenuService
func NewMenuService(db *gorm.DB) MenuService {
	return &menuService{db: db}
}

func (s *menuService) GetAllMenuItems() ([]models.Menu, error) {
	items := []models.Menu{}
	if err := s.db.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *menuService) GetMenuItemByID(id int) (models.Menu, error) {
	var item models.Menu
	if err := s.db.First(&item, id).Error; err != nil {
		return models.Menu{}, err
	}
	return item, nil
}

func (s *menuService) CreateMenuItem(item models.Menu) (models.Menu, error) {
	if err := s.db.Create(&item).Error; err != nil {
		return models.Menu{}, err
	}
	return item, nil
}

func (s *menuService) UpdateMenuItem(item models.Menu) (models.Menu, error) {
	if err := s.db.Save(&item).Error; err != nil {
		return models.Menu{}, err
	}
	return item, nil
}

func (s *menuService) DeleteMenuItem(id int) error {
	result := s.db.Delete(&models.Menu{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
