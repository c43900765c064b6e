package db

import (
	"errors"
	"fmt"

	"gestao_laser/internal/models"
	"gestao_laser/internal/security"
	"gestao_laser/internal/settings"

	"gorm.io/gorm"
)

// Migrate applies the schema and seeds required rows.
func Migrate(conn *gorm.DB) error {
	if conn == nil {
		return fmt.Errorf("db: nil connection")
	}

	if errAutoMigrate := conn.AutoMigrate(
		&models.Cliente{},
		&models.User{},
		&models.Orcamento{},
		&models.Pedido{},
		&models.Maquina{},
		&models.Material{},
		&models.ConfigEmpresa{},
		&models.EventLog{},
	); errAutoMigrate != nil {
		return fmt.Errorf("db: migrate: %w", errAutoMigrate)
	}

	if errSeed := ensureAdminUser(conn); errSeed != nil {
		return errSeed
	}
	return nil
}

// ensureAdminUser seeds the bootstrap administrator account. Existing rows
// are left untouched so a changed admin password survives restarts.
func ensureAdminUser(conn *gorm.DB) error {
	var existing models.User
	errFind := conn.Where("username = ?", settings.DefaultAdminUsername).First(&existing).Error
	if errFind == nil {
		return nil
	}
	if !errors.Is(errFind, gorm.ErrRecordNotFound) {
		return fmt.Errorf("db: find admin: %w", errFind)
	}

	hash, errHash := security.HashPassword(settings.DefaultAdminPassword)
	if errHash != nil {
		return errHash
	}
	admin := models.User{
		Username: settings.DefaultAdminUsername,
		Password: hash,
		Role:     models.RoleAdmin,
	}
	if errCreate := conn.Create(&admin).Error; errCreate != nil {
		return fmt.Errorf("db: seed admin: %w", errCreate)
	}
	return nil
}
