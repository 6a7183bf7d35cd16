package main

import (
	"errors"

	"gorm.io/gorm"

	"ecodev/models"
	"ecodev/pkg/importer"
)

// gormStore adapts the shared DB handle to importer.Store, stamping every
// create with the owning user. Each create is an independent, atomic insert;
// a failure surfaces as a plain error for the batch loop to report.
type gormStore struct {
	db     *gorm.DB
	userID uint
}

var _ importer.Store = (*gormStore)(nil)

func (s *gormStore) CreateProgram(p *models.Program) error {
	p.UserID = s.userID
	if err := s.db.Create(p).Error; err != nil {
		return errors.New("create failed")
	}
	return nil
}

func (s *gormStore) CreateProject(p *models.Project) error {
	p.UserID = s.userID
	// resolve the program reference against this owner's programs only, so
	// the row error is deterministic and never leaks another tenant's ids
	var cnt int64
	if err := s.db.Model(&models.Program{}).Where("id = ? AND user_id = ?", p.ProgramID, s.userID).Count(&cnt).Error; err != nil {
		return errors.New("create failed")
	}
	if cnt == 0 {
		return errors.New("program not found")
	}
	if err := s.db.Create(p).Error; err != nil {
		return errors.New("create failed")
	}
	return nil
}
