package main

import (
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"ecodev/models"
)

var db *gorm.DB

func initDB() {
	var err error
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		log.Fatal("DB_DSN is not set. This project requires a Postgres DSN in DB_DSN.")
	}
	db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect postgres database: ", err)
	}
	// Control schema migrations with env DB_AUTO_MIGRATE (default true). Any permission errors will be logged and ignored.
	shouldMigrate := true
	if v := os.Getenv("DB_AUTO_MIGRATE"); v != "" {
		lv := strings.ToLower(v)
		if lv == "false" || lv == "0" || lv == "no" {
			shouldMigrate = false
		}
	}
	// Ensure the roles master table exists first and seed it so users FK can be applied safely.
	if shouldMigrate {
		if err := db.AutoMigrate(&models.Role{}); err != nil {
			log.Warnf("migration warning (roles): %v", err)
		}
	}
	seedRoles()

	// Now migrate the rest (users will get FK to roles)
	if shouldMigrate {
		// Migrate models individually so a failure on one doesn't block others
		if err := db.AutoMigrate(&models.User{}); err != nil {
			log.Warnf("migration warning (users): %v", err)
		}
		if err := db.AutoMigrate(&models.Program{}); err != nil {
			log.Warnf("migration warning (programs): %v", err)
		}
		if err := db.AutoMigrate(&models.Project{}); err != nil {
			log.Warnf("migration warning (projects): %v", err)
		}
		if err := db.AutoMigrate(&models.ImportRecord{}); err != nil {
			log.Warnf("migration warning (import_records): %v", err)
		}
		if err := db.AutoMigrate(&models.RefreshToken{}); err != nil {
			log.Warnf("migration warning (refresh_tokens): %v", err)
		}
	}

	// Ensure projects -> programs FK exists (in case table existed before adding ProgramID)
	if shouldMigrate {
		if err := ensureProjectProgramFK(); err != nil {
			log.Warnf("warning: ensuring projects->programs FK failed: %v", err)
		}
	}
	seedDB()
}

// ensureProjectProgramFK adds the program_id column and FK constraint if they are missing.
func ensureProjectProgramFK() error {
	// 1. Ensure program_id column exists
	if err := db.Exec(`ALTER TABLE projects ADD COLUMN IF NOT EXISTS program_id BIGINT`).Error; err != nil {
		return err
	}
	// 2. Create index (idempotent)
	if err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_projects_program_id ON projects(program_id)`).Error; err != nil {
		return err
	}
	// 3. Check if FK already present
	type cnt struct{ N int }
	var c cnt
	fkCheckSQL := `SELECT count(*) AS n
		FROM pg_constraint ct
		JOIN pg_class rel ON rel.oid = ct.conrelid
		WHERE rel.relname = 'projects' AND ct.contype = 'f'
		  AND pg_get_constraintdef(ct.oid) ILIKE '%program_id%' AND pg_get_constraintdef(ct.oid) ILIKE '%programs%'`
	if err := db.Raw(fkCheckSQL).Scan(&c).Error; err != nil {
		return err
	}
	if c.N == 0 {
		// 4. Add FK so a dangling program reference is rejected at persist time
		if err := db.Exec(`ALTER TABLE projects
			ADD CONSTRAINT fk_projects_programs
			FOREIGN KEY (program_id) REFERENCES programs(id)
			ON UPDATE CASCADE ON DELETE CASCADE`).Error; err != nil {
			return err
		}
	}
	return nil
}

func seedRoles() {
	roles := []models.Role{{Name: "administrator", Description: "full access"}, {Name: "user", Description: "regular user"}}
	for _, r := range roles {
		var cnt int64
		db.Model(&models.Role{}).Where("name = ?", r.Name).Count(&cnt)
		if cnt == 0 {
			db.Create(&r)
		}
	}
}

func seedDB() {
	seedRoles()

	// Check if admin user exists
	var count int64
	db.Model(&models.User{}).Where("username = ?", "admin").Count(&count)
	if count == 0 {
		// find administrator role id
		var role models.Role
		if err := db.Where("name = ?", "administrator").First(&role).Error; err != nil {
			log.Warnf("failed to find administrator role: %v", err)
		}
		// Seed admin user
		rid := role.ID
		admin := models.User{
			Username: "admin",
			RoleID:   &rid,
		}
		hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
		admin.HashedPassword = hashedPassword
		db.Create(&admin)
		log.Info("Seeded admin user: username=admin, password=admin123")
	}
}
