package server

import (
	"testing"

	"inkwell/internal/database"
	"inkwell/internal/repository"

	"github.com/gofiber/fiber/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupHandlerTest(t *testing.T) (*Server, *fiber.App, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("access sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		t.Fatalf("enable foreign keys: %v", err)
	}
	if err := db.AutoMigrate(database.PersistentModels()...); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}
	if err := database.EnsureUniqueIndexes(db); err != nil {
		t.Fatalf("create indexes: %v", err)
	}

	s := &Server{
		db:       db,
		userRepo: repository.NewUserRepository(db),
		postRepo: repository.NewPostRepository(db),
		roleRepo: repository.NewRoleRepository(db),
	}

	app := fiber.New()
	return s, app, db
}
