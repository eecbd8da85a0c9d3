package seed

import (
	"log"

	"inkwell/internal/models"

	"gorm.io/gorm"
)

// Seeder populates the database with demo data.
type Seeder struct {
	db      *gorm.DB
	factory *Factory
}

// NewSeeder creates a Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db, factory: NewFactory(db)}
}

// ClearAll truncates all seeded tables. Order matters because of the
// foreign keys.
func (s *Seeder) ClearAll() error {
	log.Println("Cleaning database...")
	stmts := []string{
		"DELETE FROM user_roles",
		"DELETE FROM posts",
		"DELETE FROM roles",
		"DELETE FROM users",
	}
	for _, stmt := range stmts {
		if err := s.db.Exec(stmt).Error; err != nil {
			return err
		}
	}
	return nil
}

// defaultRoles are created on every seed run.
var defaultRoles = []models.Role{
	{Name: "admin", Description: "Full administrative access"},
	{Name: "editor", Description: "Can manage any post"},
	{Name: "author", Description: "Can manage own posts"},
}

// SeedRoles creates the default role set.
func (s *Seeder) SeedRoles() ([]models.Role, error) {
	roles := make([]models.Role, 0, len(defaultRoles))
	for _, r := range defaultRoles {
		role, err := s.factory.CreateRole(r.Name, r.Description)
		if err != nil {
			return nil, err
		}
		roles = append(roles, *role)
	}
	log.Printf("Created %d roles", len(roles))
	return roles, nil
}

// SeedUsers creates numUsers fake users and assigns each the author role.
func (s *Seeder) SeedUsers(numUsers int, roles []models.Role) ([]*models.User, error) {
	users := make([]*models.User, 0, numUsers)
	for i := 0; i < numUsers; i++ {
		user, err := s.factory.CreateUser()
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	var author *models.Role
	for i := range roles {
		if roles[i].Name == "author" {
			author = &roles[i]
			break
		}
	}
	if author != nil {
		for _, user := range users {
			if err := s.db.Model(user).Association("Roles").Append(author); err != nil {
				return nil, err
			}
		}
	}

	log.Printf("Created %d users", len(users))
	return users, nil
}

// SeedPosts creates numPosts fake posts spread across the given users.
func (s *Seeder) SeedPosts(users []*models.User, numPosts int) (int, error) {
	if len(users) == 0 {
		return 0, nil
	}

	posts := make([]*models.Post, 0, numPosts)
	for i := 0; i < numPosts; i++ {
		author := users[s.factory.rnd.Intn(len(users))]
		posts = append(posts, s.factory.BuildPost(author))
	}
	if err := s.factory.CreatePostsBatch(posts); err != nil {
		return 0, err
	}

	log.Printf("Created %d posts", len(posts))
	return len(posts), nil
}
