package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"inkwell/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// setupMockDB creates a GORM *gorm.DB backed by sqlmock for unit tests.
func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	require.NoError(t, err)
	return gormDB, mock
}

func TestHumanizeParam(t *testing.T) {
	tests := []struct {
		param    string
		expected string
	}{
		{"id", "ID"},
		{"roleId", "role ID"},
		{"authorId", "author ID"},
		{"something", "something"},
	}
	for _, tt := range tests {
		t.Run(tt.param, func(t *testing.T) {
			assert.Equal(t, tt.expected, humanizeParam(tt.param))
		})
	}
}

func TestParsePagination_Defaults(t *testing.T) {
	app := fiber.New()
	app.Get("/items", func(c *fiber.Ctx) error {
		p := parsePagination(c)
		return c.JSON(fiber.Map{"offset": p.Offset(), "limit": p.Limit()})
	})

	req := httptest.NewRequest(http.MethodGet, "/items", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)

	var body map[string]int
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, 0, body["offset"])
	assert.Equal(t, 20, body["limit"])
}

func TestParsePagination_ClampsBadInput(t *testing.T) {
	app := fiber.New()
	app.Get("/items", func(c *fiber.Ctx) error {
		p := parsePagination(c)
		return c.JSON(fiber.Map{"offset": p.Offset(), "limit": p.Limit()})
	})

	req := httptest.NewRequest(http.MethodGet, "/items?page=-3&page_size=9999", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)

	var body map[string]int
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, 0, body["offset"])
	assert.Equal(t, 100, body["limit"])
}

// Database failures surface as 500 rather than leaking driver errors.
func TestGetUsersHandler_DatabaseError(t *testing.T) {
	db, mock := setupMockDB(t)
	mock.ExpectQuery("SELECT (.+) FROM \"users\"").
		WillReturnError(assert.AnError)

	s := &Server{db: db, userRepo: repository.NewUserRepository(db)}
	app := fiber.New()
	app.Get("/users", s.GetUsers)

	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}
