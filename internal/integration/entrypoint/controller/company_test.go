package controller

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ventureboard/backend/internal/application/adapter/mocks"
	"github.com/ventureboard/backend/internal/application/usecase/company"
	"github.com/ventureboard/backend/internal/domain/entity"
	domainerror "github.com/ventureboard/backend/internal/domain/error"
	"github.com/ventureboard/backend/internal/integration/entrypoint/dto"
	"github.com/ventureboard/backend/internal/integration/entrypoint/middleware"
)

// withUser stands in for the auth middleware.
func withUser(userID uuid.UUID) gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID != uuid.Nil {
			c.Set(string(middleware.UserIDKey), userID)
		}
		c.Next()
	}
}

func newCompanyEngine(repo *mocks.CompanyRepository, userID uuid.UUID) *gin.Engine {
	ctrl := NewCompanyController(
		company.NewCreateCompanyUseCase(repo),
		company.NewListCompaniesUseCase(repo),
	)
	engine := gin.New()
	engine.Use(withUser(userID))
	engine.POST("/companies", ctrl.Create)
	engine.GET("/companies", ctrl.List)
	return engine
}

func doJSON(engine *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestCompanyController_Create(t *testing.T) {
	ownerID := uuid.New()

	t.Run("creates the company", func(t *testing.T) {
		repo := new(mocks.CompanyRepository)
		repo.On("ExistsByOwnerAndName", mock.Anything, ownerID, "Alpha Labs").Return(false, nil)
		repo.On("Create", mock.Anything, mock.MatchedBy(func(c *entity.Company) bool {
			return c.OwnerID == ownerID && c.OpeningCash.Equal(decimal.NewFromInt(2500))
		})).Return(nil)

		w := doJSON(newCompanyEngine(repo, ownerID), http.MethodPost, "/companies",
			`{"name": "  Alpha Labs ", "opening_cash": "2500"}`)

		require.Equal(t, http.StatusCreated, w.Code)
		var body dto.CompanyResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "Alpha Labs", body.Name)
		assert.Equal(t, "2500.00", body.OpeningCash)
		repo.AssertExpectations(t)
	})

	t.Run("duplicate name conflicts", func(t *testing.T) {
		repo := new(mocks.CompanyRepository)
		repo.On("ExistsByOwnerAndName", mock.Anything, ownerID, "Alpha").Return(true, nil)

		w := doJSON(newCompanyEngine(repo, ownerID), http.MethodPost, "/companies", `{"name": "Alpha"}`)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), string(domainerror.ErrCodeCompanyNameTaken))
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("malformed body", func(t *testing.T) {
		repo := new(mocks.CompanyRepository)

		w := doJSON(newCompanyEngine(repo, ownerID), http.MethodPost, "/companies", `{"name": 12`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		repo.AssertNotCalled(t, "ExistsByOwnerAndName", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("no authenticated user", func(t *testing.T) {
		repo := new(mocks.CompanyRepository)

		w := doJSON(newCompanyEngine(repo, uuid.Nil), http.MethodPost, "/companies", `{"name": "Alpha"}`)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestCompanyController_List(t *testing.T) {
	ownerID := uuid.New()

	t.Run("lists owned companies", func(t *testing.T) {
		repo := new(mocks.CompanyRepository)
		repo.On("FindByOwner", mock.Anything, ownerID).Return([]*entity.Company{
			entity.NewCompany(ownerID, "Alpha", decimal.Zero),
			entity.NewCompany(ownerID, "Beta", decimal.NewFromInt(10)),
		}, nil)

		w := doJSON(newCompanyEngine(repo, ownerID), http.MethodGet, "/companies", "")

		require.Equal(t, http.StatusOK, w.Code)
		var body dto.CompanyListResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Len(t, body.Companies, 2)
	})

	t.Run("repository failure is a 500", func(t *testing.T) {
		repo := new(mocks.CompanyRepository)
		repo.On("FindByOwner", mock.Anything, ownerID).Return(nil, errors.New("db down"))

		w := doJSON(newCompanyEngine(repo, ownerID), http.MethodGet, "/companies", "")

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}
