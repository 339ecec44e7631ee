package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"lingonberry/internal/app/retail/entity"
	"lingonberry/internal/app/retail/repository"
	"lingonberry/internal/app/retail/repository/mocks"
	"lingonberry/internal/app/retail/service"
	"lingonberry/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	logger.InitWithWriter("test", "error", io.Discard)
	m.Run()
}

// Хелперы для создания тестового окружения

type saleHandlerMocks struct {
	saleRepo    *mocks.MockSaleRepository
	productRepo *mocks.MockProductRepository
	storeRepo   *mocks.MockStoreRepository
	userRepo    *mocks.MockUserRepository
	kafka       *mocks.MockMessagePublisher
	cache       *mocks.MockDashboardCache
}

func newTestSaleHandler() (*SaleHandler, *saleHandlerMocks) {
	m := &saleHandlerMocks{
		saleRepo:    new(mocks.MockSaleRepository),
		productRepo: new(mocks.MockProductRepository),
		storeRepo:   new(mocks.MockStoreRepository),
		userRepo:    new(mocks.MockUserRepository),
		kafka:       new(mocks.MockMessagePublisher),
		cache:       new(mocks.MockDashboardCache),
	}

	saleService := service.NewSaleService(
		m.saleRepo, m.productRepo, m.storeRepo, m.userRepo, m.kafka, m.cache, "sale_events")

	return NewSaleHandler(saleService), m
}

// setupTestRouter создаёт тестовый Gin router с одним хендлером
func setupTestRouter(method, path string, handlerFunc gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	switch method {
	case http.MethodGet:
		router.GET(path, handlerFunc)
	case http.MethodPost:
		router.POST(path, handlerFunc)
	case http.MethodPut:
		router.PUT(path, handlerFunc)
	case http.MethodDelete:
		router.DELETE(path, handlerFunc)
	}
	return router
}

func (m *saleHandlerMocks) expectValidReferences(userID, storeID, productID uuid.UUID) {
	m.userRepo.On("GetByID", mock.Anything, userID).Return(&entity.User{ID: userID, Name: "Иван"}, nil)
	m.storeRepo.On("GetByID", mock.Anything, storeID).Return(&entity.StoreWithOwner{Store: entity.Store{ID: storeID}}, nil)
	m.productRepo.On("GetByID", mock.Anything, productID).Return(&entity.Product{ID: productID, Name: "Молоко"}, nil)
}

// ==================== RegisterSale Handler Tests ====================

func TestSaleHandler_RegisterSale_Success(t *testing.T) {
	// Arrange
	handler, m := newTestSaleHandler()

	userID := uuid.New()
	storeID := uuid.New()
	productID := uuid.New()

	m.expectValidReferences(userID, storeID, productID)
	m.saleRepo.On("CreateWithItems", mock.Anything, mock.AnythingOfType("*entity.Sale")).Return(nil)
	m.kafka.On("PublishMessage", mock.Anything, mock.AnythingOfType("string"), mock.Anything).Return(nil)
	m.cache.On("DeleteDashboardSummary", mock.Anything).Return(nil)

	reqBody := entity.RegisterSaleRequest{
		UserID:  userID,
		StoreID: storeID,
		Products: []entity.SaleLineRequest{
			{ProductID: productID, Quantity: 2, Price: 49.95},
		},
	}
	body, _ := json.Marshal(reqBody)

	router := setupTestRouter(http.MethodPost, "/api/sales", handler.RegisterSale)
	req := httptest.NewRequest(http.MethodPost, "/api/sales", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	// Act
	router.ServeHTTP(rec, req)

	// Assert
	assert.Equal(t, http.StatusCreated, rec.Code)

	var response entity.RegisterSaleResponse
	err := json.Unmarshal(rec.Body.Bytes(), &response)
	require.NoError(t, err)

	assert.True(t, response.Success)
	assert.NotEqual(t, uuid.Nil, response.SaleID)
}

func TestSaleHandler_RegisterSale_InvalidBody(t *testing.T) {
	// Arrange
	handler, _ := newTestSaleHandler()

	router := setupTestRouter(http.MethodPost, "/api/sales", handler.RegisterSale)
	req := httptest.NewRequest(http.MethodPost, "/api/sales", bytes.NewBufferString("invalid json"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	// Act
	router.ServeHTTP(rec, req)

	// Assert
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var response map[string]string
	json.Unmarshal(rec.Body.Bytes(), &response)
	assert.Equal(t, "Invalid request body", response["message"])
}

func TestSaleHandler_RegisterSale_EmptyProducts(t *testing.T) {
	// Arrange
	handler, _ := newTestSaleHandler()

	reqBody := entity.RegisterSaleRequest{
		UserID:   uuid.New(),
		StoreID:  uuid.New(),
		Products: []entity.SaleLineRequest{},
	}
	body, _ := json.Marshal(reqBody)

	router := setupTestRouter(http.MethodPost, "/api/sales", handler.RegisterSale)
	req := httptest.NewRequest(http.MethodPost, "/api/sales", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	// Act
	router.ServeHTTP(rec, req)

	// Assert
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSaleHandler_RegisterSale_InsufficientStock(t *testing.T) {
	// Arrange
	handler, m := newTestSaleHandler()

	userID := uuid.New()
	storeID := uuid.New()
	productID := uuid.New()

	m.expectValidReferences(userID, storeID, productID)
	m.saleRepo.On("CreateWithItems", mock.Anything, mock.AnythingOfType("*entity.Sale")).
		Return(repository.ErrInsufficientStock)

	reqBody := entity.RegisterSaleRequest{
		UserID:  userID,
		StoreID: storeID,
		Products: []entity.SaleLineRequest{
			{ProductID: productID, Quantity: 100, Price: 49.95},
		},
	}
	body, _ := json.Marshal(reqBody)

	router := setupTestRouter(http.MethodPost, "/api/sales", handler.RegisterSale)
	req := httptest.NewRequest(http.MethodPost, "/api/sales", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	// Act
	router.ServeHTTP(rec, req)

	// Assert
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	m.kafka.AssertNotCalled(t, "PublishMessage", mock.Anything, mock.Anything, mock.Anything)
}

func TestSaleHandler_RegisterSale_UnknownUser(t *testing.T) {
	// Arrange
	handler, m := newTestSaleHandler()

	userID := uuid.New()
	m.userRepo.On("GetByID", mock.Anything, userID).Return(nil, repository.ErrUserNotFound)

	reqBody := entity.RegisterSaleRequest{
		UserID:  userID,
		StoreID: uuid.New(),
		Products: []entity.SaleLineRequest{
			{ProductID: uuid.New(), Quantity: 1, Price: 10.00},
		},
	}
	body, _ := json.Marshal(reqBody)

	router := setupTestRouter(http.MethodPost, "/api/sales", handler.RegisterSale)
	req := httptest.NewRequest(http.MethodPost, "/api/sales", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	// Act
	router.ServeHTTP(rec, req)

	// Assert
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var response map[string]string
	json.Unmarshal(rec.Body.Bytes(), &response)
	assert.Equal(t, "User not found", response["message"])
}

// ==================== GetSale Handler Tests ====================

func TestSaleHandler_GetSale_Success(t *testing.T) {
	// Arrange
	handler, m := newTestSaleHandler()

	saleID := uuid.New()
	details := &entity.SaleDetails{
		Sale:      entity.Sale{ID: saleID, Total: 99.90},
		UserName:  "Иван",
		StoreName: "Центральный",
		Details:   []entity.SaleItemDetails{},
	}
	m.saleRepo.On("GetByID", mock.Anything, saleID).Return(details, nil)

	router := setupTestRouter(http.MethodGet, "/api/sales/:id", handler.GetSale)
	req := httptest.NewRequest(http.MethodGet, "/api/sales/"+saleID.String(), nil)
	rec := httptest.NewRecorder()

	// Act
	router.ServeHTTP(rec, req)

	// Assert
	assert.Equal(t, http.StatusOK, rec.Code)

	var response entity.SaleDetails
	err := json.Unmarshal(rec.Body.Bytes(), &response)
	require.NoError(t, err)
	assert.Equal(t, saleID, response.ID)
	assert.Equal(t, "Иван", response.UserName)
}

func TestSaleHandler_GetSale_NotFound(t *testing.T) {
	// Arrange
	handler, m := newTestSaleHandler()

	saleID := uuid.New()
	m.saleRepo.On("GetByID", mock.Anything, saleID).Return(nil, repository.ErrSaleNotFound)

	router := setupTestRouter(http.MethodGet, "/api/sales/:id", handler.GetSale)
	req := httptest.NewRequest(http.MethodGet, "/api/sales/"+saleID.String(), nil)
	rec := httptest.NewRecorder()

	// Act
	router.ServeHTTP(rec, req)

	// Assert
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSaleHandler_GetSale_InvalidID(t *testing.T) {
	// Arrange
	handler, _ := newTestSaleHandler()

	router := setupTestRouter(http.MethodGet, "/api/sales/:id", handler.GetSale)
	req := httptest.NewRequest(http.MethodGet, "/api/sales/not-a-uuid", nil)
	rec := httptest.NewRecorder()

	// Act
	router.ServeHTTP(rec, req)

	// Assert
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// ==================== DeleteSale Handler Tests ====================

func TestSaleHandler_DeleteSale_Success(t *testing.T) {
	// Arrange
	handler, m := newTestSaleHandler()

	saleID := uuid.New()
	details := &entity.SaleDetails{
		Sale:    entity.Sale{ID: saleID, Total: 50.00},
		Details: []entity.SaleItemDetails{},
	}
	m.saleRepo.On("GetByID", mock.Anything, saleID).Return(details, nil)
	m.saleRepo.On("DeleteWithRestock", mock.Anything, saleID).Return(nil)
	m.kafka.On("PublishMessage", mock.Anything, mock.AnythingOfType("string"), mock.Anything).Return(nil)
	m.cache.On("DeleteDashboardSummary", mock.Anything).Return(nil)

	router := setupTestRouter(http.MethodDelete, "/api/sales/:id", handler.DeleteSale)
	req := httptest.NewRequest(http.MethodDelete, "/api/sales/"+saleID.String(), nil)
	rec := httptest.NewRecorder()

	// Act
	router.ServeHTTP(rec, req)

	// Assert
	assert.Equal(t, http.StatusOK, rec.Code)
	m.saleRepo.AssertCalled(t, "DeleteWithRestock", mock.Anything, saleID)
}

func TestSaleHandler_DeleteSale_NotFound(t *testing.T) {
	// Arrange
	handler, m := newTestSaleHandler()

	saleID := uuid.New()
	m.saleRepo.On("GetByID", mock.Anything, saleID).Return(nil, repository.ErrSaleNotFound)

	router := setupTestRouter(http.MethodDelete, "/api/sales/:id", handler.DeleteSale)
	req := httptest.NewRequest(http.MethodDelete, "/api/sales/"+saleID.String(), nil)
	rec := httptest.NewRecorder()

	// Act
	router.ServeHTTP(rec, req)

	// Assert
	assert.Equal(t, http.StatusNotFound, rec.Code)
	m.saleRepo.AssertNotCalled(t, "DeleteWithRestock", mock.Anything, mock.Anything)
}
