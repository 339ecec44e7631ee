package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"lingonberry/internal/app/retail/entity"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// SaleRepositoryTestSuite тестовый suite для PostgreSQL repository
type SaleRepositoryTestSuite struct {
	suite.Suite
	db    *gorm.DB
	mock  sqlmock.Sqlmock
	repo  SaleRepository
	sqlDB *sql.DB
}

func TestSaleRepositorySuite(t *testing.T) {
	suite.Run(t, new(SaleRepositoryTestSuite))
}

func (s *SaleRepositoryTestSuite) SetupTest() {
	var err error
	s.sqlDB, s.mock, err = sqlmock.New()
	require.NoError(s.T(), err)

	dialector := postgres.New(postgres.Config{
		Conn:       s.sqlDB,
		DriverName: "postgres",
	})

	s.db, err = gorm.Open(dialector, &gorm.Config{})
	require.NoError(s.T(), err)

	s.repo = NewSaleRepository(s.db)
}

func (s *SaleRepositoryTestSuite) TearDownTest() {
	s.sqlDB.Close()
}

func (s *SaleRepositoryTestSuite) newSale(quantity int) *entity.Sale {
	saleID := uuid.New()
	return &entity.Sale{
		ID:      saleID,
		UserID:  uuid.New(),
		StoreID: uuid.New(),
		Total:   150.00,
		Items: []entity.SaleItem{
			{
				ID:        uuid.New(),
				SaleID:    saleID,
				ProductID: uuid.New(),
				Quantity:  quantity,
				UnitPrice: 50.00,
				Subtotal:  150.00,
			},
		},
	}
}

// ===================== CreateWithItems Tests =====================

func (s *SaleRepositoryTestSuite) TestCreateWithItems_Success() {
	ctx := context.Background()
	sale := s.newSale(3)

	s.mock.ExpectBegin()
	s.mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "sales"`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	s.mock.ExpectExec(regexp.QuoteMeta(`UPDATE "inventory_items" SET "quantity"=quantity - $1 WHERE store_id = $2 AND product_id = $3 AND quantity >= $4`)).
		WithArgs(3, sale.StoreID, sale.Items[0].ProductID, 3).
		WillReturnResult(sqlmock.NewResult(0, 1))
	s.mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "sale_items"`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	s.mock.ExpectCommit()

	// Act
	err := s.repo.CreateWithItems(ctx, sale)

	// Assert
	s.NoError(err)
	s.NoError(s.mock.ExpectationsWereMet())
}

func (s *SaleRepositoryTestSuite) TestCreateWithItems_InsufficientStock() {
	ctx := context.Background()
	sale := s.newSale(100)

	s.mock.ExpectBegin()
	s.mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "sales"`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	s.mock.ExpectExec(regexp.QuoteMeta(`UPDATE "inventory_items" SET`)).
		WillReturnResult(sqlmock.NewResult(0, 0)) // 0 rows affected
	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "inventory_items" WHERE store_id = $1 AND product_id = $2`)).
		WithArgs(sale.StoreID, sale.Items[0].ProductID).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	s.mock.ExpectRollback()

	// Act
	err := s.repo.CreateWithItems(ctx, sale)

	// Assert
	s.Error(err)
	s.ErrorIs(err, ErrInsufficientStock)
	s.NoError(s.mock.ExpectationsWereMet())
}

func (s *SaleRepositoryTestSuite) TestCreateWithItems_InventoryMissing() {
	ctx := context.Background()
	sale := s.newSale(1)

	s.mock.ExpectBegin()
	s.mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "sales"`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	s.mock.ExpectExec(regexp.QuoteMeta(`UPDATE "inventory_items" SET`)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "inventory_items" WHERE store_id = $1 AND product_id = $2`)).
		WithArgs(sale.StoreID, sale.Items[0].ProductID).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	s.mock.ExpectRollback()

	// Act
	err := s.repo.CreateWithItems(ctx, sale)

	// Assert
	s.Error(err)
	s.ErrorIs(err, ErrInventoryNotFound)
	s.NoError(s.mock.ExpectationsWereMet())
}

func (s *SaleRepositoryTestSuite) TestCreateWithItems_DBError() {
	ctx := context.Background()
	sale := s.newSale(2)

	s.mock.ExpectBegin()
	s.mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "sales"`)).
		WillReturnError(sql.ErrConnDone)
	s.mock.ExpectRollback()

	// Act
	err := s.repo.CreateWithItems(ctx, sale)

	// Assert
	s.Error(err)
	s.Contains(err.Error(), "failed to create sale")
	s.NoError(s.mock.ExpectationsWereMet())
}

// ===================== DeleteWithRestock Tests =====================

func (s *SaleRepositoryTestSuite) TestDeleteWithRestock_Success() {
	ctx := context.Background()
	saleID := uuid.New()
	userID := uuid.New()
	storeID := uuid.New()
	productID := uuid.New()

	s.mock.ExpectBegin()
	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "sales" WHERE id = $1`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "store_id", "total", "created_at"}).
			AddRow(saleID, userID, storeID, 99.90, time.Now()))
	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "sale_items" WHERE sale_id = $1`)).
		WithArgs(saleID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "sale_id", "product_id", "quantity", "unit_price", "subtotal"}).
			AddRow(uuid.New(), saleID, productID, 3, 33.30, 99.90))
	s.mock.ExpectExec(regexp.QuoteMeta(`UPDATE "inventory_items" SET "quantity"=quantity + $1 WHERE store_id = $2 AND product_id = $3`)).
		WithArgs(3, storeID, productID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	s.mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "sale_items" WHERE sale_id = $1`)).
		WithArgs(saleID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	s.mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "sales" WHERE id = $1`)).
		WithArgs(saleID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	s.mock.ExpectCommit()

	// Act
	err := s.repo.DeleteWithRestock(ctx, saleID)

	// Assert
	s.NoError(err)
	s.NoError(s.mock.ExpectationsWereMet())
}

func (s *SaleRepositoryTestSuite) TestDeleteWithRestock_RecreatesInventoryRow() {
	ctx := context.Background()
	saleID := uuid.New()
	storeID := uuid.New()
	productID := uuid.New()

	s.mock.ExpectBegin()
	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "sales" WHERE id = $1`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "store_id", "total", "created_at"}).
			AddRow(saleID, uuid.New(), storeID, 50.00, time.Now()))
	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "sale_items" WHERE sale_id = $1`)).
		WithArgs(saleID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "sale_id", "product_id", "quantity", "unit_price", "subtotal"}).
			AddRow(uuid.New(), saleID, productID, 2, 25.00, 50.00))
	// Строка инвентаря удалена после продажи, остаток восстанавливается новой строкой
	s.mock.ExpectExec(regexp.QuoteMeta(`UPDATE "inventory_items" SET`)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	s.mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "inventory_items"`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	s.mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "sale_items" WHERE sale_id = $1`)).
		WithArgs(saleID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	s.mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "sales" WHERE id = $1`)).
		WithArgs(saleID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	s.mock.ExpectCommit()

	// Act
	err := s.repo.DeleteWithRestock(ctx, saleID)

	// Assert
	s.NoError(err)
	s.NoError(s.mock.ExpectationsWereMet())
}

func (s *SaleRepositoryTestSuite) TestDeleteWithRestock_NotFound() {
	ctx := context.Background()
	saleID := uuid.New()

	s.mock.ExpectBegin()
	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "sales" WHERE id = $1`)).
		WillReturnError(gorm.ErrRecordNotFound)
	s.mock.ExpectRollback()

	// Act
	err := s.repo.DeleteWithRestock(ctx, saleID)

	// Assert
	s.Error(err)
	s.ErrorIs(err, ErrSaleNotFound)
	s.NoError(s.mock.ExpectationsWereMet())
}

// ===================== GetAll Tests =====================

func (s *SaleRepositoryTestSuite) TestGetAll_Success() {
	ctx := context.Background()

	rows := sqlmock.NewRows([]string{"id", "total", "created_at", "user_name", "store_name"}).
		AddRow(uuid.New(), 250.00, time.Now(), "Иван", "Центральный").
		AddRow(uuid.New(), 99.90, time.Now(), "Мария", "Северный")

	s.mock.ExpectQuery(`SELECT .+ FROM "sales" JOIN users`).
		WillReturnRows(rows)

	// Act
	sales, err := s.repo.GetAll(ctx)

	// Assert
	s.NoError(err)
	s.Len(sales, 2)
	s.Equal("Иван", sales[0].UserName)
	s.Equal(250.00, sales[0].Total)

	s.NoError(s.mock.ExpectationsWereMet())
}

// ===================== NewSaleRepository Tests =====================

func TestNewSaleRepository(t *testing.T) {
	sqlDB, _, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	dialector := postgres.New(postgres.Config{
		Conn:       sqlDB,
		DriverName: "postgres",
	})

	db, err := gorm.Open(dialector, &gorm.Config{})
	require.NoError(t, err)

	// Act
	repo := NewSaleRepository(db)

	// Assert
	assert.NotNil(t, repo)
}
