package integration

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"farmmarket-be/internal/entity"
	"farmmarket-be/internal/repository/specification"
	"farmmarket-be/internal/repository/unitofwork"
	"farmmarket-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
)

func TestGormConnection(t *testing.T) {
	err := godotenv.Load("../../.env")
	if err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}

	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	uow := uowFactory.NewUnitOfWork(context.Background())

	assert.NotNil(t, uow.UserRepository())
	assert.NotNil(t, uow.ProductRepository())

	sqlDB, _ := gormDB.DB()
	err = sqlDB.Ping()
	assert.NoError(t, err)
	t.Log("Successfully connected to DB and initialized UnitOfWork Factory")

	t.Run("Check User Repository", func(t *testing.T) {
		count, err := uow.UserRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("User count: %d", count)
	})

	t.Run("Check Product Repository", func(t *testing.T) {
		count, err := uow.ProductRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("Product count: %d", count)
	})

	t.Run("Check Transactional Checkout", func(t *testing.T) {
		ctx := context.Background()

		farmerId := uuid.New()
		hash := "not-a-real-hash"
		farmer := &entity.User{
			Id:           farmerId,
			Email:        "test-farmer-" + uuid.New().String() + "@example.com",
			PasswordHash: &hash,
			Status:       entity.UserStatusActive,
		}
		err := uow.UserRepository().Create(ctx, farmer)
		assert.NoError(t, err)

		farmerProfile := &entity.Profile{
			Id:       farmerId,
			FullName: "Integration Farmer",
			IsFarmer: true,
		}
		err = uow.ProfileRepository().Create(ctx, farmerProfile)
		assert.NoError(t, err)

		product := &entity.Product{
			Id:       uuid.New(),
			FarmerId: farmerId,
			Name:     "Integration Tomatoes",
			Category: "vegetables",
			Price:    25,
			Quantity: 100,
			Unit:     "kg",
			Location: "Testville",
		}
		err = uow.ProductRepository().Create(ctx, product)
		assert.NoError(t, err)
		assert.NotZero(t, product.Code, "product code should be assigned by the sequence")

		buyerId := uuid.New()
		buyer := &entity.User{
			Id:     buyerId,
			Email:  "test-buyer-" + uuid.New().String() + "@example.com",
			Status: entity.UserStatusActive,
		}
		err = uow.UserRepository().Create(ctx, buyer)
		assert.NoError(t, err)

		// Order and stock decrement in one transaction
		err = uow.Begin(ctx)
		assert.NoError(t, err)
		defer uow.Rollback()

		order := &entity.Order{
			Id:         uuid.New(),
			BuyerId:    buyerId,
			ProductId:  product.Id,
			Quantity:   10,
			TotalPrice: 250,
			Status:     entity.OrderStatusPending,
			CreatedAt:  time.Now(),
			UpdatedAt:  time.Now(),
		}
		err = uow.OrderRepository().Create(ctx, order)
		assert.NoError(t, err)

		product.Quantity -= order.Quantity
		err = uow.ProductRepository().Update(ctx, product)
		assert.NoError(t, err)

		err = uow.Commit()
		assert.NoError(t, err)

		stored, err := uow.ProductRepository().FindOne(ctx, specification.ByID{ID: product.Id})
		assert.NoError(t, err)
		if assert.NotNil(t, stored) {
			assert.Equal(t, 90, stored.Quantity)
		}

		t.Log("Successfully created Order with stock decrement in Transaction")

		t.Run("Check Farmer Listings", func(t *testing.T) {
			mine, err := uow.ProductRepository().FindAll(ctx,
				specification.ByFarmerID{FarmerID: farmerId},
				specification.OrderBy{Field: "created_at", Desc: true},
			)
			assert.NoError(t, err)
			if assert.Len(t, mine, 1) {
				assert.Equal(t, product.Id, mine[0].Id)
			}
		})

		t.Run("Check Message Thread", func(t *testing.T) {
			first := &entity.Message{
				Id:         uuid.New(),
				SenderId:   buyerId,
				ReceiverId: farmerId,
				Content:    "Proposed price: ₹20",
			}
			err := uow.MessageRepository().Create(ctx, first)
			assert.NoError(t, err)

			reply := &entity.Message{
				Id:         uuid.New(),
				SenderId:   farmerId,
				ReceiverId: buyerId,
				Content:    "Deal at ₹22",
			}
			err = uow.MessageRepository().Create(ctx, reply)
			assert.NoError(t, err)

			// Both directions come back in one thread, oldest first.
			thread, err := uow.MessageRepository().FindAll(ctx,
				specification.ParticipantsAre{A: buyerId, B: farmerId},
				specification.OrderBy{Field: "created_at"},
			)
			assert.NoError(t, err)
			if assert.Len(t, thread, 2) {
				assert.Equal(t, first.Content, thread[0].Content)
				assert.Equal(t, reply.Content, thread[1].Content)
			}
		})
	})
}
