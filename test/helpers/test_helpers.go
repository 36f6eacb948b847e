package helpers

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/sambathreasmey/library-management-system/internal/repository"
	"github.com/sambathreasmey/library-management-system/pkg/pg"
	"github.com/sambathreasmey/library-management-system/pkg/redis"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func SetupTestDB(t *testing.T) *pg.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&repository.UserEntity{},
		&repository.BookEntity{},
		&repository.CustomerEntity{},
		&repository.GameEntity{},
		&repository.BankEntity{},
		&repository.TransactionEntity{},
	)
	require.NoError(t, err)

	pgDB := &pg.DB{}
	pgDBValue := reflect.ValueOf(pgDB).Elem()

	readField := pgDBValue.FieldByName("read")
	writeField := pgDBValue.FieldByName("write")

	readField = reflect.NewAt(readField.Type(), readField.Addr().UnsafePointer()).Elem()
	writeField = reflect.NewAt(writeField.Type(), writeField.Addr().UnsafePointer()).Elem()

	readField.Set(reflect.ValueOf(db))
	writeField.Set(reflect.ValueOf(db))

	return pgDB
}

// SetupTestRedis starts a miniredis and wires an adapter to it. The
// adapter registry is keyed by test name so parallel tests do not share
// a connection.
func SetupTestRedis(t *testing.T) (*miniredis.Miniredis, redis.RedisAdapter) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	adapter, err := redis.NewRedisAdapter(t.Name(), "", &goredis.UniversalOptions{
		Addrs: []string{mr.Addr()},
	})
	require.NoError(t, err)

	return mr, adapter
}

func CreateTestUser(t *testing.T, db *pg.DB, username, password string, isAdmin bool) *repository.UserEntity {
	ctx := context.Background()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	require.NoError(t, err)

	user := &repository.UserEntity{
		FullName:     username,
		Username:     username,
		PasswordHash: string(hash),
		IsAdmin:      isAdmin,
	}
	err = db.Write(ctx).Create(user).Error
	require.NoError(t, err)
	return user
}

func CreateTestCustomer(t *testing.T, db *pg.DB, name, accID string) *repository.CustomerEntity {
	ctx := context.Background()
	customer := &repository.CustomerEntity{
		Name:      name,
		AccountID: accID,
		UserID:    "seed",
		CreatedBy: "seed",
		UpdatedBy: "seed",
	}
	err := db.Write(ctx).Create(customer).Error
	require.NoError(t, err)
	return customer
}

func CreateTestBank(t *testing.T, db *pg.DB, name string) *repository.BankEntity {
	ctx := context.Background()
	bank := &repository.BankEntity{
		Name:      name,
		UserID:    "seed",
		CreatedBy: "seed",
		UpdatedBy: "seed",
	}
	err := db.Write(ctx).Create(bank).Error
	require.NoError(t, err)
	return bank
}

func CreateTestGame(t *testing.T, db *pg.DB, name string) *repository.GameEntity {
	ctx := context.Background()
	game := &repository.GameEntity{
		Name:      name,
		UserID:    "seed",
		CreatedBy: "seed",
		UpdatedBy: "seed",
	}
	err := db.Write(ctx).Create(game).Error
	require.NoError(t, err)
	return game
}

func CreateTestTransaction(t *testing.T, db *pg.DB, customerID, bankID, gameID int64, amount float64, createdAt time.Time) *repository.TransactionEntity {
	ctx := context.Background()
	txn := &repository.TransactionEntity{
		Amount:      amount,
		Currency:    "USD",
		BankStorage: "main",
		Type:        1,
		UserID:      "seed",
		CustomerID:  customerID,
		BankID:      bankID,
		GameID:      gameID,
		CreatedBy:   "seed",
		UpdatedBy:   "seed",
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
	}
	err := db.Write(ctx).Create(txn).Error
	require.NoError(t, err)
	return txn
}

func WaitForCondition(t *testing.T, timeout time.Duration, condition func() bool) bool {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if condition() {
			return true
		}
		time.Sleep(10 * time.Millisecond)
	}
	return false
}

func AssertEventually(t *testing.T, timeout time.Duration, condition func() bool, msg string) {
	if !WaitForCondition(t, timeout, condition) {
		t.Fatal(msg)
	}
}

func ContextWithTimeout(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func Ptr[T any](v T) *T {
	return &v
}
