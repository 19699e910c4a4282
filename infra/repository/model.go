package repository

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Customer represents a customer record in the database.
type Customer struct {
	ID        uint64 `gorm:"primaryKey;autoIncrement"`
	Name      string `gorm:"size:100;not null"`
	Email     string `gorm:"size:255"`
	Phone     string `gorm:"size:32"`
	CreatedAt time.Time
}

// TableName specifies the table name for the Customer model.
func (Customer) TableName() string {
	return "customers"
}

// Account represents an account record in the database.
// Balance is stored in cents.
type Account struct {
	ID          uint64 `gorm:"primaryKey;autoIncrement"`
	CustomerID  uint64 `gorm:"not null;index"`
	AccountType string `gorm:"column:account_type;size:20;not null"`
	Balance     int64  `gorm:"not null;check:chk_accounts_balance_non_negative,balance >= 0"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName specifies the table name for the Account model.
func (Account) TableName() string {
	return "accounts"
}

// Transaction represents a persisted ledger entry. Rows are never updated.
type Transaction struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement"`
	AccountID uint64    `gorm:"not null;index:idx_transactions_account_created,priority:1"`
	TxType    string    `gorm:"column:tx_type;size:16;not null"`
	Amount    int64     `gorm:"not null;check:chk_transactions_amount_positive,amount > 0"`
	Reference uuid.UUID `gorm:"type:uuid;not null;index"`
	Remarks   string    `gorm:"size:255"`
	CreatedAt time.Time `gorm:"index:idx_transactions_account_created,priority:2"`
}

// TableName specifies the table name for the Transaction model.
func (Transaction) TableName() string {
	return "transactions"
}

// AutoMigrate creates the schema for development backends. Postgres deployments use
// the versioned migrations instead.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&Customer{}, &Account{}, &Transaction{})
}
