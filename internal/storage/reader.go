package storage

import (
	"github.com/carson-networks/budget-tracker/internal/storage/account"
	"github.com/carson-networks/budget-tracker/internal/storage/category"
	"github.com/carson-networks/budget-tracker/internal/storage/transaction"
)

// Reader groups the tables of one backend. Outside a Writer every call
// runs on its own.
type Reader struct {
	Accounts     account.IAccountTable
	Categories   category.ICategoryTable
	Transactions transaction.ITransactionTable
}
