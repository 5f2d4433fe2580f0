package domain

// AccountType classifies an account. Kept plain so the server can filter on it.
type AccountType string

const (
	// AccountTypeChecking is a day-to-day current account.
	AccountTypeChecking AccountType = "checking"
	// AccountTypeSavings is a savings account.
	AccountTypeSavings AccountType = "savings"
	// AccountTypeCash is physical cash.
	AccountTypeCash AccountType = "cash"
	// AccountTypeCredit is a credit card account.
	AccountTypeCredit AccountType = "credit"
)

// TransactionType classifies the direction of a transaction.
type TransactionType string

const (
	// TransactionTypeIncome increases the owning account's balance.
	TransactionTypeIncome TransactionType = "income"
	// TransactionTypeExpense decreases the owning account's balance.
	TransactionTypeExpense TransactionType = "expense"
)

// FreePoolName is the well-known plaintext name synthesized for the sentinel
// free pool, which carries no envelope and is exempt from decryption.
const FreePoolName = "Free"
