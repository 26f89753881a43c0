package mapping

import (
	"github.com/yoddle/coins_backend/internal/core/domain"
	"github.com/yoddle/coins_backend/internal/models"
)

// ToModelAccount converts a domain Account to a model Account
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:   d.AccountID,
		Balance:     d.Balance,
		TotalEarned: d.TotalEarned,
		TotalSpent:  d.TotalSpent,
		Version:     d.Version,
		UpdatedAt:   d.UpdatedAt,
	}
}

// ToDomainAccount converts a model Account to a domain Account
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:   m.AccountID,
		Balance:     m.Balance,
		TotalEarned: m.TotalEarned,
		TotalSpent:  m.TotalSpent,
		Version:     m.Version,
		UpdatedAt:   m.UpdatedAt,
	}
}
