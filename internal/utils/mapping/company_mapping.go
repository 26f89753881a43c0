package mapping

import (
	"github.com/yoddle/coins_backend/internal/core/domain"
	"github.com/yoddle/coins_backend/internal/models"
)

// ToDomainCompanyPlan converts a model CompanyPlan to a domain CompanyPlan
func ToDomainCompanyPlan(m models.CompanyPlan) domain.CompanyPlan {
	return domain.CompanyPlan{
		CompanyID:        m.CompanyID,
		CompanyName:      m.CompanyName,
		EmployeeCount:    m.EmployeeCount,
		MonthlyRate:      m.MonthlyRate,
		CoinsPerEmployee: m.CoinsPerEmployee,
		PlanStartDate:    m.PlanStartDate,
		IsActive:         m.IsActive,
		CreatedAt:        m.CreatedAt,
	}
}

// ToDomainUser converts a model User to a domain User
func ToDomainUser(m models.User) domain.User {
	return domain.User{
		UserID:       m.UserID,
		Name:         m.Name,
		Email:        m.Email,
		CompanyID:    m.CompanyID,
		IsAdmin:      m.IsAdmin,
		PasswordHash: m.PasswordHash,
		CreatedAt:    m.CreatedAt,
	}
}
