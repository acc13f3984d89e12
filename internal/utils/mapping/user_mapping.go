package mapping

import (
	"github.com/slimatic/zakapp-sub006/internal/core/domain"
	"github.com/slimatic/zakapp-sub006/internal/models"
)

// ToModelUser converts a domain User to a model User
func ToModelUser(d domain.User) models.User {
	return models.User{
		UserID:          d.UserID,
		Username:        d.Username,
		PasswordHash:    d.PasswordHash,
		Name:            d.Name,
		DefaultCurrency: d.DefaultCurrency,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainUser converts a model User to a domain User
func ToDomainUser(m models.User) domain.User {
	return domain.User{
		UserID:          m.UserID,
		Username:        m.Username,
		PasswordHash:    m.PasswordHash,
		Name:            m.Name,
		DefaultCurrency: m.DefaultCurrency,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}
