package sqlrepo

import (
	"shareholder-backend/internal/domain/dividend"
	"shareholder-backend/internal/domain/pricing"
	"shareholder-backend/internal/domain/shareholder"
	"shareholder-backend/internal/domain/stage"

	"gorm.io/gorm"
)

// Models lists every table owned by the store, parents before children.
func Models() []any {
	return []any{
		&stage.Stage{},
		&shareholder.Shareholder{},
		&dividend.Dividend{},
		&pricing.RolePrice{},
		&pricing.SubscriberCount{},
	}
}

func Migrate(db *gorm.DB) error { return db.AutoMigrate(Models()...) }
