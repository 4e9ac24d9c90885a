package migration

import (
	"github.com/smallbiznis/sowforge/internal/config"
	ratecarddomain "github.com/smallbiznis/sowforge/internal/ratecard/domain"
	"github.com/smallbiznis/sowforge/internal/seed"
	sowdomain "github.com/smallbiznis/sowforge/internal/sow/domain"
	workspacedomain "github.com/smallbiznis/sowforge/internal/workspace/domain"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
		if cfg.DBType == "postgres" {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			if err := RunMigrations(sqlDB); err != nil {
				return err
			}
		} else {
			// sqlite and mysql are for local development; gorm's migrator
			// is enough there.
			if err := conn.AutoMigrate(
				&ratecarddomain.Entry{},
				&workspacedomain.Workspace{},
				&sowdomain.Document{},
			); err != nil {
				return err
			}
		}

		if cfg.SeedRateCard {
			return seed.EnsureDefaultRateCard(conn)
		}
		return nil
	}),
)
