package seed

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/sowforge/internal/pricing"
	ratecarddomain "github.com/smallbiznis/sowforge/internal/ratecard/domain"
	"gorm.io/gorm"
)

type defaultRate struct {
	name string
	rate float64
}

// defaultRateCard is the agency rate card a fresh install starts with. It
// includes every mandatory role, so enforcement works before anyone touches
// the catalog.
var defaultRateCard = []defaultRate{
	{"Account Management - Head Of", 365},
	{"Account Management - Director", 295},
	{"Account Management - Senior Account Manager", 210},
	{"Account Management - Account Manager", 180},
	{"Account Management - Account Coordinator", 120},

	{"Project Management - Head Of", 295},
	{"Project Management - Senior Project Manager", 210},
	{"Project Management - Project Manager", 180},

	{"Tech - Delivery - Project Coordination", 110},
	{"Tech - Delivery - Project Management", 150},

	{"Tech - Head Of - Customer Success", 365},
	{"Tech - Head Of - Program Strategy", 365},
	{"Tech - Head Of - Senior Project Management", 365},
	{"Tech - Head Of - Systems", 365},

	{"Tech - Integrations", 170},
	{"Tech - Integrations (Senior)", 295},

	{"Tech - Keyword Research", 120},
	{"Tech - Landing Page - (Offshore)", 120},
	{"Tech - Landing Page - (Onshore)", 210},
	{"Tech - Website Optimisation", 120},

	{"Tech - Producer - Admin", 120},
	{"Tech - Producer - Campaign Orchestration", 120},
	{"Tech - Producer - Chat Bot Build", 120},
	{"Tech - Producer - Copywriting", 120},
	{"Tech - Producer - Deployment", 120},
	{"Tech - Producer - Design", 120},
	{"Tech - Producer - Development", 120},
	{"Tech - Producer - Documentation", 120},
	{"Tech - Producer - Email", 120},
	{"Tech - Producer - Field Marketing", 120},
	{"Tech - Producer - Integration", 120},
	{"Tech - Producer - Landing Page", 120},
	{"Tech - Producer - Lead Management", 120},
	{"Tech - Producer - Reporting", 120},
	{"Tech - Producer - Services", 120},
	{"Tech - Producer - SMS Setup", 120},
	{"Tech - Producer - Support & Monitoring", 120},
	{"Tech - Producer - Testing", 120},
	{"Tech - Producer - Training", 120},
	{"Tech - Producer - Web Optimisation", 120},
	{"Tech - Producer - Workflow", 120},

	{"Tech - SEO Producer", 120},
	{"Tech - SEO Strategy", 180},

	{"Tech - Specialist - Admin", 180},
	{"Tech - Specialist - Campaign Orchestration", 180},
	{"Tech - Specialist - Complex Workflow", 180},
	{"Tech - Specialist - Database Management", 180},
	{"Tech - Specialist - Email", 180},
	{"Tech - Specialist - Integration", 180},
	{"Tech - Specialist - Integration (Snr)", 190},
	{"Tech - Specialist - Lead Management", 180},
	{"Tech - Specialist - Program Strategy", 180},
	{"Tech - Specialist - Reporting", 180},
	{"Tech - Specialist - Services", 180},
	{"Tech - Specialist - Testing", 180},
	{"Tech - Specialist - Training", 180},
	{"Tech - Specialist - Workflow", 180},

	{"Tech - Sr. Architect - App Development", 365},
	{"Tech - Sr. Architect - Consultation", 365},
	{"Tech - Sr. Architect - Data Migration", 365},
	{"Tech - Sr. Architect - Integration Strategy", 365},

	{"Tech - Sr. Consultant - Advisory & Consultation", 295},
	{"Tech - Sr. Consultant - Analytics", 295},
	{"Tech - Sr. Consultant - Audit", 295},
	{"Tech - Sr. Consultant - Campaign Strategy", 295},
	{"Tech - Sr. Consultant - CRM Strategy", 295},
	{"Tech - Sr. Consultant - Data Migration", 295},
	{"Tech - Sr. Consultant - Field Marketing", 295},
	{"Tech - Sr. Consultant - Services", 295},
	{"Tech - Sr. Consultant - Solution Design", 295},
	{"Tech - Sr. Consultant - Technical", 295},

	{"Content - Campaign Strategy", 180},
	{"Content - Keyword Research", 120},
	{"Content - Keyword Research (Senior)", 150},
	{"Content - Optimisation", 150},
	{"Content - Reporting (Offshore)", 120},
	{"Content - Reporting (Onshore)", 150},
	{"Content - SEO Copywriting", 150},
	{"Content - SEO Strategy", 210},
	{"Content - Website Optimisation", 120},

	{"Copywriting (Offshore)", 120},
	{"Copywriting (Onshore)", 180},

	{"Design - Digital Asset (Offshore)", 140},
	{"Design - Digital Asset (Onshore)", 190},
	{"Design - Email (Offshore)", 120},
	{"Design - Email (Onshore)", 295},
	{"Design - Landing Page (Onshore)", 190},
	{"Design - Landing page (Offshore)", 120},

	{"Dev (or Tech) - Landing Page (Offshore)", 120},
	{"Dev (or Tech) - Landing Page (Onshore)", 210},
}

// EnsureDefaultRateCard inserts any default catalog entry missing from the
// database. Existing entries are never overwritten; operator rate changes
// survive restarts.
func EnsureDefaultRateCard(db *gorm.DB) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, def := range defaultRateCard {
			key := pricing.Normalize(def.name)

			var count int64
			if err := tx.Model(&ratecarddomain.Entry{}).
				Where("role_key = ?", key).
				Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				continue
			}

			now := time.Now().UTC()
			entry := ratecarddomain.Entry{
				ID:         node.Generate(),
				RoleName:   def.name,
				RoleKey:    key,
				HourlyRate: def.rate,
				CreatedAt:  now,
				UpdatedAt:  now,
			}
			if err := tx.Create(&entry).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
