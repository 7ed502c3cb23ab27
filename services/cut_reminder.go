// services/cut_reminder.go
package services

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"mariscos-pos/models"
	"mariscos-pos/utils"
)

// CutReminderService nags about uncut sales left over from previous days.
// Those sales silently drop out of the current-day report until someone
// closes the missed cut, so the cashier should hear about it.
type CutReminderService struct {
	db *gorm.DB
}

func NewCutReminderService(db *gorm.DB) *CutReminderService {
	return &CutReminderService{db: db}
}

func (s *CutReminderService) StartScheduler() {
	c := cron.New()

	// Run daily at 10 PM, around closing time
	c.AddFunc("0 22 * * *", s.CheckStaleUncutSales)

	c.Start()
	log.Println("Cut reminder scheduler started")
}

func (s *CutReminderService) CheckStaleUncutSales() {
	var count int64
	if err := s.db.Model(&models.Sale{}).
		Where("cut_label IS NULL AND sold_at < ?", utils.BeginningOfDay(time.Now())).
		Count(&count).Error; err != nil {
		log.Printf("Failed to check for stale uncut sales: %v", err)
		return
	}
	if count > 0 {
		log.Printf("WARNING: %d sales from previous days were never included in a cash cut", count)
	}
}
