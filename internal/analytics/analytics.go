// Package analytics produces the dashboard summary numbers. The figures
// are uniformly random on every call and derive from no real message
// data; the endpoint exists to back the dashboard UI, nothing more.
package analytics

import (
	"math/rand"
	"time"
)

type DayActivity struct {
	Date     string `json:"date"`
	Sent     int    `json:"sent"`
	Received int    `json:"received"`
}

type DashboardStats struct {
	EmailsSent      int           `json:"emails_sent"`
	EmailsReceived  int           `json:"emails_received"`
	OpenRate        float64       `json:"open_rate"`
	ClickRate       float64       `json:"click_rate"`
	ResponseRate    float64       `json:"response_rate"`
	ActiveCampaigns int           `json:"active_campaigns"`
	TotalContacts   int           `json:"total_contacts"`
	WeeklyActivity  []DayActivity `json:"weekly_activity"`
}

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

func (g *Generator) DashboardStats() *DashboardStats {
	weekly := make([]DayActivity, 0, 7)
	for i := 6; i >= 0; i-- {
		weekly = append(weekly, DayActivity{
			Date:     time.Now().AddDate(0, 0, -i).Format("2006-01-02"),
			Sent:     rand.Intn(40),
			Received: rand.Intn(80),
		})
	}

	return &DashboardStats{
		EmailsSent:      rand.Intn(500) + 50,
		EmailsReceived:  rand.Intn(1000) + 100,
		OpenRate:        roundRate(0.15 + rand.Float64()*0.5),
		ClickRate:       roundRate(0.02 + rand.Float64()*0.2),
		ResponseRate:    roundRate(0.05 + rand.Float64()*0.3),
		ActiveCampaigns: rand.Intn(8),
		TotalContacts:   rand.Intn(2000) + 200,
		WeeklyActivity:  weekly,
	}
}

func roundRate(v float64) float64 {
	return float64(int(v*1000)) / 1000
}
