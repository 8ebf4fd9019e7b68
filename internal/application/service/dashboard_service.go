package service

import (
	"context"
	"time"

	"github.com/decoraworks/atelier-api/internal/domain/entity"
	"github.com/decoraworks/atelier-api/internal/domain/enum"
	"github.com/decoraworks/atelier-api/internal/domain/repository"
	"github.com/decoraworks/atelier-api/pkg/pagination"
)

// DashboardService aggregates the studio overview: pipeline breakdown,
// conversion rate, billing totals, stock alerts and the visit agenda
type DashboardService struct {
	leadRepo       repository.LeadRepository
	conversionRepo repository.LeadConversionRepository
	contactRepo    repository.ContactRepository
	invoiceRepo    repository.InvoiceRepository
	productRepo    repository.ProductRepository
	visitRepo      repository.SiteVisitRepository
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	leadRepo repository.LeadRepository,
	conversionRepo repository.LeadConversionRepository,
	contactRepo repository.ContactRepository,
	invoiceRepo repository.InvoiceRepository,
	productRepo repository.ProductRepository,
	visitRepo repository.SiteVisitRepository,
) *DashboardService {
	return &DashboardService{
		leadRepo:       leadRepo,
		conversionRepo: conversionRepo,
		contactRepo:    contactRepo,
		invoiceRepo:    invoiceRepo,
		productRepo:    productRepo,
		visitRepo:      visitRepo,
	}
}

// DashboardStats represents the studio overview
type DashboardStats struct {
	TotalLeads         int64              `json:"total_leads"`
	LeadsByStatus      map[string]int64   `json:"leads_by_status"`
	ConversionsLast30d int64              `json:"conversions_last_30d"`
	ConversionRate     float64            `json:"conversion_rate"`
	TotalContacts      int64              `json:"total_contacts"`
	OutstandingTotal   float64            `json:"outstanding_total"`
	PaidTotal          float64            `json:"paid_total"`
	LowStockProducts   []entity.Product   `json:"low_stock_products"`
	UpcomingVisits     []entity.SiteVisit `json:"upcoming_visits"`
}

// GetDashboardStats returns the studio overview for the current tenant
func (s *DashboardService) GetDashboardStats(ctx context.Context) (*DashboardStats, error) {
	stats := &DashboardStats{}

	leadCounts, err := s.leadRepo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	stats.LeadsByStatus = make(map[string]int64, len(leadCounts))
	var totalLeads, converted int64
	for status, count := range leadCounts {
		stats.LeadsByStatus[status.String()] = count
		totalLeads += count
		if status == enum.LeadStatusConverted {
			converted = count
		}
	}
	stats.TotalLeads = totalLeads
	if totalLeads > 0 {
		stats.ConversionRate = float64(converted) / float64(totalLeads) * 100
	}

	since := time.Now().UTC().AddDate(0, 0, -30)
	conversions, err := s.conversionRepo.CountSince(ctx, since)
	if err != nil {
		return nil, err
	}
	stats.ConversionsLast30d = conversions

	// Only the count is needed here
	contactParams := pagination.DefaultPagination()
	contactParams.PerPage = 1
	_, contactCount, err := s.contactRepo.List(ctx, contactParams, "")
	if err != nil {
		return nil, err
	}
	stats.TotalContacts = contactCount

	totals, err := s.invoiceRepo.TotalsByStatus(ctx)
	if err != nil {
		return nil, err
	}
	outstanding := totals[enum.InvoiceStatusPending] + totals[enum.InvoiceStatusPartiallyPaid]
	stats.OutstandingTotal = float64(outstanding) / 100
	stats.PaidTotal = float64(totals[enum.InvoiceStatusPaid]) / 100

	lowStock, err := s.productRepo.GetLowStock(ctx)
	if err != nil {
		return nil, err
	}
	stats.LowStockProducts = lowStock

	horizon := time.Now().UTC().Add(upcomingVisitHorizon)
	visits, err := s.visitRepo.ListUpcoming(ctx, horizon, 10)
	if err != nil {
		return nil, err
	}
	stats.UpcomingVisits = visits

	return stats, nil
}
