package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/umamiasd/umami-api/internal/application/service"
	"github.com/umamiasd/umami-api/internal/presentation/http/dto/response"
)

// ReportHandler handles the report HTTP requests
type ReportHandler struct {
	reportService *service.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

func delinquentInputFromQuery(c *gin.Context) *service.DelinquentMembersInput {
	minDays, _ := strconv.Atoi(c.DefaultQuery("giorni_minimi", "0"))
	minAmount, _ := strconv.ParseFloat(c.DefaultQuery("importo_minimo", "0"), 64)
	includeSuspended, _ := strconv.ParseBool(c.DefaultQuery("includi_sospesi", "false"))
	return &service.DelinquentMembersInput{
		MinOverdueDays:   minDays,
		MinAmount:        minAmount,
		IncludeSuspended: includeSuspended,
	}
}

// DelinquentMembers handles the soci morosi report
func (h *ReportHandler) DelinquentMembers(c *gin.Context) {
	report, err := h.reportService.DelinquentMembers(c.Request.Context(), delinquentInputFromQuery(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Report soci morosi", report)
}

// FIVMembers handles the tesserati FIV report
func (h *ReportHandler) FIVMembers(c *gin.Context) {
	rows, err := h.reportService.FIVMembers(c.Request.Context(), parseBoolQuery(c, "scaduti"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Report tesserati FIV", rows)
}

// ExpiringCertificates handles the certificati in scadenza report
func (h *ReportHandler) ExpiringCertificates(c *gin.Context) {
	withinDays, _ := strconv.Atoi(c.DefaultQuery("giorni", "30"))

	rows, err := h.reportService.ExpiringCertificates(c.Request.Context(), withinDays)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Report certificati in scadenza", rows)
}

// SendReminders handles dispatching payment reminder emails
func (h *ReportHandler) SendReminders(c *gin.Context) {
	result, err := h.reportService.SendPaymentReminders(c.Request.Context(), delinquentInputFromQuery(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Solleciti inviati", result)
}
