package main

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/sellerdesk/recon_backend/config"
	"github.com/sellerdesk/recon_backend/models"
	"github.com/sellerdesk/recon_backend/models/imports"
	"github.com/sellerdesk/recon_backend/models/reports"
	"github.com/sellerdesk/recon_backend/utils"
	"github.com/sellerdesk/recon_backend/workflow"
)

// Multipart field names for a reconcile request.
const (
	fieldOrderFile    = "order"
	fieldPaymentFiles = "payments"
	fieldCostSheet    = "costsheet"
	fieldFallbackCost = "fallback_product_cost"
	fieldPackaging    = "packaging_cost"
)

type requestError struct {
	status int
	err    error
}

func (e *requestError) Error() string { return e.err.Error() }

func badRequest(err error) *requestError {
	return &requestError{status: http.StatusBadRequest, err: err}
}

// parseReconcileRequest turns one multipart upload into engine input.
// Nothing here keeps state: every request carries its own files and knobs.
func parseReconcileRequest(c *gin.Context, cfg *config.Config) (workflow.ReconcileConfig, workflow.ReconcileInput, *requestError) {
	engineCfg := workflow.ReconcileConfig{
		FallbackProductCost: cfg.FallbackProductCost,
		PackagingCost:       cfg.PackagingCost,
	}
	input := workflow.ReconcileInput{}

	form, err := c.MultipartForm()
	if err != nil {
		return engineCfg, input, badRequest(fmt.Errorf("invalid multipart request: %w", err))
	}

	fallback, err := formDecimal(form, fieldFallbackCost)
	if err != nil {
		return engineCfg, input, badRequest(err)
	}
	if fallback != nil {
		engineCfg.FallbackProductCost = *fallback
	}
	packaging, err := formDecimal(form, fieldPackaging)
	if err != nil {
		return engineCfg, input, badRequest(err)
	}
	if packaging != nil {
		engineCfg.PackagingCost = *packaging
	}

	orderFiles := form.File[fieldOrderFile]
	paymentFiles := form.File[fieldPaymentFiles]
	if len(orderFiles) == 0 || len(paymentFiles) == 0 {
		return engineCfg, input, badRequest(errors.New("please upload both order and payment files"))
	}

	maxBytes := cfg.MaxUploadSizeMB << 20

	orderTable, rerr := openTable(orderFiles[0], maxBytes)
	if rerr != nil {
		return engineCfg, input, rerr
	}
	input.Orders = orderTable

	for _, fh := range paymentFiles {
		wb, rerr := openWorkbook(fh, maxBytes)
		if rerr != nil {
			return engineCfg, input, rerr
		}
		input.Payments = append(input.Payments, wb)
	}

	if costFiles := form.File[fieldCostSheet]; len(costFiles) > 0 {
		costTable, rerr := openTable(costFiles[0], maxBytes)
		if rerr != nil {
			return engineCfg, input, rerr
		}
		input.CostSheet = costTable
	}

	return engineCfg, input, nil
}

func formDecimal(form *multipart.Form, field string) (*decimal.Decimal, error) {
	values := form.Value[field]
	if len(values) == 0 || strings.TrimSpace(values[0]) == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(strings.TrimSpace(values[0]))
	if err != nil {
		return nil, fmt.Errorf("%s must be numeric: %w", field, err)
	}
	return &d, nil
}

func openTable(fh *multipart.FileHeader, maxBytes int64) (*models.Table, *requestError) {
	if fh.Size > maxBytes {
		return nil, badRequest(fmt.Errorf("%s exceeds the upload size limit", fh.Filename))
	}
	f, err := fh.Open()
	if err != nil {
		return nil, &requestError{status: http.StatusInternalServerError, err: err}
	}
	defer f.Close()

	table, err := imports.ReadTableAuto(f, fh.Filename)
	if err != nil {
		return nil, badRequest(err)
	}
	return table, nil
}

func openWorkbook(fh *multipart.FileHeader, maxBytes int64) (*models.Workbook, *requestError) {
	if fh.Size > maxBytes {
		return nil, badRequest(fmt.Errorf("%s exceeds the upload size limit", fh.Filename))
	}
	f, err := fh.Open()
	if err != nil {
		return nil, &requestError{status: http.StatusInternalServerError, err: err}
	}
	defer f.Close()

	wb, err := imports.ReadWorkbookAuto(f, fh.Filename)
	if err != nil {
		return nil, badRequest(err)
	}
	return wb, nil
}

func runReconciliation(c *gin.Context, cfg *config.Config) (*workflow.ReconcileResult, bool) {
	logger := config.GetLogger()
	correlationID, _ := utils.GetCorrelationIdFromContext(c.Request.Context())

	engineCfg, input, rerr := parseReconcileRequest(c, cfg)
	if rerr != nil {
		c.JSON(rerr.status, gin.H{"error": rerr.Error()})
		return nil, false
	}

	result, err := workflow.ProcessReconciliationWorkflow(logger, engineCfg, input)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, workflow.ErrMissingOrderIDColumn) {
			status = http.StatusBadRequest
		}
		logger.WithFields(logrus.Fields{
			"field":          "runReconciliation",
			"correlation_id": correlationID,
		}).Error("reconciliation failed: " + err.Error())
		c.JSON(status, gin.H{"error": err.Error()})
		return nil, false
	}

	logger.WithFields(logrus.Fields{
		"correlation_id": correlationID,
		"orders":         result.Summary.TotalOrders,
		"payment_files":  len(input.Payments),
	}).Info("[reconcile.request]")
	return result, true
}

func reconcileHandler(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		result, ok := runReconciliation(c, cfg)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"data": gin.H{
				"summary":  result.Summary,
				"records":  result.Records,
				"warnings": result.Warnings,
			},
		})
	}
}

func reconcileExportHandler(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		result, ok := runReconciliation(c, cfg)
		if !ok {
			return
		}
		filename := "Reconciliation_" + uuid.NewString() + ".xlsx"
		if err := reports.ServeReconciliationReport(c.Writer, filename, result.Records, result.Summary); err != nil {
			config.LogError(config.GetLogger(), "reconcile.go", "reconcileExportHandler", "writing report", nil, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to write report"})
		}
	}
}
