package dto

import (
	"time"

	"makhzan/internal/core/types"
	"makhzan/internal/domain/documents"
	"makhzan/internal/domain/documents/export_record"
	"makhzan/internal/domain/documents/import_record"
	"makhzan/internal/domain/documents/returns"
	"makhzan/internal/domain/recipients"
)

// CreateImportRequest posts a goods receipt.
type CreateImportRequest struct {
	CompanyID    int64               `json:"companyId" binding:"required"`
	Date         time.Time           `json:"date" binding:"required"`
	AssignNumber string              `json:"assignNumber"`
	AssignDate   *time.Time          `json:"assignDate"`
	Notes        string              `json:"notes"`
	Items        []ImportItemRequest `json:"items" binding:"required,min=1,dive"`
}

// ImportItemRequest is one received line.
type ImportItemRequest struct {
	AssetID  int64       `json:"assetId" binding:"required"`
	Quantity int64       `json:"quantity" binding:"required,gt=0"`
	Price    types.Money `json:"price"`
}

// ToRecord converts the request to a domain document.
func (r CreateImportRequest) ToRecord() *import_record.ImportRecord {
	record := &import_record.ImportRecord{
		CompanyID: r.CompanyID,
		Date:      r.Date,
		AssignNum: r.AssignNumber,
		AssignAt:  r.AssignDate,
		Notes:     r.Notes,
	}
	for _, item := range r.Items {
		record.Items = append(record.Items, &import_record.ImportItem{
			AssetID:  item.AssetID,
			Quantity: item.Quantity,
			Price:    item.Price,
		})
	}
	return record
}

// RecipientRequest is the tagged recipient reference.
type RecipientRequest struct {
	Kind string `json:"kind" binding:"required"`
	ID   int64  `json:"id" binding:"required"`
}

// CreateExportRequest posts a goods issue. Item prices are derived
// server-side and must not be supplied.
type CreateExportRequest struct {
	Date       time.Time           `json:"date" binding:"required"`
	ExportType string              `json:"exportType" binding:"required"`
	Recipient  RecipientRequest    `json:"recipient" binding:"required"`
	Notes      string              `json:"notes"`
	Items      []ExportItemRequest `json:"items" binding:"required,min=1,dive"`
}

// ExportItemRequest is one issued line.
type ExportItemRequest struct {
	AssetID      int64  `json:"assetId" binding:"required"`
	Quantity     int64  `json:"quantity" binding:"required,gt=0"`
	SerialNumber string `json:"serialNumber"`
}

// ToRecord converts the request to a domain document.
func (r CreateExportRequest) ToRecord() *export_record.ExportRecord {
	record := &export_record.ExportRecord{
		Date:       r.Date,
		ExportType: export_record.ExportType(r.ExportType),
		Recipient: recipients.Ref{
			Kind: recipients.Kind(r.Recipient.Kind),
			ID:   r.Recipient.ID,
		},
		Notes: r.Notes,
	}
	for _, item := range r.Items {
		record.Items = append(record.Items, &export_record.ExportItem{
			AssetID:      item.AssetID,
			Quantity:     item.Quantity,
			SerialNumber: item.SerialNumber,
		})
	}
	return record
}

// CreateReturnRequest applies a return batch.
type CreateReturnRequest struct {
	Kind       string              `json:"kind" binding:"required"`
	ReturnedAt time.Time           `json:"returnedAt" binding:"required"`
	Items      []ReturnItemRequest `json:"items" binding:"required,min=1,dive"`
}

// ReturnItemRequest is one returned line.
type ReturnItemRequest struct {
	ItemID    int64  `json:"itemId" binding:"required"`
	Purpose   string `json:"purpose" binding:"required"`
	Condition string `json:"condition" binding:"required"`
	Notes     string `json:"notes"`
}

// ToBatch converts the request to a domain batch.
func (r CreateReturnRequest) ToBatch() *returns.Batch {
	batch := &returns.Batch{
		Kind:       returns.Kind(r.Kind),
		ReturnedAt: r.ReturnedAt,
	}
	for _, item := range r.Items {
		batch.Items = append(batch.Items, returns.BatchItem{
			ItemID:    item.ItemID,
			Purpose:   item.Purpose,
			Condition: documents.Condition(item.Condition),
			Notes:     item.Notes,
		})
	}
	return batch
}

// ReturnCreatedResponse reports the shared batch return id.
type ReturnCreatedResponse struct {
	ReturnID int64 `json:"returnId"`
}
