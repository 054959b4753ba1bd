package dto

// CommitteeRequest appoints the committee for a year.
type CommitteeRequest struct {
	PresidentID int64   `json:"presidentId" binding:"required"`
	MemberIDs   []int64 `json:"memberIds" binding:"required,min=1"`
}

// AddDraftItemRequest appends one line to a draft. Which fields apply
// depends on the draft kind.
type AddDraftItemRequest struct {
	AssetID      int64   `json:"assetId"`
	Quantity     int64   `json:"quantity"`
	Price        *string `json:"price"`
	SerialNumber string  `json:"serialNumber"`
	ItemID       int64   `json:"itemId"`
	Purpose      string  `json:"purpose"`
	Condition    string  `json:"condition"`
	Notes        string  `json:"notes"`
}
