package dto

// CompleteTransferResponse resultado de POST /api/stock-transfers/:id/complete.
type CompleteTransferResponse struct {
	TransferID  string   `json:"transfer_id"`
	MovementIDs []string `json:"movement_ids"`
}

// CompleteCountResponse resultado de POST /api/stock-counts/:id/complete.
type CompleteCountResponse struct {
	CountID   string   `json:"count_id"`
	Adjusted  []string `json:"adjusted"`
	Unchanged []string `json:"unchanged"`
}
