package inventory

// Prefijos de CauseRef por tipo de evento de negocio.
const (
	CausePartsUsed         = "parts-used"
	CauseInvoiceItem       = "invoice-item"
	CausePurchaseOrderItem = "purchase-order-item"
	CauseStockTransferItem = "stock-transfer-item"
	CauseStockCountItem    = "stock-count-item"
)

// CauseRef arma la referencia "<tipo>:<id>" usada para deduplicar movimientos.
func CauseRef(kind, id string) string {
	return kind + ":" + id
}
