package models

// RecordError reports a failure applying one record of a batch.
type RecordError struct {
	SKU string `json:"sku"`
	Err string `json:"error"`
}

// ReconcileResult summarizes one batch application against the store.
// A batch with failed records is not an error as a whole: failures are
// surfaced individually here.
type ReconcileResult struct {
	Total    int           `json:"total"`
	Applied  int           `json:"applied"`
	Rejected int           `json:"rejected"`
	Failed   []RecordError `json:"failed,omitempty"`
}
