package item

type Status string

const (
	StatusCritical Status = "CRITICAL"
	StatusLow      Status = "LOW"
	StatusGood     Status = "GOOD"
)

const (
	CriticalThreshold int64 = 20
	LowThreshold      int64 = 50
)

// Totals is the aggregated view of one stock descriptor as read from the store.
type Totals struct {
	ItemName string
	StockQty int64
	IssueQty int64
}

type StockRow struct {
	No         int    `json:"no"`
	ItemName   string `json:"itemName"`
	StockQty   int64  `json:"stockQty"`
	IssueQty   int64  `json:"issueQty"`
	BalanceQty int64  `json:"balanceQty"`
}

func NewStockRow(totals Totals) StockRow {
	return StockRow{
		ItemName:   totals.ItemName,
		StockQty:   totals.StockQty,
		IssueQty:   totals.IssueQty,
		BalanceQty: Balance(totals.StockQty, totals.IssueQty),
	}
}

func (r StockRow) Status() Status {
	return Classify(r.BalanceQty)
}

func (r StockRow) FillPercent() float64 {
	return FillPercent(r.BalanceQty, r.StockQty)
}

// Balance floors the remaining quantity at zero.
func Balance(stockQty, issueQty int64) int64 {
	return max(stockQty-issueQty, 0)
}

func Classify(balanceQty int64) Status {
	switch {
	case balanceQty < CriticalThreshold:
		return StatusCritical
	case balanceQty < LowThreshold:
		return StatusLow
	default:
		return StatusGood
	}
}

// FillPercent is not clamped; callers rendering it decide how to bound it.
func FillPercent(balanceQty, stockQty int64) float64 {
	if stockQty <= 0 {
		return 0
	}
	return float64(balanceQty) / float64(stockQty) * 100
}
