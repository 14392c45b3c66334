package dto

// DashboardSummaryDTO respuesta de GET /api/dashboard/summary.
type DashboardSummaryDTO struct {
	TotalProducts int   `json:"total_products"` // productos activos
	TotalStock    int64 `json:"total_stock"`    // suma de saldos de activos
	BelowMinimum  int   `json:"below_minimum"`  // activos con stock <= mínimo
}

// StockAlertDTO producto en o bajo su mínimo.
type StockAlertDTO struct {
	ProductID    string `json:"product_id"`
	SKU          string `json:"sku"`
	Name         string `json:"name"`
	Unit         string `json:"unit"`
	CurrentStock int64  `json:"current_stock"`
	Minimum      int64  `json:"minimum"`
}

// RecentMovementDTO movimiento reciente listo para mostrar.
type RecentMovementDTO struct {
	ID                int64  `json:"id"`
	ProductID         string `json:"product_id"`
	SKU               string `json:"sku"`
	ProductName       string `json:"product_name"`
	Type              string `json:"type"`
	Quantity          int64  `json:"quantity"`
	FormattedQuantity string `json:"formatted_quantity"` // "+10" / "-3"
	FormattedDate     string `json:"formatted_date"`     // dd/mm/aaaa hh:mm
	Source            string `json:"source"`
	Actor             string `json:"actor"` // usuario o, en su defecto, el origen
}

// DailyMovementDTO totales de un día del gráfico.
type DailyMovementDTO struct {
	Date       string `json:"date"`  // aaaa-mm-dd
	Label      string `json:"label"` // dd/mm
	Inbound    int64  `json:"inbound"`
	Outbound   int64  `json:"outbound"`
	Adjustment int64  `json:"adjustment"`
}

// DailySeriesResponse respuesta de GET /api/dashboard/chart.
type DailySeriesResponse struct {
	Days   int                `json:"days"`
	Series []DailyMovementDTO `json:"series"`
}
