package dto

// NoDataMessage es el aviso que reciben los reportes cuando aún no hay ventas cargadas.
const NoDataMessage = "データがまだありません。"

// ShopGroupDTO grupo de tiendas seleccionable (Token = "id|id").
type ShopGroupDTO struct {
	Name  string  `json:"name"`
	Token string  `json:"token"`
	IDs   []int64 `json:"ids"`
}

// DepartmentOption departamento de nivel 10 para selectores.
type DepartmentOption struct {
	ID   int64  `json:"id"`
	Code int    `json:"code"`
	Name string `json:"name"`
}

// ChartDataset serie lista para Chart.js.
type ChartDataset struct {
	Label           string    `json:"label"`
	Data            []float64 `json:"data"`
	BackgroundColor string    `json:"backgroundColor"`
	BorderColor     string    `json:"borderColor,omitempty"`
	BorderWidth     int       `json:"borderWidth,omitempty"`
	Fill            *bool     `json:"fill,omitempty"`
	Tension         float64   `json:"tension,omitempty"`
}

// ── Ranking de departamentos ────────────────────────────────────────────────

// DepartmentRankingRequest parámetros del ranking de departamentos.
type DepartmentRankingRequest struct {
	ParentID int64 `query:"parent_id" validate:"min=0"`
}

// RankShareCell posición y participación de un año.
type RankShareCell struct {
	Year  int      `json:"year"`
	Rank  *int     `json:"rank"`
	Share *float64 `json:"share"`
}

// DepartmentRow fila del ranking de departamentos.
type DepartmentRow struct {
	ID          int64           `json:"id"`
	Code        int             `json:"code"`
	Name        string          `json:"name"`
	Level       int             `json:"level"`
	IsClickable bool            `json:"is_clickable"`
	Cells       []RankShareCell `json:"cells"`
}

// Breadcrumb paso de la ruta de navegación.
type Breadcrumb struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Level int    `json:"level"`
}

// DepartmentRankingResponse salida del ranking de departamentos.
type DepartmentRankingResponse struct {
	Years       []int           `json:"years"`
	Rows        []DepartmentRow `json:"rows"`
	Breadcrumbs []Breadcrumb    `json:"breadcrumbs"`
	Title       string          `json:"title"`
	Error       string          `json:"error,omitempty"`
}

// ── Tendencia de participación ──────────────────────────────────────────────

// TrendResponse participación por fecha de cada departamento.
type TrendResponse struct {
	Labels   []string       `json:"labels"`
	Datasets []ChartDataset `json:"datasets"`
	Error    string         `json:"error,omitempty"`
}

// ── Ranking de tiendas ──────────────────────────────────────────────────────

// ShopRankingRequest parámetros del ranking de tiendas.
type ShopRankingRequest struct {
	Year     int      `query:"year" validate:"omitempty,min=1900,max=2999"`
	Month    int      `query:"month" validate:"min=0,max=12"`
	DeptCode string   `query:"dept_code" validate:"omitempty,numeric"`
	Shops    []string `query:"shops"`
}

// ShopRankCell posición de una tienda en un año (o año+mes).
type ShopRankCell struct {
	Year       int    `json:"year"`
	Date       string `json:"date,omitempty"`
	Rank       *int   `json:"rank"`
	DiffIcon   string `json:"diff_icon"`
	DiffClass  string `json:"diff_class"`
	StatusText string `json:"status_text"`
}

// ShopRankingRow fila del ranking de tiendas.
type ShopRankingRow struct {
	Name      string         `json:"name"`
	Token     string         `json:"token"`
	ClosedNow bool           `json:"closed_now"`
	Cells     []ShopRankCell `json:"cells"`
}

// ShopRankingResponse salida del ranking de tiendas.
type ShopRankingResponse struct {
	Years            []int              `json:"years"`
	Month            int                `json:"month,omitempty"`
	SelectedYear     int                `json:"selected_year"`
	SortYear         int                `json:"sort_year"`
	Rows             []ShopRankingRow   `json:"rows"`
	CheckboxShops    []ShopGroupDTO     `json:"checkbox_shops"`
	SelectedShops    []string           `json:"selected_shops"`
	Departments      []DepartmentOption `json:"departments"`
	SelectedDeptCode string             `json:"selected_dept_code"`
	SelectedDeptName string             `json:"selected_dept_name"`
	Error            string             `json:"error,omitempty"`
}

// ── Ranking de margen ───────────────────────────────────────────────────────

// ProfitCell posición por margen de un año y su brecha con la posición por ventas.
type ProfitCell struct {
	Year      int      `json:"year"`
	Rank      *int     `json:"rank"`
	SalesRank *int     `json:"sales_rank"`
	Gap       int      `json:"gap"`
	GapAbs    int      `json:"gap_abs"`
	GapClass  string   `json:"gap_class"`
	GapIcon   string   `json:"gap_icon"`
	Margin    *float64 `json:"margin"`
}

// ProfitRow fila del ranking de margen.
type ProfitRow struct {
	Code  int          `json:"code"`
	Name  string       `json:"name"`
	Cells []ProfitCell `json:"cells"`
}

// ProfitRankingResponse salida del ranking de margen.
type ProfitRankingResponse struct {
	Years []int       `json:"years"`
	Rows  []ProfitRow `json:"rows"`
	Error string      `json:"error,omitempty"`
}

// ── Mapa de margen ──────────────────────────────────────────────────────────

// ProfitMapRequest fecha opcional (YYYY-MM-DD).
type ProfitMapRequest struct {
	Date string `query:"date"`
}

// ScatterPoint punto (ventas, margen %) de un departamento.
type ScatterPoint struct {
	X      int64   `json:"x"`
	Y      float64 `json:"y"`
	Label  string  `json:"label"`
	Profit int64   `json:"profit"`
	Color  string  `json:"color"`
}

// ProfitMapResponse salida del mapa de margen.
type ProfitMapResponse struct {
	Date           string         `json:"date"`
	AvailableDates []string       `json:"available_dates"`
	Points         []ScatterPoint `json:"points"`
	Error          string         `json:"error,omitempty"`
}

// ── Composición de una tienda ───────────────────────────────────────────────

// ShopTrendRequest token del grupo de tiendas; vacío usa la tienda por defecto.
type ShopTrendRequest struct {
	Shop string `query:"shop"`
}

// ShopTrendResponse composición por departamento de una tienda en cada fecha.
type ShopTrendResponse struct {
	ShopName string         `json:"shop_name"`
	Token    string         `json:"token"`
	Labels   []string       `json:"labels"`
	Datasets []ChartDataset `json:"datasets"`
	Error    string         `json:"error,omitempty"`
}

// ── Comparación de tiendas ──────────────────────────────────────────────────

// ComparisonRequest tienda objetivo y tiendas de comparación (tokens).
type ComparisonRequest struct {
	Year            int      `query:"year" validate:"omitempty,min=1900,max=2999"`
	TargetShop      string   `query:"target_shop"`
	ComparisonShops []string `query:"comparison_shops"`
}

// ComparisonResponse perfil de participación por departamento de cada tienda.
type ComparisonResponse struct {
	Years           []int          `json:"years"`
	SelectedYear    int            `json:"selected_year"`
	Date            string         `json:"date,omitempty"`
	Shops           []ShopGroupDTO `json:"shops"`
	TargetShop      string         `json:"target_shop"`
	ComparisonShops []string       `json:"comparison_shops"`
	Labels          []string       `json:"labels"`
	Datasets        []ChartDataset `json:"datasets"`
	Error           string         `json:"error,omitempty"`
}

// ── Metadatos ───────────────────────────────────────────────────────────────

// MetaResponse opciones para los selectores de la interfaz.
type MetaResponse struct {
	Years       []int              `json:"years"`
	Months      map[int][]int      `json:"months"`
	LatestDate  string             `json:"latest_date,omitempty"`
	Shops       []ShopGroupDTO     `json:"shops"`
	Departments []DepartmentOption `json:"departments"`
	Generation  int64              `json:"generation"`
}
