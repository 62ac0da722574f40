package analytics

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/jhoicas/changerank-api/internal/application/dto"
)

// utf8BOM hace que Excel abra el CSV como UTF-8.
const utf8BOM = "\ufeff"

// ShopRankingCSVName nombre del archivo descargado.
const ShopRankingCSVName = "shop_ranking.csv"

// WriteShopRankingCSV escribe la tabla del ranking de tiendas: una columna de posición
// y otra de movimiento por año.
func WriteShopRankingCSV(w io.Writer, resp *dto.ShopRankingResponse) error {
	if _, err := io.WriteString(w, utf8BOM); err != nil {
		return err
	}
	cw := csv.NewWriter(w)

	header := []string{"店舗"}
	for _, y := range resp.Years {
		header = append(header, fmt.Sprintf("%d年 順位", y), fmt.Sprintf("%d年 増減", y))
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, row := range resp.Rows {
		rec := []string{row.Name}
		for _, c := range row.Cells {
			rec = append(rec, RankText(c.Rank), MovementText(c))
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// RankText "-" cuando no hay posición.
func RankText(rank *int) string {
	if rank == nil {
		return "-"
	}
	return strconv.Itoa(*rank)
}

// MovementText devuelve la etiqueta (新店/閉店) o el ícono de movimiento.
func MovementText(c dto.ShopRankCell) string {
	if c.StatusText != "" {
		return c.StatusText
	}
	return c.DiffIcon
}
