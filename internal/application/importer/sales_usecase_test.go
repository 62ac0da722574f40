package importer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/changerank-api/internal/domain/entity"
	"github.com/jhoicas/changerank-api/internal/domain/ledger"
	"github.com/jhoicas/changerank-api/internal/domain/sheet"
)

// seedMaster carga el departamento 1 con las subclases 10111 y 10112.
func seedMaster(t *testing.T, db *memDB) {
	t.Helper()
	_, err := NewMasterUseCase(db, &spyCache{}).Import(context.Background(), masterBook(
		cells(1, "文具", 101, "筆記具", 1011, "鉛筆", 10111, "鉛筆HB"),
		cells(1, "文具", 101, "筆記具", 1011, "鉛筆", 10112, "鉛筆2B"),
	))
	require.NoError(t, err)
}

func salesSheet(dateText string) *sheet.Sheet {
	return &sheet.Sheet{
		Name: "180分類明細",
		Rows: [][]sheet.Cell{
			cells("部門別売上", dateText),
			cells("", "", "日向", "", "", "", "", "加治木"),
			cells("コード", "名称", "販売", "仕入", "供給", "純売", "粗利", "販売", "仕入", "供給", "純売", "粗利"),
			cells(10111, "鉛筆HB", "1,000", 600, 0, 1000, 400, 500, 300, "-", 500, 200),
			cells(99999, "不明", 10, 1, 1, 1, 1, 10, 1, 1, 1, 1),
			cells("客数", "", 80, "", "", "", "", 0),
			cells("小計", "", 1000),
		},
	}
}

func salesBook(s *sheet.Sheet) *memWorkbook {
	return &memWorkbook{sheets: []*sheet.Sheet{{Name: "表紙"}, s}}
}

func TestSalesImport_EscribeMedidasYClientes(t *testing.T) {
	db := newMemDB()
	seedMaster(t, db)
	spy := &spyCache{}
	uc := NewSalesUseCase(db, spy)

	res, err := uc.Import(context.Background(), salesBook(salesSheet("2024年3月31日")))
	require.NoError(t, err)

	assert.Equal(t, "180分類明細", res.Sheet)
	assert.Equal(t, "2024-03-31", res.ReportDate)
	assert.Equal(t, []string{"日向", "加治木"}, res.Shops)
	assert.Equal(t, 2, res.RowsProcessed)
	assert.Equal(t, 1, res.SkippedRows)
	assert.Equal(t, 3, res.RecordsWritten) // 2 de 10111 + clientes solo de 日向
	assert.Equal(t, 1, spy.calls)

	date := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)
	hyuga, _ := db.shopByName("日向")
	kajiki, _ := db.shopByName("加治木")
	sub, _ := db.category(entity.LevelSubclass, 10111)

	rec, ok := db.record(hyuga.ID, sub.ID, date)
	require.True(t, ok)
	assert.Equal(t, entity.Measures{Sales: 1000, Purchase: 600, Supply: 0, Net: 1000, Profit: 400}, rec.Measures)

	rec, ok = db.record(kajiki.ID, sub.ID, date)
	require.True(t, ok)
	assert.Equal(t, int64(0), rec.Supply)

	cc, ok := db.category(entity.CustomerCountLevel, entity.CustomerCountCode)
	require.True(t, ok)
	assert.Equal(t, entity.CustomerCountName, cc.Name)
	rec, ok = db.record(hyuga.ID, cc.ID, date)
	require.True(t, ok)
	assert.Equal(t, int64(80), rec.Sales)
	_, ok = db.record(kajiki.ID, cc.ID, date)
	assert.False(t, ok)
}

func TestSalesImport_PodaElMesYReemplaza(t *testing.T) {
	db := newMemDB()
	seedMaster(t, db)
	uc := NewSalesUseCase(db, &spyCache{})

	_, err := uc.Import(context.Background(), salesBook(salesSheet("2024年3月15日")))
	require.NoError(t, err)
	_, err = uc.Import(context.Background(), salesBook(salesSheet("2024年2月29日")))
	require.NoError(t, err)

	res, err := uc.Import(context.Background(), salesBook(salesSheet("2024年3月31日")))
	require.NoError(t, err)
	// 15 de marzo desaparece para las dos tiendas: 2 filas de 10111 + clientes de 日向.
	assert.Equal(t, int64(3), res.RecordsPruned)

	hyuga, _ := db.shopByName("日向")
	sub, _ := db.category(entity.LevelSubclass, 10111)
	_, ok := db.record(hyuga.ID, sub.ID, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC))
	assert.False(t, ok)
	_, ok = db.record(hyuga.ID, sub.ID, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC))
	assert.True(t, ok, "otro mes no se toca")

	again, err := uc.Import(context.Background(), salesBook(salesSheet("2024年3月31日")))
	require.NoError(t, err)
	assert.Zero(t, again.RecordsPruned)
	assert.Len(t, db.sales, 6)
}

func TestSalesImport_SinTiendasRevierte(t *testing.T) {
	db := newMemDB()
	seedMaster(t, db)
	before := len(db.shops)
	spy := &spyCache{}

	s := salesSheet("2024年3月31日")
	s.Rows[1] = cells("", "", "文具", "", "", "", "", "合計")
	_, err := NewSalesUseCase(db, spy).Import(context.Background(), salesBook(s))

	require.Error(t, err)
	assert.ErrorIs(t, err, ledger.ErrNoShopColumns)
	var nsc *ledger.NoShopColumnsError
	require.True(t, errors.As(err, &nsc))
	assert.Equal(t, 2, nsc.HeaderRow)
	assert.Len(t, db.shops, before)
	assert.Zero(t, spy.calls)
}

func TestSalesImport_SinFecha(t *testing.T) {
	db := newMemDB()
	seedMaster(t, db)
	_, err := NewSalesUseCase(db, &spyCache{}).Import(context.Background(), salesBook(salesSheet("")))
	assert.ErrorIs(t, err, ledger.ErrMissingDate)
}

func TestSalesImport_FalloAMitadNoDejaRastro(t *testing.T) {
	db := newMemDB()
	seedMaster(t, db)
	db.failUpsert = true

	_, err := NewSalesUseCase(db, &spyCache{}).Import(context.Background(), salesBook(salesSheet("2024年3月31日")))
	require.ErrorIs(t, err, errUpsert)
	_, ok := db.shopByName("日向")
	assert.False(t, ok)
	assert.Empty(t, db.sales)
}

func TestSalesImport_HojaIlegibleUsaLaPrimera(t *testing.T) {
	db := newMemDB()
	seedMaster(t, db)
	s := salesSheet("2024年3月31日")
	s.Name = "Sheet1"
	wb := &memWorkbook{
		sheets: []*sheet.Sheet{s, {Name: "180分類明細"}},
		broken: map[string]bool{"180分類明細": true},
	}

	res, err := NewSalesUseCase(db, &spyCache{}).Import(context.Background(), wb)
	require.NoError(t, err)
	assert.Equal(t, "Sheet1", res.Sheet)
}
