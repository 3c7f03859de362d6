// Package report genera el export CSV del historial de movimientos, con el
// mismo formato que el reporte original: BOM UTF-8, separador ';' y fechas
// locales dd/mm/aaaa hh:mm.
package report

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// lotes de lectura al paginar el historial durante el export.
const exportBatchSize = 500

// CSVExporter escribe el historial filtrado de movimientos como CSV.
type CSVExporter struct {
	movRepo repository.MovementRepository
}

// NewCSVExporter construye el exportador.
func NewCSVExporter(movRepo repository.MovementRepository) *CSVExporter {
	return &CSVExporter{movRepo: movRepo}
}

// Export escribe el reporte completo en w aplicando los mismos filtros
// conjuntivos del historial, del movimiento más reciente al más antiguo.
// El BOM inicial permite que Excel detecte UTF-8.
func (e *CSVExporter) Export(w io.Writer, filter repository.MovementFilter) error {
	if _, err := w.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
		return fmt.Errorf("write BOM: %w", err)
	}
	cw := csv.NewWriter(w)
	cw.Comma = ';'

	header := []string{"Fecha/Hora", "Tipo", "Producto", "Cantidad", "Solicitante", "CPF"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for offset := 0; ; offset += exportBatchSize {
		batch, err := e.movRepo.List(filter, exportBatchSize, offset)
		if err != nil {
			return fmt.Errorf("list movements: %w", err)
		}
		if len(batch) == 0 {
			break
		}
		for _, m := range batch {
			if err := cw.Write(toRow(m)); err != nil {
				return fmt.Errorf("write row: %w", err)
			}
		}
		if len(batch) < exportBatchSize {
			break
		}
	}
	cw.Flush()
	return cw.Error()
}

func toRow(m *entity.MovementWithProduct) []string {
	return []string{
		m.CreatedAt.Format("02/01/2006 15:04"),
		typeLabel(m.Type),
		m.ProductName,
		fmt.Sprintf("%d", m.Quantity),
		orDash(m.RequesterName),
		orDash(m.RequesterCPF),
	}
}

func typeLabel(t string) string {
	if t == entity.MovementTypeIn {
		return "Entrada"
	}
	return "Salida"
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
