package httpserver

import (
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"

	"github.com/edouardlicn123/Hotel-furniture-company-site/internal/domain"
)

const exportBatch = 200

// adminProductExport streams the full catalog as an xlsx workbook.
func (s *Server) adminProductExport(w http.ResponseWriter, r *http.Request) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Products"
	idx, err := f.NewSheet(sheet)
	if err != nil {
		log.Error().Err(err).Msg("export sheet")
		http.Error(w, "export failed", http.StatusInternalServerError)
		return
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	header := []any{
		"Code", "Name", "Category", "Description",
		"Length (mm)", "Width (mm)", "Height (mm)", "Seat Height (mm)",
		"Base Material", "Surface Material", "Featured Series", "Applicable Space",
		"Photos", "Created",
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		log.Error().Err(err).Msg("export header")
		http.Error(w, "export failed", http.StatusInternalServerError)
		return
	}

	row := 2
	for page := 1; ; page++ {
		batch, _, err := s.products.List(r.Context(), domain.ProductFilter{Page: page, PageSize: exportBatch})
		if err != nil {
			log.Error().Err(err).Msg("export list")
			http.Error(w, "export failed", http.StatusInternalServerError)
			return
		}
		if len(batch) == 0 {
			break
		}
		for _, p := range batch {
			category := ""
			if p.Category != nil {
				category = p.Category.Name
			}
			cells := []any{
				p.Code, p.Name, category, p.Description,
				dimCell(p.LengthMM), dimCell(p.WidthMM), dimCell(p.HeightMM), dimCell(p.SeatHeightMM),
				p.BaseMaterial, p.SurfaceMaterial, p.FeaturedSeries, p.ApplicableSpace,
				len(p.PhotoList()), p.CreatedAt.Format("2006-01-02"),
			}
			if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", row), &cells); err != nil {
				log.Error().Err(err).Int("row", row).Msg("export row")
				http.Error(w, "export failed", http.StatusInternalServerError)
				return
			}
			row++
		}
		if len(batch) < exportBatch {
			break
		}
	}

	filename := "products-" + time.Now().Format("20060102") + ".xlsx"
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	if err := f.Write(w); err != nil {
		log.Error().Err(err).Msg("export write")
	}
}

func dimCell(v *int) any {
	if v == nil {
		return ""
	}
	return *v
}
