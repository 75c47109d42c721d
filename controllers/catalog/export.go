package catalogControllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"
	"gorm.io/gorm"

	"github.com/whoisaditya/IWP-Backend/middleware"
	"github.com/whoisaditya/IWP-Backend/models"
	"github.com/whoisaditya/IWP-Backend/respond"
)

// GET /myProducts/export
// Streams the shop's catalog as an Excel workbook.
func ExportProductsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		shop := middleware.CurrentShop(c)

		var items []models.CatalogItem
		if err := db.Where("shop_id = ?", shop.ID).Order("id").Find(&items).Error; err != nil {
			respond.Failure(c, http.StatusInternalServerError, err)
			return
		}

		file := xlsx.NewFile()
		sheet, err := file.AddSheet("Products")
		if err != nil {
			respond.Failure(c, http.StatusInternalServerError, err)
			return
		}

		header := sheet.AddRow()
		for _, h := range []string{"ID", "Name", "Description", "Unit Cost", "Quantity", "Demand", "Tag"} {
			header.AddCell().Value = h
		}
		for _, item := range items {
			row := sheet.AddRow()
			row.AddCell().Value = strconv.FormatUint(uint64(item.ID), 10)
			row.AddCell().Value = item.Name
			row.AddCell().Value = item.Description
			row.AddCell().SetFloat(item.UnitCost)
			row.AddCell().SetInt(item.Quantity)
			row.AddCell().SetInt(item.Demand)
			row.AddCell().Value = string(item.Tag)
		}

		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Disposition", `attachment; filename="products.xlsx"`)
		if err := file.Write(c.Writer); err != nil {
			respond.Failure(c, http.StatusInternalServerError, err)
		}
	}
}
