package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/swaggo/swag"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Importer Importer
	Files    FileLister
	Products ProductDetailsGetter
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	importHandler := NewImportHandler(deps.Importer, deps.Files)
	productHandler := NewProductHandler(deps.Products)

	app.Get("/health", importHandler.Health)
	app.Get("/docs/doc.json", openAPIDoc)

	v1 := app.Group("/api/v1")

	dataprocessing := v1.Group("/dataprocessing")
	dataprocessing.Post("/import", importHandler.Import)
	dataprocessing.Get("/files", importHandler.ListFiles)

	products := v1.Group("/products")
	products.Get("/:sku", productHandler.GetBySKU)
}

// openAPIDoc sirve el documento registrado por el paquete docs (swag).
func openAPIDoc(c *fiber.Ctx) error {
	doc, err := swag.ReadDoc()
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"code": "NOT_FOUND", "message": "documentación no registrada"})
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
	return c.SendString(doc)
}
