package catalog

import (
	"bebidashop/internal/models"

	"github.com/shopspring/decimal"
)

// DefaultProducts is the fixed beverage list of the landing page
func DefaultProducts() []models.CatalogItem {
	return []models.CatalogItem{
		simple("1", "Agua Mineral Premium", "Agua mineral natural de manantial, pureza garantizada para tu hidratación diaria.", "2.50", "💧", models.CategoryNonAlcoholic, true, "Hola! Me interesa el Agua Mineral Premium de $2.50"),
		simple("2", "Jugo de Naranja Natural", "Jugo 100% natural exprimido de naranjas frescas, sin conservantes artificiales.", "4.99", "🍊", models.CategoryNonAlcoholic, false, "Hola! Me interesa el Jugo de Naranja Natural de $4.99"),
		simple("3", "Refresco de Cola", "El clásico sabor de cola que todos aman, perfecto para cualquier momento.", "3.25", "🥤", models.CategoryNonAlcoholic, false, "Hola! Me interesa el Refresco de Cola de $3.25"),
		simple("4", "Cerveza Artesanal", "Cerveza artesanal premium con sabor único y proceso de elaboración tradicional.", "6.75", "🍺", models.CategoryAlcoholic, true, "Hola! Me interesa la Cerveza Artesanal de $6.75"),
		simple("5", "Café Frío Especialidad", "Café premium preparado en frío, ideal para los amantes del café con un toque especial.", "5.50", "☕", models.CategoryNonAlcoholic, true, "Hola! Me interesa el Café Frío Especialidad de $5.50"),
		simple("6", "Smoothie de Frutas", "Deliciosa mezcla de frutas tropicales, rico en vitaminas y sabor natural.", "7.25", "🥤", models.CategoryNonAlcoholic, false, "Hola! Me interesa el Smoothie de Frutas de $7.25"),
		simple("7", "Té Helado de Limón", "Refrescante té helado con un toque cítrico de limón, perfecto para el verano.", "3.75", "🍋", models.CategoryNonAlcoholic, false, "Hola! Me interesa el Té Helado de Limón de $3.75"),
		simple("8", "Bebida Energética", "Potente bebida energética para darte el impulso que necesitas en tu día.", "4.50", "⚡", models.CategoryNonAlcoholic, false, "Hola! Me interesa la Bebida Energética de $4.50"),
	}
}

func simple(id, name, description, price, image, category string, premium bool, message string) models.CatalogItem {
	return models.CatalogItem{
		ID:              id,
		Kind:            models.KindSimple,
		Name:            name,
		Description:     description,
		ImageToken:      image,
		Category:        category,
		IsPremium:       premium,
		Price:           decimal.RequireFromString(price),
		PurchaseMessage: message,
	}
}
