package config

import (
	"log"

	"mariscos-pos/models"
)

type seedProduct struct {
	name     string
	price    float64
	variable bool
}

// defaultMenu is the house menu loaded on first run, so a fresh install is
// usable without touching the management screens.
var defaultMenu = []struct {
	category string
	products []seedProduct
}{
	{"ENTRADAS", []seedProduct{
		{"Empanadas de queso", 95.00, false},
		{"Minilla", 145.00, false},
		{"Orden de tortillas al ajo", 50.00, false},
	}},
	{"CALDOS", []seedProduct{
		{"Caldo de chilpachole", 210.00, false},
		{"Sopa de mariscos", 240.00, false},
		{"Caldo de camarón", 210.00, false},
	}},
	{"COCTELERÍA", []seedProduct{
		{"Ceviche Med", 120.00, false},
		{"Ceviche Gde", 170.00, false},
		{"Coctel Camarón Med", 140.00, false},
		{"Coctel Camarón Gde", 195.00, false},
		{"Vuelve a la vida", 220.00, false},
	}},
	{"MOJARRAS", []seedProduct{
		{"Mojarra al ajo", 0.00, true},
		{"Mojarra frita", 0.00, true},
		{"Mojarra enchipotlada", 0.00, true},
	}},
	{"BEBIDAS / CERVEZAS", []seedProduct{
		{"Corona 1/2", 45.00, false},
		{"Victoria 1/2", 45.00, false},
		{"Michelada", 85.00, false},
		{"Refresco", 40.00, false},
		{"Botella de agua", 20.00, false},
	}},
	{"POSTRES", []seedProduct{
		{"Flan", 55.00, false},
		{"Carlota", 45.00, false},
	}},
	{"EXTRAS", []seedProduct{
		{"Tortilla", 20.00, false},
		{"Tostadas", 20.00, false},
	}},
}

// SeedCatalog populates an empty catalog with the default menu. A database
// that already has categories is left alone.
func SeedCatalog() {
	var count int64
	if err := DB.Model(&models.Category{}).Count(&count).Error; err != nil {
		log.Printf("Failed to inspect catalog: %v", err)
		return
	}
	if count > 0 {
		return
	}

	for _, entry := range defaultMenu {
		category := models.Category{Name: entry.category}
		if err := DB.Create(&category).Error; err != nil {
			log.Printf("Failed to seed category %q: %v", entry.category, err)
			continue
		}
		for _, p := range entry.products {
			product := models.Product{
				Name:          p.name,
				Price:         p.price,
				CategoryID:    category.ID,
				VariablePrice: p.variable,
			}
			if err := DB.Create(&product).Error; err != nil {
				log.Printf("Failed to seed product %q: %v", p.name, err)
			}
		}
	}
	log.Println("Seeded default menu into empty catalog")
}
