package memory

import (
	"fmt"

	"github.com/utafrali/storefront-listing/internal/domain"
)

// arrivalsCatalog returns six arrivals tagged jan, jan, feb, feb, mar, mar.
func arrivalsCatalog() *domain.Catalog {
	names := []string{"Zapato Azul", "abrigo gris", "Camisa Blue", "Nube Pantalón", "Ñandú Gorra", "Bolso"}
	months := []string{"jan", "jan", "feb", "feb", "mar", "mar"}

	c := &domain.Catalog{Key: "novedades", Kind: domain.KindArrivals}
	for i := range names {
		c.Items = append(c.Items, domain.Item{
			ID:       fmt.Sprintf("a%d", i+1),
			Name:     names[i],
			Month:    months[i],
			Position: i,
		})
	}
	return c
}

// offersCatalog returns two sections: jackets (3 items) and shoes (2 items).
func offersCatalog() *domain.Catalog {
	items := []domain.Item{
		{ID: "j1", Name: "Blue Jacket", Category: "jackets", Style: "casual", Price: 10},
		{ID: "j2", Name: "Red Jacket", Category: "jackets", Style: "formal", Price: 50},
		{ID: "j3", Name: "Navy Blue Coat", Category: "jackets", Style: "casual", Price: 30},
		{ID: "s1", Name: "Blue Sneakers", Category: "shoes", Style: "sport", Price: 40},
		{ID: "s2", Name: "Loafers", Category: "shoes", Style: "formal", Price: 20},
	}
	for i := range items {
		items[i].Section = items[i].Category
		items[i].Position = i
	}
	return &domain.Catalog{
		Key:   "ofertas",
		Kind:  domain.KindOffers,
		Items: items,
		Sections: []domain.Section{
			{Category: "jackets", Title: "Chaquetas", ItemIDs: []string{"j1", "j2", "j3"}},
			{Category: "shoes", Title: "Calzado", ItemIDs: []string{"s1", "s2"}},
		},
	}
}

func names(items []domain.Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Name
	}
	return out
}

func ids(views []domain.ItemView) []string {
	out := make([]string, len(views))
	for i, v := range views {
		out[i] = v.ID
	}
	return out
}
