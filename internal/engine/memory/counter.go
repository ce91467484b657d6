package memory

import (
	"fmt"

	"github.com/utafrali/storefront-listing/internal/domain"
)

// Counter renders the "Mostrando" label for a listing kind as markup and as
// plain text.
func Counter(kind domain.Kind, visible, total int) (markup, text string) {
	if kind == domain.KindOffers {
		return fmt.Sprintf("Mostrando <strong>%d</strong> de <strong>%d</strong> productos", visible, total),
			fmt.Sprintf("Mostrando %d de %d productos", visible, total)
	}
	return fmt.Sprintf("Mostrando <strong>%d</strong> novedades", visible),
		fmt.Sprintf("Mostrando %d novedades", visible)
}
