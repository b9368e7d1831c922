package seed

import (
	"fmt"

	"quay/internal/domain"
)

// Map converts a parsed seed file into the navigation data set. Categories
// keep their file order; sites keep their order within each category.
// Entries without a name or URL are skipped.
func Map(f *File) (domain.Data, error) {
	data := domain.Empty()

	for _, category := range f.Categories {
		if category.Name == "" {
			continue
		}
		data.Categories = append(data.Categories, category.Name)

		for _, entry := range category.Sites {
			if entry.Name == "" || entry.URL == "" {
				continue
			}
			data.Sites = append(data.Sites, domain.Site{
				Name:     entry.Name,
				URL:      entry.URL,
				Category: category.Name,
				Icon:     entry.Icon,
			})
		}
	}

	if len(data.Categories) == 0 {
		return domain.Data{}, fmt.Errorf("no valid categories found in seed file")
	}

	return data, nil
}
