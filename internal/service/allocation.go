package service

import (
	"sort"

	"github.com/edineros/portfolio-tracker-backend/internal/model"
)

// uncategorizedKey labels the allocation bucket for assets without a
// category. It always sorts last.
const uncategorizedKey = "Uncategorized"

// AllocationByType breaks total value down by asset type. Assets whose
// display value is unknown or non-positive are excluded entirely (an
// unknown value cannot be allocated a percentage), so the percentages of
// the included assets sum to 100 (up to float rounding). Slices are sorted
// alphabetically by key.
func AllocationByType(assets []model.AssetStats) model.Allocation {
	values := make(map[string]float64)
	for _, asset := range assets {
		if asset.ValueInDisplay == nil || *asset.ValueInDisplay <= 0 {
			continue
		}
		values[string(asset.Type)] += *asset.ValueInDisplay
	}

	return model.Allocation{Slices: buildSlices(values, false)}
}

// AllocationByCategory breaks total value down by category name, using the
// supplied categories to resolve names. Assets with no category (or a
// dangling reference) land in the "Uncategorized" bucket, which always sorts
// last; the remaining buckets sort alphabetically. HasCategories reports
// whether any included asset carried a category, so callers can suppress the
// breakdown when nothing is categorized.
func AllocationByCategory(assets []model.AssetStats, categories []model.Category) model.Allocation {
	names := make(map[string]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}

	values := make(map[string]float64)
	hasCategories := false
	for _, asset := range assets {
		if asset.ValueInDisplay == nil || *asset.ValueInDisplay <= 0 {
			continue
		}

		key := uncategorizedKey
		if asset.CategoryID != nil {
			if name, ok := names[*asset.CategoryID]; ok {
				key = name
				hasCategories = true
			}
		}
		values[key] += *asset.ValueInDisplay
	}

	return model.Allocation{
		Slices:        buildSlices(values, true),
		HasCategories: hasCategories,
	}
}

// buildSlices turns a key/value map into sorted slices with percentages of
// the included total. With uncategorizedLast, the uncategorized bucket is
// moved to the end regardless of alphabetical order.
func buildSlices(values map[string]float64, uncategorizedLast bool) []model.AllocationSlice {
	var total float64
	for _, v := range values {
		total += v
	}

	slices := make([]model.AllocationSlice, 0, len(values))
	for key, value := range values {
		percent := 0.0
		if total > 0 {
			percent = 100 * value / total
		}
		slices = append(slices, model.AllocationSlice{
			Key:     key,
			Value:   value,
			Percent: percent,
		})
	}

	sort.Slice(slices, func(i, j int) bool {
		if uncategorizedLast {
			if slices[i].Key == uncategorizedKey {
				return false
			}
			if slices[j].Key == uncategorizedKey {
				return true
			}
		}
		return slices[i].Key < slices[j].Key
	})

	return slices
}
