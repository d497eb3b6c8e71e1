package scheduling

import "strings"

// CapabilityMatcher сопоставляет категории запросов с профессиями ресурсов.
// Таблицу поставляет вертикаль, ядро движка от нее не зависит.
type CapabilityMatcher interface {
	// HasCategory проверяет, обслуживает ли вертикаль категорию
	HasCategory(category string) bool
	// ProfessionServes проверяет, сопоставлена ли профессия категории
	ProfessionServes(profession, category string) bool
}

// CategoryTable фиксированная таблица профессия -> категории
type CategoryTable map[string][]string

// NewCategoryTable приводит ключи и значения к нижнему регистру
func NewCategoryTable(raw map[string][]string) CategoryTable {
	table := make(CategoryTable, len(raw))
	for profession, categories := range raw {
		normalized := make([]string, 0, len(categories))
		for _, c := range categories {
			normalized = append(normalized, normalize(c))
		}
		table[normalize(profession)] = normalized
	}
	return table
}

func (t CategoryTable) HasCategory(category string) bool {
	category = normalize(category)
	for _, categories := range t {
		for _, c := range categories {
			if c == category {
				return true
			}
		}
	}
	return false
}

func (t CategoryTable) ProfessionServes(profession, category string) bool {
	category = normalize(category)
	for _, c := range t[normalize(profession)] {
		if c == category {
			return true
		}
	}
	return false
}

// Categories возвращает все категории таблицы
func (t CategoryTable) Categories() []string {
	seen := make(map[string]struct{})
	result := make([]string, 0)
	for _, categories := range t {
		for _, c := range categories {
			if _, ok := seen[c]; ok {
				continue
			}
			seen[c] = struct{}{}
			result = append(result, c)
		}
	}
	return result
}

// specializationMatches считает специализации, содержащие категорию (без учета регистра)
func specializationMatches(specializations []string, category string) int {
	category = normalize(category)
	if category == "" {
		return 0
	}
	count := 0
	for _, s := range specializations {
		if strings.Contains(normalize(s), category) {
			count++
		}
	}
	return count
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
