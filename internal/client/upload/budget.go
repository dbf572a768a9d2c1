package upload

import "github.com/miy4x/shigezane-admin/internal/client/models"

// Budget is the compression target for an image.
type Budget struct {
	MaxDimension int
	MaxBytes     int64
}

const mb = 1 << 20

var budgets = map[models.ImageRole]Budget{
	models.RoleMain:      {MaxDimension: 1920, MaxBytes: 1 * mb},
	models.RoleGallery:   {MaxDimension: 1920, MaxBytes: 1 * mb},
	models.RoleFloorplan: {MaxDimension: 1200, MaxBytes: 8 * mb / 10},
	models.RoleSurvey:    {MaxDimension: 1200, MaxBytes: 8 * mb / 10},
	models.RoleLayout:    {MaxDimension: 1200, MaxBytes: 8 * mb / 10},
}

// BudgetFor returns the budget for role. Unknown roles get the main budget.
func BudgetFor(role models.ImageRole) Budget {
	if b, ok := budgets[role]; ok {
		return b
	}
	return budgets[models.RoleMain]
}

// BudgetMB builds a budget from a size in megabytes.
func BudgetMB(maxSizeMB float64, maxDimension int) Budget {
	return Budget{MaxDimension: maxDimension, MaxBytes: int64(maxSizeMB * mb)}
}
