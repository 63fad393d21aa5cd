package donation

import "github.com/shopspring/decimal"

type Package struct {
	ID          string   `json:"id"`
	Name        string   `json:"name,omitempty"`
	Description string   `json:"description,omitempty"`
	Amount      *float64 `json:"amount,omitempty"`
	MinAmount   *float64 `json:"min_amount,omitempty"`
	MaxAmount   *float64 `json:"max_amount,omitempty"`
}

const CustomPackage = "custom"

type tier struct {
	id          string
	name        string
	description string
	amount      decimal.Decimal
}

var tiers = []tier{
	{"small", "Support Our Mission", "Help keep the app ad-free", decimal.NewFromInt(5)},
	{"medium", "Nurture Growth", "Support new features and improvements", decimal.NewFromInt(15)},
	{"large", "Flourish Together", "Help us reach more souls seeking peace", decimal.NewFromInt(30)},
}

func float(d decimal.Decimal) *float64 {
	f := d.InexactFloat64()
	return &f
}

// Packages lists the donation tiers in display order.
func Packages() []Package {
	pkgs := make([]Package, 0, len(tiers)+1)
	for _, t := range tiers {
		pkgs = append(pkgs, Package{
			ID:          t.id,
			Name:        t.name,
			Description: t.description,
			Amount:      float(t.amount),
		})
	}
	return append(pkgs, Package{
		ID:        CustomPackage,
		Name:      "Custom Amount",
		MinAmount: float(MinAmount),
		MaxAmount: float(MaxAmount),
	})
}

// ResolveAmount returns the amount to charge for packageID. Fixed tiers
// override the requested amount; the custom tier and an empty id keep it.
func ResolveAmount(packageID string, requested decimal.Decimal) (decimal.Decimal, bool) {
	if packageID == "" || packageID == CustomPackage {
		return requested, true
	}
	for _, t := range tiers {
		if t.id == packageID {
			return t.amount, true
		}
	}
	return decimal.Zero, false
}
