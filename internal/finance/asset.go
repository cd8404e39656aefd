package finance

import (
	"github.com/shopspring/decimal"
)

type AssetType string

const (
	AssetCar   AssetType = "Car"
	AssetHouse AssetType = "House"
)

const ConditionGood = "Good"

type Asset struct {
	Type          AssetType       `json:"type"`
	Name          string          `json:"name"`
	PurchaseValue decimal.Decimal `json:"purchase_value"`
	CurrentValue  decimal.Decimal `json:"current_value"`
	Condition     string          `json:"condition"`
	Age           int             `json:"age"`
}

func NewAsset(assetType AssetType, name string, value decimal.Decimal) *Asset {
	return &Asset{
		Type:          assetType,
		Name:          name,
		PurchaseValue: value,
		CurrentValue:  value,
		Condition:     ConditionGood,
	}
}

// ValuePolicy returns the multiplier applied to an asset's value after one
// more year of ownership.
type ValuePolicy func(rng RandomSource) decimal.Decimal

func FixedRate(multiplier float64) ValuePolicy {
	m := decimal.NewFromFloat(multiplier)
	return func(RandomSource) decimal.Decimal { return m }
}

// UniformDrift draws a yearly change uniformly from [low, high].
func UniformDrift(low, high float64) ValuePolicy {
	return func(rng RandomSource) decimal.Decimal {
		u := low + rng.Float64()*(high-low)
		return decimal.NewFromFloat(1 + u)
	}
}

// valuePolicies has no entry for types that hold their value.
var valuePolicies = map[AssetType]ValuePolicy{
	AssetCar:   FixedRate(0.85),
	AssetHouse: UniformDrift(-0.05, 0.10),
}

// AgeOneYear increments age and revalues the asset. Houses consume one draw
// from rng; other types do not touch it.
func (a *Asset) AgeOneYear(rng RandomSource) {
	a.Age++
	policy, ok := valuePolicies[a.Type]
	if !ok {
		return
	}
	a.CurrentValue = a.CurrentValue.Mul(policy(rng))
}

// Repair restores the asset and hands the bill back to the caller.
func (a *Asset) Repair(cost decimal.Decimal) decimal.Decimal {
	a.Condition = ConditionGood
	return cost
}
